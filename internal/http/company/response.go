package company

import (
	"github.com/MrJamesThe3rd/biztime/internal/company"
)

type companySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type companiesResponse struct {
	Companies []companySummary `json:"companies"`
}

type companyResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type companyEnvelope struct {
	Company companyResponse `json:"company"`
}

func toEnvelope(c *company.Company) companyEnvelope {
	return companyEnvelope{
		Company: companyResponse{
			Code:        c.Code,
			Name:        c.Name,
			Description: c.Description,
		},
	}
}

func toListResponse(companies []*company.Company) companiesResponse {
	resp := companiesResponse{Companies: make([]companySummary, len(companies))}
	for i, c := range companies {
		resp.Companies[i] = companySummary{Code: c.Code, Name: c.Name}
	}

	return resp
}
