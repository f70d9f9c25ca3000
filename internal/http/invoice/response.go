package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type invoiceSummary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

type invoicesResponse struct {
	Invoices []invoiceSummary `json:"invoices"`
}

// invoiceRow mirrors the stored row and is returned by create and update.
type invoiceRow struct {
	ID       int64           `json:"id"`
	CompCode string          `json:"comp_code"`
	Amount   decimal.Decimal `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  time.Time       `json:"add_date"`
	PaidDate *time.Time      `json:"paid_date"`
}

type rowEnvelope struct {
	Invoice invoiceRow `json:"invoice"`
}

type companyResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// invoiceDetail replaces comp_code with the embedded company.
type invoiceDetail struct {
	ID       int64            `json:"id"`
	Amount   decimal.Decimal  `json:"amt"`
	Paid     bool             `json:"paid"`
	AddDate  time.Time        `json:"add_date"`
	PaidDate *time.Time       `json:"paid_date"`
	Company  *companyResponse `json:"company,omitempty"`
}

type detailEnvelope struct {
	Invoice invoiceDetail `json:"invoice"`
}

type companyInvoices struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Invoices    []int64 `json:"invoices"`
}

type companyInvoicesEnvelope struct {
	Company companyInvoices `json:"company"`
}

func toListResponse(invoices []*invoice.Invoice) invoicesResponse {
	resp := invoicesResponse{Invoices: make([]invoiceSummary, len(invoices))}
	for i, inv := range invoices {
		resp.Invoices[i] = invoiceSummary{ID: inv.ID, CompCode: inv.CompCode}
	}

	return resp
}

func toRowEnvelope(inv *invoice.Invoice) rowEnvelope {
	return rowEnvelope{
		Invoice: invoiceRow{
			ID:       inv.ID,
			CompCode: inv.CompCode,
			Amount:   inv.Amount,
			Paid:     inv.Paid,
			AddDate:  inv.AddDate,
			PaidDate: inv.PaidDate,
		},
	}
}

func toDetailEnvelope(inv *invoice.Invoice) detailEnvelope {
	resp := detailEnvelope{
		Invoice: invoiceDetail{
			ID:       inv.ID,
			Amount:   inv.Amount,
			Paid:     inv.Paid,
			AddDate:  inv.AddDate,
			PaidDate: inv.PaidDate,
		},
	}

	if inv.Company != nil {
		resp.Invoice.Company = &companyResponse{
			Code:        inv.Company.Code,
			Name:        inv.Company.Name,
			Description: inv.Company.Description,
		}
	}

	return resp
}

func toCompanyInvoicesEnvelope(ci *invoice.CompanyInvoices) companyInvoicesEnvelope {
	ids := ci.InvoiceIDs
	if ids == nil {
		ids = []int64{}
	}

	return companyInvoicesEnvelope{
		Company: companyInvoices{
			Code:        ci.Company.Code,
			Name:        ci.Company.Name,
			Description: ci.Company.Description,
			Invoices:    ids,
		},
	}
}
