package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/company"
)

// Invoice is an amount billed to a company.
type Invoice struct {
	ID       int64
	CompCode string
	Amount   decimal.Decimal
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time
	Company  *company.Company // Loaded by Service.Get
}

// CompanyInvoices is a company together with the ids of the invoices it owns.
type CompanyInvoices struct {
	Company    *company.Company
	InvoiceIDs []int64
}
