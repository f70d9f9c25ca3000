package company

// Company is a business that can be billed through invoices.
type Company struct {
	Code        string // Immutable primary key
	Name        string
	Description string
}
