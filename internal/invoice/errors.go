package invoice

import "github.com/MrJamesThe3rd/biztime/internal/errs"

var (
	ErrNotFound       = errs.NotFound("Invoice not found")
	ErrUnknownCompany = errs.Constraint("The referenced company does not exist")
	ErrInvalidAmount  = errs.Constraint("Amount must be greater than zero")
)
