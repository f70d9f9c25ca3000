package company

import "github.com/MrJamesThe3rd/biztime/internal/errs"

var (
	ErrNotFound      = errs.NotFound("Company not found")
	ErrAlreadyExists = errs.Conflict("A company with this code already exists")
	ErrNameTaken     = errs.Conflict("A company with this name already exists")
	ErrHasInvoices   = errs.Conflict("Company still has invoices")
)
