package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/company"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
	ListInvoiceIDsByCompany(ctx context.Context, code string) ([]int64, error)
}

// CompanyReader resolves the company an invoice belongs to.
type CompanyReader interface {
	Get(ctx context.Context, code string) (*company.Company, error)
}

type Service struct {
	repo      Repository
	companies CompanyReader
}

func NewService(repo Repository, companies CompanyReader) *Service {
	return &Service{repo: repo, companies: companies}
}

type CreateParams struct {
	CompCode string
	Amount   decimal.Decimal
}

type UpdateParams struct {
	Amount decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		CompCode: params.CompCode,
		Amount:   params.Amount,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// Get returns the invoice with its owning company attached. If the company
// row has vanished the invoice is returned without one.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	comp, err := s.companies.Get(ctx, inv.CompCode)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return inv, nil
		}

		return nil, fmt.Errorf("getting company %q: %w", inv.CompCode, err)
	}

	inv.Company = comp

	return inv, nil
}

// Update changes the amount of an invoice. Paid status is not touched.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Invoice, error) {
	return s.repo.UpdateAmount(ctx, id, params.Amount)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// CompanyWithInvoices returns the company identified by code and the ids of
// all invoices it owns.
func (s *Service) CompanyWithInvoices(ctx context.Context, code string) (*CompanyInvoices, error) {
	comp, err := s.companies.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.ListInvoiceIDsByCompany(ctx, code)
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []int64{}
	}

	return &CompanyInvoices{Company: comp, InvoiceIDs: ids}, nil
}
