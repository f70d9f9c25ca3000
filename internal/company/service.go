package company

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	CreateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, code string) (*Company, error)
	ListCompanies(ctx context.Context) ([]*Company, error)
	UpdateCompany(ctx context.Context, c *Company) error
	DeleteCompany(ctx context.Context, code string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Code        string
	Name        string
	Description string
}

type UpdateParams struct {
	Name        string
	Description string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Company, error) {
	c := &Company{
		Code:        params.Code,
		Name:        params.Name,
		Description: params.Description,
	}
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, code string) (*Company, error) {
	return s.repo.GetCompany(ctx, code)
}

func (s *Service) List(ctx context.Context) ([]*Company, error) {
	return s.repo.ListCompanies(ctx)
}

// Update replaces the name and description of the company identified by code.
// The code itself never changes.
func (s *Service) Update(ctx context.Context, code string, params UpdateParams) (*Company, error) {
	c := &Company{
		Code:        code,
		Name:        params.Name,
		Description: params.Description,
	}
	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	return s.repo.DeleteCompany(ctx, code)
}
