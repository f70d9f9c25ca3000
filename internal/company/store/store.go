package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/database"
)

const (
	constraintPrimaryKey = "companies_pkey"
	constraintName       = "companies_name_key"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description
	`

	err := s.db.QueryRowContext(ctx, query, c.Code, c.Name, c.Description).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if mapped := mapConstraint(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("creating company: %w", err)
	}

	return nil
}

func (s *Store) GetCompany(ctx context.Context, code string) (*company.Company, error) {
	query := `
		SELECT code, name, description
		FROM companies
		WHERE code = $1
	`

	var c company.Company

	err := s.db.QueryRowContext(ctx, query, code).Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return &c, nil
}

// ListCompanies returns every company with only code and name populated.
func (s *Store) ListCompanies(ctx context.Context) ([]*company.Company, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, name FROM companies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	companies := []*company.Company{}

	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company rows: %w", err)
	}

	return companies, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET name = $1, description = $2
		WHERE code = $3
		RETURNING code, name, description
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Code).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.ErrNotFound
		}

		if mapped := mapConstraint(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("updating company: %w", err)
	}

	return nil
}

func (s *Store) DeleteCompany(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		if mapped := mapConstraint(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("deleting company: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	if n == 0 {
		return company.ErrNotFound
	}

	return nil
}

// mapConstraint translates integrity violations on companies into domain
// errors. It returns nil for anything it does not recognise.
func mapConstraint(err error) error {
	c, ok := database.ConstraintOf(err)
	if !ok {
		return nil
	}

	switch {
	case c.Violation == database.ViolationUnique && c.Name == constraintPrimaryKey:
		return company.ErrAlreadyExists
	case c.Violation == database.ViolationUnique && c.Name == constraintName:
		return company.ErrNameTaken
	case c.Violation == database.ViolationForeignKey:
		// Only invoices reference companies.
		return company.ErrHasInvoices
	}

	return nil
}
