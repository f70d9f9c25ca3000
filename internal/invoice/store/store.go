package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// scanInvoice reads a row in selectInvoiceColumns order.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	if err := s.Scan(
		&inv.ID, &inv.CompCode, &inv.Amount, &inv.Paid, &inv.AddDate, &inv.PaidDate,
	); err != nil {
		return nil, err
	}

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING ` + selectInvoiceColumns

	created, err := scanInvoice(s.db.QueryRowContext(ctx, query, inv.CompCode, inv.Amount))
	if err != nil {
		if mapped := mapConstraint(err); mapped != nil {
			return mapped
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	*inv = *created

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

// ListInvoices returns every invoice with only id and comp_code populated.
func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, comp_code FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}

	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompCode); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) UpdateAmount(ctx context.Context, id int64, amount decimal.Decimal) (*invoice.Invoice, error) {
	query := `
		UPDATE invoices
		SET amt = $1
		WHERE id = $2
		RETURNING ` + selectInvoiceColumns

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, amount, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		if mapped := mapConstraint(err); mapped != nil {
			return nil, mapped
		}

		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) ListInvoiceIDsByCompany(ctx context.Context, code string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM invoices WHERE comp_code = $1 ORDER BY id`, code)
	if err != nil {
		return nil, fmt.Errorf("listing invoice ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning invoice id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice id rows: %w", err)
	}

	return ids, nil
}

func mapConstraint(err error) error {
	c, ok := database.ConstraintOf(err)
	if !ok {
		return nil
	}

	switch c.Violation {
	case database.ViolationForeignKey:
		return invoice.ErrUnknownCompany
	case database.ViolationCheck:
		return invoice.ErrInvalidAmount
	}

	return nil
}
