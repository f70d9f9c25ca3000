package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=creator_mock.go -package=importer
type InvoiceCreator interface {
	Create(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error)
}

type Service struct {
	invoices InvoiceCreator
}

func NewService(invoices InvoiceCreator) *Service {
	return &Service{invoices: invoices}
}

// Result lists the invoices created from an upload and the lines skipped.
type Result struct {
	Charset string
	Created []*invoice.Invoice
	Failed  []RowError
}

// Import parses r and creates one invoice per valid row. Rows rejected by the
// store (unknown company, bad amount) are reported in Result.Failed; any
// other failure aborts the import, leaving earlier rows in place.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Charset: parsed.Charset,
		Created: make([]*invoice.Invoice, 0, len(parsed.Rows)),
		Failed:  append([]RowError{}, parsed.Errors...),
	}

	for _, row := range parsed.Rows {
		inv, err := s.invoices.Create(ctx, invoice.CreateParams{
			CompCode: row.CompCode,
			Amount:   row.Amount,
		})
		if err != nil {
			switch errs.KindOf(err) {
			case errs.KindConstraint, errs.KindConflict, errs.KindBadRequest:
				result.Failed = append(result.Failed, RowError{Line: row.Line, Message: err.Error()})
				continue
			}

			return nil, fmt.Errorf("importing line %d: %w", row.Line, err)
		}

		result.Created = append(result.Created, inv)
	}

	return result, nil
}
