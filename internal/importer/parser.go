package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/biztime/internal/encoding"
	"github.com/MrJamesThe3rd/biztime/internal/errs"
)

var (
	ErrEmptyFile     = errs.BadRequest("the uploaded file is empty")
	ErrMissingHeader = errs.BadRequest("no header with comp_code and amt columns found")
)

// Header names accepted for each column, compared case-insensitively.
var (
	compCodeHeaders = []string{"comp_code", "company", "company_code", "code"}
	amountHeaders   = []string{"amt", "amount", "total"}
)

// Row is one invoice read from an upload. Line is 1-based.
type Row struct {
	Line     int
	CompCode string
	Amount   decimal.Decimal
}

// RowError reports a line that was skipped.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Parsed is the outcome of reading an upload.
type Parsed struct {
	Charset string
	Rows    []Row
	Errors  []RowError
}

// Parse reads a CSV of invoices in any supported charset. Both ',' and ';'
// delimited files are accepted; with ';' amounts use a decimal comma
// ("1.234,56").
func Parse(r io.Reader) (*Parsed, error) {
	utf8r, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}

	delim := detectDelimiter(content)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		parsed  = &Parsed{Charset: charset}
		cols    columns
		haveHdr bool
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				parsed.Errors = append(parsed.Errors, RowError{Line: parseErr.Line, Message: parseErr.Err.Error()})
				continue
			}

			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if blank(record) {
			continue
		}

		if !haveHdr {
			cols, haveHdr = findColumns(record)
			if !haveHdr {
				return nil, ErrMissingHeader
			}

			continue
		}

		row, err := cols.row(record, delim == ';')
		if err != nil {
			parsed.Errors = append(parsed.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		row.Line = line
		parsed.Rows = append(parsed.Rows, row)
	}

	if !haveHdr {
		return nil, ErrMissingHeader
	}

	return parsed, nil
}

type columns struct {
	compCode int
	amount   int
}

func findColumns(header []string) (columns, bool) {
	cols := columns{compCode: -1, amount: -1}

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))

		switch {
		case cols.compCode < 0 && slices.Contains(compCodeHeaders, name):
			cols.compCode = i
		case cols.amount < 0 && slices.Contains(amountHeaders, name):
			cols.amount = i
		}
	}

	return cols, cols.compCode >= 0 && cols.amount >= 0
}

func (c columns) row(record []string, decimalComma bool) (Row, error) {
	code := cellValue(record, c.compCode)
	if code == "" {
		return Row{}, errors.New("comp_code is required")
	}

	raw := cellValue(record, c.amount)
	if raw == "" {
		return Row{}, errors.New("amt is required")
	}

	amt, err := parseAmount(raw, decimalComma)
	if err != nil {
		return Row{}, fmt.Errorf("amt %q is not a number", raw)
	}

	if !amt.IsPositive() {
		return Row{}, errors.New("amt must be greater than zero")
	}

	return Row{CompCode: code, Amount: amt}, nil
}

// detectDelimiter picks ';' when the first line has more semicolons than commas.
func detectDelimiter(content []byte) rune {
	first, _, _ := bytes.Cut(content, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}

	return ','
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
