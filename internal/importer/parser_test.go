package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/encoding"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
)

func TestParse_Comma(t *testing.T) {
	input := "comp_code,amt\n" +
		"ibm,200\n" +
		"\n" +
		"apple,\"1,234.50\"\n"

	got, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got.Rows, 2)
	assert.Empty(t, got.Errors)
	assert.Equal(t, encoding.UTF8, got.Charset)

	assert.Equal(t, 2, got.Rows[0].Line)
	assert.Equal(t, "ibm", got.Rows[0].CompCode)
	assert.Equal(t, "200", got.Rows[0].Amount.String())

	assert.Equal(t, 4, got.Rows[1].Line)
	assert.Equal(t, "apple", got.Rows[1].CompCode)
	assert.Equal(t, "1234.5", got.Rows[1].Amount.String())
}

func TestParse_SemicolonDecimalComma(t *testing.T) {
	input := "Company;Description;Amount\n" +
		"ibm;Consulting;1.234,56\n" +
		"apple;Hardware;€ 10,00\n"

	got, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got.Rows, 2)
	assert.Equal(t, "1234.56", got.Rows[0].Amount.String())
	assert.Equal(t, "10", got.Rows[1].Amount.String())
}

func TestParse_Windows1252(t *testing.T) {
	// "comp_code;amt\nsociété;5,00\n" with é = 0xE9.
	input := []byte("comp_code;amt\nsoci\xe9t\xe9;5,00\n")

	got, err := importer.Parse(bytes.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got.Rows, 1)
	assert.Equal(t, "société", got.Rows[0].CompCode)
	assert.NotEqual(t, encoding.UTF8, got.Charset)
}

func TestParse_RowErrors(t *testing.T) {
	input := "comp_code,amt\n" +
		",10\n" +
		"ibm,\n" +
		"ibm,lots\n" +
		"ibm,0\n" +
		"ibm,-5\n" +
		"ibm,7\n"

	got, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, got.Rows, 1)
	assert.Equal(t, 7, got.Rows[0].Line)

	assert.Equal(t, []importer.RowError{
		{Line: 2, Message: "comp_code is required"},
		{Line: 3, Message: "amt is required"},
		{Line: 4, Message: `amt "lots" is not a number`},
		{Line: 5, Message: "amt must be greater than zero"},
		{Line: 6, Message: "amt must be greater than zero"},
	}, got.Errors)
}

func TestParse_Failures(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr error
	}

	tests := []testCase{
		{name: "Empty", input: "  \n", wantErr: importer.ErrEmptyFile},
		{name: "NoHeader", input: "ibm,200\napple,10\n", wantErr: importer.ErrMissingHeader},
		{name: "MissingAmountColumn", input: "comp_code,description\nibm,x\n", wantErr: importer.ErrMissingHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.Parse(strings.NewReader(tt.input))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}
