//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/database/databasetest"
)

func TestIntegration_CompanyStore(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	s := New(db)

	t.Run("create then get", func(t *testing.T) {
		databasetest.Reset(t, db)

		c := &company.Company{Code: "ibm", Name: "IBM", Description: "Big blue."}
		require.NoError(t, s.CreateCompany(ctx, c))

		got, err := s.GetCompany(ctx, "ibm")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("duplicate code and name", func(t *testing.T) {
		databasetest.Reset(t, db)

		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "apple", Name: "Apple"}))

		err := s.CreateCompany(ctx, &company.Company{Code: "apple", Name: "Apple Two"})
		assert.ErrorIs(t, err, company.ErrAlreadyExists)

		err = s.CreateCompany(ctx, &company.Company{Code: "apple2", Name: "Apple"})
		assert.ErrorIs(t, err, company.ErrNameTaken)
	})

	t.Run("list ordered by code", func(t *testing.T) {
		databasetest.Reset(t, db)

		empty, err := s.ListCompanies(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "ibm", Name: "IBM"}))
		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "apple", Name: "Apple"}))

		got, err := s.ListCompanies(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "apple", got[0].Code)
		assert.Equal(t, "ibm", got[1].Code)
	})

	t.Run("update keeps code", func(t *testing.T) {
		databasetest.Reset(t, db)

		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "ibm", Name: "IBM"}))

		c := &company.Company{Code: "ibm", Name: "International Business Machines", Description: "Blue."}
		require.NoError(t, s.UpdateCompany(ctx, c))

		got, err := s.GetCompany(ctx, "ibm")
		require.NoError(t, err)
		assert.Equal(t, "International Business Machines", got.Name)
		assert.Equal(t, "Blue.", got.Description)

		err = s.UpdateCompany(ctx, &company.Company{Code: "nope", Name: "Nope"})
		assert.ErrorIs(t, err, company.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		databasetest.Reset(t, db)

		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "ibm", Name: "IBM"}))
		require.NoError(t, s.DeleteCompany(ctx, "ibm"))

		_, err := s.GetCompany(ctx, "ibm")
		assert.ErrorIs(t, err, company.ErrNotFound)

		assert.ErrorIs(t, s.DeleteCompany(ctx, "ibm"), company.ErrNotFound)
	})

	t.Run("delete with invoices", func(t *testing.T) {
		databasetest.Reset(t, db)

		require.NoError(t, s.CreateCompany(ctx, &company.Company{Code: "ibm", Name: "IBM"}))

		_, err := db.ExecContext(ctx, `INSERT INTO invoices (comp_code, amt) VALUES ('ibm', 100)`)
		require.NoError(t, err)

		assert.ErrorIs(t, s.DeleteCompany(ctx, "ibm"), company.ErrHasInvoices)
	})
}
