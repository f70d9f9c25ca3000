//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/biztime/internal/database/databasetest"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

func TestIntegration_InvoiceStore(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	s := New(db)

	seedCompany := func(t *testing.T, code string) {
		t.Helper()

		_, err := db.ExecContext(ctx, `INSERT INTO companies (code, name) VALUES ($1, $2)`, code, code+" inc")
		require.NoError(t, err)
	}

	t.Run("create returns full row", func(t *testing.T) {
		databasetest.Reset(t, db)
		seedCompany(t, "ibm")

		inv := &invoice.Invoice{CompCode: "ibm", Amount: decimal.NewFromInt(200)}
		require.NoError(t, s.CreateInvoice(ctx, inv))

		assert.Equal(t, int64(1), inv.ID)
		assert.Equal(t, "ibm", inv.CompCode)
		assert.Equal(t, "200", inv.Amount.String())
		assert.False(t, inv.Paid)
		assert.Nil(t, inv.PaidDate)
		assert.WithinDuration(t, time.Now(), inv.AddDate, time.Minute)

		got, err := s.GetInvoice(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(inv.Amount))
	})

	t.Run("create rejects unknown company and bad amount", func(t *testing.T) {
		databasetest.Reset(t, db)
		seedCompany(t, "ibm")

		err := s.CreateInvoice(ctx, &invoice.Invoice{CompCode: "nope", Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, invoice.ErrUnknownCompany)

		err = s.CreateInvoice(ctx, &invoice.Invoice{CompCode: "ibm", Amount: decimal.Zero})
		assert.ErrorIs(t, err, invoice.ErrInvalidAmount)

		all, err := s.ListInvoices(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("update amount", func(t *testing.T) {
		databasetest.Reset(t, db)
		seedCompany(t, "ibm")

		inv := &invoice.Invoice{CompCode: "ibm", Amount: decimal.NewFromInt(100)}
		require.NoError(t, s.CreateInvoice(ctx, inv))

		updated, err := s.UpdateAmount(ctx, inv.ID, decimal.RequireFromString("350.50"))
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(decimal.RequireFromString("350.5")))
		assert.Equal(t, "ibm", updated.CompCode)

		_, err = s.UpdateAmount(ctx, 9999, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, invoice.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		databasetest.Reset(t, db)
		seedCompany(t, "ibm")

		inv := &invoice.Invoice{CompCode: "ibm", Amount: decimal.NewFromInt(100)}
		require.NoError(t, s.CreateInvoice(ctx, inv))
		require.NoError(t, s.DeleteInvoice(ctx, inv.ID))

		_, err := s.GetInvoice(ctx, inv.ID)
		assert.ErrorIs(t, err, invoice.ErrNotFound)

		assert.ErrorIs(t, s.DeleteInvoice(ctx, 9999), invoice.ErrNotFound)
	})

	t.Run("list and ids by company", func(t *testing.T) {
		databasetest.Reset(t, db)
		seedCompany(t, "ibm")
		seedCompany(t, "apple")

		for _, code := range []string{"ibm", "apple", "ibm"} {
			require.NoError(t, s.CreateInvoice(ctx, &invoice.Invoice{CompCode: code, Amount: decimal.NewFromInt(10)}))
		}

		all, err := s.ListInvoices(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, int64(1), all[0].ID)
		assert.Equal(t, "apple", all[1].CompCode)

		ids, err := s.ListInvoiceIDsByCompany(ctx, "ibm")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, ids)

		seedCompany(t, "empty")

		ids, err = s.ListInvoiceIDsByCompany(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
