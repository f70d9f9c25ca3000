package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an invoice amount with two decimal places.
func FormatAmount(amt decimal.Decimal) string {
	return amt.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatPaid describes the payment state of an invoice.
func FormatPaid(paid bool, paidDate *time.Time) string {
	if !paid {
		return "unpaid"
	}

	if paidDate == nil {
		return "paid"
	}

	return "paid " + FormatDate(*paidDate)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
