package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses "1,234.56", or "1.234,56" when decimalComma is set.
// A leading currency sign is ignored.
func parseAmount(s string, decimalComma bool) (decimal.Decimal, error) {
	clean := strings.TrimLeft(strings.TrimSpace(s), "$€£ ")

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
