// Package validation holds the pure input-validation helpers for invoice
// fields, kept transport-independent so they can be unit-tested directly.
package validation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dkotelnikov/invoicehub/internal/common"
)

// DateLayout is the external invoice date representation (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// Date checks that s is a real calendar date in DD/MM/YYYY form.
// time.Parse rejects out-of-range components such as 31/02/2024.
func Date(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: invalid date", common.ErrorValidation)
	}
	return nil
}

// Total parses s as a non-negative decimal amount. The value is kept as an
// exact decimal; no currency rounding is applied.
func Total(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid total", common.ErrorValidation)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid total", common.ErrorValidation)
	}
	return d, nil
}
