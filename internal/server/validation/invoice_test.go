package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/invoicehub/internal/common"
)

func TestDate(t *testing.T) {
	t.Parallel()

	valid := []string{"04/11/2025", "01/01/2000", "29/02/2024"}
	for _, s := range valid {
		assert.NoError(t, Date(s), "date %q", s)
	}

	invalid := []string{
		"31/02/2024", // not a real calendar day
		"29/02/2023", // not a leap year
		"2024-02-01", // wrong layout
		"4/11/2025",  // single-digit day
		"04/11/25",   // two-digit year
		"abc",
		"",
	}
	for _, s := range invalid {
		err := Date(s)
		require.Error(t, err, "date %q", s)
		assert.True(t, errors.Is(err, common.ErrorValidation), "date %q: %v", s, err)
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	d, err := Total("150.50")
	require.NoError(t, err)
	assert.Equal(t, "150.5", d.String())

	d, err = Total("0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	for _, s := range []string{"abc", "", "12,50", "-1", "-0.01"} {
		_, err := Total(s)
		require.Error(t, err, "total %q", s)
		assert.True(t, errors.Is(err, common.ErrorValidation), "total %q: %v", s, err)
	}
}
