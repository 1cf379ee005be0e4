package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.00", FormatAmount(decimal.NewFromInt(1500)))
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.345")))
	assert.Equal(t, "-3.10", FormatAmount(decimal.RequireFromString("-3.1")))
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("99.95")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("99.95")))

	_, err = ParseAmount("ten")
	assert.Error(t, err)
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	b, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}
