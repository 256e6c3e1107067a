package liquidity

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRawAmount(t *testing.T) {
	cases := []struct {
		amount   float64
		decimals uint8
		want     string
	}{
		{1.5, 6, "1500000"},
		{0.1, 18, "100000000000000000"},
		{2205.123456789, 6, "2205123456"},
		{42, 0, "42"},
		{0, 18, "0"},
	}
	for _, tc := range cases {
		raw, err := ToRawAmount(tc.amount, tc.decimals)
		require.NoError(t, err)
		assert.Equal(t, tc.want, raw.String(), "amount %v", tc.amount)
	}

	for _, bad := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		_, err := ToRawAmount(bad, 18)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "amount %v", bad)
	}
}

func TestFormatRawAmount(t *testing.T) {
	assert.Equal(t, "1.500000", FormatRawAmount(big.NewInt(1500000), 6))
	assert.Equal(t, "-1.500000", FormatRawAmount(big.NewInt(-1500000), 6))
	assert.Equal(t, "42", FormatRawAmount(big.NewInt(42), 0))
	assert.Equal(t, "0", FormatRawAmount(nil, 18))
}

func TestFormatAmount(t *testing.T) {
	text, raw, err := FormatAmount(0.123456789, 6)
	require.NoError(t, err)
	assert.Equal(t, "0.123456", text)
	assert.Equal(t, "123456", raw.String())
}
