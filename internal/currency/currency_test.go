package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("1.0842")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.0842")))

	_, err = ParseRate("abc")
	assert.Error(t, err)

	_, err = ParseRate("0")
	assert.Error(t, err)

	_, err = ParseRate("-1.5")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   string
		want   int64
	}{
		{name: "identity rate", amount: 12345, rate: "1", want: 12345},
		{name: "simple conversion", amount: 10000, rate: "1.10", want: 11000},
		{name: "half a cent rounds up", amount: 1250, rate: "1.234", want: 1543},
		{name: "just below half rounds down", amount: 1000, rate: "1.0004", want: 1000},
		{name: "weak currency", amount: 1500000, rate: "0.0061", want: 9150},
		{name: "zero amount", amount: 0, rate: "1.5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := ParseRate(tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Normalize(tt.amount, rate))
		})
	}
}

func TestNormalize_SumStability(t *testing.T) {
	// Normalizing shares individually and summing must land within cents
	// of normalizing the total, so the balance math never drifts.
	rate := decimal.RequireFromString("1.0842")
	shares := []int64{3333, 3333, 3334}

	var sum int64
	for _, s := range shares {
		sum += Normalize(s, rate)
	}
	total := Normalize(10000, rate)

	diff := total - sum
	if diff < 0 {
		diff = -diff
	}
	assert.LessOrEqual(t, diff, int64(len(shares)))
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("EUR"))
	assert.True(t, ValidCode("USD"))
	assert.False(t, ValidCode("eur"))
	assert.False(t, ValidCode("EURO"))
	assert.False(t, ValidCode(""))
}

func TestMajor(t *testing.T) {
	assert.Equal(t, "1234.56", Major(123456))
	assert.Equal(t, "0.05", Major(5))
	assert.Equal(t, "-12.00", Major(-1200))
}
