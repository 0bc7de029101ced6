package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsToFloat(t *testing.T) {
	assert.True(t, decimal.RequireFromString("105.3").Equal(CentsToFloat(10530)))
	assert.True(t, decimal.Zero.Equal(CentsToFloat(0)))
	assert.True(t, decimal.RequireFromString("-0.01").Equal(CentsToFloat(-1)))
}

func TestFloatToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"115.30", 11530},
		{"0.1", 10},
		{"10.005", 1001},
		{"19.994", 1999},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FloatToCents(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "10.5", Plain(1050))
	assert.Equal(t, "10", Plain(1000))
	assert.Equal(t, "0.07", Plain(7))
}
