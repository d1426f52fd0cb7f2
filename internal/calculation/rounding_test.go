package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{-1.4, -1},
		{-2.5, -2},
		{-2.6, -3},
		{0.49999999999999994, 0},
		{8268220498.818758, 8268220499},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}

func TestRoundHalfUp_NonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(RoundHalfUp(math.NaN())))
	assert.True(t, math.IsInf(RoundHalfUp(math.Inf(1)), 1))
	assert.True(t, math.IsInf(RoundHalfUp(math.Inf(-1)), -1))
}

func TestNoRounding(t *testing.T) {
	assert.Equal(t, 1.2345, NoRounding(1.2345))
}
