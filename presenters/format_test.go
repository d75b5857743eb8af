package presenters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{20, "₹20.00"},
		{52000, "₹52,000.00"},
		{1234567.891, "₹1,234,567.89"},
		{-1500.5, "-₹1,500.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in))
	}
}

func TestFormatWholeCurrency(t *testing.T) {
	assert.Equal(t, "₹52,000", FormatWholeCurrency(52000))
	assert.Equal(t, "₹1,001", FormatWholeCurrency(1000.6))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}
