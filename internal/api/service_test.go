package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{3600.5, "3,600.50"},
		{1800000, "1,800,000.00"},
		{2100000000, "2,100,000,000.00"},
		{-10000, "-10,000.00"},
		{-999.99, "-999.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatBRL(tt.value), "value %.2f", tt.value)
	}
}
