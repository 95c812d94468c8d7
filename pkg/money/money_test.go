package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPence(t *testing.T) {
	tests := []struct {
		pence int64
		want  string
	}{
		{0, "£0.00"},
		{5, "£0.05"},
		{12500, "£125.00"},
		{45000, "£450.00"},
		{1234, "£12.34"},
		{-150, "£-1.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPence(tt.pence))
	}
}
