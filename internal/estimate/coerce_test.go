package estimate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		fallback float64
		want     float64
	}{
		{"nil falls back", nil, 7, 7},
		{"float passes through", 12.5, 0, 12.5},
		{"int passes through", 3, 0, 3},
		{"numeric string", "45.50", 0, 45.5},
		{"dollar-prefixed string", "$45", 0, 45},
		{"thousands separators", "1,250.50", 0, 1250.5},
		{"padded string", "  19 ", 0, 19},
		{"empty string falls back", "", 1, 1},
		{"garbage string falls back", "a few", 1, 1},
		{"NaN falls back", math.NaN(), 2, 2},
		{"infinity falls back", math.Inf(1), 2, 2},
		{"bool falls back", true, 5, 5},
		{"json number", json.Number("99.9"), 0, 99.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumber(tt.value, tt.fallback))
		})
	}
}
