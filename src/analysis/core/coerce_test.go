package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"json number", json.Number("1000"), 1000},
		{"numeric string", "250", 250},
		{"padded string", "  42 ", 42},
		{"negative string", "-25", -25},
		{"empty string", "", 0},
		{"name", "Alice", 0},
		{"date", "2024-01-01", 0},
		{"grouped string", "1,000", 0},
		{"nan string", "NaN", 0},
		{"inf string", "Infinity", 0},
		{"nan float", math.NaN(), 0},
		{"inf float", math.Inf(1), 0},
		{"true", true, 1},
		{"false", false, 0},
		{"object", map[string]any{"a": 1}, 0},
		{"array", []any{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, "", ToDisplay(nil))
	assert.Equal(t, "2024-05-01", ToDisplay("2024-05-01"))
	assert.Equal(t, "7", ToDisplay(json.Number("7")))
	assert.Equal(t, "1.5", ToDisplay(1.5))
	assert.Equal(t, "true", ToDisplay(true))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(false))
	assert.True(t, IsBlank(json.Number("0")))
	assert.False(t, IsBlank("0"))
	assert.False(t, IsBlank("Alice"))
	assert.False(t, IsBlank(json.Number("7")))
}
