package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------

// ToNumber coerces a raw cell to a finite float64. Anything that does not
// parse as a number (names, dates, null, NaN, ±Inf) becomes 0.
func ToNumber(v any) float64 {
	var f float64

	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case json.Number:
		parsed, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if x {
			return 1
		}
		return 0
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// -----------------------------------------------------------------------------

// ToDisplay renders a raw cell as-is for display. nil becomes "".
func ToDisplay(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// -----------------------------------------------------------------------------

// IsBlank reports whether a cell carries no usable display value: null, an
// empty string, false, or a numeric zero.
func IsBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number, float64, int, int64:
		return ToNumber(x) == 0
	default:
		return false
	}
}
