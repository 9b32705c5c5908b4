package estimate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceNumber converts an arbitrary decoded value to a float64,
// returning fallback for anything that is absent, empty, or not
// numerically parseable. NaN and infinities also fall back, so every
// caller downstream can do arithmetic without checking.
func CoerceNumber(v any, fallback float64) float64 {
	switch t := v.(type) {
	case nil:
		return fallback
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fallback
		}
		return t
	case float32:
		return CoerceNumber(float64(t), fallback)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		return CoerceNumber(t.String(), fallback)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return fallback
		}
		// tolerate "$45" and "1,250.50" style values from free text
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fallback
		}
		return f
	default:
		return fallback
	}
}
