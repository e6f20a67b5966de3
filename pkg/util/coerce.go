package util

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// CoerceNumber converts a loosely typed JSON value into a finite float64.
// Order: direct numeric cast, first numeric substring of a string, def.
// The result is always finite, so CoerceNumber(CoerceNumber(v, d), d) == CoerceNumber(v, d).
func CoerceNumber(v any, def float64) float64 {
	if n, ok := numeric(v); ok {
		return n
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && finite(n) {
		return n
	}
	if m := numericPattern.FindString(s); m != "" {
		if n, err := strconv.ParseFloat(m, 64); err == nil && finite(n) {
			return n
		}
	}
	return def
}

// CoerceInt is CoerceNumber rounded to the nearest int. Values outside the
// int32 range yield def.
func CoerceInt(v any, def int) int {
	n := math.Round(CoerceNumber(v, float64(def)))
	if n > math.MaxInt32 || n < math.MinInt32 {
		return def
	}
	return int(n)
}

func numeric(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case uint64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	return n, finite(n)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
