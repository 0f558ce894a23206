package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts a loosely typed decoded value to a float64.
// It handles json.Number, native numeric types and numeric strings.
// ok is false when the value carries no usable number (nil, NaN, bool, garbage strings).
func ParseFloat(val any) (f float64, ok bool) {
	switch v := val.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case []byte:
		return ParseFloat(string(v))
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt64 converts a loosely typed value to an int64, truncating fractions.
func ParseInt64(val any) (int64, bool) {
	if n, ok := val.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := ParseFloat(val)
	if !ok || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// ParseInt converts a loosely typed value to an int.
func ParseInt(val any) (int, bool) {
	i, ok := ParseInt64(val)
	if !ok || i > math.MaxInt32 || i < math.MinInt32 {
		return 0, false
	}
	return int(i), true
}

// ToInt converts various types to int, falling back to 0.
func ToInt(val any) int {
	i, _ := ParseInt(val)
	return i
}

// ToInt64 converts various types to int64, falling back to 0.
func ToInt64(val any) int64 {
	i, _ := ParseInt64(val)
	return i
}

// ToFloat converts various types to float64, falling back to 0.
func ToFloat(val any) float64 {
	f, _ := ParseFloat(val)
	return f
}

// ToString converts various types to string.
// Structured values (maps, slices) and nil have no sensible text form and yield "".
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(strings.TrimSpace(v), "true")
	case []byte:
		return ToBool(string(v))
	default:
		i, ok := ParseInt64(val)
		return ok && i == 1
	}
}

// ToSlice returns val as a list, or nil when it is not one.
func ToSlice(val any) []any {
	if s, ok := val.([]any); ok {
		return s
	}
	return nil
}

// ToMap returns val as an object, or nil when it is not one.
func ToMap(val any) map[string]any {
	if m, ok := val.(map[string]any); ok {
		return m
	}
	return nil
}
