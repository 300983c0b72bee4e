package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// The upstream API is loosely typed: the same field can arrive as a native
// number, a boolean, an empty string, "nan", or a string-encoded value
// depending on the entity and the point in the season. Every coercer below
// maps an unknown-shaped value to a typed pointer, with nil as the explicit
// absent marker. None of them ever return an error.

// Int converts v to *int64. Numeric strings go through float parsing first,
// so "4.0" and "4.7" both truncate to 4.
func Int(v any) *int64 {
	f := Float(v)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}

// Float converts v to *float64. nil, empty strings, the "nan" sentinel and
// NaN values all map to nil.
func Float(v any) *float64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(value) {
			return nil
		}
		return &value
	case float32:
		f := float64(value)
		if math.IsNaN(f) {
			return nil
		}
		return &f
	case int:
		f := float64(value)
		return &f
	case int64:
		f := float64(value)
		return &f
	case bool:
		f := 0.0
		if value {
			f = 1.0
		}
		return &f
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" || strings.EqualFold(trimmed, "nan") {
			return nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// Bool converts v to *bool. Strings compare case-insensitively against
// "true"; other non-empty values fall back to generic truthiness.
func Bool(v any) *bool {
	switch value := v.(type) {
	case nil:
		return nil
	case bool:
		return &value
	case string:
		if value == "" {
			return nil
		}
		b := strings.EqualFold(strings.TrimSpace(value), "true")
		return &b
	case float64:
		b := value != 0
		return &b
	case int:
		b := value != 0
		return &b
	case int64:
		b := value != 0
		return &b
	default:
		b := v != nil
		return &b
	}
}

// String converts v to a trimmed *string. An all-whitespace or empty result
// is absent.
func String(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch value := v.(type) {
	case string:
		s = value
	case float64:
		s = strconv.FormatFloat(value, 'f', -1, 64)
	case int64:
		s = strconv.FormatInt(value, 10)
	case int:
		s = strconv.Itoa(value)
	case bool:
		s = strconv.FormatBool(value)
	default:
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Time parses an ISO-8601 timestamp string. The upstream uses a trailing
// literal "Z" zone marker, which is rewritten to an explicit zero offset
// before parsing. Empty or unparseable input is absent.
func Time(v any) *time.Time {
	s := String(v)
	if s == nil {
		return nil
	}
	candidate := *s
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
		if parsed, err := time.Parse(layout, candidate); err == nil {
			return &parsed
		}
	}
	return nil
}

// Literal ensures a semi-structured field holds a structured value. Some
// upstream fields come back as the textual rendering of a list of records
// (e.g. "[{'property': ...}]"); those are re-parsed with a literal-only
// parser. If parsing fails the raw string is kept untouched.
func Literal(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case map[string]any, []any:
		return value
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		parsed, err := parseLiteral(value)
		if err != nil {
			return value
		}
		return parsed
	default:
		return v
	}
}
