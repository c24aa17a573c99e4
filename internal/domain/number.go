package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.\-]`)

// ParseNumber converts a loosely typed value into a finite number.
// Strings have every non-numeric character stripped before parsing, so
// "32 EUR" and "€32" both parse. Anything unparseable, NaN or infinite
// yields nil.
func ParseNumber(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case int:
		return Float(float64(x))
	case int64:
		return Float(float64(x))
	case json.Number:
		return parseNumericString(x.String())
	case string:
		return parseNumericString(x)
	case *float64:
		if x == nil {
			return nil
		}
		return Float(*x)
	default:
		return nil
	}
}

func parseNumericString(s string) *float64 {
	cleaned := nonNumericRegex.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return Float(f)
}

// Float returns a pointer to v, or nil when v is NaN or infinite.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// FirstNumber returns the first value in vs that parses to a finite number.
func FirstNumber(vs ...any) *float64 {
	for _, v := range vs {
		if n := ParseNumber(v); n != nil {
			return n
		}
	}
	return nil
}

// String returns a pointer to the trimmed s, or nil when s is blank.
func String(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FirstString returns the first non-blank string among vs.
func FirstString(vs ...any) *string {
	for _, v := range vs {
		if s := String(StringValue(v)); s != nil {
			return s
		}
	}
	return nil
}

// StringValue renders scalars as strings; other values become "".
func StringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

func finitePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
