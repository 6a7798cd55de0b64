// Package validate coerces and bound-checks single request values.
//
// Every validator takes the parameter name, the raw decoded JSON value and its
// bounds. A nil value passes through as a nil result; whether the parameter is
// required is decided by the caller.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/localnerve/publishing-house/internal/types"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted date representation.
const DateLayout = "2006-01-02"

// Default string length bounds.
const (
	DefaultMinLength = 1
	DefaultMaxLength = 64
)

// number is satisfied by the json.Number types produced by decoders running with UseNumber.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// IntRange bounds an integer. A nil end is unbounded.
type IntRange struct {
	Min, Max *int64
}

// IntBetween returns the inclusive range [lo, hi].
func IntBetween(lo, hi int64) IntRange {
	return IntRange{Min: &lo, Max: &hi}
}

// IntAtLeast returns the range [lo, +inf).
func IntAtLeast(lo int64) IntRange {
	return IntRange{Min: &lo}
}

func (r IntRange) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = strconv.FormatInt(*r.Min, 10)
	}
	if r.Max != nil {
		hi = strconv.FormatInt(*r.Max, 10)
	}
	return "[" + lo + ", " + hi + "]"
}

// DecimalRange bounds a decimal. A nil end is unbounded.
type DecimalRange struct {
	Min, Max *decimal.Decimal
}

// DecimalBetween returns the inclusive range [lo, hi].
func DecimalBetween(lo, hi decimal.Decimal) DecimalRange {
	return DecimalRange{Min: &lo, Max: &hi}
}

// DecimalAtLeast returns the range [lo, +inf).
func DecimalAtLeast(lo int64) DecimalRange {
	d := decimal.NewFromInt(lo)
	return DecimalRange{Min: &d}
}

func (r DecimalRange) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = r.Min.String()
	}
	if r.Max != nil {
		hi = r.Max.String()
	}
	return "[" + lo + ", " + hi + "]"
}

// Length bounds a string's length in characters. The zero value means
// [DefaultMinLength, DefaultMaxLength].
type Length struct {
	Min, Max int
}

// Exactly returns a Length that admits only n characters.
func Exactly(n int) Length {
	return Length{Min: n, Max: n}
}

func (l Length) bounds() (int, int) {
	if l.Min == 0 && l.Max == 0 {
		return DefaultMinLength, DefaultMaxLength
	}
	return l.Min, l.Max
}

// DateRange bounds a date, inclusive at both ends. A nil end is unbounded.
type DateRange struct {
	Min, Max *time.Time
}

// Integer accepts integral numbers and decimal integer strings.
func Integer(param string, value any, r IntRange) (*int64, error) {
	if value == nil {
		return nil, nil
	}

	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, types.Validation("parameter %s must be an integer, got %v", param, v)
		}
		n = int64(v)
	case number:
		i, err := v.Int64()
		if err != nil {
			// 1.0 and 2e1 are integral too.
			i, err = integral(v.String())
		}
		if err != nil {
			return nil, types.Validation("parameter %s must be an integer, got %s", param, v.String())
		}
		n = i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, types.Validation("parameter %s must be an integer, got %q", param, v)
		}
		n = i
	default:
		return nil, types.Validation("parameter %s must be an integer, got %T", param, value)
	}

	if (r.Min != nil && n < *r.Min) || (r.Max != nil && n > *r.Max) {
		return nil, types.Validation("parameter %s = %d is not in %s", param, n, r)
	}
	return &n, nil
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// integral parses a JSON number literal that denotes an int64.
func integral(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, fmt.Errorf("%s is not an int64", s)
	}
	return d.IntPart(), nil
}

// Decimal accepts integral or fractional numbers and numeric strings.
func Decimal(param string, value any, r DecimalRange) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, types.Validation("parameter %s must be a number", param)
		}
		d = decimal.NewFromFloat(v)
	case number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	default:
		return nil, types.Validation("parameter %s must be a number, got %T", param, value)
	}
	if err != nil {
		return nil, types.Validation("parameter %s must be a number, got %v", param, value)
	}

	if (r.Min != nil && d.LessThan(*r.Min)) || (r.Max != nil && d.GreaterThan(*r.Max)) {
		return nil, types.Validation("parameter %s = %s is not in %s", param, d.String(), r)
	}
	return &d, nil
}

// String accepts only JSON strings whose length lies within l.
func String(param string, value any, l Length) (*string, error) {
	if value == nil {
		return nil, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, types.Validation("parameter %s must be a string, got %T", param, value)
	}

	lo, hi := l.bounds()
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0 && lo > 0:
		return nil, types.Validation("parameter %s is a zero-length string", param)
	case lo == hi && n != lo:
		return nil, types.Validation("parameter %s must be exactly %d characters long, got %d", param, lo, n)
	case n < lo || n > hi:
		return nil, types.Validation("parameter %s must be between %d and %d characters long, got %d", param, lo, hi, n)
	}
	return &s, nil
}

// Date accepts a YYYY-MM-DD string and returns the date at midnight UTC.
func Date(param string, value any, r DateRange) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, types.Validation("parameter %s must be a date string (%s), got %T", param, "YYYY-MM-DD", value)
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, types.Validation("parameter %s must be a date (YYYY-MM-DD), got %q", param, s)
	}

	if r.Min != nil && t.Before(truncate(*r.Min)) {
		return nil, types.Validation("parameter %s = %s is before %s", param, s, r.Min.Format(DateLayout))
	}
	if r.Max != nil && t.After(truncate(*r.Max)) {
		return nil, types.Validation("parameter %s = %s is after %s", param, s, r.Max.Format(DateLayout))
	}
	return &t, nil
}

// Boolean accepts JSON booleans and the strings true/t/yes/1 and false/f/no/0
// in any case.
func Boolean(param string, value any) (*bool, error) {
	if value == nil {
		return nil, nil
	}

	var b bool
	switch v := value.(type) {
	case bool:
		b = v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "t", "yes", "1":
			b = true
		case "false", "f", "no", "0":
			b = false
		default:
			return nil, types.Validation("parameter %s must be a boolean, got %q", param, v)
		}
	default:
		return nil, types.Validation("parameter %s must be a boolean, got %s", param, describe(value))
	}
	return &b, nil
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return truncate(time.Now())
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func describe(v any) string {
	if n, ok := v.(number); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", v)
}
