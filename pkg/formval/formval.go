// Package formval parses loosely typed form values sent by the browser
// client. A value may arrive as a JSON number or as a numeric string; an
// absent (or null) value is distinct from a present but invalid one.
package formval

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotNumeric = errors.New("value is not numeric")
	ErrNegative   = errors.New("value is negative")
	ErrOutOfRange = errors.New("value is out of range")
	ErrNotInteger = errors.New("value is not an integer")
)

// Number is a JSON field that accepts 12, 12.5, "12" or "12.5".
// The zero value is an absent field.
type Number struct {
	raw     string
	present bool
}

// NumberOf builds a present Number from its textual form.
func NumberOf(raw string) Number {
	return Number{raw: raw, present: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	n.present = true
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			n.raw = s
			return nil
		}
		n.raw = strings.TrimSpace(str)
		return nil
	}
	// booleans, objects and arrays are kept verbatim and fail at parse time
	n.raw = s
	return nil
}

// Input limits. Comparisons and rounding expand the coefficient by the
// exponent, so both are bounded before any arithmetic.
const (
	maxLength   = 32
	maxExponent = 9
	minExponent = -32
)

func (n Number) decimal() (decimal.Decimal, error) {
	if n.raw == "" {
		return decimal.Zero, ErrNotNumeric
	}
	if len(n.raw) > maxLength {
		return decimal.Zero, ErrOutOfRange
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	if exp := d.Exponent(); exp > maxExponent || exp < minExponent {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

// Count parses a non-negative quantity, truncating any fraction toward
// zero. Absent yields def. The result fits a 32-bit integer column.
func (n Number) Count(def int) (int, error) {
	if !n.present {
		return def, nil
	}
	d, err := n.decimal()
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	d = d.Truncate(0)
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, ErrOutOfRange
	}
	return int(d.IntPart()), nil
}

// Amount parses a non-negative decimal rounded to scale places that must
// fit a numeric(precision, scale) column. Absent yields def.
func (n Number) Amount(def decimal.Decimal, precision, scale int32) (decimal.Decimal, error) {
	if !n.present {
		return def, nil
	}
	d, err := n.decimal()
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	d = d.Round(scale)
	limit := decimal.New(1, precision-scale)
	if d.GreaterThanOrEqual(limit) {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

// ID parses a positive integer identifier. Absent, blank and zero values
// are reported as missing through ok=false.
func (n Number) ID() (id uint, ok bool, err error) {
	if !n.present || n.raw == "" {
		return 0, false, nil
	}
	d, err := n.decimal()
	if err != nil {
		return 0, false, err
	}
	if d.IsNegative() {
		return 0, false, ErrNegative
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, false, ErrNotInteger
	}
	if d.IsZero() {
		return 0, false, nil
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false, ErrOutOfRange
	}
	return uint(d.IntPart()), true, nil
}

// ParseID parses a path parameter as a positive integer identifier.
func ParseID(s string) (uint, error) {
	id, ok, err := NumberOf(strings.TrimSpace(s)).ID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrOutOfRange
	}
	return id, nil
}
