// Package quantity parses and formats physical quantities written with SI
// prefixes, e.g. "1k" -> 1000, "159.155n" -> 159.155e-9.
package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// prefixes maps an SI prefix to its multiplier. "meg" disambiguates mega
// from milli ("m"), matching the convention used by SPICE-style netlists.
var prefixes = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"M":   1e6,
	"k":   1e3,
	"K":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

// order lists the prefixes from smallest to largest multiplier, for
// formatting: FormatValueFactor walks it from the largest down and uses
// the first one whose magnitude the value clears.
var order = []struct {
	suffix string
	factor float64
}{
	{"f", 1e-15},
	{"p", 1e-12},
	{"n", 1e-9},
	{"u", 1e-6},
	{"m", 1e-3},
	{"", 1},
	{"k", 1e3},
	{"M", 1e6},
	{"G", 1e9},
	{"T", 1e12},
}

// Quantity is a numeric value with an associated unit, e.g. "1k" ohms.
type Quantity struct {
	Value float64
	Unit  string
}

// Parse reads a numeric literal with an optional SI prefix, followed by an
// optional unit suffix (which is not validated against a fixed list — any
// trailing non-prefix letters are taken as the unit).
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("quantity: empty value")
	}

	numEnd := 0
	for numEnd < len(s) {
		c := s[numEnd]
		if (c >= '0' && c <= '9') || c == '.' || c == '+' || c == '-' {
			numEnd++
			continue
		}
		break
	}
	if numEnd == 0 {
		return Quantity{}, fmt.Errorf("quantity: invalid value %q", s)
	}

	numStr := s[:numEnd]
	rest := s[numEnd:]

	prefix := ""
	unit := rest
	if strings.HasPrefix(rest, "meg") {
		prefix, unit = "meg", rest[3:]
	} else if len(rest) > 0 {
		candidate := rest[:1]
		if _, ok := prefixes[candidate]; ok {
			prefix, unit = candidate, rest[1:]
		}
	}

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity: invalid value %q: %w", s, err)
	}

	if prefix != "" {
		mult, ok := prefixes[prefix]
		if !ok {
			return Quantity{}, fmt.Errorf("quantity: unknown SI prefix %q in %q", prefix, s)
		}
		num *= mult
	}

	return Quantity{Value: num, Unit: unit}, nil
}

// Format renders the quantity using the closest SI prefix and its unit,
// e.g. Quantity{1500, "Hz"}.Format() -> "1.500 kHz".
func (q Quantity) Format() string {
	return FormatValueFactor(q.Value, q.Unit)
}

// FormatValueFactor renders value with the closest SI prefix and the given
// unit suffix, ported from the convention used throughout the component
// model for displaying resistances, capacitances, and frequencies.
func FormatValueFactor(value float64, unit string) string {
	if value == 0 {
		return fmt.Sprintf("0 %s", unit)
	}

	abs := math.Abs(value)
	for i := len(order) - 1; i >= 0; i-- {
		if abs >= order[i].factor {
			return fmt.Sprintf("%.3f %s%s", value/order[i].factor, order[i].suffix, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

// FormatTolerance renders a tolerance percentage the way a component label
// displays it, e.g. " ± 5%".
func FormatTolerance(percent float64) string {
	return fmt.Sprintf(" ± %g%%", percent)
}
