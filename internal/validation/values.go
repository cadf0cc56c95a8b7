package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToString converts a decoded JSON value into the string form the standard
// checks operate on. Absent and null values become the empty string.
func ToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v.String()
		}
		return formatNumber(f)
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// formatNumber renders f the way a JSON number is printed back as text:
// shortest form, plain notation between 1e-6 and 1e21, exponent notation
// without zero padding outside that range.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// ToNumber coerces a decoded JSON value to a number using loose comparison
// rules: null is 0, booleans are 0 or 1, blank strings are 0 and anything
// unparseable is NaN.
func ToNumber(value interface{}, present bool) float64 {
	if !present {
		return math.NaN()
	}
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case float64:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// IsPositiveAt returns a check that coerces the value with ToNumber, rounds it
// to places fractional digits and reports whether the result is above zero.
func IsPositiveAt(places int32) func(value interface{}, present bool) bool {
	return func(value interface{}, present bool) bool {
		f := ToNumber(value, present)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		return decimal.NewFromFloat(f).Round(places).IsPositive()
	}
}

// IsTruthyFlag reports whether a value that passed IsBoolean means true.
func IsTruthyFlag(value interface{}) bool {
	s := ToString(value)
	return s == "true" || s == "1"
}
