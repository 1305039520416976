package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Flex is a numeric value that may arrive as a JSON number, a numeric string,
// or a "numerator/denominator" fraction string. The fraction form is an
// artifact of the upstream aggregation engine's hashing-based approximate
// distinct counts; it is an external contract quirk, not a choice made here.
//
// An unparseable or null value is marked unavailable rather than failing the
// decode: the dashboard renders it as "N/A" and carries on.
type Flex struct {
	value     float64
	ok        bool
	malformed bool
}

// FlexFrom builds an available Flex from a plain float.
func FlexFrom(v float64) Flex {
	return Flex{value: v, ok: true}
}

// Float returns the numeric value and whether it is available.
func (f Flex) Float() (float64, bool) {
	return f.value, f.ok
}

// Available reports whether the value parsed to a usable number.
func (f Flex) Available() bool {
	return f.ok
}

// Malformed reports whether the value was present but unparseable, as opposed
// to legitimately missing (null or absent). Both render as "N/A"; malformed
// shapes are additionally logged at the decode boundary.
func (f Flex) Malformed() bool {
	return f.malformed
}

// Or returns the value, or def when unavailable.
func (f Flex) Or(def float64) float64 {
	if !f.ok {
		return def
	}
	return f.value
}

// UnmarshalJSON accepts a number, a numeric string, or a fraction string.
// A zero denominator or garbage input yields an unavailable value, never an
// error: value-parse failures are recovered locally per the error policy.
func (f *Flex) UnmarshalJSON(b []byte) error {
	*f = Flex{}

	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}

	// Native number
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			*f = Flex{value: n, ok: true}
		}
		return nil
	}

	// String forms
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		f.malformed = true
		return nil
	}
	*f = ParseFlex(str)
	return nil
}

// MarshalJSON emits the resolved number, or null when unavailable.
func (f Flex) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// ParseFlex resolves a string-encoded value: "42.5", or "1597/100" → 15.97.
func ParseFlex(s string) Flex {
	s = strings.TrimSpace(s)
	if s == "" {
		return Flex{}
	}

	if num, den, found := strings.Cut(s, "/"); found {
		nv, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		dv, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil {
			return Flex{malformed: true}
		}
		if dv == 0 {
			return Flex{}
		}
		return Flex{value: nv / dv, ok: true}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Flex{malformed: true}
	}
	return Flex{value: v, ok: true}
}

// Format renders the value with the given decimal places, or "N/A" when
// unavailable.
func (f Flex) Format(decimals int) string {
	if !f.ok {
		return "N/A"
	}
	return strconv.FormatFloat(f.value, 'f', decimals, 64)
}

// String implements fmt.Stringer for logging.
func (f Flex) String() string {
	if !f.ok {
		return "N/A"
	}
	return fmt.Sprintf("%g", f.value)
}
