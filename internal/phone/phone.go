// Package phone turns free-form phone-number text into canonical E.164 numbers.
//
// Malformed, ambiguous and invalid input is expected, not exceptional: every
// parse reports failure through its ok result rather than an error.
package phone

import (
	"strconv"
	"strings"
	"unicode"
)

// Number is a canonical E.164 phone number. The zero value is not a number;
// values are only produced by successful parses.
type Number struct {
	callingCode int
	national    string
}

// CallingCode returns the country calling code, e.g. 1 or 55.
func (n Number) CallingCode() int { return n.callingCode }

// National returns the national significant number.
func (n Number) National() string { return n.national }

// IsZero reports whether n is the zero value.
func (n Number) IsZero() bool { return n.callingCode == 0 }

// String returns the E.164 form, "+" followed by calling code and national number.
func (n Number) String() string {
	if n.IsZero() {
		return ""
	}
	return "+" + strconv.Itoa(n.callingCode) + n.national
}

// MarshalText encodes the number in E.164 form.
func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// DigitSequence is raw text reduced to ASCII digits.
type DigitSequence struct {
	Digits string
	// Plus is set when the text started with an explicit international prefix.
	Plus bool
}

// Empty reports whether no digits survived normalization.
func (d DigitSequence) Empty() bool { return d.Digits == "" }

// Normalize strips presentation characters from raw. A '+' counts as an
// international prefix only as the first character after surrounding
// whitespace is trimmed; any other '+' is dropped with the punctuation.
func Normalize(raw string) DigitSequence {
	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)
	var d DigitSequence
	if strings.HasPrefix(raw, "+") {
		d.Plus = true
		raw = raw[1:]
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	d.Digits = b.String()
	return d
}
