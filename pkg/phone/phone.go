// Package phone normalizes the 10-digit national numbers patients type in
// and formats them for display.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Length is the number of digits in a national mobile number.
const Length = 10

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize keeps the digits of s and caps them at Length.
func Normalize(s string) string {
	d := Digits(s)
	if len(d) > Length {
		d = d[:Length]
	}
	return d
}

// Valid reports whether s normalizes to exactly Length digits without
// truncation.
func Valid(s string) bool {
	return len(Digits(s)) == Length
}

// Equal compares two numbers by their digits only.
func Equal(a, b string) bool {
	return Digits(a) == Digits(b)
}

// Display formats a national number in international form for region
// (e.g. "+91 98765 43210"). Numbers the library cannot parse are returned
// unchanged.
func Display(s, region string) string {
	if region == "" {
		return s
	}
	num, err := phonenumbers.Parse(s, region)
	if err != nil {
		return s
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
