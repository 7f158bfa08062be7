// Package normalize canonicalizes raw text mentions of typed values into the
// display formats the documents use. Both normalizers are pure, never fail,
// and leave already-canonical input unchanged.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`\d[\d,.]*`)

// Money canonicalizes a money mention ("4000 $", "$4,000", "4,000", "1250.5")
// to "$" plus comma-grouped digits, with exactly two fraction digits when the
// value is not integral. Input without a numeric run is returned unchanged.
func Money(raw string) string {
	m := numberRe.FindString(raw)
	if m == "" {
		return raw
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return "$" + m
	}
	if val == math.Trunc(val) {
		return "$" + groupThousands(strconv.FormatFloat(val, 'f', 0, 64))
	}
	s := strconv.FormatFloat(val, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	return "$" + groupThousands(s[:dot]) + s[dot:]
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
