package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeNow is swapped out by tests that pin the current year.
var timeNow = time.Now

// SetClock replaces the time source used to resolve relative years and
// returns a restore func. Intended for tests.
func SetClock(fn func() time.Time) func() {
	old := timeNow
	timeNow = fn
	return func() { timeNow = old }
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var (
	dayMonthRe = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*(?:,?\s*(\d{4}))?`)
	monthDayRe = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
)

// Date canonicalizes a raw date mention to "Month D, YYYY". An explicit
// four-digit year in the text wins; otherwise relative-year phrases
// ("last year", "next year", "this year") adjust the resolved year, and absent
// either the current year is assumed. Patterns are tried in order: day
// month-name, month-name day, then numeric m/d[/y] with two-digit years placed
// in the 2000s. Unrecognized input is returned unchanged.
func Date(raw string) string {
	if out, ok := FindDate(raw); ok {
		return out
	}
	return raw
}

// FindDate reports the canonical form of the first date mention in raw, if
// any. It accepts arbitrary surrounding prose.
func FindDate(raw string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(raw))
	year := timeNow().Year()
	switch {
	case strings.Contains(t, "last year"):
		year--
		t = strings.ReplaceAll(t, "last year", "")
	case strings.Contains(t, "next year"):
		year++
		t = strings.ReplaceAll(t, "next year", "")
	case strings.Contains(t, "this year"):
		t = strings.ReplaceAll(t, "this year", "")
	}

	if m := dayMonthRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return fmt.Sprintf("%s %d, %d", monthNames[monthIndex[m[2]]-1], day, year), true
	}
	if m := monthDayRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return fmt.Sprintf("%s %d, %d", monthNames[monthIndex[m[1]]-1], day, year), true
	}
	if m := numericRe.FindStringSubmatch(t); m != nil {
		mon, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		y := year
		if m[3] != "" {
			y, _ = strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
		}
		name := monthNames[0]
		if mon >= 1 && mon <= 12 {
			name = monthNames[mon-1]
		}
		return fmt.Sprintf("%s %d, %d", name, day, y), true
	}
	return "", false
}
