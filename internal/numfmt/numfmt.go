// Package numfmt is the single point of truth for numeric parsing and
// formatting: every spreadsheet cell read and every user text input goes
// through it. Input may use comma decimal separators, grouping spaces, or
// non-breaking spaces; persisted values always use a dot and two fractional
// digits so they re-read unambiguously regardless of locale.
package numfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// normalize strips spaces, NBSPs and converts a comma separator to a dot.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, ",", ".")
}

// Parse converts free-form numeric text into a float64. Empty or
// unparseable input yields def rather than an error.
func Parse(s string, def float64) float64 {
	n := normalize(s)
	if n == "" {
		return def
	}
	v, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseStrict is the variant used on raw user keystrokes: the same
// normalization, but a parse failure propagates so the conversation can
// re-prompt instead of silently substituting a default.
func ParseStrict(s string) (float64, error) {
	n := normalize(s)
	if n == "" {
		return 0, fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// Cell renders a value in the fixed persist format: dot decimal separator,
// two fractional digits (e.g. 735.4 -> "735.40").
func Cell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Hours renders engine hours for display the way the sheet shows them:
// two decimals with trailing zeros (and a bare dot) trimmed.
func Hours(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
