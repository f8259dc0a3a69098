package constraints

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber reads the longest numeric prefix of raw after leading
// whitespace, matching how browsers coerce form values ("12abc" is 12,
// "abc" is not a number). Infinity is accepted with an optional sign.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimLeftFunc(raw, isLeadingSpace)
	if s == "" {
		return math.NaN(), false
	}

	sign := ""
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		sign, rest = rest[:1], rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	match := numberPrefix.FindString(s)
	if match == "" {
		return math.NaN(), false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Only overflow reaches here; ParseFloat returns ±Inf in that case.
		return value, !math.IsNaN(value)
	}
	return value, true
}

// isLeadingSpace follows the JavaScript whitespace and line terminator set:
// Unicode spaces plus the byte order mark, but not NEL.
func isLeadingSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\ufeff'
}
