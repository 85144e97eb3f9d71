// Package formatting converts between human-readable strings and values:
// byte sizes, and JSON embedded in model responses.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n using base-1024 units with the given number of
// decimals. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	size, i := float64(n), 0
	for math.Abs(size) >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return strconv.FormatInt(n, 10) + " B"
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses a size such as "1MB", "512 kb", "1.5GiB", or "2048"
// into bytes. Units are base-1024 and case-insensitive; the trailing "B"
// and an "i" infix are optional, and a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	exp, ok := unitExponent(unit)
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}
	return int64(value * math.Pow(1024, float64(exp))), nil
}

func unitExponent(unit string) (int, bool) {
	u := strings.ToUpper(unit)
	u = strings.TrimSuffix(u, "B")
	u = strings.TrimSuffix(u, "I")
	if u == "" {
		return 0, true
	}
	for i, name := range units[1:] {
		if u == name[:1] {
			return i + 1, true
		}
	}
	return 0, false
}
