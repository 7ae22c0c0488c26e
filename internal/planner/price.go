package planner

import (
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`\d+`)

// ParsePrice extracts a non-negative whole-dollar amount from a loosely
// formatted price string ("$75", "Free", "TBD", "25-40 EUR"). Sentinels and
// strings without digits cost nothing; absence of a number is never an error.
func ParsePrice(s string) int {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	switch strings.ToLower(trimmed) {
	case "free", "door only", "tbd":
		return 0
	}

	m := pricePattern.FindString(trimmed)
	if m == "" {
		return 0
	}
	price, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return price
}
