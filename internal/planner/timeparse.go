// Package planner holds the pure itinerary rules: grouping parties into
// days, ordered insertion and removal, name-based deduplication and the
// running cost total, plus the lenient time/price parsers those rules sort
// and sum with. Nothing here touches the network or the database.
package planner

import (
	"regexp"
	"strconv"
	"strings"
)

const endOfDayMinutes = 1440

var timePattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// ParseStartMinutes converts a human start-time string to minutes since
// midnight in [0, 1440] for ordering. "Close" sorts last as end of day.
// Empty or unparsable input yields 0 so unknown times sort first; this is a
// lenient fallback, not an error.
func ParseStartMinutes(s string) int {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0
	}
	if strings.Contains(lower, "close") {
		return endOfDayMinutes
	}

	m := timePattern.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil || hours > 23 {
		return 0
	}
	minutes := 0
	if m[2] != "" {
		minutes, err = strconv.Atoi(m[2])
		if err != nil || minutes > 59 {
			return 0
		}
	}

	switch m[3] {
	case "am":
		if hours == 12 {
			hours = 0
		}
	case "pm":
		if hours != 12 {
			hours += 12
		}
	}
	if hours > 23 {
		return 0
	}

	return hours*60 + minutes
}
