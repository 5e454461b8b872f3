package timetable

import (
	"strconv"
	"strings"
)

// MatchWeek reports whether the given academic week falls inside a week-range
// expression. Three shapes are supported: an inclusive interval ("1-16"), a
// comma list ("3,5,7") and a single week ("8"). An empty expression means the
// course runs every week.
//
// Malformed expressions fail closed: a row whose week range cannot be parsed
// never matches, so it silently disappears from week views instead of
// breaking them. An inverted interval ("10-2") likewise matches nothing.
func MatchWeek(expr string, week int) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}

	if strings.Contains(expr, "-") {
		parts := strings.SplitN(expr, "-", 2)
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return false
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return false
		}
		return start <= week && week <= end
	}

	if strings.Contains(expr, ",") {
		// The whole list must parse before membership is tested, so
		// "3,x" never matches week 3.
		parts := strings.Split(expr, ",")
		weeks := make([]int, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return false
			}
			weeks = append(weeks, n)
		}
		for _, n := range weeks {
			if n == week {
				return true
			}
		}
		return false
	}

	n, err := strconv.Atoi(expr)
	if err != nil {
		return false
	}
	return n == week
}
