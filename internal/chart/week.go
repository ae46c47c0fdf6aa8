package chart

import (
	"fmt"
	"regexp"
	"strconv"
)

var weekPattern = regexp.MustCompile(`^(\d{4})-W?(\d{1,2})$`)

// ParseWeek parses a week designator like "2023-W10" or "2023-10" into its
// (year, week) pair. The week number is not range-checked beyond being
// numeric; the window predicate composes correctly either way.
func ParseWeek(s string) (year, week int, err error) {
	m := weekPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week %q (want yyyy-Www)", s)
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	return year, week, nil
}
