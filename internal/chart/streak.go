package chart

import "sort"

type weekMark struct {
	year int
	week int
}

// longestStreak returns the longest run of calendar-consecutive weeks in
// marks. Input order does not matter; the list is sorted here. Exact
// duplicates (same year and week) neither break nor extend a run.
//
// Two weeks are consecutive when the week number increments within a year,
// or across the year boundary when the earlier week is >= 52. The >= 52
// check covers both 52- and 53-week years without looking up the calendar;
// a streak running through week 53 of a 53-week year is under-counted, which
// is accepted.
func longestStreak(marks []weekMark) int {
	if len(marks) == 0 {
		return 0
	}

	sorted := make([]weekMark, len(marks))
	copy(sorted, marks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].year != sorted[j].year {
			return sorted[i].year < sorted[j].year
		}
		return sorted[i].week < sorted[j].week
	})

	max := 1
	current := 1
	last := sorted[0]
	for _, m := range sorted[1:] {
		switch {
		case m == last:
			continue

		case consecutiveWeeks(last, m):
			current++

		default:
			if current > max {
				max = current
			}
			current = 1
		}
		last = m
	}
	if current > max {
		max = current
	}
	return max
}

func consecutiveWeeks(prev, next weekMark) bool {
	if next.year == prev.year && next.week == prev.week+1 {
		return true
	}
	return next.year == prev.year+1 && next.week == 1 && prev.week >= 52
}
