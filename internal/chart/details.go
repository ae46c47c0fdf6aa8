package chart

// EntityDetails returns one SongDetail per song attributed to the named
// entity within the window. The name is matched by exact case-insensitive
// equality against the populated role slots, not fuzzily. A name with zero
// matches yields an empty list. Results are in first-seen order; callers
// sort as needed.
func EntityDetails(entries []Entry, name string, role Role, w Window) []SongDetail {
	target := Normalize(name)
	apps := Filter(Extract(entries, role), w)

	var order []string
	details := make(map[string]*SongDetail)
	weeks := make(map[string][]weekMark)
	seenWeek := make(map[string]map[weekMark]bool)

	for _, a := range apps {
		if a.Name != target {
			continue
		}
		key := a.songKey()
		d, ok := details[key]
		if !ok {
			d = &SongDetail{
				Title:     a.Title,
				Artist:    a.Artist,
				BestRank:  a.Rank,
				FirstYear: a.Year,
			}
			details[key] = d
			seenWeek[key] = make(map[weekMark]bool)
			order = append(order, key)
		}
		if a.Rank < d.BestRank {
			d.BestRank = a.Rank
		}
		if a.Year < d.FirstYear {
			d.FirstYear = a.Year
		}

		// Duplicate rows for the same (year, week) count once.
		m := weekMark{a.Year, a.Week}
		if !seenWeek[key][m] {
			seenWeek[key][m] = true
			d.TotalWeeks++
			weeks[key] = append(weeks[key], m)
		}
	}

	out := make([]SongDetail, 0, len(order))
	for _, key := range order {
		d := details[key]
		d.MaxStreak = longestStreak(weeks[key])
		out = append(out, *d)
	}
	return out
}
