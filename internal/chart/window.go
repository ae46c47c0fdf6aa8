package chart

// Window is the inclusive (StartYear, StartWeek)-(EndYear, EndWeek)
// chronological range plus a rank ceiling. It is the single ordering
// authority for the whole package: every chronological comparison goes
// through Contains. Weeks outside [1,53] are accepted as-is; the comparison
// is purely numeric, so an inverted range simply matches nothing.
type Window struct {
	StartYear int
	StartWeek int
	EndYear   int
	EndWeek   int
	RankLimit int
}

func (w Window) Contains(year, week, rank int) bool {
	if rank > w.RankLimit {
		return false
	}
	afterStart := year > w.StartYear || (year == w.StartYear && week >= w.StartWeek)
	beforeEnd := year < w.EndYear || (year == w.EndYear && week <= w.EndWeek)
	return afterStart && beforeEnd
}

// Filter retains the appearances that fall inside the window.
func Filter(apps []Appearance, w Window) []Appearance {
	var out []Appearance
	for _, a := range apps {
		if w.Contains(a.Year, a.Week, a.Rank) {
			out = append(out, a)
		}
	}
	return out
}
