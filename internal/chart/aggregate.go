package chart

import "sort"

// entityGroup accumulates one entity's songs in first-seen order.
type entityGroup struct {
	songOrder  []string
	songTitles map[string]string
	songWeeks  map[string][]weekMark
}

// TopEntities extracts, filters, and aggregates entries into one EntityStat
// per entity, ordered by distinct songs descending. Ties keep the order in
// which entities were first encountered, and within an entity the song
// achieving the longest streak is the first-seen one among equals.
func TopEntities(entries []Entry, role Role, w Window) []EntityStat {
	apps := Filter(Extract(entries, role), w)

	var order []string
	groups := make(map[string]*entityGroup)
	for _, a := range apps {
		g, ok := groups[a.Name]
		if !ok {
			g = &entityGroup{
				songTitles: make(map[string]string),
				songWeeks:  make(map[string][]weekMark),
			}
			groups[a.Name] = g
			order = append(order, a.Name)
		}

		key := a.songKey()
		if _, seen := g.songTitles[key]; !seen {
			g.songOrder = append(g.songOrder, key)
			g.songTitles[key] = a.Title
		}
		g.songWeeks[key] = append(g.songWeeks[key], weekMark{a.Year, a.Week})
	}

	stats := make([]EntityStat, 0, len(order))
	for _, name := range order {
		g := groups[name]
		stat := EntityStat{
			Name:          name,
			DistinctSongs: len(g.songOrder),
		}
		for _, key := range g.songOrder {
			if s := longestStreak(g.songWeeks[key]); s > stat.LongestStreak {
				stat.LongestStreak = s
				stat.TopStreakSong = g.songTitles[key]
			}
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].DistinctSongs > stats[j].DistinctSongs
	})
	return stats
}
