package chart

import "fmt"

// Breakdown counts distinct songs per category value for a simple grouped
// dimension. No window or streak logic applies; rows with an empty category
// are skipped. Supported dimensions: "genre" and "editor" (publisher).
func Breakdown(entries []Entry, dimension string) (map[string]int, error) {
	var category func(*Entry) string
	switch dimension {
	case "genre":
		category = func(e *Entry) string { return e.Genre }
	case "editor":
		category = func(e *Entry) string { return e.Publisher }
	default:
		return nil, fmt.Errorf("unknown dimension %q (want genre or editor)", dimension)
	}

	seen := make(map[string]map[string]bool)
	counts := make(map[string]int)
	for i := range entries {
		e := &entries[i]
		cat := Normalize(category(e))
		if cat == "" {
			continue
		}
		key := e.Title + "|" + e.Artist
		if seen[cat] == nil {
			seen[cat] = make(map[string]bool)
		}
		if !seen[cat][key] {
			seen[cat][key] = true
			counts[cat]++
		}
	}
	return counts, nil
}
