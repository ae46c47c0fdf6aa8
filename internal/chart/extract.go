package chart

import "strings"

// Normalize trims and upper-cases an entity name so that casing differences
// never split one entity into two groups.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// roleSlot pairs a role with one of the fixed columns that may hold an
// entity name. A single enumeration keeps the artist and producer paths from
// diverging.
type roleSlot struct {
	role Role
	get  func(*Entry) string
}

var roleSlots = []roleSlot{
	{RoleArtist, func(e *Entry) string { return e.Artist }},
	{RoleArtist, func(e *Entry) string { return e.Artist2 }},
	{RoleArtist, func(e *Entry) string { return e.Artist3 }},
	{RoleArtist, func(e *Entry) string { return e.Artist4 }},
	{RoleProducer, func(e *Entry) string { return e.Producer1 }},
	{RoleProducer, func(e *Entry) string { return e.Producer2 }},
}

// Extract flattens entries into one Appearance per occupied slot of the
// requested role. Slots that normalize to the empty string are dropped.
// Entries are never mutated, and a malformed row (empty title) still passes
// through; grouping degrades rather than erroring.
func Extract(entries []Entry, role Role) []Appearance {
	var out []Appearance
	for i := range entries {
		e := &entries[i]
		for _, slot := range roleSlots {
			if slot.role != role {
				continue
			}
			name := Normalize(slot.get(e))
			if name == "" {
				continue
			}
			out = append(out, Appearance{
				Name:   name,
				Title:  e.Title,
				Artist: e.Artist,
				Rank:   e.Rank,
				Year:   e.Year,
				Week:   e.Week,
			})
		}
	}
	return out
}
