package chart

import "fmt"

// Entry is one row of a weekly Top Singles chart. (Year, Week, Rank) is
// unique within the store. Column names follow the SNEP export: up to four
// artist slots, two producer slots, one publisher.
type Entry struct {
	Year      int
	Week      int
	Rank      int
	Title     string
	Artist    string
	Artist2   string
	Artist3   string
	Artist4   string
	Publisher string

	// Enrichment columns, filled in by the Genius updater. Empty until then.
	Producer1   string
	Producer2   string
	Writer1     string
	Writer2     string
	ReleaseDate string
	SampleType  string
	SampleFrom  string
	Genre       string
}

// Appearance is one (entity, song, week) tuple flattened out of an Entry's
// role slots. Name is normalized; Artist is the primary artist of record,
// which together with Title identifies the song.
type Appearance struct {
	Name   string
	Title  string
	Artist string
	Rank   int
	Year   int
	Week   int
}

func (a Appearance) songKey() string {
	return a.Title + "|" + a.Artist
}

// Role selects which slots of an Entry are read during extraction.
type Role int

const (
	RoleArtist Role = iota
	RoleProducer
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "artist":
		return RoleArtist, nil
	case "producer":
		return RoleProducer, nil
	}
	return 0, fmt.Errorf("unknown role %q (want artist or producer)", s)
}

func (r Role) String() string {
	if r == RoleProducer {
		return "producer"
	}
	return "artist"
}

// EntityStat is the aggregate result for one entity over a window.
type EntityStat struct {
	Name          string `json:"name"`
	DistinctSongs int    `json:"distinct_songs"`
	LongestStreak int    `json:"longest_streak"`
	TopStreakSong string `json:"top_streak_song"`
}

// SongDetail is the per-song drill-down for a single entity.
type SongDetail struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	BestRank   int    `json:"best_rank"`
	FirstYear  int    `json:"first_year"`
	MaxStreak  int    `json:"max_streak"`
	TotalWeeks int    `json:"total_weeks"`
}
