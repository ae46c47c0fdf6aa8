package chart

import "testing"

func wholeRange(rankLimit int) Window {
	return Window{StartYear: 2020, StartWeek: 1, EndYear: 2025, EndWeek: 53, RankLimit: rankLimit}
}

func TestTopEntitiesDistinctSongs(t *testing.T) {
	// JUL produces three songs via slot 1 and one via slot 2; slots merge
	// and duplicate weekly rows don't double-count.
	entries := []Entry{
		{Year: 2023, Week: 1, Rank: 1, Title: "A", Artist: "X", Producer1: "Jul"},
		{Year: 2023, Week: 2, Rank: 1, Title: "A", Artist: "X", Producer1: "Jul"},
		{Year: 2023, Week: 1, Rank: 2, Title: "B", Artist: "X", Producer1: "Jul"},
		{Year: 2023, Week: 1, Rank: 3, Title: "C", Artist: "Y", Producer1: "JUL"},
		{Year: 2023, Week: 1, Rank: 4, Title: "D", Artist: "Z", Producer2: "jul"},
		{Year: 2023, Week: 1, Rank: 5, Title: "E", Artist: "Z", Producer1: "Kore"},
	}

	stats := TopEntities(entries, RoleProducer, wholeRange(200))
	if len(stats) != 2 {
		t.Fatalf("expected 2 producers, got %d: %v", len(stats), stats)
	}
	if stats[0].Name != "JUL" || stats[0].DistinctSongs != 4 {
		t.Errorf("expected JUL with 4 distinct songs, got %+v", stats[0])
	}
	if stats[1].Name != "KORE" || stats[1].DistinctSongs != 1 {
		t.Errorf("expected KORE with 1 distinct song, got %+v", stats[1])
	}
}

func TestTopEntitiesStreakAndTopSong(t *testing.T) {
	entries := []Entry{
		// "A" charts weeks 10-12 and 14: streak 3.
		{Year: 2023, Week: 10, Rank: 1, Title: "A", Artist: "Jul"},
		{Year: 2023, Week: 11, Rank: 2, Title: "A", Artist: "Jul"},
		{Year: 2023, Week: 12, Rank: 4, Title: "A", Artist: "Jul"},
		{Year: 2023, Week: 14, Rank: 9, Title: "A", Artist: "Jul"},
		// "B" charts weeks 20-21: streak 2.
		{Year: 2023, Week: 20, Rank: 1, Title: "B", Artist: "Jul"},
		{Year: 2023, Week: 21, Rank: 1, Title: "B", Artist: "Jul"},
	}

	stats := TopEntities(entries, RoleArtist, wholeRange(200))
	if len(stats) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(stats))
	}
	if stats[0].LongestStreak != 3 {
		t.Errorf("expected streak 3, got %d", stats[0].LongestStreak)
	}
	if stats[0].TopStreakSong != "A" {
		t.Errorf("expected top streak song A, got %q", stats[0].TopStreakSong)
	}
}

func TestTopEntitiesStreakTieKeepsFirstSeen(t *testing.T) {
	entries := []Entry{
		{Year: 2023, Week: 10, Rank: 1, Title: "First", Artist: "Jul"},
		{Year: 2023, Week: 11, Rank: 1, Title: "First", Artist: "Jul"},
		{Year: 2023, Week: 20, Rank: 1, Title: "Second", Artist: "Jul"},
		{Year: 2023, Week: 21, Rank: 1, Title: "Second", Artist: "Jul"},
	}
	stats := TopEntities(entries, RoleArtist, wholeRange(200))
	if stats[0].TopStreakSong != "First" {
		t.Errorf("tie should keep first-seen song, got %q", stats[0].TopStreakSong)
	}
}

func TestTopEntitiesRankLimit(t *testing.T) {
	entries := []Entry{
		{Year: 2023, Week: 10, Rank: 30, Title: "A", Artist: "Jul"},
		{Year: 2023, Week: 10, Rank: 75, Title: "B", Artist: "Jul"},
	}
	stats := TopEntities(entries, RoleArtist, wholeRange(50))
	if len(stats) != 1 || stats[0].DistinctSongs != 1 {
		t.Fatalf("rank 75 should be excluded at limit 50: %v", stats)
	}
}

func TestTopEntitiesOrderedByDistinctSongs(t *testing.T) {
	entries := []Entry{
		{Year: 2023, Week: 1, Rank: 1, Title: "A", Artist: "One"},
		{Year: 2023, Week: 1, Rank: 2, Title: "B", Artist: "Two"},
		{Year: 2023, Week: 1, Rank: 3, Title: "C", Artist: "Two"},
	}
	stats := TopEntities(entries, RoleArtist, wholeRange(200))
	if stats[0].Name != "TWO" || stats[1].Name != "ONE" {
		t.Errorf("expected TWO before ONE, got %v", stats)
	}
}

func TestTopEntitiesEmptyWindow(t *testing.T) {
	entries := []Entry{
		{Year: 2023, Week: 10, Rank: 1, Title: "A", Artist: "Jul"},
	}
	w := Window{StartYear: 2024, StartWeek: 1, EndYear: 2024, EndWeek: 52, RankLimit: 200}
	if stats := TopEntities(entries, RoleArtist, w); len(stats) != 0 {
		t.Errorf("expected no stats outside the window, got %v", stats)
	}
}
