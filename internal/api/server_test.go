package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/camilh/snep-tools/internal/chart"
	"github.com/camilh/snep-tools/internal/store"
)

type fakeReader struct {
	entries []chart.Entry
	err     error
}

func (f *fakeReader) EntriesBetween(startYear, endYear int) ([]chart.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []chart.Entry
	for _, e := range f.entries {
		if e.Year >= startYear && e.Year <= endYear {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeReader) AllEntries() ([]chart.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func testEntries() []chart.Entry {
	return []chart.Entry{
		{Year: 2023, Week: 10, Rank: 1, Title: "Petrouchka", Artist: "SDM", Artist2: "JUL", Genre: "rap", Publisher: "Universal"},
		{Year: 2023, Week: 11, Rank: 2, Title: "Petrouchka", Artist: "SDM", Artist2: "JUL", Genre: "rap", Publisher: "Universal"},
		{Year: 2023, Week: 11, Rank: 5, Title: "La Kiffance", Artist: "NAPS", Genre: "rap", Publisher: "Believe"},
		{Year: 2023, Week: 12, Rank: 150, Title: "Tout Va Bien", Artist: "ALONZO", Genre: "pop", Publisher: "Universal"},
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestGetStats(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/stats?type=artist&start=2023-W01&end=2023-W52")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Type  string             `json:"type"`
		Stats []chart.EntityStat `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Type != "artist" {
		t.Errorf("got type %q, want artist", body.Type)
	}
	if len(body.Stats) != 4 {
		t.Fatalf("got %d stats, want 4: %+v", len(body.Stats), body.Stats)
	}
	jul := findStat(body.Stats, "JUL")
	if jul == nil {
		t.Fatal("JUL missing from stats")
	}
	if jul.LongestStreak != 2 {
		t.Errorf("got JUL streak %d, want 2", jul.LongestStreak)
	}
}

func findStat(stats []chart.EntityStat, name string) *chart.EntityStat {
	for i := range stats {
		if stats[i].Name == name {
			return &stats[i]
		}
	}
	return nil
}

func TestGetStatsRankFilter(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/stats?start=2023-W01&end=2023-W52&rank=100")

	var body struct {
		Stats []chart.EntityStat `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if findStat(body.Stats, "ALONZO") != nil {
		t.Error("ALONZO at rank 150 should be excluded by rank=100")
	}
}

func TestGetStatsLimit(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/stats?start=2023-W01&end=2023-W52&limit=1")

	var body struct {
		Stats []chart.EntityStat `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Stats) != 1 {
		t.Errorf("got %d stats, want 1", len(body.Stats))
	}
}

func TestGetStatsBadParams(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})

	for _, path := range []string{
		"/api/stats?type=bogus",
		"/api/stats?start=not-a-week",
		"/api/stats?rank=abc",
		"/api/stats?limit=-1",
	} {
		rec := get(t, s, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", path, rec.Code)
		}
	}
}

func TestGetStatsEmptyWindow(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/stats?start=2023-W52&end=2023-W01")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"stats":[]`) {
		t.Errorf("inverted window should return an empty stats list, got %s", rec.Body.String())
	}
}

func TestGetEntityDetails(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/entity/sdm?start=2023-W01&end=2023-W52")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Entity     string             `json:"entity"`
		Songs      []chart.SongDetail `json:"songs"`
		TotalSongs int                `json:"total_songs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalSongs != 1 {
		t.Fatalf("got %d songs, want 1: %+v", body.TotalSongs, body.Songs)
	}
	if body.Songs[0].BestRank != 1 {
		t.Errorf("got best rank %d, want 1", body.Songs[0].BestRank)
	}
	if body.Songs[0].TotalWeeks != 2 {
		t.Errorf("got total weeks %d, want 2", body.Songs[0].TotalWeeks)
	}
}

func TestGetEntityDetailsSortedByBestRank(t *testing.T) {
	entries := []chart.Entry{
		{Year: 2023, Week: 1, Rank: 40, Title: "Deep Cut", Artist: "JUL"},
		{Year: 2023, Week: 2, Rank: 3, Title: "Hit", Artist: "JUL"},
	}
	s := New(&fakeReader{entries: entries})
	rec := get(t, s, "/api/entity/JUL?start=2023-W01&end=2023-W52")

	var body struct {
		Songs []chart.SongDetail `json:"songs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Songs) != 2 || body.Songs[0].Title != "Hit" {
		t.Errorf("songs should be sorted by best rank ascending, got %+v", body.Songs)
	}
}

func TestGetEntityDetailsMissing(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/entity/NOBODY?start=2023-W01&end=2023-W52")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total_songs":0`) {
		t.Errorf("missing entity should return zero songs, got %s", rec.Body.String())
	}
}

func TestGetExport(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/export/SDM?start=2023-W01&end=2023-W52")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Petrouchka") {
		t.Errorf("export should include song titles, got %s", rec.Body.String())
	}
}

func TestGetBreakdown(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/breakdown/genre")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var counts map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatal(err)
	}
	if counts["RAP"] != 2 {
		t.Errorf("got %d rap songs, want 2: %v", counts["RAP"], counts)
	}
	if counts["POP"] != 1 {
		t.Errorf("got %d pop songs, want 1: %v", counts["POP"], counts)
	}
}

func TestGetBreakdownUnknownDimension(t *testing.T) {
	s := New(&fakeReader{entries: testEntries()})
	rec := get(t, s, "/api/breakdown/mood")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestGetPrivacy(t *testing.T) {
	s := New(&fakeReader{entries: nil})
	rec := get(t, s, "/api/privacy")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GDPR") {
		t.Errorf("privacy response should mention GDPR, got %s", rec.Body.String())
	}
}

func TestStoreUnavailable(t *testing.T) {
	s := New(&fakeReader{err: store.ErrUnavailable})

	for _, path := range []string{
		"/api/stats",
		"/api/entity/SDM",
		"/api/breakdown/genre",
	} {
		rec := get(t, s, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: got status %d, want 503", path, rec.Code)
		}
	}
}
