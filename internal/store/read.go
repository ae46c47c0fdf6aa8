package store

import (
	"database/sql"
	"fmt"

	"github.com/camilh/snep-tools/internal/chart"
)

const entryColumns = `
	year, week, rank, title, artist, artist_2, artist_3, artist_4,
	publisher, producer_1, producer_2, writer_1, writer_2,
	release_date, sample_type, sample_from, genre
`

func scanEntries(rows *sql.Rows) ([]chart.Entry, error) {
	defer rows.Close()

	var entries []chart.Entry
	for rows.Next() {
		var e chart.Entry
		err := rows.Scan(
			&e.Year, &e.Week, &e.Rank, &e.Title, &e.Artist, &e.Artist2, &e.Artist3, &e.Artist4,
			&e.Publisher, &e.Producer1, &e.Producer2, &e.Writer1, &e.Writer2,
			&e.ReleaseDate, &e.SampleType, &e.SampleFrom, &e.Genre)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AllEntries bulk-reads the whole store, ordered by (year, week, rank).
func (s *Store) AllEntries() ([]chart.Entry, error) {
	rows, err := s.db.Query("SELECT " + entryColumns + " FROM ChartEntry ORDER BY year, week, rank")
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	return scanEntries(rows)
}

// EntriesBetween reads the year partitions covering [startYear, endYear].
// Week-precision filtering stays in the analytics core; only the coarse
// year bounds are pushed down.
func (s *Store) EntriesBetween(startYear, endYear int) ([]chart.Entry, error) {
	rows, err := s.db.Query(
		"SELECT "+entryColumns+" FROM ChartEntry WHERE year BETWEEN ? AND ? ORDER BY year, week, rank",
		startYear, endYear)
	if err != nil {
		return nil, fmt.Errorf("querying entries %d-%d: %w", startYear, endYear, err)
	}
	return scanEntries(rows)
}

// LastScrapedWeek returns the highest stored week for a year, 0 when the
// year has no rows yet.
func (s *Store) LastScrapedWeek(year int) (int, error) {
	var week sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(week) FROM ChartEntry WHERE year = ?", year).Scan(&week)
	if err != nil {
		return 0, fmt.Errorf("getting last scraped week for %d: %w", year, err)
	}
	return int(week.Int64), nil
}

// LatestWeek returns the chronologically last (year, week) in the store.
func (s *Store) LatestWeek() (year, week int, err error) {
	row := s.db.QueryRow("SELECT year, week FROM ChartEntry ORDER BY year DESC, week DESC LIMIT 1")
	err = row.Scan(&year, &week)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("getting latest week: %w", err)
	}
	return year, week, nil
}

type SongKey struct {
	Title  string
	Artist string
}

// SongsNeedingEnrichment lists the distinct songs that have at least one
// row without Genius metadata.
func (s *Store) SongsNeedingEnrichment() ([]SongKey, error) {
	rows, err := s.db.Query("SELECT DISTINCT title, artist FROM ChartEntry WHERE enriched = 0 ORDER BY title, artist")
	if err != nil {
		return nil, fmt.Errorf("querying songs needing enrichment: %w", err)
	}
	defer rows.Close()

	var songs []SongKey
	for rows.Next() {
		var k SongKey
		if err := rows.Scan(&k.Title, &k.Artist); err != nil {
			return nil, err
		}
		songs = append(songs, k)
	}
	return songs, rows.Err()
}

// Coverage reports how many distinct weeks are stored per year, for
// progress output.
func (s *Store) Coverage() (map[int]int, error) {
	rows, err := s.db.Query("SELECT year, COUNT(DISTINCT week) FROM ChartEntry GROUP BY year ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("querying coverage: %w", err)
	}
	defer rows.Close()

	coverage := make(map[int]int)
	for rows.Next() {
		var year, count int
		if err := rows.Scan(&year, &count); err != nil {
			return nil, err
		}
		coverage[year] = count
	}
	return coverage, rows.Err()
}
