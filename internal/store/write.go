package store

import (
	"fmt"

	"github.com/camilh/snep-tools/internal/chart"
)

// Enrichment holds the Genius metadata applied to every stored row of one
// song. Empty fields are written as-is; the row is marked enriched either
// way so the updater doesn't retry songs Genius doesn't know.
type Enrichment struct {
	Producer1   string
	Producer2   string
	Writer1     string
	Writer2     string
	ReleaseDate string
	SampleType  string
	SampleFrom  string
	Genre       string
}

// AddWeek upserts one scraped week transactionally. Re-running a scrape for
// a week that's already stored replaces its rows; (year, week, rank) stays
// unique. When the conflicting row still holds the same song, its Genius
// metadata is kept; when a different song now occupies the slot, the
// metadata is dropped and the row goes back to the enrichment queue.
func (s *Store) AddWeek(year, week int, entries []chart.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO ChartEntry (
			year, week, rank, title, artist, artist_2, artist_3, artist_4,
			publisher, producer_1, producer_2, writer_1, writer_2,
			release_date, sample_type, sample_from, genre, enriched
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, week, rank) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			artist_2 = excluded.artist_2,
			artist_3 = excluded.artist_3,
			artist_4 = excluded.artist_4,
			publisher = excluded.publisher,
			producer_1 = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.producer_1 ELSE excluded.producer_1 END,
			producer_2 = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.producer_2 ELSE excluded.producer_2 END,
			writer_1 = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.writer_1 ELSE excluded.writer_1 END,
			writer_2 = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.writer_2 ELSE excluded.writer_2 END,
			release_date = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.release_date ELSE excluded.release_date END,
			sample_type = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.sample_type ELSE excluded.sample_type END,
			sample_from = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.sample_from ELSE excluded.sample_from END,
			genre = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.genre ELSE excluded.genre END,
			enriched = CASE WHEN ChartEntry.title = excluded.title COLLATE NOCASE
				AND ChartEntry.artist = excluded.artist COLLATE NOCASE
				THEN ChartEntry.enriched ELSE excluded.enriched END
	`
	for _, e := range entries {
		enriched := 0
		if e.Producer1 != "" {
			enriched = 1
		}
		_, err := tx.Exec(query,
			year, week, e.Rank, e.Title, e.Artist, e.Artist2, e.Artist3, e.Artist4,
			e.Publisher, e.Producer1, e.Producer2, e.Writer1, e.Writer2,
			e.ReleaseDate, e.SampleType, e.SampleFrom, e.Genre, enriched)
		if err != nil {
			return fmt.Errorf("inserting entry %d/%d rank %d: %w", year, week, e.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing week %d/%d: %w", year, week, err)
	}
	return nil
}

// ApplyEnrichment stores Genius metadata on every unenriched row of a song,
// matched case-insensitively on (title, artist) the way the original weekly
// rows repeat a song across weeks.
func (s *Store) ApplyEnrichment(title, artist string, e Enrichment) error {
	const query = `
		UPDATE ChartEntry
		SET producer_1 = ?, producer_2 = ?, writer_1 = ?, writer_2 = ?,
			release_date = ?, sample_type = ?, sample_from = ?, genre = ?,
			enriched = 1
		WHERE title = ? COLLATE NOCASE AND artist = ? COLLATE NOCASE AND enriched = 0
	`
	_, err := s.db.Exec(query,
		e.Producer1, e.Producer2, e.Writer1, e.Writer2,
		e.ReleaseDate, e.SampleType, e.SampleFrom, e.Genre,
		title, artist)
	if err != nil {
		return fmt.Errorf("enriching %q - %q: %w", title, artist, err)
	}
	return nil
}
