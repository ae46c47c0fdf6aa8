// Package migration holds the SQL schema for the chart store.
package migration

// Create builds the initial schema. The original per-year tables
// (top_singles_2020, top_singles_2021, ...) are folded into a single table
// partitioned by (year, week); (year, week, rank) stays unique so a re-run
// of a weekly scrape upserts instead of duplicating.
const Create = `
CREATE TABLE IF NOT EXISTS ChartEntry (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  year INTEGER NOT NULL,
  week INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  title TEXT NOT NULL,
  artist TEXT NOT NULL,
  artist_2 TEXT NOT NULL DEFAULT '',
  artist_3 TEXT NOT NULL DEFAULT '',
  artist_4 TEXT NOT NULL DEFAULT '',
  publisher TEXT NOT NULL DEFAULT '',
  producer_1 TEXT NOT NULL DEFAULT '',
  producer_2 TEXT NOT NULL DEFAULT '',
  writer_1 TEXT NOT NULL DEFAULT '',
  writer_2 TEXT NOT NULL DEFAULT '',
  release_date TEXT NOT NULL DEFAULT '',
  sample_type TEXT NOT NULL DEFAULT '',
  sample_from TEXT NOT NULL DEFAULT '',
  genre TEXT NOT NULL DEFAULT '',
  enriched INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(year, week, rank)
);

CREATE INDEX IF NOT EXISTS idx_chartentry_year_week ON ChartEntry(year, week);
`
