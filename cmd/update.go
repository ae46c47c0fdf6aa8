/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camilh/snep-tools/internal/genius"
	"github.com/camilh/snep-tools/internal/snep"
	"github.com/camilh/snep-tools/internal/store"
)

type UpdateConfig struct {
	DbPath      string
	GeniusToken string
	CachePath   string
	From        string
	SkipEnrich  bool
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches chart weeks that aren't stored yet",
	Long: `Scrapes every week from the last stored one up to the current week,
stores the rows in a local SQLite database, and then fills in Genius
metadata for songs that don't have it yet.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := UpdateConfig{
			DbPath:      viper.GetString("database"),
			GeniusToken: viper.GetString("genius_token"),
			CachePath:   viper.GetString("genius_cache"),
			From:        viper.GetString("from"),
			SkipEnrich:  viper.GetBool("skip_enrich"),
		}

		err := updateDatabase(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	var fromString string
	updateCmd.Flags().StringVar(&fromString, "from", "2020-W01", "Week to start scraping from when the database is empty, in yyyy-Www format")
	viper.BindPFlag("from", updateCmd.Flags().Lookup("from"))

	var skipEnrich bool
	updateCmd.Flags().BoolVar(&skipEnrich, "skip_enrich", false, "Only scrape chart weeks, don't fetch Genius metadata")
	viper.BindPFlag("skip_enrich", updateCmd.Flags().Lookup("skip_enrich"))
}

func updateDatabase(config UpdateConfig) error {
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	scraper := snep.NewScraper()

	year, week, err := db.LatestWeek()
	if err != nil {
		return fmt.Errorf("getting latest stored week: %w", err)
	}
	if year == 0 {
		parsed, err := parseSingleWeekstring(config.From)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		year, week = parsed.Year, parsed.Week
		if parsed.WholeYear {
			week = 1
		}
		fmt.Printf("Database is empty, starting from %d-W%02d\n", year, week)
	} else {
		fmt.Printf("Latest stored week is %d-W%02d\n", year, week)
		year, week = nextWeek(year, week)
	}

	nowYear, nowWeek := time.Now().ISOWeek()
	fetched := 0
	for !weekAfter(year, week, nowYear, nowWeek) {
		entries, err := scraper.FetchWeek(ctx, year, week)
		if err != nil {
			// One bad week shouldn't abort a multi-week catch-up.
			fmt.Printf("Fetching %d-W%02d failed, skipping: %v\n", year, week, err)
			year, week = nextWeek(year, week)
			continue
		}
		if len(entries) == 0 {
			fmt.Printf("No chart published for %d-W%02d\n", year, week)
			year, week = nextWeek(year, week)
			continue
		}

		if err := db.AddWeek(year, week, entries); err != nil {
			return fmt.Errorf("storing %d-W%02d: %w", year, week, err)
		}
		fmt.Printf("Stored %d entries for %d-W%02d\n", len(entries), year, week)
		fetched++

		year, week = nextWeek(year, week)
	}
	if fetched == 0 {
		fmt.Println("Chart data is already up to date")
	}

	if config.SkipEnrich {
		return nil
	}
	if config.GeniusToken == "" {
		fmt.Println("No genius_token set, skipping enrichment")
		return nil
	}

	return enrichSongs(ctx, db, config)
}

func enrichSongs(ctx context.Context, db *store.Store, config UpdateConfig) error {
	cache, err := genius.OpenCache(config.CachePath)
	if err != nil {
		return fmt.Errorf("opening Genius cache: %w", err)
	}
	client := genius.NewClient(config.GeniusToken, cache)

	songs, err := db.SongsNeedingEnrichment()
	if err != nil {
		return fmt.Errorf("listing songs needing enrichment: %w", err)
	}
	fmt.Printf("Found %d songs needing metadata\n", len(songs))

	for i, song := range songs {
		fmt.Printf("[%d/%d] Fetching metadata for: %s - %s\n", i+1, len(songs), song.Title, song.Artist)

		data, err := client.SongDetails(ctx, song.Title, song.Artist)
		if err != nil {
			fmt.Printf("Error fetching metadata for %s - %s: %v\n", song.Title, song.Artist, err)
			continue
		}

		err = db.ApplyEnrichment(song.Title, song.Artist, store.Enrichment{
			Producer1:   data.Producer1,
			Producer2:   data.Producer2,
			Writer1:     data.Writer1,
			Writer2:     data.Writer2,
			ReleaseDate: data.ReleaseDate,
			SampleType:  data.SampleType,
			SampleFrom:  data.SampleFrom,
			Genre:       data.Genre,
		})
		if err != nil {
			return fmt.Errorf("saving metadata for %s - %s: %w", song.Title, song.Artist, err)
		}
	}

	if err := cache.Save(); err != nil {
		return fmt.Errorf("saving Genius cache: %w", err)
	}

	return nil
}

func nextWeek(year, week int) (int, int) {
	if week >= isoWeeksInYear(year) {
		return year + 1, 1
	}
	return year, week + 1
}

func weekAfter(aYear, aWeek, bYear, bWeek int) bool {
	if aYear != bYear {
		return aYear > bYear
	}
	return aWeek > bWeek
}
