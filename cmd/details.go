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
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camilh/snep-tools/internal/chart"
	"github.com/camilh/snep-tools/internal/store"
)

var detailsRole string
var detailsRank int
var detailsCmd = &cobra.Command{
	Use:   "details <name> [from] [to (optional)]",
	Short: "Shows per-song chart history for an artist or producer",
	Long: `Name matching is exact after whitespace and case normalization.
Week strings look like 'yyyy' or 'yyyy-Www'.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		err := printDetails(viper.GetString("database"), args[0], detailsRole, detailsRank, args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(detailsCmd)

	detailsCmd.Flags().StringVarP(&detailsRole, "type", "t", "artist", "entity type: artist or producer")
	detailsCmd.Flags().IntVarP(&detailsRank, "rank", "r", 200, "only count appearances at this rank or better")
}

func printDetails(dbPath string, name string, roleName string, rankLimit int, args []string) error {
	analysis, err := getDetails(dbPath, name, roleName, rankLimit, args)
	if err != nil {
		return err
	}
	fmt.Println(analysis)
	return nil
}

func getDetails(dbPath string, name string, roleName string, rankLimit int, args []string) (analysis Analysis, err error) {
	role, err := chart.ParseRole(roleName)
	if err != nil {
		return
	}

	startYear, startWeek, endYear, endWeek, err := parseWeekRangeFromArgs(args)
	if err != nil {
		return
	}
	window := chart.Window{
		StartYear: startYear,
		StartWeek: startWeek,
		EndYear:   endYear,
		EndWeek:   endWeek,
		RankLimit: rankLimit,
	}

	db, err := store.New(dbPath)
	if err != nil {
		err = fmt.Errorf("printDetails: %w", err)
		return
	}
	defer db.Close()

	entries, err := db.EntriesBetween(startYear, endYear)
	if err != nil {
		err = fmt.Errorf("printDetails: %w", err)
		return
	}

	songs := chart.EntityDetails(entries, name, role, window)
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].BestRank < songs[j].BestRank
	})

	analysis.results = [][]string{{"Title", "Artist", "Best rank", "First year", "Max streak", "Total weeks"}}
	for _, song := range songs {
		analysis.results = append(analysis.results, []string{
			song.Title,
			song.Artist,
			strconv.Itoa(song.BestRank),
			strconv.Itoa(song.FirstYear),
			strconv.Itoa(song.MaxStreak),
			strconv.Itoa(song.TotalWeeks),
		})
	}

	analysis.summary = fmt.Sprintf("Found %d songs for %s %q from %d-W%02d to %d-W%02d",
		len(songs), role, chart.Normalize(name), startYear, startWeek, endYear, endWeek)

	return
}
