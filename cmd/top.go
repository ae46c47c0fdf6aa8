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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camilh/snep-tools/internal/chart"
	"github.com/camilh/snep-tools/internal/store"
)

var topNumber int
var topRole string
var topRank int
var topCmd = &cobra.Command{
	Use:   "top [from] [to (optional)]",
	Short: "Ranks artists or producers by distinct charted songs",
	Long: `Uses the specified week or week range. Week strings look like 'yyyy' or
'yyyy-Www'. With no arguments, covers 2020-W01 through the current week.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTop(viper.GetString("database"), topNumber, topRole, topRank, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVarP(&topNumber, "number", "n", 10, "number of results to return")
	topCmd.Flags().StringVarP(&topRole, "type", "t", "artist", "entity type: artist or producer")
	topCmd.Flags().IntVarP(&topRank, "rank", "r", 200, "only count appearances at this rank or better")
}

func printTop(dbPath string, numToReturn int, roleName string, rankLimit int, args []string) error {
	analysis, err := getTop(dbPath, numToReturn, roleName, rankLimit, args)
	if err != nil {
		return err
	}
	fmt.Println(analysis)
	return nil
}

func getTop(dbPath string, numToReturn int, roleName string, rankLimit int, args []string) (analysis Analysis, err error) {
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
		err = fmt.Errorf("printTop: %w", err)
		return
	}
	defer db.Close()

	entries, err := db.EntriesBetween(startYear, endYear)
	if err != nil {
		err = fmt.Errorf("printTop: %w", err)
		return
	}

	stats := chart.TopEntities(entries, role, window)

	analysis.results = [][]string{{"Name", "Distinct songs", "Longest streak", "Top streak song"}}
	for i, stat := range stats {
		if numToReturn > 0 && i >= numToReturn {
			break
		}
		analysis.results = append(analysis.results, []string{
			stat.Name,
			strconv.Itoa(stat.DistinctSongs),
			strconv.Itoa(stat.LongestStreak),
			stat.TopStreakSong,
		})
	}

	analysis.summary = fmt.Sprintf("Found %d %ss from %d-W%02d to %d-W%02d",
		len(stats), role, startYear, startWeek, endYear, endWeek)

	return
}
