package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camilh/snep-tools/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows how many weeks are stored per year",
	Run: func(cmd *cobra.Command, args []string) {
		err := printStatus(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatus(dbPath string) error {
	analysis, err := getStatus(dbPath)
	if err != nil {
		return err
	}
	fmt.Println(analysis)
	return nil
}

func getStatus(dbPath string) (analysis Analysis, err error) {
	db, err := store.New(dbPath)
	if err != nil {
		err = fmt.Errorf("printStatus: %w", err)
		return
	}
	defer db.Close()

	coverage, err := db.Coverage()
	if err != nil {
		err = fmt.Errorf("printStatus: %w", err)
		return
	}

	years := make([]int, 0, len(coverage))
	for year := range coverage {
		years = append(years, year)
	}
	sort.Ints(years)

	totalWeeks := 0
	analysis.results = [][]string{{"Year", "Weeks stored"}}
	for _, year := range years {
		analysis.results = append(analysis.results, []string{
			strconv.Itoa(year),
			strconv.Itoa(coverage[year]),
		})
		totalWeeks += coverage[year]
	}

	analysis.summary = fmt.Sprintf("Found %d weeks across %d years", totalWeeks, len(years))

	return
}
