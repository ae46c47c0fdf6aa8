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

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <dimension>",
	Short: "Counts distinct songs per genre or editor",
	Long:  `<dimension> is one of: genre, editor.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printBreakdown(viper.GetString("database"), args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func printBreakdown(dbPath string, dimension string) error {
	analysis, err := getBreakdown(dbPath, dimension)
	if err != nil {
		return err
	}
	fmt.Println(analysis)
	return nil
}

func getBreakdown(dbPath string, dimension string) (analysis Analysis, err error) {
	db, err := store.New(dbPath)
	if err != nil {
		err = fmt.Errorf("printBreakdown: %w", err)
		return
	}
	defer db.Close()

	entries, err := db.AllEntries()
	if err != nil {
		err = fmt.Errorf("printBreakdown: %w", err)
		return
	}

	counts, err := chart.Breakdown(entries, dimension)
	if err != nil {
		return
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	total := 0
	analysis.results = [][]string{{"Category", "Distinct songs"}}
	for _, category := range categories {
		analysis.results = append(analysis.results, []string{category, strconv.Itoa(counts[category])})
		total += counts[category]
	}

	analysis.summary = fmt.Sprintf("Found %d categories and %d songs by %s", len(categories), total, dimension)

	return
}
