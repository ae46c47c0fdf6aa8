package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camilh/snep-tools/internal/api"
	"github.com/camilh/snep-tools/internal/store"
)

var serveAddress string
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis API over HTTP",
	Long: `Exposes /api/stats, /api/entity/:name, /api/breakdown/:dimension,
/api/privacy, and /api/export/:name as JSON endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := serveApi(viper.GetString("database"), serveAddress)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", ":8080", "address to listen on")
}

func serveApi(dbPath string, address string) error {
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	server := api.New(db)
	fmt.Printf("Listening on %s\n", address)
	return server.Start(address)
}
