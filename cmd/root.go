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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var databasePath string
var geniusToken string
var geniusCachePath string
var sendgridApiKey string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snep-tools",
	Short: "Performs analysis on French weekly singles chart data",
	Long: `Scrapes the weekly top-200 singles chart, enriches entries with
song metadata, and answers questions like "which producer placed the most
distinct songs in the chart over a period".`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.snep-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./snep.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&geniusToken, "genius_token", "", "Genius API access token")
	viper.BindPFlag("genius_token", rootCmd.PersistentFlags().Lookup("genius_token"))

	rootCmd.PersistentFlags().StringVar(
		&geniusCachePath, "genius_cache", "./genius-cache.json", "Path to the Genius response cache")
	viper.BindPFlag("genius_cache", rootCmd.PersistentFlags().Lookup("genius_cache"))

	rootCmd.PersistentFlags().StringVar(
		&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key, used by digest")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".snep-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".snep-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
