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

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type DigestConfig struct {
	DbPath         string
	From           string
	To             string
	NumToReturn    int
	RankLimit      int
	DryRun         bool
	SendgridApiKey string
	Args           []string
}

var digestNumber int
var digestRank int
var digestCmd = &cobra.Command{
	Use:   "digest <address> [from] [to (optional)]",
	Short: "Emails a chart summary",
	Long: `Emails the top artists and producers for the given week range.
Week strings look like 'yyyy' or 'yyyy-Www'. With no week arguments,
covers 2020-W01 through the current week.`,
	Args: cobra.RangeArgs(1, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := DigestConfig{
			DbPath:         viper.GetString("database"),
			From:           viper.GetString("from"),
			To:             args[0],
			NumToReturn:    digestNumber,
			RankLimit:      digestRank,
			DryRun:         viper.GetBool("dryRun"),
			SendgridApiKey: viper.GetString("sendgrid_api_key"),
			Args:           args[1:],
		}
		err := sendDigest(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	var dryRun bool
	digestCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", digestCmd.Flags().Lookup("dry_run"))

	var from string
	digestCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", digestCmd.Flags().Lookup("from"))

	digestCmd.Flags().IntVar(&digestNumber, "number", 10, "number of results per table")
	digestCmd.Flags().IntVar(&digestRank, "rank", 200, "only count appearances at this rank or better")
}

func sendDigest(config DigestConfig) error {
	subject, body, err := generateDigestContent(config)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	if config.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("snep-tools", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(config.SendgridApiKey)
	_, err = client.Send(message)
	if err != nil {
		return fmt.Errorf("sendDigest: %w", err)
	}

	return nil
}

func generateDigestContent(config DigestConfig) (subject string, body string, err error) {
	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	for _, roleName := range []string{"artist", "producer"} {
		analysis, err := getTop(config.DbPath, config.NumToReturn, roleName, config.RankLimit, config.Args)
		if err != nil {
			return "", "", fmt.Errorf("getting top %ss: %w", roleName, err)
		}

		out += fmt.Sprintf("<div>\n<h2>Top %ss</h2>\n", roleName)
		out += analysis.Html()
		out += "</div>\n"
	}
	out += `
  </body>
</html>
`

	subject = "Chart digest"
	startYear, startWeek, endYear, endWeek, err := parseWeekRangeFromArgs(config.Args)
	if err == nil {
		subject = fmt.Sprintf("Chart digest %d-W%02d to %d-W%02d", startYear, startWeek, endYear, endWeek)
	}

	return subject, out, nil
}
