package cmd

import (
	"github.com/spf13/cobra"
)

var launchesCmd = &cobra.Command{
	Use:   "launches",
	Short: "List recent scan runs",
	Long:  `List the most recent inbox scans and their outcome counts.`,
	RunE:  runLaunches,
}

func init() {
	rootCmd.AddCommand(launchesCmd)
}

func runLaunches(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	launches, err := client.GetLaunches()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintLaunches(launches)
}
