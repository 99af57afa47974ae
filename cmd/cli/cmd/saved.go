package cmd

import (
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved events",
	Long:  `List accepted events in the saved schedule.`,
	RunE:  runSaved,
}

func init() {
	rootCmd.AddCommand(savedCmd)
}

func runSaved(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	events, err := client.GetSavedEvents()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintSavedEvents(events)
}
