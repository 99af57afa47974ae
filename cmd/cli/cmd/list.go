package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List suggested events",
	Long:    `List suggested events awaiting review, optionally filtered by status.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, approved, rejected)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	switch listStatus {
	case "", "pending", "approved", "rejected":
	default:
		return fmt.Errorf("invalid status: %s", listStatus)
	}

	events, err := client.GetSuggestedEvents(listStatus)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintSuggestedEvents(events)
}
