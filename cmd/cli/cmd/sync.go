package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <saved-event-id>",
	Short: "Push a saved event to the calendar",
	Long:  `Push an accepted event to the configured Google Calendar as a tentative entry.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid saved event ID: %s", args[0])
	}

	result, err := client.SyncEvent(id)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Synced to calendar: %s", result.CalendarEventID))
	if result.HTMLLink != "" {
		formatter.PrintInfo(result.HTMLLink)
	}
	return nil
}
