package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rejectCmd = &cobra.Command{
	Use:   "reject <id> [id...]",
	Short: "Reject suggested events",
	Long: `Reject one or more suggested events. With multiple IDs the batch is
all-or-nothing: if any event cannot be rejected, none are.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReject,
}

func init() {
	rootCmd.AddCommand(rejectCmd)
}

func runReject(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		if err := client.RejectEvent(ids[0]); err != nil {
			formatter.PrintError(err)
			return err
		}
		formatter.PrintSuccess(fmt.Sprintf("Rejected event %d", ids[0]))
		return nil
	}

	if err := client.BulkReject(ids); err != nil {
		formatter.PrintError(err)
		return err
	}
	formatter.PrintSuccess(fmt.Sprintf("Rejected %d events", len(ids)))
	return nil
}
