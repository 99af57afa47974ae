package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <id> [id...]",
	Short: "Accept suggested events",
	Long: `Accept one or more suggested events. Each accepted event is added to
the saved schedule. With multiple IDs the batch is all-or-nothing: if any
event cannot be accepted, none are.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAccept,
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid event ID: %s", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runAccept(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		saved, err := client.AcceptEvent(ids[0])
		if err != nil {
			formatter.PrintError(err)
			return err
		}
		formatter.PrintSuccess(fmt.Sprintf("Accepted event %d: %s", ids[0], saved.Title))
		return nil
	}

	saved, err := client.BulkAccept(ids)
	if err != nil {
		formatter.PrintError(err)
		return err
	}
	formatter.PrintSuccess(fmt.Sprintf("Accepted %d events", len(saved)))
	return nil
}
