package cmd

import (
	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Scan the mailbox for new events",
	Long: `Trigger one inbox scan on the server. New emails are fetched, run
through event extraction, and stored as pending suggested events.`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	formatter.PrintInfo("Scanning mailbox, this can take a while...")

	summary, err := client.Launch()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintLaunchSummary(summary)
}
