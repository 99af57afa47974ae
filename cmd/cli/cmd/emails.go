package cmd

import (
	"github.com/spf13/cobra"
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "List processed emails",
	Long:  `List the emails that have been fetched and processed from the mailbox.`,
	RunE:  runEmails,
}

func init() {
	rootCmd.AddCommand(emailsCmd)
}

func runEmails(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	emails, err := client.GetEmails()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintEmails(emails)
}
