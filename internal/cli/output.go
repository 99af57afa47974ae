package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"event-inbox/internal/database"
	"event-inbox/internal/workers"
)

// OutputFormatter handles different output formats
type OutputFormatter struct {
	format string
	quiet  bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(format string, quiet bool) *OutputFormatter {
	return &OutputFormatter{
		format: format,
		quiet:  quiet,
	}
}

// PrintSuggestedEvents prints a list of suggested events
func (f *OutputFormatter) PrintSuggestedEvents(events []database.SuggestedEvent) error {
	if f.quiet {
		for _, event := range events {
			fmt.Printf("%d\n", event.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(events)
	case "table":
		return f.printSuggestedEventsTable(events)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintSavedEvents prints the scheduled events
func (f *OutputFormatter) PrintSavedEvents(events []database.SavedEvent) error {
	if f.quiet {
		for _, event := range events {
			fmt.Printf("%d\n", event.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(events)
	case "table":
		return f.printSavedEventsTable(events)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintEmails prints processed emails
func (f *OutputFormatter) PrintEmails(emails []database.Email) error {
	if f.quiet {
		for _, email := range emails {
			fmt.Printf("%d\n", email.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(emails)
	case "table":
		return f.printEmailsTable(emails)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintLaunches prints recent scan runs
func (f *OutputFormatter) PrintLaunches(launches []database.Launch) error {
	if f.quiet {
		for _, launch := range launches {
			fmt.Printf("%d\n", launch.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(launches)
	case "table":
		return f.printLaunchesTable(launches)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintLaunchSummary prints the outcome of a scan run
func (f *OutputFormatter) PrintLaunchSummary(summary *workers.LaunchSummary) error {
	if f.quiet {
		fmt.Printf("%d\n", summary.EventsInserted)
		return nil
	}

	if f.format == "json" {
		return json.NewEncoder(os.Stdout).Encode(summary)
	}

	fmt.Printf("Scan finished: %d emails fetched, %d stored, %d events suggested, %d failures\n",
		summary.EmailsFetched, summary.EmailsInserted, summary.EventsInserted, summary.Failures)
	return nil
}

// PrintSuccess prints a success message
func (f *OutputFormatter) PrintSuccess(message string) {
	if !f.quiet {
		fmt.Printf("✓ %s\n", message)
	}
}

// PrintError prints an error message
func (f *OutputFormatter) PrintError(err error) {
	if !f.quiet {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
	}
}

// PrintInfo prints an informational message
func (f *OutputFormatter) PrintInfo(message string) {
	if !f.quiet {
		fmt.Printf("ℹ %s\n", message)
	}
}

func (f *OutputFormatter) printSuggestedEventsTable(events []database.SuggestedEvent) error {
	if len(events) == 0 {
		fmt.Println("No suggested events found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tLOCATION\tSTATUS")
	for _, event := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			event.ID,
			truncate(event.Title, 30),
			event.StartTime.Format("Mon Jan 2 15:04"),
			formatEnd(event.EndTime),
			truncate(event.Location, 20),
			event.Status)
	}
	return nil
}

func (f *OutputFormatter) printSavedEventsTable(events []database.SavedEvent) error {
	if len(events) == 0 {
		fmt.Println("No saved events found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tLOCATION\tCALENDAR")
	for _, event := range events {
		calendar := "-"
		if event.CalendarEventID != "" {
			calendar = "synced"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			event.ID,
			truncate(event.Title, 30),
			event.StartTime.Format("Mon Jan 2 15:04"),
			formatEnd(event.EndTime),
			truncate(event.Location, 20),
			calendar)
	}
	return nil
}

func (f *OutputFormatter) printEmailsTable(emails []database.Email) error {
	if len(emails) == 0 {
		fmt.Println("No emails found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSUBJECT\tFROM\tRECEIVED")
	for _, email := range emails {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			email.ID,
			truncate(email.Subject, 40),
			truncate(email.Sender, 30),
			email.ReceivedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (f *OutputFormatter) printLaunchesTable(launches []database.Launch) error {
	if len(launches) == 0 {
		fmt.Println("No scans recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSTARTED\tFETCHED\tSTORED\tEVENTS\tFAILURES")
	for _, launch := range launches {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
			launch.ID,
			launch.StartedAt.Format("2006-01-02 15:04"),
			launch.EmailsFetched,
			launch.EmailsInserted,
			launch.EventsInserted,
			launch.Failures)
	}
	return nil
}

func formatEnd(end *time.Time) string {
	if end == nil {
		return "-"
	}
	return end.Format("Mon Jan 2 15:04")
}

// truncate shortens a string for table display
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
