package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cliapi "event-inbox/internal/cli"
	"event-inbox/internal/database"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review pending events interactively",
	Long: `Open an interactive table of pending suggested events. Accept or
reject events one by one without leaving the terminal.`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("review requires an interactive terminal, use 'list' instead")
	}

	events, err := client.GetSuggestedEvents(database.StatusPending)
	if err != nil {
		formatter.PrintError(err)
		return err
	}
	if len(events) == 0 {
		formatter.PrintInfo("No pending events to review")
		return nil
	}

	model := newReviewModel(events, client)
	_, err = tea.NewProgram(model).Run()
	return err
}

// reviewKeyMap represents the key bindings for the review table
type reviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Accept  key.Binding
	Reject  key.Binding
	Details key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reject"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

type pendingAction struct {
	accept bool
	id     int
	title  string
}

// reviewModel is the bubbletea model for the review table
type reviewModel struct {
	table       table.Model
	events      []database.SuggestedEvent
	client      *cliapi.Client
	keys        reviewKeyMap
	spinner     spinner.Model
	loading     bool
	message     string
	showHelp    bool
	showDetails bool
	quitting    bool
	confirm     *pendingAction
	useColor    bool
}

type actionCompleteMsg struct {
	id     int
	accept bool
	err    error
}

func newReviewModel(events []database.SuggestedEvent, client *cliapi.Client) reviewModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "TITLE", Width: 32},
		{Title: "START", Width: 17},
		{Title: "LOCATION", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(eventRows(events)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	useColor := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	if useColor {
		styles := table.DefaultStyles()
		styles.Header = styles.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(false)
		styles.Selected = styles.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(styles)
	}

	return reviewModel{
		table:    t,
		events:   events,
		client:   client,
		keys:     defaultReviewKeyMap(),
		spinner:  s,
		useColor: useColor,
	}
}

func eventRows(events []database.SuggestedEvent) []table.Row {
	rows := make([]table.Row, len(events))
	for i, event := range events {
		rows[i] = table.Row{
			fmt.Sprintf("%d", event.ID),
			event.Title,
			event.StartTime.Format("Mon Jan 2 15:04"),
			event.Location,
		}
	}
	return rows
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != nil {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				return m.runAction(*m.confirm)
			case key.Matches(msg, m.keys.Cancel):
				m.confirm = nil
				m.message = "Cancelled"
			}
			return m, nil
		}

		if m.showDetails {
			if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Details) {
				m.showDetails = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Details):
			if m.selectedEvent() != nil {
				m.showDetails = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Accept):
			if event := m.selectedEvent(); event != nil {
				m.confirm = &pendingAction{accept: true, id: event.ID, title: event.Title}
			}
			return m, nil

		case key.Matches(msg, m.keys.Reject):
			if event := m.selectedEvent(); event != nil {
				m.confirm = &pendingAction{accept: false, id: event.ID, title: event.Title}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		return m, nil

	case actionCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		verb := "Rejected"
		if msg.accept {
			verb = "Accepted"
		}
		m.message = fmt.Sprintf("%s event %d", verb, msg.id)
		m = m.removeEvent(msg.id)
		if len(m.events) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m reviewModel) runAction(action pendingAction) (tea.Model, tea.Cmd) {
	m.confirm = nil
	m.loading = true
	m.message = ""

	client := m.client
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			var err error
			if action.accept {
				_, err = client.AcceptEvent(action.id)
			} else {
				err = client.RejectEvent(action.id)
			}
			return actionCompleteMsg{id: action.id, accept: action.accept, err: err}
		},
	)
}

func (m reviewModel) selectedEvent() *database.SuggestedEvent {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.events) {
		return nil
	}
	return &m.events[idx]
}

func (m reviewModel) removeEvent(id int) reviewModel {
	remaining := make([]database.SuggestedEvent, 0, len(m.events))
	for _, event := range m.events {
		if event.ID != id {
			remaining = append(remaining, event)
		}
	}
	m.events = remaining
	m.table.SetRows(eventRows(remaining))
	if m.table.Cursor() >= len(remaining) && len(remaining) > 0 {
		m.table.SetCursor(len(remaining) - 1)
	}
	return m
}

func (m reviewModel) View() string {
	if m.quitting {
		if m.message != "" {
			return m.message + "\n"
		}
		return "Done reviewing.\n"
	}

	var b strings.Builder

	if m.showDetails {
		if event := m.selectedEvent(); event != nil {
			b.WriteString(m.detailsView(event))
			b.WriteString("\nPress esc to go back\n")
			return b.String()
		}
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.confirm != nil {
		verb := "Reject"
		if m.confirm.accept {
			verb = "Accept"
		}
		b.WriteString(fmt.Sprintf("%s %q? (y/n)\n", verb, m.confirm.title))
	} else if m.loading {
		b.WriteString(m.spinner.View() + " Working...\n")
	} else if m.message != "" {
		b.WriteString(m.message + "\n")
	}

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		b.WriteString("\na accept • r reject • enter details • ? help • q quit\n")
	}

	return b.String()
}

func (m reviewModel) detailsView(event *database.SuggestedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:        %s\n", event.Title)
	fmt.Fprintf(&b, "Start:        %s\n", event.StartTime.Format("Mon Jan 2 2006 15:04"))
	if event.EndTime != nil {
		fmt.Fprintf(&b, "End:          %s\n", event.EndTime.Format("Mon Jan 2 2006 15:04"))
	}
	if event.Location != "" {
		fmt.Fprintf(&b, "Location:     %s\n", event.Location)
	}
	if event.SenderOrg != "" {
		fmt.Fprintf(&b, "Organizer:    %s\n", event.SenderOrg)
	}
	if event.RegistrationLink != "" {
		fmt.Fprintf(&b, "Registration: %s\n", event.RegistrationLink)
	}
	if event.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", event.Description)
	}
	return b.String()
}

func (m reviewModel) helpView() string {
	return `
Key bindings:
  ↑/k, ↓/j   move
  a          accept selected event
  r          reject selected event
  enter      show event details
  ?          toggle help
  q          quit
`
}
