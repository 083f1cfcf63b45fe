package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newConflictsReviewCmd(app *App, opts *globalOptions) *cobra.Command {
	var weddingID string
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Work through a wedding's active conflicts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			m := newReviewModel(cmd.Context(), backend, weddingID)
			_, err = app.RunProgram(m, cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&weddingID, "wedding", "w", "", "wedding id (required)")
	_ = cmd.MarkFlagRequired("wedding")
	return cmd
}

type reviewMode int

const (
	modeList reviewMode = iota
	modeOptions
	modeDismiss
)

type reviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Resolve key.Binding
	Dismiss key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultReviewKeys() reviewKeyMap {
	return reviewKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Resolve: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "resolve")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type conflictsLoadedMsg struct {
	conflicts []*domain.Conflict
	err       error
}

type actionDoneMsg struct {
	message string
	err     error
}

// reviewModel lists a wedding's active conflicts. Enter opens the
// selected conflict's resolution options; d asks for a dismissal reason.
type reviewModel struct {
	ctx       context.Context
	backend   conflictBackend
	weddingID string
	keys      reviewKeyMap
	help      help.Model

	table     table.Model
	conflicts []*domain.Conflict
	loading   bool

	mode         reviewMode
	optionCursor int
	reason       textinput.Model

	status string
	err    error
}

func newReviewModel(ctx context.Context, backend conflictBackend, weddingID string) *reviewModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Severity", Width: 10},
			{Title: "Type", Width: 8},
			{Title: "Conflict", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorDim)
	t.SetStyles(styles)

	reason := textinput.New()
	reason.Placeholder = "Why doesn't this need action?"
	reason.CharLimit = 280

	return &reviewModel{
		ctx:       ctx,
		backend:   backend,
		weddingID: weddingID,
		keys:      defaultReviewKeys(),
		help:      help.New(),
		table:     t,
		loading:   true,
		reason:    reason,
	}
}

func (m *reviewModel) Init() tea.Cmd {
	return m.load()
}

func (m *reviewModel) load() tea.Cmd {
	return func() tea.Msg {
		conflicts, err := m.backend.List(m.ctx, m.weddingID, domain.ConflictActive)
		return conflictsLoadedMsg{conflicts: conflicts, err: err}
	}
}

func (m *reviewModel) selected() *domain.Conflict {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.conflicts) {
		return nil
	}
	return m.conflicts[i]
}

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 3))
		m.help.Width = msg.Width
		return m, nil

	case conflictsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.conflicts = msg.conflicts
		rows := make([]table.Row, 0, len(msg.conflicts))
		for _, c := range msg.conflicts {
			rows = append(rows, table.Row{string(c.Severity), string(c.Type), c.Title})
		}
		m.table.SetRows(rows)
		if m.table.Cursor() >= len(rows) {
			m.table.SetCursor(max(len(rows)-1, 0))
		}
		return m, nil

	case actionDoneMsg:
		m.mode = modeList
		m.err = msg.err
		m.status = msg.message
		if msg.err != nil {
			return m, nil
		}
		return m, m.load()

	case tea.KeyMsg:
		switch m.mode {
		case modeOptions:
			return m.updateOptions(msg)
		case modeDismiss:
			return m.updateDismiss(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *reviewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, m.keys.Resolve):
		if m.selected() != nil {
			m.mode = modeOptions
			m.optionCursor = 0
			m.status = ""
		}
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if m.selected() == nil {
			return m, nil
		}
		m.mode = modeDismiss
		m.status = ""
		m.reason.Reset()
		return m, m.reason.Focus()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *reviewModel) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		m.mode = modeList
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.optionCursor = max(m.optionCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.optionCursor = max(min(m.optionCursor+1, len(c.ResolutionOptions)-1), 0)
	case key.Matches(msg, m.keys.Resolve):
		if len(c.ResolutionOptions) == 0 {
			return m, nil
		}
		opt := c.ResolutionOptions[m.optionCursor]
		return m, m.resolve(c.ID, opt)
	}
	return m, nil
}

func (m *reviewModel) updateDismiss(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.reason.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		reason := strings.TrimSpace(m.reason.Value())
		if reason == "" {
			m.status = "A reason is required to dismiss a conflict."
			return m, nil
		}
		m.reason.Blur()
		return m, m.dismiss(m.selected().ID, reason)
	}
	var cmd tea.Cmd
	m.reason, cmd = m.reason.Update(msg)
	return m, cmd
}

func (m *reviewModel) resolve(conflictID string, opt domain.ResolutionOption) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.backend.Resolve(m.ctx, conflictID, opt.ID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{message: fmt.Sprintf("Resolved: %s", opt.Title)}
	}
}

func (m *reviewModel) dismiss(conflictID, reason string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.backend.Dismiss(m.ctx, conflictID, reason); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{message: "Dismissed conflict " + conflictID}
	}
}

func (m *reviewModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Conflicts for "+m.weddingID) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case len(m.conflicts) == 0:
		b.WriteString(formatter.StyleGreen.Render("No active conflicts.") + "\n")
	default:
		b.WriteString(m.table.View() + "\n")
	}

	if c := m.selected(); c != nil {
		switch m.mode {
		case modeOptions:
			b.WriteString("\n" + formatter.Bold(c.Title) + "\n")
			for i, o := range c.ResolutionOptions {
				cursor := "  "
				line := fmt.Sprintf("%s (%s effort)", o.Title, o.EstimatedEffort)
				if i == m.optionCursor {
					cursor = formatter.StyleYellow.Render("> ")
					line = formatter.StyleGreen.Render(line)
				}
				b.WriteString(cursor + line + "\n")
			}
		case modeDismiss:
			b.WriteString("\n" + formatter.Bold("Dismiss: "+c.Title) + "\n")
			b.WriteString(m.reason.View() + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + formatter.Dim(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.shortHelp()))
	return b.String()
}

func (m *reviewModel) shortHelp() []key.Binding {
	switch m.mode {
	case modeOptions:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Resolve, m.keys.Back}
	case modeDismiss:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dismiss")),
			m.keys.Back,
		}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Resolve, m.keys.Dismiss, m.keys.Refresh, m.keys.Quit}
}
