package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Journal view layout constants
const (
	journalMaxRows  = 200 // sessions loaded from the store
	journalChrome   = 8   // rows taken by title, counts and help
	journalMinTable = 3
)

// journalFilters are the end reasons the view cycles through. The empty
// filter shows every session.
var journalFilters = []string{"", engine.EndGameOver, engine.EndStopped, engine.EndFatal}

// JournalKeyMap defines the key bindings for the session journal.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Filter key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Filter, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Detail}, {k.Filter, k.Reload, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab", "f"),
			key.WithHelp("tab", "filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing recorded sessions.
type JournalModel struct {
	store    *storage.Store
	sessions []storage.Session
	counts   map[string]int
	filter   int // index into journalFilters
	err      error

	detail    *storage.Session // open detail pane, nil shows the table
	detailErr error

	table  table.Model
	help   help.Model
	keys   JournalKeyMap
	width  int
	height int

	quitting bool
}

// NewJournalModel creates a journal view over store.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized for the current window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 16},
		{Title: "User", Width: 10},
		{Title: "Ended", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Ticks", Width: 8},
		{Title: "Session", Width: 8},
	}
	if m.width > 90 {
		columns[1].Width = 16
		columns[5].Width = min(36, m.width-80)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-journalChrome, journalMinTable)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads sessions and reason counts from the store.
func (m *JournalModel) load() {
	m.err = nil
	m.sessions = nil
	m.counts = nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	sessions, err := m.store.RecentSessions(journalMaxRows)
	if err != nil {
		m.err = err
	} else {
		m.sessions = sessions
	}
	if counts, err := m.store.ReasonCounts(); err == nil {
		m.counts = counts
	}
	m.updateTableRows()
}

// visible returns the sessions that pass the current filter.
func (m *JournalModel) visible() []storage.Session {
	reason := journalFilters[m.filter]
	if reason == "" {
		return m.sessions
	}
	var out []storage.Session
	for _, s := range m.sessions {
		if s.EndReason == reason {
			out = append(out, s)
		}
	}
	return out
}

// updateTableRows refills the table from the filtered sessions.
func (m *JournalModel) updateTableRows() {
	sessions := m.visible()
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = sessionRow(s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func sessionRow(s storage.Session) table.Row {
	ended, duration := "running", "-"
	if !s.Open() {
		ended = s.EndReason
		duration = s.Duration().Round(time.Second).String()
	}
	user := s.User
	if user == "" {
		user = "local"
	}
	return table.Row{
		s.StartedAt.Local().Format("Jan 02 15:04:05"),
		user,
		ended,
		duration,
		fmt.Sprintf("%d", s.Ticks),
		s.ID,
	}
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Detail):
			m.toggleDetail()
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.closeDetail()
			m.filter = (m.filter + 1) % len(journalFilters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.closeDetail()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(padCenter("SESSION JOURNAL", m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.summaryLine())
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString("No session journal is open.\n")
	case m.err != nil:
		b.WriteString(fmt.Sprintf("Could not read sessions: %v\n", m.err))
	case len(m.visible()) == 0:
		b.WriteString("No sessions recorded yet.\n")
	case m.detailErr != nil:
		b.WriteString(fmt.Sprintf("Could not read session: %v\n", m.detailErr))
	case m.detail != nil:
		b.WriteString(renderDetail(*m.detail))
		b.WriteString("\n")
	default:
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// toggleDetail opens the selected session, re-reading it from the store, or
// closes an open detail pane.
func (m *JournalModel) toggleDetail() {
	if m.detail != nil || m.detailErr != nil {
		m.closeDetail()
		return
	}
	row := m.table.SelectedRow()
	if m.store == nil || len(row) == 0 {
		return
	}
	sess, err := m.store.SessionByID(row[len(row)-1])
	switch {
	case err != nil:
		m.detailErr = err
	case sess == nil:
		m.detailErr = fmt.Errorf("session %s no longer exists", row[len(row)-1])
	default:
		m.detail = sess
	}
}

func (m *JournalModel) closeDetail() {
	m.detail = nil
	m.detailErr = nil
}

// renderDetail lays out every recorded field of one session.
func renderDetail(s storage.Session) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)

	ended, reason, duration := "-", "running", "-"
	if !s.Open() {
		ended = s.EndedAt.Local().Format("Jan 02 15:04:05")
		reason = s.EndReason
		duration = s.Duration().Round(time.Second).String()
	}
	user := s.User
	if user == "" {
		user = "local"
	}
	fields := [][2]string{
		{"Session", s.ID},
		{"User", user},
		{"Epoch", fmt.Sprintf("%d", s.Epoch)},
		{"Started", s.StartedAt.Local().Format("Jan 02 15:04:05")},
		{"Ended", ended},
		{"Reason", reason},
		{"Duration", duration},
		{"Ticks", fmt.Sprintf("%d", s.Ticks)},
	}
	if s.Error != "" {
		fields = append(fields, [2]string{"Error", s.Error})
	}

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = label.Render(f[0]) + " " + f[1]
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// summaryLine shows the filter and per-reason totals.
func (m JournalModel) summaryLine() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	parts := make([]string, len(journalFilters))
	for i, reason := range journalFilters {
		label := reason
		if label == "" {
			label = "all"
		}
		if reason != "" {
			label = fmt.Sprintf("%s %d", label, m.counts[reason])
		}
		if i == m.filter {
			parts[i] = active.Render("[" + label + "]")
		} else {
			parts[i] = dim.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

// padCenter centers text in a field of width columns.
func padCenter(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// RunJournal shows the journal until the user quits.
func RunJournal(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewJournalModel(store, width, height), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
