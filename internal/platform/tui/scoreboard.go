package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecofun-kids/ecofun/internal/registry"
	"github.com/ecofun-kids/ecofun/internal/storage"
)

const (
	maxRounds  = 100 // Rounds loaded per game
	maxLeaders = 50
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("28")).Padding(0, 1)
	boardEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardTab is one page of the scoreboard: a game's best rounds, or the
// points leaders when gameID is empty.
type boardTab struct {
	title  string
	gameID string
}

func (t boardTab) leaders() bool { return t.gameID == "" }

// ScoreboardModel shows the best rounds of each game and the players with
// the most EcoFun points.
type ScoreboardModel struct {
	tabs      []boardTab
	current   int
	store     *storage.Store
	player    string // Ledger account shown in the header
	points    int
	rowCount  int
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. A non-empty player shows that
// player's points total above the table.
func NewScoreboardModel(store *storage.Store, width, height int, player string) ScoreboardModel {
	var tabs []boardTab
	for _, g := range registry.List() {
		tabs = append(tabs, boardTab{title: g.Title, gameID: g.ID})
	}
	tabs = append(tabs, boardTab{title: "EcoFun Points"})

	m := ScoreboardModel{
		tabs:   tabs,
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	if store != nil && player != "" {
		if total, err := store.TotalPoints(player); err == nil {
			m.points = total
		}
	}

	m.load()
	return m
}

// columns returns the table layout for the current tab, giving spare
// width to the player column.
func (m *ScoreboardModel) columns() []table.Column {
	var cols []table.Column
	if m.tabs[m.current].leaders() {
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 16},
			{Title: "Points", Width: 8},
		}
	} else {
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 10},
			{Title: "Score", Width: 7},
			{Title: "Lines", Width: 5},
			{Title: "Result", Width: 6},
			{Title: "Date", Width: 12},
		}
	}

	used := 0
	for _, c := range cols {
		used += c.Width + 2 // Cell padding
	}
	if spare := m.width - 8 - used; spare > 0 {
		cols[1].Width += min(spare, 12)
	}
	return cols
}

// load rebuilds the table for the current tab from the store.
func (m *ScoreboardModel) load() {
	rows := m.rows()
	m.rowCount = len(rows)

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, tabs, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("28")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.store == nil {
		return nil
	}

	tab := m.tabs[m.current]
	if tab.leaders() {
		leaders, err := m.store.PointsLeaders(maxLeaders)
		if err != nil {
			return nil
		}
		rows := make([]table.Row, len(leaders))
		for i, p := range leaders {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), p.Player, strconv.Itoa(p.Points)}
		}
		return rows
	}

	scores, err := m.store.TopScores(tab.gameID, maxRounds)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Lines),
			s.Outcome,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.current = (m.current + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.current = (m.current + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("S C O R E S"), m.width))
	b.WriteString("\n")
	if m.player != "" {
		line := fmt.Sprintf("%s has %d EcoFun points", m.player, m.points)
		b.WriteString(centerText(menuPointsStyle.Render(line), m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrameStyle.Render(m.renderTable()), m.width))
	b.WriteString("\n")
	b.WriteString(menuHelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs draws the tab bar, or just the current tab between arrows
// when the bar does not fit.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.current {
			tabs[i] = boardActiveStyle.Render(t.title)
		} else {
			tabs[i] = boardTabStyle.Render(t.title)
		}
	}

	bar := strings.Join(tabs, " ")
	if lipgloss.Width(bar) > m.width-4 {
		return boardActiveStyle.Render("< " + m.tabs[m.current].title + " >")
	}
	return bar
}

func (m ScoreboardModel) renderTable() string {
	if m.rowCount > 0 {
		return m.table.View()
	}
	if m.tabs[m.current].leaders() {
		return boardEmptyStyle.Render("Nobody has claimed points yet.\nFinish a round and press Enter!")
	}
	return boardEmptyStyle.Render("No rounds recorded yet.\nPlay a game to plant the first score!")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int, player string) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: scoreboard: %w", err)
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
