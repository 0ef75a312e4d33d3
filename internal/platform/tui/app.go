package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenDashboard screen = iota
	screenGame
	screenHistory
)

// AppModel is the full user flow: dashboard, then the game or the session
// history, then back to the dashboard.
type AppModel struct {
	deps      Deps
	current   screen
	dashboard DashboardModel
	game      *GameModel
	history   *HistoryModel
	quitting  bool
}

// NewAppModel creates the top-level model for one user.
func NewAppModel(deps Deps) AppModel {
	deps = deps.withDefaults()
	return AppModel{
		deps:      deps,
		dashboard: NewDashboardModel(deps),
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.deps.Runtime.ScreenW = wsm.Width
		m.deps.Runtime.ScreenH = wsm.Height
		// Keep the dashboard sized while it is hidden
		if m.current != screenDashboard {
			d, _ := m.dashboard.Update(msg)
			m.dashboard = d.(DashboardModel)
		}
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateDashboard(msg)
	}
}

func (m AppModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The game inbox only matters while a game runs; the recorder has
	// already persisted these readings.
	if _, ok := msg.(refreshMsg); ok {
		m.deps.Inbox.Drain()
	}

	d, cmd := m.dashboard.Update(msg)
	m.dashboard = d.(DashboardModel)

	switch m.dashboard.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.deps.Inbox.Drain()
		game := NewGameModel(m.deps)
		m.game = &game
		m.current = screenGame
		return m, m.game.Init()

	case ChoiceHistory:
		h := NewHistoryModel(m.deps.Store, m.deps.User, m.deps.Runtime.ScreenW, m.deps.Runtime.ScreenH)
		m.history = &h
		m.current = screenHistory
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, cmd := m.game.Update(msg)
	game := g.(GameModel)
	m.game = &game

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toDashboard()
	}
	return m, cmd
}

func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	h, cmd := m.history.Update(msg)
	history := h.(HistoryModel)
	m.history = &history

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.toDashboard()
	}
	return m, cmd
}

func (m AppModel) toDashboard() (tea.Model, tea.Cmd) {
	m.game = nil
	m.history = nil
	m.current = screenDashboard
	m.dashboard = NewDashboardModel(m.deps)
	return m, m.dashboard.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.dashboard.View()
	}
}

// RunApp runs the dashboard flow full screen.
func RunApp(deps Deps) error {
	_, err := tea.NewProgram(NewAppModel(deps), tea.WithAltScreen()).Run()
	return err
}
