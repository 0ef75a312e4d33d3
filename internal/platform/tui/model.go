package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stepcoins/internal/core"
	"github.com/vovakirdan/stepcoins/internal/games/coins"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

// GameModel is the Bubble Tea model running one coin game.
type GameModel struct {
	deps       Deps
	game       *coins.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	tilt       Tilt
	gameState  core.GameState
	started    time.Time
	saved      bool // Session recorded for the current game over
	quitting   bool
	backToMenu bool
	exitOnBack bool // Standalone: back leaves the program
}

// NewGameModel creates a game model. The last screen row is kept for the
// key help.
func NewGameModel(deps Deps) GameModel {
	deps = deps.withDefaults()
	cfg := deps.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game := coins.New(deps.Coins, deps.KV, deps.Inbox, deps.Logger)
	if deps.Ledger != nil {
		game.UseLedger(deps.Ledger)
	}

	return GameModel{
		deps:       deps,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
}

// Init starts a session and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// World coordinates do not depend on the terminal, so no reset
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
	case core.ActionLeft, core.ActionRight, core.ActionLevel:
		m.tilt.Apply(action)
	case core.ActionPause, core.ActionRestart:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.tilt = Tilt{}
		m.saved = false
		m.started = time.Now()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.inputFrame.Tilt = m.tilt.Sample()
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, s := range result.Signals {
		m.deps.Player.Signal(s)
	}

	if m.gameState.GameOver && !m.saved {
		m.saveSession()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveSession records the finished session. Best effort: the game goes on
// without history.
func (m GameModel) saveSession() {
	if m.deps.Store == nil {
		return
	}
	rec := storage.SessionRecord{
		User:      m.deps.User,
		Score:     m.gameState.Score,
		Collected: m.game.Collected(),
		Spent:     m.game.Spent(),
		Misses:    m.gameState.Misses,
		Duration:  time.Since(m.started),
	}
	if _, err := m.deps.Store.SaveSession(rec); err != nil {
		m.deps.Logger.Warn("could not save session", "user", m.deps.User, "error", err)
	}
}

// View renders the playfield and the key help.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the running game.
func (m GameModel) Game() *coins.Game {
	return m.game
}

// IsQuitting reports whether the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the dashboard.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the game full screen until the user quits.
func Run(deps Deps) error {
	model := NewGameModel(deps)
	model.exitOnBack = true
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
