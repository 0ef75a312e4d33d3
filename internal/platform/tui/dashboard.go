package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
)

// DashboardChoice is what the user picked on the dashboard.
type DashboardChoice int

const (
	ChoiceNone DashboardChoice = iota
	ChoicePlay
	ChoiceHistory
	ChoiceQuit
)

// DashboardKeyMap holds the dashboard key bindings.
type DashboardKeyMap struct {
	Play    key.Binding
	Goal    key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Goal, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultDashboardKeyMap returns the default dashboard bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "play"),
		),
		Goal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "set goal"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel shows today's steps, the goal and whether the game is
// unlocked.
type DashboardModel struct {
	deps     Deps
	tracker  *goals.Tracker
	keys     DashboardKeyMap
	help     help.Model
	bar      progress.Model
	input    textinput.Model
	editing  bool
	notice   string
	noticeOK bool

	today     int
	yesterday int
	activity  sensor.ActivityKind

	width  int
	height int
	choice DashboardChoice
	gen    int64 // Refresh loop owned by this dashboard
}

// NewDashboardModel creates a dashboard for deps.
func NewDashboardModel(deps Deps) DashboardModel {
	deps = deps.withDefaults()

	ti := textinput.New()
	ti.Placeholder = "Enter step goal"
	ti.CharLimit = 7
	ti.Width = 12
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}

	m := DashboardModel{
		deps:    deps,
		tracker: goals.NewTracker(deps.KV),
		keys:    DefaultDashboardKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		input:   ti,
		width:   deps.Runtime.ScreenW,
		height:  deps.Runtime.ScreenH,
		gen:     refreshGen.Add(1),
	}
	m.refresh()
	return m
}

// refresh re-reads step totals and activity.
func (m *DashboardModel) refresh() {
	m.today = m.deps.KV.Get(kv.KeyStepsToday)
	m.yesterday = 0
	if m.deps.Store != nil {
		y, err := m.deps.Store.DailySteps(m.deps.User, time.Now().AddDate(0, 0, -1))
		if err != nil {
			m.deps.Logger.Warn("could not read yesterday's steps", "error", err)
		}
		m.yesterday = y
	}
	if m.deps.Recorder != nil {
		m.activity = m.deps.Recorder.Activity()
	}
}

// Init starts the refresh loop.
func (m DashboardModel) Init() tea.Cmd {
	return refreshCmd(m.gen)
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.refresh()
		return m, refreshCmd(m.gen)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-10, 10), 60)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateGoalInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = ChoiceQuit
		return m, tea.Quit

	case key.Matches(msg, m.keys.Play):
		if !goals.CanPlay(m.today, m.yesterday) {
			m.setNotice(false, fmt.Sprintf("Goal not met: walk %s more steps to unlock the game",
				goals.FormatSteps(m.yesterday-m.today)))
			return m, nil
		}
		m.choice = ChoicePlay
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.choice = ChoiceHistory
		return m, nil

	case key.Matches(msg, m.keys.Goal):
		m.editing = true
		m.notice = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m DashboardModel) updateGoalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		goal, err := goals.ParseGoal(m.input.Value())
		if err == nil {
			err = m.tracker.SetDailyGoal(goal, m.today)
		}
		switch {
		case errors.Is(err, goals.ErrGoalTooLow):
			m.setNotice(false, "Invalid goal: your daily goal must be greater than today's steps!")
		case err != nil:
			m.setNotice(false, "Invalid goal: enter a whole number of steps")
		default:
			m.setNotice(true, "Daily goal set to "+goals.FormatSteps(goal))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *DashboardModel) setNotice(ok bool, text string) {
	m.notice = text
	m.noticeOK = ok
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s steps today\n", goals.FormatSteps(m.today))
	fmt.Fprintf(&body, "%s steps yesterday\n", goals.FormatSteps(m.yesterday))
	fmt.Fprintf(&body, "Current activity: %s\n\n", m.activity.Label())
	body.WriteString(m.bar.ViewAs(m.tracker.Progress(m.today)))
	body.WriteString("\n")
	body.WriteString(dimStyle.Render(m.tracker.RemainingText(m.today)))
	body.WriteString("\n\n")

	if goals.CanPlay(m.today, m.yesterday) {
		body.WriteString(okStyle.Render("Goal met! You can play the game."))
	} else {
		body.WriteString(warnStyle.Render("Goal not met. The game is locked."))
	}

	if m.editing {
		body.WriteString("\n\nSet daily goal: ")
		body.WriteString(m.input.View())
	} else if m.notice != "" {
		body.WriteString("\n\n")
		if m.noticeOK {
			body.WriteString(okStyle.Render(m.notice))
		} else {
			body.WriteString(warnStyle.Render(m.notice))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("STEP COINS", m.width)))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(body.String()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Choice returns the user's pick, ChoiceNone while still on the dashboard.
func (m DashboardModel) Choice() DashboardChoice {
	return m.choice
}

// StepsToday returns the last refreshed step count.
func (m DashboardModel) StepsToday() int {
	return m.today
}
