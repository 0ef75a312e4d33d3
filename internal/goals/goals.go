// Package goals tracks the daily step goal and decides whether today's
// walking has earned a game.
package goals

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/stepcoins/internal/kv"
)

var (
	// ErrInvalidGoal is returned for goal text that is not a positive integer.
	ErrInvalidGoal = errors.New("goals: goal must be a positive whole number")
	// ErrGoalTooLow is returned when the goal is already reached.
	ErrGoalTooLow = errors.New("goals: daily goal must be greater than today's steps")
)

// NoGoalText is shown in place of the remaining count when no goal is set.
const NoGoalText = "No goal set"

var printer = message.NewPrinter(language.English)

// FormatSteps renders a step count with thousands separators.
func FormatSteps(n int) string {
	return printer.Sprintf("%d", n)
}

// ParseGoal parses user-entered goal text.
func ParseGoal(text string) (int, error) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGoal, text)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGoal, n)
	}
	return n, nil
}

// Tracker reads and writes the daily goal.
type Tracker struct {
	store kv.Store
}

// NewTracker creates a tracker over store.
func NewTracker(store kv.Store) *Tracker {
	return &Tracker{store: store}
}

// Goal returns the daily goal, 0 when unset.
func (t *Tracker) Goal() int {
	return t.store.Get(kv.KeyDailyGoal)
}

// StepsToday returns the last persisted step count for today.
func (t *Tracker) StepsToday() int {
	return t.store.Get(kv.KeyStepsToday)
}

// SetDailyGoal stores goal if it is above today's steps.
func (t *Tracker) SetDailyGoal(goal, today int) error {
	if goal <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGoal, goal)
	}
	if goal <= today {
		return fmt.Errorf("%w: goal %d, today %d", ErrGoalTooLow, goal, today)
	}
	t.store.Set(kv.KeyDailyGoal, goal)
	return nil
}

// Remaining returns the steps left to the goal. ok is false when no goal
// is set.
func (t *Tracker) Remaining(today int) (remaining int, ok bool) {
	goal := t.Goal()
	if goal <= 0 {
		return 0, false
	}
	return max(goal-today, 0), true
}

// RemainingText is the dashboard line for the remaining steps.
func (t *Tracker) RemainingText(today int) string {
	remaining, ok := t.Remaining(today)
	if !ok {
		return NoGoalText
	}
	return fmt.Sprintf("You need %s more steps to reach %s", FormatSteps(remaining), FormatSteps(t.Goal()))
}

// Progress returns today / goal in [0, 1], or 0 with no goal.
func (t *Tracker) Progress(today int) float64 {
	goal := t.Goal()
	if goal <= 0 {
		return 0
	}
	p := float64(today) / float64(goal)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// CanPlay reports whether the game is unlocked: today's steps must match
// or beat yesterday's.
func CanPlay(today, yesterday int) bool {
	return today >= yesterday
}
