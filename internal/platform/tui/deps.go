package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/audio"
	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/core"
	"github.com/vovakirdan/stepcoins/internal/games/coins"
	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

// Deps is everything one user's screens need. The local CLI builds one;
// the SSH server builds one per session.
type Deps struct {
	User     string
	Store    *storage.Store // Optional: history and yesterday's steps
	KV       kv.Store
	Coins    config.CoinsConfig
	Runtime  core.RuntimeConfig
	Player   *audio.Player
	Recorder *goals.Recorder // Optional: current activity
	Inbox    *sensor.Inbox   // Step events for the game
	Ledger   *coins.Ledger   // Optional: shared by every game of this user
	Logger   *log.Logger
}

func (d Deps) withDefaults() Deps {
	if d.KV == nil {
		d.KV = kv.NewMemory()
	}
	if d.Player == nil {
		d.Player = audio.NewPlayer(true, d.Logger)
	}
	if d.Inbox == nil {
		d.Inbox = sensor.NewInbox()
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.User == "" {
		d.User = storage.DefaultUser
	}
	return d
}
