package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/stepcoins/internal/audio"
	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/core"
	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/platform/tui"
	"github.com/vovakirdan/stepcoins/internal/sensor"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

type envOptions struct {
	tui    bool // Terminal is taken over: log to a file
	sensor bool // Start the simulated pedometer
	audio  bool
}

// env is the local user's wiring for one command.
type env struct {
	deps    tui.Deps
	store   *storage.Store
	logger  *log.Logger
	logFile *os.File
	cancel  context.CancelFunc
}

func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "stepcoins",
		Level:           level,
	})
}

// openLogFile opens ~/.stepcoins/stepcoins.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".stepcoins")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "stepcoins.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func newEnv(ctx context.Context, opts envOptions) (*env, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	e := &env{}

	var logOut io.Writer = os.Stderr
	if opts.tui {
		if f, err := openLogFile(); err == nil {
			e.logFile = f
			logOut = f
		} else {
			logOut = io.Discard
		}
	}
	e.logger = newLogger(logOut)

	coinsCfg, err := config.LoadCoins(flagConfig)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("config: %w", err)
	}

	var store kv.Store = kv.NewMemory()
	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the game still works for this run
		e.logger.Warn("could not open database", "error", err)
		e.store = nil
	} else {
		store = e.store.KV(storage.DefaultUser, e.logger)
	}

	var dayLog goals.DayLog
	if e.store != nil {
		dayLog = e.store
	}
	recorder := goals.NewRecorder(store, dayLog, storage.DefaultUser, e.logger)
	inbox := sensor.NewInbox()

	if opts.sensor {
		sctx, cancel := context.WithCancel(ctx)
		e.cancel = cancel
		var src sensor.Source = sensor.Unavailable{}
		if !flagNoSensor {
			walker := sensor.NewWalker(todaySteps(e.store, store), walkRate(coinsCfg), e.logger)
			if coinsCfg.Sensor.UpdateIntervalMS > 0 {
				walker.Interval = time.Duration(coinsCfg.Sensor.UpdateIntervalMS) * time.Millisecond
			}
			src = walker
		}
		if err := sensor.StartOrLog(sctx, src, sensor.Tee{recorder, inbox}, e.logger); err != nil {
			e.Close()
			return nil, err
		}
	}

	width, height := terminalSize()
	e.deps = tui.Deps{
		User:  storage.DefaultUser,
		Store: e.store,
		KV:    store,
		Coins: coinsCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Player:   audio.NewPlayer(flagMute || !opts.audio, e.logger),
		Recorder: recorder,
		Inbox:    inbox,
		Logger:   e.logger,
	}
	return e, nil
}

// walkRate is the simulated pace: the --walk-rate flag when given, else
// the config.
func walkRate(cfg config.CoinsConfig) float64 {
	if flagWalkRate >= 0 {
		return flagWalkRate
	}
	return cfg.Sensor.WalkRate
}

// todaySteps prefers the daily log and falls back to the cached total.
func todaySteps(store *storage.Store, cache kv.Store) int {
	if store != nil {
		if n, err := store.DailySteps(storage.DefaultUser, time.Now()); err == nil {
			return n
		}
	}
	return cache.Get(kv.KeyStepsToday)
}

func (e *env) Close() {
	if e.cancel != nil {
		e.cancel()
	}
	if e.deps.Player != nil {
		e.deps.Player.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// dayTotals returns today's and yesterday's step counts.
func (e *env) dayTotals() (today, yesterday int) {
	today = todaySteps(e.store, e.deps.KV)
	if e.store == nil {
		return today, 0
	}
	yesterday, err := e.store.DailySteps(storage.DefaultUser, time.Now().AddDate(0, 0, -1))
	if err != nil {
		e.logger.Warn("could not read yesterday's steps", "error", err)
	}
	return today, yesterday
}

// fail closes the environment and exits with an error message.
func (e *env) fail(format string, args ...any) {
	e.Close()
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
