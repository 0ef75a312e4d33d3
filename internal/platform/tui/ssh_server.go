package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/stepcoins/internal/audio"
	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/core"
	"github.com/vovakirdan/stepcoins/internal/games/coins"
	"github.com/vovakirdan/stepcoins/internal/goals"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
	"github.com/vovakirdan/stepcoins/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.stepcoins/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// WalkRate is the simulated walking pace for each session, steps/s.
	WalkRate float64

	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		WalkRate:    config.DefaultCoinsConfig().Sensor.WalkRate,
		TickRate:    60,
	}
}

// SSHServer serves the dashboard and game to SSH users. Every user gets
// their own namespace in the shared database and their own simulated
// pedometer. Sessions of the same user share that pedometer and one step
// ledger.
type SSHServer struct {
	config   SSHServerConfig
	coinsCfg config.CoinsConfig
	server   *ssh.Server
	store    *storage.Store
	mem      *kv.Memory // Backs sessions when there is no database
	logger   *log.Logger

	mu    sync.Mutex
	users map[string]*userState
}

// userState is what all sessions of one user share.
type userState struct {
	refs     int
	kv       kv.Store
	recorder *goals.Recorder
	ledger   *coins.Ledger
	fanout   *sensor.Broadcast
	cancel   context.CancelFunc
}

// trackSteps keeps the shared ledger current even while no game runs.
func (u *userState) trackSteps(ev sensor.Event) {
	if su, ok := ev.(sensor.StepUpdate); ok {
		u.ledger.SetRawTotal(su.RawSteps)
	}
}

// NewSSHServer creates a server. store may be nil, in which case each
// session keeps its state in memory.
func NewSSHServer(cfg SSHServerConfig, coinsCfg config.CoinsConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stepcoins-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		coinsCfg: coinsCfg,
		store:    store,
		mem:      kv.NewMemory(),
		logger:   logger,
		users:    make(map[string]*userState),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".stepcoins", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// acquireUser returns the shared state for user, starting their pedometer
// on first use.
func (s *SSHServer) acquireUser(user string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users == nil {
		s.users = make(map[string]*userState)
	}
	if u, ok := s.users[user]; ok {
		u.refs++
		return u
	}

	var store kv.Store = kv.Prefixed{Prefix: user + ":", Store: s.mem}
	var dayLog goals.DayLog
	base := store.Get(kv.KeyStepsToday)
	if s.store != nil {
		store = s.store.KV(user, s.logger)
		dayLog = s.store
		today, err := s.store.DailySteps(user, time.Now())
		if err != nil {
			s.logger.Warn("could not read today's steps", "user", user, "error", err)
		}
		base = today
	}

	ctx, cancel := context.WithCancel(context.Background())
	u := &userState{
		refs:     1,
		kv:       store,
		recorder: goals.NewRecorder(store, dayLog, user, s.logger),
		ledger:   coins.NewLedger(store),
		fanout:   &sensor.Broadcast{},
		cancel:   cancel,
	}

	walker := sensor.NewWalker(base, s.config.WalkRate, s.logger)
	if s.coinsCfg.Sensor.UpdateIntervalMS > 0 {
		walker.Interval = time.Duration(s.coinsCfg.Sensor.UpdateIntervalMS) * time.Millisecond
	}
	//nolint:errcheck // StartOrLog already logged it; the user plays without steps
	sensor.StartOrLog(ctx, walker, sensor.Tee{u.recorder, sensor.SinkFunc(u.trackSteps), u.fanout}, s.logger)

	s.users[user] = u
	return u
}

// releaseUser drops one session's hold on user and stops the pedometer
// when the last session ends.
func (s *SSHServer) releaseUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user]
	if !ok {
		return
	}
	u.refs--
	if u.refs > 0 {
		return
	}
	u.cancel()
	delete(s.users, user)
}

// sessionDeps builds the collaborators for one SSH session. The returned
// release func must be called once the session ends.
func (s *SSHServer) sessionDeps(user string, width, height int) (Deps, func()) {
	u := s.acquireUser(user)
	inbox := sensor.NewInbox()
	unsubscribe := u.fanout.Add(inbox)

	var once sync.Once
	release := func() {
		once.Do(func() {
			unsubscribe()
			s.releaseUser(user)
		})
	}

	return Deps{
		User:  user,
		Store: s.store,
		KV:    u.kv,
		Coins: s.coinsCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		// Sound would play on the server, not the client
		Player:   audio.NewPlayer(true, s.logger),
		Recorder: u.recorder,
		Inbox:    inbox,
		Ledger:   u.ledger,
		Logger:   s.logger.With("user", user),
	}, release
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	deps, release := s.sessionDeps(sshSession.User(), pty.Window.Width, pty.Window.Height)
	go func() {
		<-sshSession.Context().Done()
		release()
	}()
	return NewAppModel(deps), []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
