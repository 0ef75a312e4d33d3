// Package coins implements the step-gated coin game: coins fall from the
// top of the playfield, the player tilts a bag under them, and every coin
// caught costs steps from the pedometer balance. Missing too many coins
// ends the session.
package coins

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/core"
	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
)

// Game is one coin-collection session plus the plumbing to start a new one.
// All state is owned by the goroutine calling Step; sensor readings arrive
// through the inbox and are applied at the start of each tick.
type Game struct {
	cfg    config.CoinsConfig
	rt     core.RuntimeConfig
	store  kv.Store
	inbox  *sensor.Inbox
	logger *log.Logger

	world     *World
	sched     *Scheduler
	spawner   *Spawner
	collector *Collector
	ledger    *Ledger
	resolver  *Resolver
	score     *Score

	coins     map[BodyID]*Coin
	spent     int // Steps spent this session
	collected int // Coins collected this session
	misses    int
	activity  sensor.ActivityKind
	alert     bool // "Not enough steps!" banner visible
	gameOver  bool
	paused    bool
	tickCount int
	signals   []core.Signal
}

// New creates a game. inbox may be nil when no step source is attached.
// Call Reset before the first Step.
func New(cfg config.CoinsConfig, store kv.Store, inbox *sensor.Inbox, logger *log.Logger) *Game {
	if inbox == nil {
		inbox = sensor.NewInbox()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		cfg:    cfg,
		store:  store,
		inbox:  inbox,
		logger: logger,
	}
}

// UseLedger makes the game debit a ledger shared with other games over the
// same store. Call it before Reset.
func (g *Game) UseLedger(l *Ledger) {
	g.ledger = l
}

// ID returns the identifier used for score history.
func (g *Game) ID() string {
	return "coins"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Step Coins"
}

// Inbox returns the queue sensor sources publish into.
func (g *Game) Inbox() *sensor.Inbox {
	return g.inbox
}

// Reset builds a fresh session. Nothing carries over from a previous
// session except what the store persisted (score, consumed steps).
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	cfg := g.cfg

	g.world = NewWorld(cfg.Physics.Gravity)
	g.sched = NewScheduler()
	g.spawner = NewSpawner(rt.Seed, cfg.Playfield.Width, cfg.Playfield.Height, cfg.Coin.Radius)
	g.collector = NewCollector(cfg.Playfield.Width, cfg.Collector.Y, cfg.Collector.Width, cfg.Collector.Height, cfg.Physics.TiltGain)
	g.world.Add(g.collector.Body)

	if g.ledger == nil {
		g.ledger = NewLedger(g.store)
	}
	g.score = LoadScore(g.store)
	g.resolver = NewResolver(g.ledger, cfg.Economy.StepCostPerCoin)
	g.resolver.OnCollect = g.collect
	g.resolver.OnReject = g.reject

	g.coins = make(map[BodyID]*Coin)
	g.spent = 0
	g.collected = 0
	g.misses = 0
	g.alert = false
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.signals = g.signals[:0]

	g.sched.Every(TaskKey{Kind: TaskSpawn}, cfg.Timing.SpawnInterval, func() {
		g.Spawn()
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.signals = g.signals[:0]

	// Sensor readings are applied even while paused or over
	g.drainInbox()

	if g.gameOver {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tickCount++
	g.Advance(g.rt.TickSeconds(), in.Tilt.X)
	return g.result()
}

// Advance runs dt seconds of simulation with the given tilt: scheduled
// tasks, bag control, integration, then contact resolution.
func (g *Game) Advance(dt, tilt float64) {
	if g.gameOver {
		return
	}
	g.sched.Advance(g.sched.Now() + dt)
	if g.gameOver {
		return
	}

	g.collector.ApplyTilt(tilt)
	g.world.Integrate(dt)
	g.collector.Clamp()

	for _, c := range g.world.Contacts() {
		if g.gameOver {
			break
		}
		g.HandleContact(c.A, c.B)
	}
}

func (g *Game) result() core.StepResult {
	signals := make([]core.Signal, len(g.signals))
	copy(signals, g.signals)
	return core.StepResult{State: g.State(), Signals: signals}
}

// drainInbox applies pending sensor events.
func (g *Game) drainInbox() {
	for _, ev := range g.inbox.Drain() {
		switch e := ev.(type) {
		case sensor.StepUpdate:
			g.ledger.SetRawTotal(e.RawSteps)
		case sensor.ActivityUpdate:
			g.activity = e.Kind
		case sensor.SensorError:
			g.logger.Warn("pedometer error", "error", e.Err)
		}
	}
}

// Spawn adds a coin to the scene and arms its miss timeout.
func (g *Game) Spawn() *Coin {
	coin := g.spawner.Spawn(g.sched.Now())
	g.world.Add(coin.Body)
	g.coins[coin.ID()] = coin

	g.sched.After(TaskKey{Kind: TaskCoinTimeout, ID: coin.ID()}, g.cfg.Timing.CoinTimeout, func() {
		if !coin.Alive() {
			return
		}
		g.removeCoin(coin)
		g.RecordMiss()
	})
	return coin
}

// HandleContact resolves one contact reported by the world.
func (g *Game) HandleContact(a, b *Body) Outcome {
	if g.gameOver {
		return OutcomeIgnored
	}
	return g.resolver.Resolve(a, b)
}

func (g *Game) collect(body *Body) {
	if coin, ok := g.coins[body.ID]; ok {
		g.removeCoin(coin)
	} else {
		g.world.Remove(body)
	}
	g.score.Add(1)
	g.collected++
	g.spent += g.cfg.Economy.StepCostPerCoin
	g.signals = append(g.signals, core.SignalCollect)
}

func (g *Game) reject(*Body) {
	g.alert = true
	g.sched.After(TaskKey{Kind: TaskAlertExpire}, g.cfg.Timing.AlertDuration, func() {
		g.alert = false
	})
	g.signals = append(g.signals, core.SignalInsufficient)
}

func (g *Game) removeCoin(coin *Coin) {
	g.sched.Cancel(TaskKey{Kind: TaskCoinTimeout, ID: coin.ID()})
	g.world.Remove(coin.Body)
	delete(g.coins, coin.ID())
}

// RecordMiss counts an unclaimed coin and ends the game at the limit.
func (g *Game) RecordMiss() {
	g.misses++
	g.signals = append(g.signals, core.SignalMiss)
	if g.misses >= g.cfg.Economy.MaxMissedCoins {
		g.EndGame()
	}
}

// EndGame stops the session: all scheduled work is cancelled, remaining
// coins are cleared, and the persisted consumed steps and score are reset.
// The session is terminal; Reset starts a new one.
func (g *Game) EndGame() {
	if g.gameOver {
		return
	}
	g.sched.CancelAll()
	for _, coin := range g.coins {
		g.world.Remove(coin.Body)
	}
	clear(g.coins)

	g.ledger.Reset()
	g.score.ResetPersisted()

	g.alert = false
	g.gameOver = true
	g.signals = append(g.signals, core.SignalGameOver)
	g.logger.Info("game over", "score", g.score.Value(), "spent", g.spent, "misses", g.misses)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score.Value(),
		Steps:     g.ledger.AvailableSteps(),
		Misses:    g.misses,
		LiveCoins: len(g.coins),
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}

// AvailableSteps returns the current step balance.
func (g *Game) AvailableSteps() int {
	return g.ledger.AvailableSteps()
}

// Ledger exposes the step ledger.
func (g *Game) Ledger() *Ledger {
	return g.ledger
}

// Spent returns the steps spent this session.
func (g *Game) Spent() int {
	return g.spent
}

// Collected returns the coins collected this session.
func (g *Game) Collected() int {
	return g.collected
}

// Activity returns the last reported activity.
func (g *Game) Activity() sensor.ActivityKind {
	return g.activity
}

// Coins returns the live coins.
func (g *Game) Coins() []*Coin {
	out := make([]*Coin, 0, len(g.coins))
	for _, b := range g.world.Bodies() {
		if c, ok := g.coins[b.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Collector returns the bag controller.
func (g *Game) Collector() *Collector {
	return g.collector
}

// Now returns the session clock in seconds.
func (g *Game) Now() float64 {
	return g.sched.Now()
}

// AlertVisible reports whether the "not enough steps" banner is shown.
func (g *Game) AlertVisible() bool {
	return g.alert
}
