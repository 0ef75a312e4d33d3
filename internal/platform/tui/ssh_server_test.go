package tui

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/config"
	"github.com/vovakirdan/stepcoins/internal/games/coins"
	"github.com/vovakirdan/stepcoins/internal/kv"
)

func newTestSSHServer() *SSHServer {
	cfg := DefaultSSHServerConfig()
	cfg.WalkRate = 0
	return &SSHServer{
		config:   cfg,
		coinsCfg: config.DefaultCoinsConfig(),
		mem:      kv.NewMemory(),
		logger:   log.New(io.Discard),
	}
}

func TestSSHSessionsOfOneUserShareState(t *testing.T) {
	s := newTestSSHServer()

	first, releaseFirst := s.sessionDeps("alice", 80, 24)
	second, releaseSecond := s.sessionDeps("alice", 80, 24)
	other, releaseOther := s.sessionDeps("bob", 80, 24)
	defer releaseOther()

	if first.Ledger == nil || first.Ledger != second.Ledger {
		t.Error("sessions of one user should share a ledger")
	}
	if first.Recorder != second.Recorder {
		t.Error("sessions of one user should share a recorder")
	}
	if first.Inbox == second.Inbox {
		t.Error("each session needs its own inbox")
	}
	if other.Ledger == first.Ledger {
		t.Error("different users must not share a ledger")
	}

	releaseFirst()
	releaseFirst()
	if u := s.users["alice"]; u == nil || u.refs != 1 {
		t.Fatal("alice should stay active while one session is open")
	}
	releaseSecond()
	if _, ok := s.users["alice"]; ok {
		t.Error("alice should be dropped after the last session ends")
	}
}

func TestSSHSessionsOfOneUserSpendOnce(t *testing.T) {
	s := newTestSSHServer()
	s.mem.Set("alice:"+kv.KeyStepsToday, 10)

	for round := 0; round < 100; round++ {
		a, releaseA := s.sessionDeps("alice", 80, 24)
		b, releaseB := s.sessionDeps("alice", 80, 24)
		a.KV.Set(kv.KeyConsumedSteps, 0)
		a.Ledger.SetRawTotal(10)

		games := []GameModel{NewGameModel(a), NewGameModel(b)}
		bodies := make([]*coins.Coin, len(games))
		for i, gm := range games {
			gm.Init()
			bodies[i] = gm.Game().Spawn()
		}

		var wg sync.WaitGroup
		outcomes := make([]coins.Outcome, len(games))
		for i, gm := range games {
			wg.Add(1)
			go func(i int, g *coins.Game) {
				defer wg.Done()
				outcomes[i] = g.HandleContact(g.Collector().Body, bodies[i].Body)
			}(i, gm.Game())
		}
		wg.Wait()

		collected := 0
		for _, o := range outcomes {
			if o == coins.OutcomeCollected {
				collected++
			}
		}
		if collected != 1 || a.KV.Get(kv.KeyConsumedSteps) != 10 {
			t.Fatalf("round %d: %d collected, consumed %d; expected 1 and 10",
				round, collected, a.KV.Get(kv.KeyConsumedSteps))
		}

		releaseA()
		releaseB()
	}
}
