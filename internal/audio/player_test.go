package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/stepcoins/internal/core"
)

func TestMutedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(true, log.New(io.Discard))
	if p.Enabled() {
		t.Fatal("muted player should not open the speaker")
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cue on a silent player panicked: %v", r)
		}
	}()
	for _, s := range []core.Signal{core.SignalCollect, core.SignalInsufficient, core.SignalMiss, core.SignalGameOver} {
		p.Signal(s)
	}
	p.Close()
}

func TestGeneratorsStayInRange(t *testing.T) {
	gens := map[string]beep.Streamer{
		"chime": NewChimeGenerator(sampleRate, 988, 1319),
		"buzz":  NewBuzzGenerator(sampleRate, 110),
	}

	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			buf := make([][2]float64, 4096)
			n, ok := g.Stream(buf)
			if !ok || n != len(buf) {
				t.Fatalf("Stream() = %d, %v", n, ok)
			}
			var peak float64
			for _, s := range buf {
				if s[0] != s[1] {
					t.Fatal("channels should match")
				}
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak amplitude %v outside (0, 1]", peak)
			}
			if g.Err() != nil {
				t.Errorf("Err() = %v", g.Err())
			}
		})
	}
}

func TestTakeLimitsCue(t *testing.T) {
	n := sampleRate.N(100 * time.Millisecond)
	s := beep.Take(n, NewBuzzGenerator(sampleRate, 110))

	buf := make([][2]float64, 512)
	total := 0
	for {
		k, ok := s.Stream(buf)
		total += k
		if !ok {
			break
		}
	}
	if total != n {
		t.Errorf("streamed %d samples, expected %d", total, n)
	}
}
