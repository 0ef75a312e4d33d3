// Package audio plays the game's sound cues. Audio is optional: without an
// output device every call is a no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/stepcoins/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes short generated cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player and opens the speaker unless muted. When the
// speaker cannot be opened the player stays silent and logs why.
func NewPlayer(muted bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{mixer: &beep.Mixer{}, logger: logger}
	if muted {
		return p
	}
	if err := p.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	return p
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether sound reaches a device.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// PlayCollect plays the rising coin chime.
func (p *Player) PlayCollect() {
	p.play(beep.Take(sampleRate.N(180*time.Millisecond), NewChimeGenerator(sampleRate, 988, 1319)))
}

// PlayReject plays the low "not enough steps" buzz.
func (p *Player) PlayReject() {
	p.play(beep.Take(sampleRate.N(150*time.Millisecond), NewBuzzGenerator(sampleRate, 110)))
}

// PlayGameOver plays a falling tone.
func (p *Player) PlayGameOver() {
	p.play(beep.Take(sampleRate.N(400*time.Millisecond), NewChimeGenerator(sampleRate, 440, 220)))
}

// Signal plays the cue for a game signal. Misses are silent.
func (p *Player) Signal(s core.Signal) {
	switch s {
	case core.SignalCollect:
		p.PlayCollect()
	case core.SignalInsufficient:
		p.PlayReject()
	case core.SignalGameOver:
		p.PlayGameOver()
	}
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// ChimeGenerator plays two sine notes back to back with a decaying envelope.
type ChimeGenerator struct {
	sr     beep.SampleRate
	first  float64
	second float64
	split  int
	pos    int
}

// NewChimeGenerator creates a two-note chime.
func NewChimeGenerator(sr beep.SampleRate, first, second float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:     sr,
		first:  first,
		second: second,
		split:  sr.N(70 * time.Millisecond),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		freq := g.first
		local := g.pos
		if g.pos >= g.split {
			freq = g.second
			local = g.pos - g.split
		}
		t := float64(local) / float64(g.sr)
		sample := 0.25 * math.Sin(2*math.Pi*freq*t) * math.Exp(-t*12)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low buzz with a few harmonics.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz at freq Hz.
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
