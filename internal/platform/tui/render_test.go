package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/stepcoins/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Steps: 40", core.ColorGreen)
	s.DrawTextColored(0, 1, "Score", core.ColorYellow)
	s.SetColored(10, 1, '●', core.ColorBrightYellow)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	for _, want := range []string{"Steps: 40", "Score", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q: %q", want, out)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	// Out of range colors fall back to the default style
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, expected plain text", got)
	}
}
