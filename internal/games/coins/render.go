package coins

import (
	"fmt"

	"github.com/vovakirdan/stepcoins/internal/core"
)

// Glyphs used by the terminal renderer.
const (
	CoinChar  = '●'
	BagChar   = '▀'
	FloorChar = '▔'
)

// Render draws the current frame. The playfield is scaled to whatever the
// screen is: row 0 carries the HUD, the last row is the floor, and world y
// grows upward so it is flipped here.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 10 || h < 5 {
		dst.DrawText(0, 0, "too small")
		return
	}

	floorY := h - 1
	dst.DrawHLine(0, floorY, w, FloorChar, core.ColorGray)

	for _, c := range g.Coins() {
		x, y := g.toScreen(dst, c.Body.Pos)
		dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
	}
	g.drawBag(dst)

	// HUD
	dst.DrawTextColored(1, 0, fmt.Sprintf("Steps: %d", g.AvailableSteps()), core.ColorGreen)
	scoreText := fmt.Sprintf("Score: %d", g.score.Value())
	dst.DrawTextColored(w-len(scoreText)-1, 0, scoreText, core.ColorYellow)
	missText := fmt.Sprintf("Missed: %d/%d", g.misses, g.cfg.Economy.MaxMissedCoins)
	dst.DrawTextCentered(0, missText, core.ColorGray)

	if g.alert {
		dst.DrawTextCentered(h/3, "Not enough steps!", core.ColorBrightRed)
	}

	if g.paused && !g.gameOver {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score.Value()))
	}
}

// toScreen maps a world position to a screen cell inside rows 1..h-2.
func (g *Game) toScreen(dst *core.Screen, p core.Vec) (int, int) {
	w, h := dst.Width(), dst.Height()
	fieldH := h - 2
	x := int(p.X / g.cfg.Playfield.Width * float64(w-1))
	y := 1 + int((g.cfg.Playfield.Height-p.Y)/g.cfg.Playfield.Height*float64(fieldH-1))
	return core.Clamp(x, 0, w-1), core.Clamp(y, 1, h-2)
}

func (g *Game) drawBag(dst *core.Screen) {
	body := g.collector.Body
	cx, cy := g.toScreen(dst, body.Pos)
	half := int(body.HalfW / g.cfg.Playfield.Width * float64(dst.Width()-1))
	if half < 1 {
		half = 1
	}
	dst.DrawHLine(cx-half, cy, 2*half+1, BagChar, core.ColorOrange)
	dst.SetColored(cx-half, cy-1, '╲', core.ColorOrange)
	dst.SetColored(cx+half, cy-1, '╱', core.ColorOrange)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorDefault)

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
