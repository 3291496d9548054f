package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// HUD anchor points as fractions of the board size.
const (
	hudRight  = 0.87
	hudLeft   = 0.01
	hudTop    = 0.05
	hudBottom = 0.95
)

func drawHUD(dst Surface, sim Simulation, muted bool) {
	w := float64(sim.BoardWidth())
	h := float64(sim.BoardHeight())

	dst.SetFillColor(core.ColorWhite)
	dst.SetFont(core.FontHUD)
	dst.FillText(int(w*hudRight), int(h*hudTop), fmt.Sprintf("LIVES: %d", sim.Lives()))
	dst.FillText(int(w*hudLeft), int(h*hudTop), fmt.Sprintf("SCORE: %d", sim.Score()))
	dst.FillText(int(w*hudLeft), int(h*hudBottom), fmt.Sprintf("LEVEL: %d", sim.Level()))
	if muted {
		dst.SetFillColor(core.ColorGray)
		dst.FillText(int(w*hudRight), int(h*hudBottom), "MUTED")
	}
	dst.SetFont(core.FontPlain)
}

func drawWelcome(dst Surface) {
	clearSurface(dst)
	h := dst.Height()

	dst.SetFont(core.FontTitle)
	dst.SetFillColor(core.ColorBrightGreen)
	centerText(dst, h/2-3, "S P A C E   I N V A D E R S")

	dst.SetFont(core.FontPlain)
	dst.SetFillColor(core.ColorWhite)
	centerText(dst, h/2, "PRESS SPACE OR START TO PLAY")
	dst.SetFillColor(core.ColorGray)
	centerText(dst, h/2+2, "arrows/A/D move   space fire   p pause   m mute   q quit")
}

func drawGameOver(dst Surface, s Summary) {
	w, h := dst.Width(), dst.Height()
	panel := core.NewRect(w/2-16, h/2-4, 32, 8)
	dst.SetFillColor(core.ColorBlack)
	dst.FillRect(panel)

	dst.SetFont(core.FontTitle)
	dst.SetFillColor(core.ColorBrightRed)
	centerText(dst, panel.Y+1, "GAME OVER")

	dst.SetFont(core.FontPlain)
	dst.SetFillColor(core.ColorWhite)
	centerText(dst, panel.Y+3, fmt.Sprintf("SCORE %d   LEVEL %d", s.Score, s.Level))
	dst.SetFillColor(core.ColorGray)
	centerText(dst, panel.Y+5, "PRESS R OR START TO PLAY AGAIN")
}

func clearSurface(dst Surface) {
	dst.SetFillColor(core.ColorBlack)
	dst.FillRect(core.NewRect(0, 0, dst.Width(), dst.Height()))
}

func centerText(dst Surface, y int, text string) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.FillText(x, y, text)
}
