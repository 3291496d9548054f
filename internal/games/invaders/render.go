package invaders

import (
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
)

// Sprites by invader kind, two animation frames each.
var invaderSprites = [3][2]string{
	{"{@}", "}@{"},
	{"/M\\", "\\M/"},
	{"<W>", ">W<"},
}

var invaderColors = [3]core.Color{
	core.ColorBrightCyan,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
}

const (
	defenderSprite = "/^\\"
	ufoSprite      = "<=>"
	bulletGlyph    = "|"
	bombGlyph      = "!"
	groundGlyph    = "▀"
)

// kind maps a fleet row to its sprite: one top row, then pairs.
func kind(row int) int {
	switch {
	case row == 0:
		return 0
	case row <= 2:
		return 1
	default:
		return 2
	}
}

// Draw paints the whole board. It does not mutate game state.
func (g *Game) Draw(dst engine.Surface) {
	dst.SetFont(core.FontPlain)
	dst.SetFillColor(core.ColorBlack)
	dst.FillRect(core.NewRect(0, 0, g.width, g.height))

	for r, row := range g.fleet.Grid {
		k := kind(r)
		dst.SetFillColor(invaderColors[k])
		for c, alive := range row {
			if !alive {
				continue
			}
			x, y := g.fleet.Pos(r, c)
			dst.FillText(x, y, invaderSprites[k][g.fleet.Frame])
		}
	}

	if g.ufo != nil {
		dst.SetFillColor(core.ColorMagenta)
		dst.FillText(int(g.ufo.X), ufoRow, ufoSprite)
	}

	dst.SetFillColor(core.ColorBrightWhite)
	for _, b := range g.bullets {
		dst.FillText(b.X, b.Cell(), bulletGlyph)
	}
	dst.SetFillColor(core.ColorRed)
	for _, b := range g.bombs {
		dst.FillText(b.X, b.Cell(), bombGlyph)
	}

	dst.SetFillColor(core.ColorGreen)
	dst.FillText(g.defender.Cell(), g.defender.Y, defenderSprite)
	dst.FillText(0, g.groundRow(), strings.Repeat(groundGlyph, g.width))
}
