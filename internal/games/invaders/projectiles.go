package invaders

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Projectile is a bullet or a bomb. It moves vertically only.
type Projectile struct {
	X int
	Y float64
}

// Cell returns the row the projectile currently occupies.
func (p *Projectile) Cell() int {
	return int(math.Floor(p.Y))
}

// Defender is the player's cannon on the bottom row.
type Defender struct {
	game *Game
	X    float64
	Y    int
}

// Power moves the defender by dx cells. The defender cannot leave its row,
// so dy is ignored.
func (d *Defender) Power(dx, _ float64) {
	maxX := float64(d.game.width - sideMargin - defenderWidth)
	d.X = core.ClampF(d.X+dx, sideMargin, maxX)
}

// FireBullet launches a bullet from the cannon unless the bullet limit is
// reached.
func (d *Defender) FireBullet() {
	g := d.game
	if g.gameOver || len(g.bullets) >= g.cfg.MaxBullets {
		return
	}
	g.bullets = append(g.bullets, &Projectile{
		X: int(d.X) + defenderWidth/2,
		Y: float64(d.Y - 1),
	})
}

// Cell returns the leftmost cell of the cannon.
func (d *Defender) Cell() int {
	return int(d.X)
}

// Rect returns the cells the cannon covers.
func (d *Defender) Rect() core.Rect {
	return core.NewRect(d.Cell(), d.Y, defenderWidth, 1)
}

// UFO is the bonus ship crossing the top lane.
type UFO struct {
	X      float64
	Dir    int
	Points int
}

const ufoWidth = 3

// Rect returns the cells the UFO covers.
func (u *UFO) Rect() core.Rect {
	return core.NewRect(int(u.X), ufoRow, ufoWidth, 1)
}

// AddUFO launches a UFO with a small probability when none is flying.
func (g *Game) AddUFO() {
	if g.gameOver || g.ufo != nil {
		return
	}
	if g.rng.Float64() >= g.cfg.UFOChance {
		return
	}
	u := &UFO{Dir: 1, Points: 100}
	if g.rng.Intn(2) == 0 {
		u.Dir = -1
		u.X = float64(g.width - ufoWidth)
	}
	if len(g.cfg.UFOPoints) > 0 {
		u.Points = g.cfg.UFOPoints[g.rng.Intn(len(g.cfg.UFOPoints))]
	}
	g.ufo = u
}

func (g *Game) moveUFO() {
	if g.ufo == nil {
		return
	}
	g.ufo.X += float64(g.ufo.Dir) * g.cfg.UFOSpeed
	if g.ufo.X < 0 || int(g.ufo.X)+ufoWidth > g.width {
		g.ufo = nil
	}
}

// moveBullets advances bullets in steps of at most one cell so fast bullets
// cannot pass through a row.
func (g *Game) moveBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if !g.advanceBullet(b) {
			kept = append(kept, b)
		}
	}
	g.bullets = kept
}

// advanceBullet reports whether the bullet was spent.
func (g *Game) advanceBullet(b *Projectile) bool {
	steps := int(math.Ceil(g.cfg.BulletSpeed))
	if steps < 1 {
		steps = 1
	}
	delta := g.cfg.BulletSpeed / float64(steps)
	for range steps {
		b.Y -= delta
		y := b.Cell()
		if y < ufoRow {
			return true
		}
		if row, col, ok := g.fleet.InvaderAt(b.X, y); ok {
			g.fleet.Grid[row][col] = false
			g.score += g.rowPoints(row)
			return true
		}
		if u := g.ufo; u != nil && u.Rect().Contains(b.X, y) {
			g.score += u.Points
			g.ufo = nil
			return true
		}
	}
	return false
}

// dropBomb lets a random front-line invader drop a bomb.
func (g *Game) dropBomb() {
	base := g.cfg.BombChance * (1 + 0.25*float64(g.level-1))
	if g.rng.Float64() >= g.difficulty.BombChance(base, g.score, g.tickCount) {
		return
	}
	var shooters []int
	for c := range g.cols {
		if _, ok := g.fleet.bottomInvader(c); ok {
			shooters = append(shooters, c)
		}
	}
	if len(shooters) == 0 {
		return
	}
	col := shooters[g.rng.Intn(len(shooters))]
	row, _ := g.fleet.bottomInvader(col)
	x, y := g.fleet.Pos(row, col)
	g.bombs = append(g.bombs, &Projectile{X: x + invaderWidth/2, Y: float64(y + 1)})
}

func (g *Game) moveBombs() {
	kept := g.bombs[:0]
	hit := false
	for _, b := range g.bombs {
		b.Y += g.cfg.BombSpeed
		y := b.Cell()
		if g.defender.Rect().Contains(b.X, y) {
			hit = true
			continue
		}
		if y >= g.groundRow() {
			continue
		}
		kept = append(kept, b)
	}
	g.bombs = kept
	if hit {
		g.defenderHit()
	}
}

// defenderHit costs a life and clears the bombs in flight.
func (g *Game) defenderHit() {
	g.lives--
	g.bombs = g.bombs[:0]
	g.defender.X = float64(g.width-defenderWidth) / 2
}
