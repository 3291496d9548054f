package invaders

// Snapshot is a flat copy of the game state used for determinism checks.
type Snapshot struct {
	Tick      uint64
	Score     int
	Lives     int
	Level     int
	GameOver  bool
	DefenderX int // fixed-point, 1/1000 cell
	FleetX    int // fixed-point, 1/1000 cell
	FleetY    int
	FleetDir  int
	Frame     int
	Remaining int

	// Invader grid flattened row-major, 1 = alive
	InvaderData []int

	// Projectiles as (X, Y*1000) pairs
	BulletData []int
	BombData   []int

	UFOActive bool
	UFOX      int // fixed-point, 1/1000 cell
}

func fixed(v float64) int {
	return int(v * 1000)
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	invaders := make([]int, 0, g.rows*g.cols)
	for _, row := range g.fleet.Grid {
		for _, alive := range row {
			if alive {
				invaders = append(invaders, 1)
			} else {
				invaders = append(invaders, 0)
			}
		}
	}

	snap := Snapshot{
		Tick:        uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:       g.score,
		Lives:       g.lives,
		Level:       g.level,
		GameOver:    g.gameOver,
		DefenderX:   fixed(g.defender.X),
		FleetX:      fixed(g.fleet.X),
		FleetY:      g.fleet.Y,
		FleetDir:    g.fleet.Dir,
		Frame:       g.fleet.Frame,
		Remaining:   g.fleet.Alive(),
		InvaderData: invaders,
		BulletData:  flatten(g.bullets),
		BombData:    flatten(g.bombs),
	}
	if g.ufo != nil {
		snap.UFOActive = true
		snap.UFOX = fixed(g.ufo.X)
	}
	return snap
}

func flatten(ps []*Projectile) []int {
	out := make([]int, 0, len(ps)*2)
	for _, p := range ps {
		out = append(out, p.X, fixed(p.Y))
	}
	return out
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DefenderX) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FleetX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FleetY)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FleetDir)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Frame)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining) //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}
	if snap.UFOActive {
		h = h*31 + uint64(snap.UFOX) //#nosec G115 -- hash computation
	}

	for _, v := range snap.InvaderData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BombData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
