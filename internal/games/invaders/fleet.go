package invaders

// Fleet is the grid of invaders. Positions are derived from the fleet
// origin: invader (row, col) sits at (X + col*invaderSpacing, Y + row*rowSpacing).
type Fleet struct {
	Grid  [][]bool
	X     float64
	Y     int
	Dir   int // +1 right, -1 left
	Frame int // sprite frame, 0 or 1
}

func newFleet(rows, cols, top int) *Fleet {
	alive := make([][]bool, rows)
	for r := range alive {
		alive[r] = make([]bool, cols)
		for c := range alive[r] {
			alive[r][c] = true
		}
	}
	return &Fleet{
		Grid: alive,
		X:    sideMargin,
		Y:    top,
		Dir:  1,
	}
}

// Alive returns the number of invaders still standing.
func (f *Fleet) Alive() int {
	n := 0
	for _, row := range f.Grid {
		for _, a := range row {
			if a {
				n++
			}
		}
	}
	return n
}

// Pos returns the top-left cell of invader (row, col).
func (f *Fleet) Pos(row, col int) (int, int) {
	return int(f.X) + col*invaderSpacing, f.Y + row*rowSpacing
}

// Bounds returns the y of the highest and lowest rows with a live invader.
func (f *Fleet) Bounds() (top, bottom int, ok bool) {
	first, last := -1, -1
	for r, row := range f.Grid {
		for _, a := range row {
			if a {
				if first < 0 {
					first = r
				}
				last = r
				break
			}
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	return f.Y + first*rowSpacing, f.Y + last*rowSpacing, true
}

// columns returns the leftmost and rightmost columns with a live invader.
func (f *Fleet) columns() (left, right int, ok bool) {
	left, right = -1, -1
	for _, row := range f.Grid {
		for c, a := range row {
			if !a {
				continue
			}
			if left < 0 || c < left {
				left = c
			}
			if c > right {
				right = c
			}
		}
	}
	return left, right, left >= 0
}

// march moves the fleet horizontally. When the next step would cross
// [minX, maxX) the fleet reverses and drops instead.
func (f *Fleet) march(speed float64, minX, maxX, drop int) {
	left, right, ok := f.columns()
	if !ok {
		return
	}
	next := f.X + float64(f.Dir)*speed
	leftEdge := int(next) + left*invaderSpacing
	rightEdge := int(next) + right*invaderSpacing + invaderWidth
	if leftEdge < minX || rightEdge > maxX {
		f.Dir = -f.Dir
		f.Y += drop
		return
	}
	f.X = next
}

// InvaderAt returns the live invader covering cell (x, y).
func (f *Fleet) InvaderAt(x, y int) (row, col int, ok bool) {
	dy := y - f.Y
	if dy < 0 || dy%rowSpacing != 0 {
		return 0, 0, false
	}
	row = dy / rowSpacing
	dx := x - int(f.X)
	if row >= len(f.Grid) || dx < 0 || dx%invaderSpacing >= invaderWidth {
		return 0, 0, false
	}
	col = dx / invaderSpacing
	if col >= len(f.Grid[row]) || !f.Grid[row][col] {
		return 0, 0, false
	}
	return row, col, true
}

// bottomInvader returns the lowest live invader in a column.
func (f *Fleet) bottomInvader(col int) (int, bool) {
	for r := len(f.Grid) - 1; r >= 0; r-- {
		if f.Grid[r][col] {
			return r, true
		}
	}
	return 0, false
}
