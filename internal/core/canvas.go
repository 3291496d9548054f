package core

// Canvas is a stateful drawing surface over a Screen, in the style of a 2D
// context: fill color and font are sticky and apply to later fill calls.
type Canvas struct {
	screen *Screen
	fill   Color
	font   Font
}

// NewCanvas wraps a screen buffer.
func NewCanvas(s *Screen) *Canvas {
	return &Canvas{screen: s, fill: ColorDefault}
}

// Screen returns the underlying buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Width returns the drawable width in cells.
func (c *Canvas) Width() int {
	return c.screen.Width()
}

// Height returns the drawable height in cells.
func (c *Canvas) Height() int {
	return c.screen.Height()
}

// SetFillColor sets the color used by FillRect, FillText and FillRune.
func (c *Canvas) SetFillColor(col Color) {
	c.fill = col
}

// SetFont selects the text emphasis used by FillText.
func (c *Canvas) SetFont(f Font) {
	c.font = f
}

// FillRect paints the rectangle with blank cells of the fill color.
// ColorBlack clears the area.
func (c *Canvas) FillRect(r Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.screen.SetCell(x, y, Cell{Rune: ' ', Color: c.fill})
		}
	}
}

// FillRune paints one rune at (x, y) with the fill color.
func (c *Canvas) FillRune(x, y int, r rune) {
	c.screen.SetCell(x, y, Cell{Rune: r, Color: c.fill})
}

// FillText draws text at (x, y) with the fill color and current font.
func (c *Canvas) FillText(x, y int, text string) {
	bold := c.font != FontPlain
	i := 0
	for _, r := range text {
		c.screen.SetCell(x+i, y, Cell{Rune: r, Color: c.fill, Bold: bold})
		i++
	}
}
