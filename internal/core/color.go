package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Font selects the text attributes used when drawing text.
// Terminals have no typefaces, so a font only changes emphasis.
type Font uint8

const (
	FontPlain Font = iota
	FontHUD        // bold, used for lives/score/level
	FontTitle      // bold, used for welcome and game over banners
)
