package core

// Color is a foreground color for a screen cell.
// The platform maps it onto ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightYellow
	ColorOrange
	ColorGray
)
