package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ANSI returns the 256-color palette index for the color.
// ColorDefault has no palette entry and returns -1.
func (c Color) ANSI() int {
	switch c {
	case ColorDefault:
		return -1
	case ColorOrange:
		return 208
	case ColorGray:
		return 245
	}
	if c <= ColorWhite {
		return int(c)
	}
	// Bright variants live at 9..15
	return int(c) + 1
}

// Attr holds the display style bits of a cell.
// The low byte is the foreground Color, the high byte carries style flags.
type Attr uint16

// Style flags.
const (
	AttrBold    Attr = 1 << 8
	AttrReverse Attr = 1 << 9
	AttrDim     Attr = 1 << 10
)

// Fg returns an attribute with the given foreground color and no flags.
func Fg(c Color) Attr {
	return Attr(c)
}

// Color returns the foreground color encoded in the attribute.
func (a Attr) Color() Color {
	return Color(a & 0xff)
}

// Has reports whether all bits of flag are set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}
