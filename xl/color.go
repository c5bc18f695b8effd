package xl

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a 32-bit ARGB value (0xAARRGGBB).
type Color uint32

// Common colors.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
	Red   Color = 0xFFFF0000
	Green Color = 0xFF008000
	Blue  Color = 0xFF0000FF
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorOf converts any image/color value.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color(uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B))
}

// Hex returns the "#RRGGBB" form used by ss:Color attributes; the alpha
// byte is dropped.
func (c Color) Hex() string {
	return "#" + fmt.Sprintf("%08X", uint32(c))[2:]
}

func (c Color) String() string {
	return c.Hex()
}

// ParseColor accepts "#RRGGBB", "RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 6:
		h = "FF" + h
	case 8:
	default:
		return 0, fmt.Errorf("invalid color '%s'", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color '%s'", s)
	}
	return Color(v), nil
}
