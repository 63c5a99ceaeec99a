package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette holds the theme shades exposed to the site as CSS variables.
type Palette struct {
	Shade100 string `json:"100"`
	Shade500 string `json:"500"`
	Shade600 string `json:"600"`
	Shade700 string `json:"700"`
}

// AdjustColor lightens (positive amount) or darkens (negative amount) a
// #RRGGBB color. Each channel is clamped to [0, 255]. Input that is not a
// six digit hex color is returned unchanged.
func AdjustColor(color string, amount int) string {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return color
	}

	var b strings.Builder
	b.WriteByte('#')
	for i := 0; i < 6; i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return color
		}
		c := int(v) + amount
		if c < 0 {
			c = 0
		}
		if c > 255 {
			c = 255
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

// NewPalette derives the theme shades from the configured theme color.
// An empty theme falls back to DefaultThemeColor.
func NewPalette(theme string) Palette {
	if theme == "" {
		theme = DefaultThemeColor
	}
	return Palette{
		Shade100: AdjustColor(theme, 180),
		Shade500: AdjustColor(theme, 0),
		Shade600: AdjustColor(theme, -20),
		Shade700: AdjustColor(theme, -40),
	}
}
