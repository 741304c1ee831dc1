package novage

import (
	"image/color"
	"strconv"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. This is the normalized form the
// renderer consumes; use FromColor or Hex to convert from 8-bit values.
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components in [0, 1].
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGB8 creates an opaque color from 8-bit RGB components, the pygame-style
// (255, 0, 0) convention.
func RGB8(r, g, b uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1.0,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Invalid input yields opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint64 = 0, 0, 0, 255
	var err error

	switch len(hex) {
	case 3, 4:
		if r, err = strconv.ParseUint(hex[0:1]+hex[0:1], 16, 8); err != nil {
			return Black
		}
		if g, err = strconv.ParseUint(hex[1:2]+hex[1:2], 16, 8); err != nil {
			return Black
		}
		if b, err = strconv.ParseUint(hex[2:3]+hex[2:3], 16, 8); err != nil {
			return Black
		}
		if len(hex) == 4 {
			if a, err = strconv.ParseUint(hex[3:4]+hex[3:4], 16, 8); err != nil {
				return Black
			}
		}
	case 6, 8:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err != nil {
			return Black
		}
		if g, err = strconv.ParseUint(hex[2:4], 16, 8); err != nil {
			return Black
		}
		if b, err = strconv.ParseUint(hex[4:6], 16, 8); err != nil {
			return Black
		}
		if len(hex) == 8 {
			if a, err = strconv.ParseUint(hex[6:8], 16, 8); err != nil {
				return Black
			}
		}
	default:
		return Black
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// WithAlpha returns a copy of the color with the given alpha.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Common colors.
var (
	Transparent = RGBA{0, 0, 0, 0}
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Red         = RGBA{1, 0, 0, 1}
	Green       = RGBA{0, 1, 0, 1}
	Blue        = RGBA{0, 0, 1, 1}
	Yellow      = RGBA{1, 1, 0, 1}
	Cyan        = RGBA{0, 1, 1, 1}
	Magenta     = RGBA{1, 0, 1, 1}
	Gray        = RGBA{0.5, 0.5, 0.5, 1}
)

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
