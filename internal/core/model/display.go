package model

import (
	"fmt"
	"image/color"
)

// RGB is an 8-bit per channel display color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as a lower-case #rrggbb string.
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// NRGBA returns the opaque toolkit color.
func (rgb RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// DisplayState is what a single tick pushes to the presentation surface.
type DisplayState struct {
	Text  string
	Color RGB
}
