// Package colorclock maps a time of day onto a background color that walks
// the full hue wheel once every 24 hours.
package colorclock

import (
	"math"
	"time"

	"kiosk/internal/core/model"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Saturation and Value are fixed so white text stays readable on every hue.
	Saturation = 0.6
	Value      = 0.5

	secondsPerDay = 24 * 60 * 60
)

// SecondsSinceMidnight returns the whole seconds elapsed on t's wall clock.
func SecondsSinceMidnight(t time.Time) int {
	hour, minute, second := t.Clock()
	return hour*3600 + minute*60 + second
}

// Hue returns the position on the color wheel for t, in [0, 1).
func Hue(t time.Time) float64 {
	return math.Mod(float64(SecondsSinceMidnight(t))/secondsPerDay, 1.0)
}

// ColorFor returns the background color for t.
func ColorFor(t time.Time) model.RGB {
	rgb := hsvToRGB(Hue(t), Saturation, Value).Clamped()
	return model.RGB{
		R: quantize(rgb.R),
		G: quantize(rgb.G),
		B: quantize(rgb.B),
	}
}

// hsvToRGB uses the sector/p/q/t form so whole channel values survive
// quantization exactly. hue is in [0, 1).
func hsvToRGB(hue, saturation, value float64) colorful.Color {
	if saturation == 0 {
		return colorful.Color{R: value, G: value, B: value}
	}
	sector := math.Floor(hue * 6.0)
	fraction := hue*6.0 - sector
	p := value * (1.0 - saturation)
	q := value * (1.0 - saturation*fraction)
	t := value * (1.0 - saturation*(1.0-fraction))
	switch int(sector) % 6 {
	case 0:
		return colorful.Color{R: value, G: t, B: p}
	case 1:
		return colorful.Color{R: q, G: value, B: p}
	case 2:
		return colorful.Color{R: p, G: value, B: t}
	case 3:
		return colorful.Color{R: p, G: q, B: value}
	case 4:
		return colorful.Color{R: t, G: p, B: value}
	default:
		return colorful.Color{R: value, G: p, B: q}
	}
}

// HexFor returns ColorFor(t) as a #rrggbb string.
func HexFor(t time.Time) string {
	return ColorFor(t).Hex()
}

func quantize(channel float64) uint8 {
	value := math.Floor(channel * 255)
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return uint8(value)
}
