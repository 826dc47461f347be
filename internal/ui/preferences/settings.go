package preferences

import (
	"time"

	"kiosk/internal/core/refresh"
	"kiosk/internal/ui/display"
)

// Settings defines presentation preferences for the kiosk.
type Settings struct {
	Fullscreen bool
	TextSize   float32
	LogLevel   string
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Fullscreen: true,
		TextSize:   display.DefaultTextSize,
		LogLevel:   "info",
	}
}

// DisplayConfig converts settings to the window configuration.
func (settings Settings) DisplayConfig() display.Config {
	return display.Config{
		Title:       display.DefaultTitle,
		Placeholder: display.DefaultPlaceholder,
		TextSize:    settings.TextSize,
		Fullscreen:  settings.Fullscreen,
	}
}

// RefreshConfig returns the refresh loop configuration. The period and banner
// are fixed.
func (settings Settings) RefreshConfig() refresh.Config {
	return refresh.Config{
		TickInterval: time.Second,
		Banner:       refresh.DefaultBanner,
	}
}
