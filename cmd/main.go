package main

import (
	"log/slog"

	"kiosk/internal/core/refresh"
	"kiosk/internal/logging"
	"kiosk/internal/platform"
	"kiosk/internal/storage"
	"kiosk/internal/ui/display"
	"kiosk/resources"

	"fyne.io/fyne/v2/app"
	"github.com/jonboulle/clockwork"
)

const appName = "PiAcademyKiosk"

func main() {
	settings, err := storage.LoadSettings(appName)
	logging.Setup(logging.ParseLevel(settings.LogLevel))
	if err != nil {
		slog.Warn("Using default settings", "error", err)
	}

	displayLock, err := platform.LockDisplay(appName)
	if err != nil {
		slog.Error("Display lock", "error", err)
		return
	}
	defer func() {
		if err := displayLock.Unlock(); err != nil {
			slog.Warn("Display lock", "error", err)
		}
	}()

	fyneApp := app.NewWithID("org.piacademy.kiosk")
	fyneApp.SetIcon(resources.MustIcon(resources.IconFileName))

	window := display.New(fyneApp, settings.DisplayConfig())
	loop := refresh.New(window, clockwork.NewRealClock(), settings.RefreshConfig())
	window.SetOnClosed(loop.Stop)

	if err := loop.Start(); err != nil {
		slog.Error("Kiosk failed to start", "error", err)
		return
	}

	window.ShowAndRun()
	loop.Stop()
}
