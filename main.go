// Package main provides the entry point for the Drawing Studio application.
package main

import (
	"log/slog"
	"os"

	"drawing-studio/internal/app"
	"drawing-studio/internal/compose"
	"drawing-studio/internal/version"
	"drawing-studio/ui/mainwindow"
	"drawing-studio/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.drawingstudio"

func main() {
	logger := app.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	logger.Info("starting", "version", version.Summary())

	appPrefs := prefs.Load()
	appState := app.NewState(configFromPrefs(appPrefs), logger)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(app.NewStudioTheme(appState.ComposerOptions()))

	win := mainwindow.New(fyneApp, appState, appPrefs, logger)
	win.Resize(fyne.NewSize(800, 600))
	win.SetMaster()

	insertArgs(appState, os.Args[1:], logger)

	win.ShowAndRun()

	if err := appPrefs.Save(); err != nil {
		logger.Error("failed to save preferences", "path", appPrefs.Path(), "err", err)
	}
}

// insertArgs puts command line images into the composer. Failures are
// logged and skipped.
func insertArgs(state *app.State, paths []string, logger *slog.Logger) int {
	inserted := 0
	for _, path := range paths {
		if _, err := state.InsertImageFile(path, compose.CategoryCustom); err != nil {
			logger.Error("failed to load image", "path", path, "err", err)
			continue
		}
		inserted++
	}
	return inserted
}

// configFromPrefs builds the startup configuration, keeping the defaults
// for anything not stored.
func configFromPrefs(p *prefs.Prefs) app.Config {
	cfg := app.DefaultConfig()
	cfg.CanvasWidth = p.IntWithFallback(prefs.KeyCanvasWidth, cfg.CanvasWidth)
	cfg.CanvasHeight = p.IntWithFallback(prefs.KeyCanvasHeight, cfg.CanvasHeight)
	cfg.PenSize = p.IntWithFallback(prefs.KeyPenSize, cfg.PenSize)
	cfg.Compose.MinScale = p.FloatWithFallback(prefs.KeyMinScale, cfg.Compose.MinScale)
	cfg.Compose.MaxScale = p.FloatWithFallback(prefs.KeyMaxScale, cfg.Compose.MaxScale)
	cfg.Compose.HandleRadius = p.FloatWithFallback(prefs.KeyHandleRadius, cfg.Compose.HandleRadius)
	return cfg
}
