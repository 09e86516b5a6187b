package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"drawing-studio/internal/app"
	"drawing-studio/ui/prefs"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromPrefsDefaults(t *testing.T) {
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "prefs.json"))
	assert.Equal(t, app.DefaultConfig(), configFromPrefs(p))
}

func TestConfigFromPrefsOverrides(t *testing.T) {
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "prefs.json"))
	p.SetInt(prefs.KeyCanvasWidth, 640)
	p.SetInt(prefs.KeyPenSize, 9)
	p.SetFloat(prefs.KeyMaxScale, 4)

	cfg := configFromPrefs(p)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, app.DefaultConfig().CanvasHeight, cfg.CanvasHeight)
	assert.Equal(t, 9, cfg.PenSize)
	assert.Equal(t, 4.0, cfg.Compose.MaxScale)
}

func TestInsertArgsLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	state := app.NewState(app.DefaultConfig(), logger)

	missing := filepath.Join(t.TempDir(), "missing.png")
	assert.Zero(t, insertArgs(state, []string{missing}, logger))
	assert.Zero(t, state.ComposerInfo().Layers)
	assert.Contains(t, buf.String(), "failed to load image")
	assert.Contains(t, buf.String(), "missing.png")
}
