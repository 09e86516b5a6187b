package main

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	studioimage "drawing-studio/internal/image"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)

	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestInspect(t *testing.T) {
	in := writePNG(t, t.TempDir(), 100, 50)

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"composetool", "inspect", "-W", "400", "-H", "400", in}))

	text := out.String()
	assert.Contains(t, text, "Image: 100x50 on a 400x400 canvas")
	assert.Contains(t, text, "Position: (150.00, 175.00)")
	assert.Contains(t, text, "Area: 5000.00")
	assert.Contains(t, text, "Rotate")
}

func TestComposeWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 40, 40)
	outPath := filepath.Join(dir, "out")

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"composetool", "compose", "-W", "200", "-H", "100", "-o", outPath, in, in}))
	assert.Contains(t, out.String(), "layer 2:")

	img, err := studioimage.Load(outPath + ".png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
}

func TestComposeRequiresImages(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, newApp(&out).Run([]string{"composetool", "compose"}))
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 30, 10)
	outPath := filepath.Join(dir, "rotated.png")

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"composetool", "rotate", "-o", outPath, in}))
	assert.Contains(t, out.String(), "(10x30)")
}
