// Command composetool composes, rotates and inspects images from the
// command line using the same engine as the desktop app.
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"drawing-studio/internal/compose"
	studioimage "drawing-studio/internal/image"
	"drawing-studio/internal/version"
	"drawing-studio/pkg/geometry"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "composetool: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	sizeFlags := []cli.Flag{
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Value: compose.DefaultWidth, Usage: "canvas width in pixels"},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Value: compose.DefaultHeight, Usage: "canvas height in pixels"},
	}

	return &cli.App{
		Name:    "composetool",
		Usage:   "compose and transform images",
		Version: version.Summary(),
		Writer:  out,
		Commands: []*cli.Command{
			{
				Name:      "compose",
				Usage:     "place images on a canvas and export the snapshot",
				ArgsUsage: "IMAGE...",
				Flags: append([]cli.Flag{
					&cli.Float64Flag{Name: "rotate-canvas", Usage: "canvas rotation in degrees"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "composed.png", Usage: "output file (.png, .jpg)"},
				}, sizeFlags...),
				Action: func(c *cli.Context) error {
					return runCompose(c, out)
				},
			},
			{
				Name:      "rotate",
				Usage:     "rotate an image 90° clockwise",
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "rotated.png", Usage: "output file (.png, .jpg)"},
				},
				Action: func(c *cli.Context) error {
					return runRotate(c, out)
				},
			},
			{
				Name:      "inspect",
				Usage:     "print the placement and handles of an inserted image",
				ArgsUsage: "IMAGE",
				Flags:     sizeFlags,
				Action: func(c *cli.Context) error {
					return runInspect(c, out)
				},
			},
		},
	}
}

func runCompose(c *cli.Context, out io.Writer) error {
	if c.NArg() == 0 {
		return fmt.Errorf("compose: at least one image is required")
	}

	canvas := compose.NewCanvas(c.Int("width"), c.Int("height"), compose.DefaultOptions())
	for _, path := range c.Args().Slice() {
		img, err := studioimage.Load(path)
		if err != nil {
			return err
		}
		l, err := canvas.Insert(img, compose.CategoryCustom)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(out, "layer %d: %s at (%.0f, %.0f) scale %.3f\n",
			l.ID, path, l.Position.X, l.Position.Y, l.Scale)
	}
	if deg := c.Float64("rotate-canvas"); deg != 0 {
		canvas.RotateCanvas(deg * math.Pi / 180)
	}

	written, err := studioimage.Save(c.String("output"), canvas.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%dx%d)\n", written, canvas.Width(), canvas.Height())
	return nil
}

func runRotate(c *cli.Context, out io.Writer) error {
	if c.NArg() != 1 {
		return fmt.Errorf("rotate: exactly one image is required")
	}
	img, err := studioimage.Load(c.Args().First())
	if err != nil {
		return err
	}
	rotated, err := studioimage.Rotate90(img)
	if err != nil {
		return err
	}
	written, err := studioimage.Save(c.String("output"), rotated)
	if err != nil {
		return err
	}
	b := rotated.Bounds()
	fmt.Fprintf(out, "wrote %s (%dx%d)\n", written, b.Dx(), b.Dy())
	return nil
}

func runInspect(c *cli.Context, out io.Writer) error {
	if c.NArg() != 1 {
		return fmt.Errorf("inspect: exactly one image is required")
	}
	img, err := studioimage.Load(c.Args().First())
	if err != nil {
		return err
	}

	canvas := compose.NewCanvas(c.Int("width"), c.Int("height"), compose.DefaultOptions())
	l, err := canvas.Insert(img, compose.CategoryCustom)
	if err != nil {
		return err
	}

	size := l.Size()
	fmt.Fprintf(out, "Image: %.0fx%.0f on a %dx%d canvas\n", size.Width, size.Height, canvas.Width(), canvas.Height())
	fmt.Fprintf(out, "Position: (%.2f, %.2f)\n", l.Position.X, l.Position.Y)
	fmt.Fprintf(out, "Scale: %.4f\n", l.Scale)

	m := compose.TransformFor(l)
	fmt.Fprintf(out, "Transform: [%.4f %.4f %.2f; %.4f %.4f %.2f]\n", m.A, m.B, m.TX, m.C, m.D, m.TY)

	corners := compose.TransformedCorners(l)
	fmt.Fprintf(out, "Corners:\n")
	for i, p := range corners {
		fmt.Fprintf(out, "  %d: (%.2f, %.2f)\n", i, p.X, p.Y)
	}
	fmt.Fprintf(out, "Area: %.2f\n", geometry.Area(corners[:]))

	fmt.Fprintf(out, "Handles:\n")
	opts := canvas.Options()
	for _, kind := range []compose.HandleKind{
		compose.HandleFlipTop, compose.HandleFlipBottom,
		compose.HandleFlipLeft, compose.HandleFlipRight,
		compose.HandleRotate,
	} {
		if p, ok := compose.HandleAnchor(l, kind, opts); ok {
			fmt.Fprintf(out, "  %-10s (%.2f, %.2f)\n", kind, p.X, p.Y)
		}
	}
	return nil
}
