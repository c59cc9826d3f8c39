package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"ripplegen/field"
	"ripplegen/parallel"

	"github.com/alecthomas/kong"
)

// Streams for the pixel data and for progress, swapped out in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type CLICmd struct {
	Width       int     `help:"Image width in pixels" default:"512" group:"image"`
	Height      int     `help:"Image height in pixels" default:"512" group:"image"`
	Supersample int     `help:"Sample at N times the resolution and scale down" default:"1" group:"image"`
	XMin        float64 `name:"x-min" help:"Left edge of the sampled world" default:"-10" group:"world"`
	XMax        float64 `name:"x-max" help:"Right edge of the sampled world" default:"10" group:"world"`
	YMin        float64 `name:"y-min" help:"Top edge of the sampled world" default:"-10" group:"world"`
	YMax        float64 `name:"y-max" help:"Bottom edge of the sampled world" default:"10" group:"world"`
	K           float64 `name:"k" help:"Wavenumber of the radial pattern" default:"1.25663706" group:"world"`
	Radius      float64 `help:"Distance of the channel anchors from the origin" default:"5" group:"world"`
	Out         string  `short:"o" help:"Output file, - for standard output" default:"-"`
	Format      string  `help:"Output format. auto picks it from the output file extension, ppm for standard output" enum:"auto,ppm,png,jpeg,gif,bmp,tiff" default:"auto"`
	Progress    bool    `help:"Report scanline progress on stderr" default:"true" negatable:""`

	Sampler *field.Sampler `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image dimensions: %dx%d", c.Width, c.Height)
	}
	if c.Supersample < 1 {
		return fmt.Errorf("invalid supersample factor: %d", c.Supersample)
	}
	if math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) || c.Radius < 0 {
		return fmt.Errorf("invalid anchor radius: %g", c.Radius)
	}

	c.Sampler = &field.Sampler{
		Width:  c.Width * c.Supersample,
		Height: c.Height * c.Supersample,
		Bounds: field.Bounds{
			XMin: c.XMin,
			XMax: c.XMax,
			YMin: c.YMin,
			YMax: c.YMax,
		},
		K:       c.K,
		Anchors: field.DefaultAnchors(c.Radius),
	}
	if err := c.Sampler.Validate(); err != nil {
		return err
	}

	if c.Format == "auto" {
		c.Format = formatFor(c.Out)
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("width", c.Width, "height", c.Height)
	logger.Info("sampling", "k", c.K, "radius", c.Radius, "supersample", c.Supersample, "workers", pool.Size())

	frame, err := c.Sampler.Sample(pool.Do, pool.Wait)
	if err != nil {
		return fmt.Errorf("could not sample field: %w", err)
	}
	for _, st := range frame.Stats() {
		logger.Debug("channel", "channel", st.Channel, "min", st.Min, "max", st.Max, "mean", st.Mean)
	}

	var img image.Image = frame
	if c.Supersample > 1 {
		img = downscale(frame, c.Width, c.Height)
	}

	if c.Out == "-" {
		logger.Info("writing", "format", c.Format, "to", "stdout")
		if err := encode(stdout, img, c.Format, c.progress()); err != nil {
			return fmt.Errorf("could not write image: %w", err)
		}
		return nil
	}

	logger.Info("writing", "format", c.Format, "to", c.Out)
	return save(img, c.Format, c.Out, c.progress())
}

func (c *CLICmd) progress() io.Writer {
	if !c.Progress {
		return nil
	}
	return stderr
}

func formatFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "ppm"
	}
}
