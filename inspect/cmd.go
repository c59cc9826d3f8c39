package inspect

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "ripplegen/ppm"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type CLICmd struct {
	Files []string `arg:"" help:"Images to inspect" type:"existingfile"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if len(c.Files) == 0 {
		return fmt.Errorf("no files given")
	}
	return nil
}

func (c *CLICmd) Run() error {
	var errCount int
	for _, name := range c.Files {
		logger := slog.Default().With("file", name)

		summary, err := Inspect(name)
		if err != nil {
			errCount++
			logger.Error("could not inspect image", "error", err)
			continue
		}

		logger.Info("image", "format", summary.Format, "width", summary.Width, "height", summary.Height)
		for _, ch := range summary.Channels {
			logger.Info("channel", "channel", ch.Name, "min", ch.Min, "max", ch.Max, "mean", ch.Mean)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("error inspecting %d files", errCount)
	}
	return nil
}

type ChannelSummary struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
}

type Summary struct {
	Format   string
	Width    int
	Height   int
	Channels []ChannelSummary
}

// Inspect decodes an image file and summarises its 8-bit RGB channels.
func Inspect(name string) (*Summary, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "name", name, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", name, err)
	}

	return Summarize(img, format), nil
}

func Summarize(img image.Image, format string) *Summary {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	levels := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			levels[0] = append(levels[0], float64(c.R))
			levels[1] = append(levels[1], float64(c.G))
			levels[2] = append(levels[2], float64(c.B))
		}
	}

	summary := &Summary{Format: format, Width: b.Dx(), Height: b.Dy()}
	for i, name := range [...]string{"red", "green", "blue"} {
		if n == 0 {
			summary.Channels = append(summary.Channels, ChannelSummary{Name: name})
			continue
		}
		summary.Channels = append(summary.Channels, ChannelSummary{
			Name: name,
			Min:  floats.Min(levels[i]),
			Max:  floats.Max(levels[i]),
			Mean: stat.Mean(levels[i], nil),
		})
	}
	return summary
}
