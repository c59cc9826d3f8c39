// Package ppm reads and writes plain (P3) portable pixmaps.
package ppm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

const (
	magic  = "P3"
	maxVal = 255
)

// Encoder writes P3 images. When Progress is set, a scanline counter is
// written to it while encoding; it must not be the pixel stream.
type Encoder struct {
	Progress io.Writer
}

// Encode writes img to w as a plain pixmap.
func Encode(w io.Writer, img image.Image) error {
	return (&Encoder{}).Encode(w, img)
}

func (e *Encoder) Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("cannot encode empty image: %v", b)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, b.Dx(), b.Dy(), maxVal); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	line := make([]byte, 0, len("255 255 255\n"))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		e.progress("\rScanlines completed: %d ", y-b.Min.Y)

		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)

			line = strconv.AppendUint(line[:0], uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("could not write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush pixel stream: %w", err)
	}
	e.progress("\nDone.\n")
	return nil
}

func (e *Encoder) progress(format string, args ...any) {
	if e.Progress == nil {
		return
	}
	// progress is best effort
	_, _ = fmt.Fprintf(e.Progress, format, args...)
}
