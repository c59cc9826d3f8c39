package field

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Frame holds one intensity grid per channel. Grid rows are image rows, so
// pixel (x, y) lives at grid element (y, x).
type Frame struct {
	width  int
	height int
	grids  [3]*mat.Dense
}

var _ image.Image = &Frame{}

// NewFrame allocates a zeroed frame. Both dimensions must be positive.
func NewFrame(width, height int) *Frame {
	f := &Frame{width: width, height: height}
	for _, ch := range Channels {
		f.grids[ch] = mat.NewDense(height, width, nil)
	}
	return f
}

func (f *Frame) Intensity(x, y int) (r, g, b float64) {
	return f.grids[Red].At(y, x), f.grids[Green].At(y, x), f.grids[Blue].At(y, x)
}

// Grid exposes a channel's grid as a read-only matrix.
func (f *Frame) Grid(ch Channel) mat.Matrix {
	return f.grids[ch]
}

func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := f.Intensity(x, y)
	return color.RGBA{R: Quantize(r), G: Quantize(g), B: Quantize(b), A: 0xff}
}

// Quantize scales an intensity in [0, 1] to an 8-bit level by multiplying
// with 255.999 and truncating.
func Quantize(v float64) uint8 {
	l := 255.999 * v
	switch {
	case !(l >= 0):
		return 0
	case l >= 255:
		return 255
	}
	return uint8(l)
}

type ChannelStats struct {
	Channel Channel
	Min     float64
	Max     float64
	Mean    float64
}

func (f *Frame) Stats() []ChannelStats {
	res := make([]ChannelStats, 0, len(Channels))
	for _, ch := range Channels {
		data := f.grids[ch].RawMatrix().Data
		res = append(res, ChannelStats{
			Channel: ch,
			Min:     floats.Min(data),
			Max:     floats.Max(data),
			Mean:    stat.Mean(data, nil),
		})
	}
	return res
}
