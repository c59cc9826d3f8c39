package field

import (
	"fmt"
	"math"

	"ripplegen/parallel"
)

// ReferenceK is the wavenumber of the reference rendering, 2π/5 with π
// truncated the same way the first renders used.
const ReferenceK = 2 * 3.14159265 / 5

// ReferenceRadius is the anchor distance from the origin in the reference
// rendering.
const ReferenceRadius = 5.0

type Sampler struct {
	Width   int
	Height  int
	Bounds  Bounds
	K       float64
	Anchors Anchors
}

// Reference returns the sampler for the 512x512 reference image.
func Reference() *Sampler {
	return &Sampler{
		Width:   512,
		Height:  512,
		Bounds:  Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10},
		K:       ReferenceK,
		Anchors: DefaultAnchors(ReferenceRadius),
	}
}

func (s *Sampler) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid image dimensions: %dx%d", s.Width, s.Height)
	}
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	if math.IsNaN(s.K) || math.IsInf(s.K, 0) {
		return fmt.Errorf("invalid wavenumber: %g", s.K)
	}
	for _, ch := range Channels {
		a := s.Anchors[ch]
		if math.IsNaN(a.X) || math.IsInf(a.X, 0) || math.IsNaN(a.Y) || math.IsInf(a.Y, 0) {
			return fmt.Errorf("invalid %s anchor: %+v", ch, a)
		}
	}
	return nil
}

// World returns the world coordinate of pixel (px, py).
func (s *Sampler) World(px, py int) (float64, float64) {
	return Map(s.Bounds.XMin, s.Bounds.XMax, s.Width, px),
		Map(s.Bounds.YMin, s.Bounds.YMax, s.Height, py)
}

// Value is the intensity of channel ch at pixel (px, py).
func (s *Sampler) Value(px, py int, ch Channel) float64 {
	x, y := s.World(px, py)
	return Intensity(x, y, s.K, s.Anchors[ch])
}

// Sample fills a new frame, handing one row per task to worker. Rows touch
// disjoint parts of the grids. wait must block until every task handed to
// worker has returned.
func (s *Sampler) Sample(worker parallel.WorkerFunc, wait parallel.WaitFunc) (*Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	frame := NewFrame(s.Width, s.Height)
	for py := range s.Height {
		worker(func() {
			for px := range s.Width {
				x, y := s.World(px, py)
				for _, ch := range Channels {
					frame.grids[ch].Set(py, px, Intensity(x, y, s.K, s.Anchors[ch]))
				}
			}
		})
	}
	wait(false)

	return frame, nil
}
