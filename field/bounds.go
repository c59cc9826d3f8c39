package field

import (
	"fmt"
	"math"
)

// Bounds is the world-space rectangle the pixel grid is mapped onto.
type Bounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

func (b Bounds) Validate() error {
	for _, v := range [...]float64{b.XMin, b.XMax, b.YMin, b.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite bounds: %+v", b)
		}
	}
	if b.XMin >= b.XMax {
		return fmt.Errorf("invalid x bounds: %g >= %g", b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("invalid y bounds: %g >= %g", b.YMin, b.YMax)
	}
	return nil
}

// Map places bucket index of buckets onto [min, max]. The mapping is
// half-open: index 0 is min and index buckets would be max, so the last
// sampled bucket falls one bucket width short of max.
func Map(min, max float64, buckets, index int) float64 {
	return min + (float64(index)/float64(buckets))*(max-min)
}
