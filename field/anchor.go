package field

import (
	"fmt"
	"math"
)

type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

var channelNames = [...]string{"red", "green", "blue"}

func (c Channel) String() string {
	if c < Red || c > Blue {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Channels lists the channels in pixel order.
var Channels = [...]Channel{Red, Green, Blue}

type Point struct {
	X float64
	Y float64
}

// Anchors holds the radial centre of each channel, indexed by Channel.
type Anchors [3]Point

// DefaultAnchors spreads the three anchors 120 degrees apart on a circle of
// the given radius around the origin, red pointing down the y axis.
func DefaultAnchors(radius float64) Anchors {
	half := radius * math.Sqrt(3) / 2
	return Anchors{
		Red:   {X: 0, Y: -radius},
		Green: {X: -half, Y: radius / 2},
		Blue:  {X: half, Y: radius / 2},
	}
}

// Intensity evaluates sqrt(0.5*sin(k*r)+0.5) where r is the distance from
// (x, y) to anchor. The result is always in [0, 1].
func Intensity(x, y, k float64, anchor Point) float64 {
	dx := x - anchor.X
	dy := y - anchor.Y
	r := math.Sqrt(dx*dx + dy*dy)

	v := 0.5*math.Sin(k*r) + 0.5
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return math.Sqrt(v)
}
