package render

import (
	"image"

	"golang.org/x/image/draw"
)

// downscale averages a supersampled frame down to width x height.
func downscale(img image.Image, width, height int) image.Image {
	dest := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dest
}
