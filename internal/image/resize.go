package image

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the longer side of an image before analysis.
const DefaultMaxDimension = 100

// ScaledSize returns the dimensions after fitting w x h inside maxDim,
// preserving aspect ratio. Images already small enough keep their size.
func ScaledSize(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || w <= 0 || h <= 0 {
		return max(w, 0), max(h, 0)
	}
	scale := min(float64(maxDim)/float64(w), float64(maxDim)/float64(h), 1)
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// Downscale returns an NRGBA copy of img no larger than maxDim on its
// longer side. Bilinear filtering is used when shrinking.
func Downscale(img image.Image, maxDim int) *image.NRGBA {
	src := img.Bounds()
	w, h := ScaledSize(src.Dx(), src.Dy(), maxDim)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if w == src.Dx() && h == src.Dy() {
		draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
