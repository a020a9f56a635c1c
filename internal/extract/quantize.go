package extract

import (
	"cmp"
	"image"
	"math"
	"slices"

	"github.com/jmylchreest/huekit/internal/colour"
)

type bucket struct {
	rgb   colour.RGB
	count int
}

// quantizeChannel snaps c to the nearest multiple of q, clamped to 255.
func quantizeChannel(c uint8, q int) uint8 {
	v := math.Round(float64(c)/float64(q)) * float64(q)
	return uint8(min(v, 255))
}

// quantize buckets every visible pixel and returns the buckets ordered by
// descending count. Ties keep first-seen order.
func quantize(img *image.NRGBA, q int) []colour.RGB {
	index := make(map[colour.RGB]int)
	var buckets []bucket

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			key := colour.RGB{
				R: quantizeChannel(px.R, q),
				G: quantizeChannel(px.G, q),
				B: quantizeChannel(px.B, q),
			}
			if i, ok := index[key]; ok {
				buckets[i].count++
				continue
			}
			index[key] = len(buckets)
			buckets = append(buckets, bucket{rgb: key, count: 1})
		}
	}

	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return cmp.Compare(b.count, a.count)
	})

	out := make([]colour.RGB, len(buckets))
	for i, bk := range buckets {
		out[i] = bk.rgb
	}
	return out
}
