package extract

import (
	"cmp"
	"image"
	"math"
	"slices"

	"github.com/jmylchreest/huekit/internal/colour"
	"github.com/jmylchreest/huekit/internal/random"
)

// kmeans clusters pixels in RGB space, seeding with k-means++.
type kmeans struct {
	rng           random.Source
	maxIterations int
	convergence   float64
	maxSamples    int
}

func newKMeans(rng random.Source) *kmeans {
	return &kmeans{
		rng:           rng,
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
	}
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() colour.RGB {
	conv := func(v float64) uint8 { return uint8(max(0, min(math.Round(v), 255))) }
	return colour.RGB{R: conv(p.R), G: conv(p.G), B: conv(p.B)}
}

// rank returns up to k centroids ordered by cluster size, largest first.
// When the image has no more than k distinct colours they are returned
// as-is, ordered by frequency.
func (km *kmeans) rank(img *image.NRGBA, k int) []colour.RGB {
	points, unique := km.sample(img)
	if len(points) == 0 || k <= 0 {
		return nil
	}
	if len(unique) <= k {
		return rankUnique(points, unique)
	}

	centroids, weights := km.cluster(points, k)
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[b], weights[a])
	})

	out := make([]colour.RGB, 0, len(order))
	for _, i := range order {
		if weights[i] == 0 {
			continue
		}
		out = append(out, centroids[i].rgb())
	}
	return out
}

// sample collects visible pixels on a grid of at most maxSamples points.
func (km *kmeans) sample(img *image.NRGBA) ([]point3D, []colour.RGB) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	step := 1
	if total > km.maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(km.maxSamples))), 1)
	}

	seen := make(map[colour.RGB]bool)
	var points []point3D
	var unique []colour.RGB
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			px := img.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			rgb := colour.RGB{R: px.R, G: px.G, B: px.B}
			points = append(points, point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)})
			if !seen[rgb] {
				seen[rgb] = true
				unique = append(unique, rgb)
			}
			if len(points) >= km.maxSamples {
				return points, unique
			}
		}
	}
	return points, unique
}

func rankUnique(points []point3D, unique []colour.RGB) []colour.RGB {
	counts := make(map[colour.RGB]int, len(unique))
	for _, p := range points {
		counts[p.rgb()]++
	}
	out := slices.Clone(unique)
	slices.SortStableFunc(out, func(a, b colour.RGB) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return out
}

// cluster returns centroids and their relative cluster sizes.
func (km *kmeans) cluster(points []point3D, k int) ([]point3D, []float64) {
	centroids := km.seed(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < km.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% reassigned.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := km.recalculate(points, assignments, k)
		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next

		if movement/float64(k) < km.convergence {
			break
		}
	}

	// Final assignment so weights describe the returned centroids.
	for i, point := range points {
		assignments[i] = nearestCentroid(point, centroids)
	}
	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}
	return centroids, weights
}

// seed picks initial centroids with k-means++.
func (km *kmeans) seed(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[km.rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			d := point.distance(centroids[nearestCentroid(point, centroids)])
			distances[i] = d * d
			total += distances[i]
		}

		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := km.rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func (km *kmeans) recalculate(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, point := range points {
		c := assignments[i]
		sums[c].R += point.R
		sums[c].G += point.G
		sums[c].B += point.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			// Empty cluster, reseed from a random point.
			centroids[i] = points[km.rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}
