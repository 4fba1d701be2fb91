package service

import (
	"errors"
	"math"
	"math/rand"
)

type kmeansConfig struct {
	k       int
	seed    int64
	nInit   int
	maxIter int
	tol     float64
}

var defaultKMeans = kmeansConfig{seed: 42, nInit: 10, maxIter: 300, tol: 1e-4}

type kmeansResult struct {
	labels  []int
	inertia float64
}

// fitKMeans runs k-means++ seeded Lloyd iterations nInit times from one
// seeded source and keeps the run with the lowest inertia.
func fitKMeans(points [][]float64, cfg kmeansConfig) (kmeansResult, error) {
	if len(points) == 0 {
		return kmeansResult{}, errors.New("no points to cluster")
	}
	if cfg.k <= 0 || cfg.k > len(points) {
		return kmeansResult{}, errors.New("cluster count out of range")
	}
	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return kmeansResult{}, errors.New("points have mixed dimensions")
		}
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	best := kmeansResult{inertia: math.Inf(1)}
	for run := 0; run < cfg.nInit; run++ {
		res := lloyd(points, initPlusPlus(points, cfg.k, rng), cfg)
		if res.inertia < best.inertia {
			best = res
		}
	}
	return best, nil
}

func initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = sqDist(p, centers[0])
	}
	for len(centers) < k {
		var total float64
		for _, d := range dist {
			total += d
		}
		next := rng.Intn(len(points))
		if total > 0 {
			r := rng.Float64() * total
			for i, d := range dist {
				r -= d
				if r <= 0 {
					next = i
					break
				}
			}
		}
		centers = append(centers, clone(points[next]))
		for i, p := range points {
			if d := sqDist(p, centers[len(centers)-1]); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centers
}

func lloyd(points [][]float64, centers [][]float64, cfg kmeansConfig) kmeansResult {
	labels := make([]int, len(points))
	dim := len(points[0])

	for iter := 0; iter < cfg.maxIter; iter++ {
		assign(points, centers, labels)

		sums := make([][]float64, len(centers))
		sizes := make([]int, len(centers))
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			sizes[labels[i]]++
			for j, v := range p {
				sums[labels[i]][j] += v
			}
		}

		var shift float64
		for c := range centers {
			if sizes[c] == 0 {
				// An empty cluster takes over the point farthest from its center.
				far := farthestPoint(points, centers, labels)
				sums[c] = clone(points[far])
				sizes[c] = 1
			}
			for j := range sums[c] {
				sums[c][j] /= float64(sizes[c])
			}
			shift += sqDist(centers[c], sums[c])
			centers[c] = sums[c]
		}
		if shift <= cfg.tol {
			break
		}
	}

	inertia := assign(points, centers, labels)
	return kmeansResult{labels: labels, inertia: inertia}
}

// assign sets each label to the nearest center and returns the inertia.
func assign(points, centers [][]float64, labels []int) float64 {
	var inertia float64
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, center := range centers {
			if d := sqDist(p, center); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
		inertia += bestDist
	}
	return inertia
}

func farthestPoint(points, centers [][]float64, labels []int) int {
	far, farDist := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centers[labels[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
