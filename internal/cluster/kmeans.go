package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type result struct {
	labels  []int
	inertia float64
}

// kmeans partitions points into k groups and returns the best of restarts
// attempts, measured by inertia (sum of squared distances to the assigned
// center). Seeding uses k-means++.
func kmeans(points [][]float64, k int, rng *rand.Rand, restarts int) result {
	best := result{inertia: math.Inf(1)}
	for i := 0; i < restarts; i++ {
		res := lloyd(points, seedCenters(points, k, rng))
		if res.inertia < best.inertia {
			best = res
		}
	}
	return best
}

func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(len(points))]))

	dist := make([]float64, len(points))
	for len(centers) < k {
		for i, p := range points {
			dist[i] = sqDist(p, centers[len(centers)-1])
			if len(centers) > 1 {
				dist[i] = math.Min(dist[i], nearest(p, centers[:len(centers)-1]))
			}
		}
		total := floats.Sum(dist)
		if total == 0 {
			// Fewer distinct points than clusters.
			centers = append(centers, clone(points[rng.Intn(len(points))]))
			continue
		}
		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, d := range dist {
			target -= d
			if target < 0 {
				chosen = i
				break
			}
		}
		centers = append(centers, clone(points[chosen]))
	}
	return centers
}

func lloyd(points [][]float64, centers [][]float64) result {
	k := len(centers)
	dims := len(points[0])
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			l := closest(p, centers)
			if l != labels[i] {
				labels[i] = l
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}
		for c := range centers {
			// Empty clusters keep their previous center.
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centers[c] = sums[c]
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return result{labels: labels, inertia: inertia}
}

func closest(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func nearest(p []float64, centers [][]float64) float64 {
	return sqDist(p, centers[closest(p, centers)])
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
