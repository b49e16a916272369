package cluster

import "gonum.org/v1/gonum/floats"

// Elbow locates the knee of a convex, decreasing curve (such as k-means
// distortion against k) and returns its index in xs.
//
// Both axes are normalised to [0, 1]. The knee is the point that lies
// furthest above the straight line joining the first and last points once
// the curve is flipped to be increasing. Curves with fewer than three
// points, flat curves, and curves with no point above that line have no
// knee.
func Elbow(xs, ys []float64) (int, bool) {
	if len(xs) < 3 || len(xs) != len(ys) {
		return 0, false
	}

	xMin, xMax := floats.Min(xs), floats.Max(xs)
	yMin, yMax := floats.Min(ys), floats.Max(ys)
	if xMax == xMin || yMax == yMin {
		return 0, false
	}

	diff := make([]float64, len(xs))
	for i := range xs {
		xn := (xs[i] - xMin) / (xMax - xMin)
		yn := (ys[i] - yMin) / (yMax - yMin)
		diff[i] = (1 - yn) - xn
	}

	idx := floats.MaxIdx(diff)
	if diff[idx] <= 0 {
		return 0, false
	}
	return idx, true
}
