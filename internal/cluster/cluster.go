package cluster

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

const maxIterations = 300

// Cluster labels rects according to cfg and returns the rectangles that
// survive outlier rejection. The input rectangles are annotated in place.
func Cluster(rects []*geometry.Rectangle, cfg config.ClusterConfig) ([]*geometry.Rectangle, error) {
	if cfg.Mode != config.ModeSize && cfg.Mode != config.ModeDistance {
		return nil, errs.New(errs.CodeInvalidArgument, "unknown cluster mode %q", cfg.Mode)
	}

	if len(rects) <= 1 {
		for _, r := range rects {
			r.Cluster = 0
		}
		return append([]*geometry.Rectangle(nil), rects...), nil
	}

	kept := RemoveOutliers(rects, cfg.OutlierSigma)
	if len(kept) <= 1 {
		for _, r := range kept {
			r.Cluster = 0
		}
		return kept, nil
	}
	points := features(kept, cfg.Mode)
	n := len(points)

	restarts := max(cfg.Restarts, 1)
	rng := rand.New(rand.NewSource(cfg.Seed))

	maxK := min(n, max(cfg.MaxClusters, 1))
	ks := make([]float64, 0, maxK)
	inertias := make([]float64, 0, maxK)
	runs := make([]result, 0, maxK)
	for k := 1; k <= maxK; k++ {
		res := kmeans(points, k, rng, restarts)
		ks = append(ks, float64(k))
		inertias = append(inertias, res.inertia)
		runs = append(runs, res)
	}

	elbow := 1
	if idx, ok := Elbow(ks, inertias); ok {
		elbow = int(ks[idx])
	}
	k := max(min(cfg.MinClusters, n), elbow)
	k = min(k, n)

	labels := relabel(runs[k-1].labels)
	counts := make(map[int]int, k)
	for _, l := range labels {
		counts[l]++
	}
	for i, r := range kept {
		if counts[labels[i]] == 1 {
			r.Cluster = geometry.Unclustered
			continue
		}
		r.Cluster = labels[i]
	}
	return kept, nil
}

// RemoveOutliers drops rectangles whose area lies more than sigma
// population standard deviations away from the mean area.
func RemoveOutliers(rects []*geometry.Rectangle, sigma float64) []*geometry.Rectangle {
	if len(rects) == 0 {
		return nil
	}
	areas := make([]float64, len(rects))
	for i, r := range rects {
		areas[i] = float64(r.Area())
	}
	mean, std := stat.PopMeanStdDev(areas, nil)

	kept := make([]*geometry.Rectangle, 0, len(rects))
	for i, r := range rects {
		if math.Abs(areas[i]-mean) <= sigma*std {
			kept = append(kept, r)
		}
	}
	return kept
}

func features(rects []*geometry.Rectangle, mode string) [][]float64 {
	points := make([][]float64, len(rects))
	for i, r := range rects {
		if mode == config.ModeSize {
			points[i] = []float64{float64(r.Area())}
			continue
		}
		c := r.Centroid()
		points[i] = []float64{float64(c.X), float64(c.Y)}
	}
	return points
}

// relabel renumbers labels by order of first appearance.
func relabel(labels []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		m, ok := mapping[l]
		if !ok {
			m = len(mapping)
			mapping[l] = m
		}
		out[i] = m
	}
	return out
}

// Summary describes the cluster composition of a set of rectangles.
type Summary struct {
	Clusters    int         `json:"clusters"`
	Sizes       map[int]int `json:"sizes"`
	Unclustered int         `json:"unclustered"`
}

// Summarize counts cluster members.
func Summarize(rects []*geometry.Rectangle) Summary {
	s := Summary{Sizes: make(map[int]int)}
	for _, r := range rects {
		if r.Cluster == geometry.Unclustered {
			s.Unclustered++
			continue
		}
		s.Sizes[r.Cluster]++
	}
	s.Clusters = len(s.Sizes)
	return s
}

// Labels returns the distinct cluster labels in ascending order.
func (s Summary) Labels() []int {
	labels := make([]int, 0, len(s.Sizes))
	for l := range s.Sizes {
		labels = append(labels, l)
	}
	sort.Ints(labels)
	return labels
}
