// Package cluster groups detected rectangles into clusters.
//
// Clustering runs in one of two modes:
//   - size: rectangles are grouped by area
//   - distance: rectangles are grouped by centroid position
//
// The number of clusters is not configured directly. K-means is run for
// every candidate k and the elbow of the resulting distortion curve picks
// the count, bounded below by the configured minimum. Rectangles whose area
// is a statistical outlier are dropped before clustering, and clusters that
// end up with a single member are dissolved: their rectangle is labelled
// geometry.Unclustered.
//
// Results are deterministic for a given seed.
package cluster
