// Package geometry provides the shape primitives of the floor-plan engine.
//
// The package models the three entities the engine produces or annotates:
//
//   - Rectangle: a detected region, owned by the caller and only annotated
//     (cluster label, anchored links, canonical id) by the engine
//   - Line: an axis-aligned connector through an obstacle-free corridor
//   - Node: a vertex of the connectivity graph, either a travel node at a
//     line intersection or a terminal node anchored to a rectangle
//
// Rectangle and Line implement the Shape capability, which exposes the
// projection tests the connectivity engine is built on.
//
// # Coordinate System
//
// Coordinates follow the image convention used throughout the repository:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward, Y increases downward
//   - Bounds are inclusive on both ends: a rectangle at X with width W has
//     its left edge on column X and its right edge on column X+W
//
// Intervals are half-open ranges of pixel positions. Projections and gaps
// are converted from inclusive bounds to half-open intervals at a single
// place (OverlapRange and BoundingRange) so the scanning code never has to
// reason about off-by-one edges.
//
// # Identity
//
// Ids are allocated from a Sequence owned by a single engine run. There is
// no package-level counter, so concurrent runs never share or race on ids.
package geometry
