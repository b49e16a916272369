// Package pipeline turns floor-plan images into rooms, corridors and a
// navigation graph.
//
// One engine invocation takes a rectangle set and an obstacle mask and
// runs the three engines in order:
//
//  1. cluster: outlier removal and cluster labels
//  2. connect: corridor lines between rooms and between lines
//  3. graph: travel and terminal nodes along the lines
//
// Each invocation owns its id sequences, so invocations never share
// mutable state. The obstacle mask is read-only and may be shared.
//
// # Image Processing
//
// ProcessImage runs one invocation per preprocessing variant on a bounded
// worker pool:
//
//	image → variant steps → edge mask → text suppression → rectangles → engines
//
// A failing invocation is recorded on its Result and never stops its
// siblings. Results are ranked by rectangle count, most first; ties keep
// variant order.
//
// # Coordinates
//
// Results are expressed in the pixel space of the processed (possibly
// upscaled) image. Result.UpscaleFactor relates them to the original.
package pipeline
