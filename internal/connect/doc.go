// Package connect derives axis-aligned connector lines between rectangles
// through obstacle-free corridors of a mask.
//
// For every pair of shapes whose projections overlap on an axis, the engine
// scans the gap between them position by position. A position is blocked
// when any mask pixel in the gap is set. Unblocked runs that are long enough
// become spans, and each span yields one candidate line perpendicular to
// the shared axis, running from the facing edge of one shape to the facing
// edge of the other.
//
// # Convergence
//
// Spans from different pairs that overlap are snapped to a shared canonical
// position so that parallel connectors line up. Canonical positions are
// kept per axis in an ordered registry for the whole run.
//
// # Rounds
//
// Lines are produced in phases, each iterated until it adds nothing new or
// the round cap is reached:
//
//  1. rectangles with rectangles
//  2. rectangles with the lines found so far
//  3. lines with lines, once lines crossing a rectangle interior are gone
//
// Nested and duplicate lines are removed at the end.
package connect
