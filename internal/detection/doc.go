// Package detection finds room rectangles and lettering in edge masks.
//
// The input is an [imaging.Mask] produced by edge detection: set pixels are
// outlines, clear pixels are interiors. Detection never looks at colour.
//
// # Rectangles
//
// Rooms are the enclosed clear regions of the mask. Each region is grown
// by one pixel onto its outline and kept when its area lies inside a band
// derived from the original image size, its aspect ratio is moderate, and
// it fills its bounding box. Nested and duplicate rectangles are dropped
// and the survivors are numbered from 0 in centroid order.
//
// The area band is (MinArea, 4*MinArea) where
//
//	MinArea = width * height / AreaFactor
//
// for the original image, multiplied by the square of the upscale factor
// when the mask was produced from an upscaled variant.
//
// # Text Regions
//
// Room labels and dimension strings produce dense clusters of short edge
// runs that would otherwise split rooms. DetectTextRegions finds them with
// a sliding window over edge density and SuppressRegions clears them from
// the mask before rectangle detection.
//
// # Coordinate System
//
// All coordinates use the image convention with the origin at the top-left
// and Y increasing downward. Bounds are inclusive on both corners.
package detection
