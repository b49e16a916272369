// Package imaging turns floor-plan images into the inputs of the
// connectivity engine.
//
// It covers three steps:
//   - loading: ImageCache decodes PNG, JPEG and GIF files once per path
//   - preprocessing: a Variant is an ordered list of Steps (EC contrast
//     enhancement, BL blur, TH threshold, US 2x upscale) applied before
//     edge detection
//   - obstacle masks: EdgeDetect runs Canny edge detection and returns a
//     Mask; FromInk and FromGray build masks directly from pixel values
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Mask.At(x, y) addresses
// column x of row y.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Masks are not synchronized: build
// them in one goroutine, then share them read-only.
//
// # Step Dispatch
//
// Step tags are parsed once (ParseStep, ParseVariant). Applying a step is a
// table lookup on the Step value.
package imaging
