// Package ocr locates lettering in floor-plan images with Tesseract.
//
// Room labels and dimension strings produce edges that split rooms during
// rectangle detection. TextRegions returns the word boxes Tesseract finds so
// the pipeline can clear them from the edge mask first.
//
// # Build Requirements
//
// The Tesseract backend (via gosseract/v2) needs CGO and the Tesseract and
// Leptonica development libraries:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Without CGO every function returns an error with code UNAVAILABLE and
// callers fall back to the heuristic text detector in package detection.
//
// Language data is looked up through TESSDATA_PREFIX as usual. The language
// defaults to English ("eng").
package ocr
