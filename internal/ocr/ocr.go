package ocr

import (
	"bytes"
	"image"
	"image/png"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errs.New(errs.CodeUnavailable, "ocr: tesseract support not compiled in")

// Word is a recognized word with its location.
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"` // 0.0 to 1.0
	Bounds     geometry.Bounds `json:"bounds"`
}

// Info describes the OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
	Error     string `json:"error,omitempty"`
}

// TextRegions returns the bounds of every word recognized in img with at
// least minConfidence.
func TextRegions(img image.Image, minConfidence float64) ([]geometry.Bounds, error) {
	words, err := Words(img, DefaultLanguage)
	if err != nil {
		return nil, err
	}
	regions := make([]geometry.Bounds, 0, len(words))
	for _, w := range words {
		if w.Confidence >= minConfidence {
			regions = append(regions, w.Bounds)
		}
	}
	return regions, nil
}

// toBounds converts a half-open image rectangle into inclusive bounds.
func toBounds(r image.Rectangle) geometry.Bounds {
	return geometry.Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X - 1, Y2: r.Max.Y - 1}
}

// encodePNG renders img for Tesseract, which reads encoded images only.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "ocr: encode image")
	}
	return buf.Bytes(), nil
}
