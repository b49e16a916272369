//go:build cgo

package ocr

import (
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
)

const backend = "gosseract"

// Words runs Tesseract on img and returns word-level results. Empty words
// are dropped.
func Words(img image.Image, language string) ([]Word, error) {
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if language == "" {
		language = DefaultLanguage
	}
	if err := client.SetLanguage(language); err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "ocr: set language %q", language)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "ocr: set image")
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "ocr: bounding boxes")
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Confidence: box.Confidence / 100.0,
			Bounds:     toBounds(box.Box),
		})
	}
	return words, nil
}

// Available reports the backend status.
func Available() Info {
	client := gosseract.NewClient()
	defer client.Close()
	return Info{Available: true, Version: client.Version(), Backend: backend}
}
