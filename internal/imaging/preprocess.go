package imaging

import (
	"image"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
)

// Step is a single preprocessing operation applied before edge detection.
type Step uint8

const (
	StepEnhanceContrast Step = iota // EC
	StepBlur                        // BL
	StepThreshold                   // TH
	StepUpscale                     // US
	numSteps
)

// Preprocessing parameters.
const (
	contrastPercent = 30
	contrastGamma   = 1.2
	blurSigma       = 1.1
	thresholdLevel  = 128
	upscaleRatio    = 2
)

var stepTags = [numSteps]string{"EC", "BL", "TH", "US"}

var stepFuncs = [numSteps]func(image.Image) image.Image{
	StepEnhanceContrast: enhanceContrast,
	StepBlur:            blur,
	StepThreshold:       threshold,
	StepUpscale:         upscale,
}

// String returns the two-letter tag of the step.
func (s Step) String() string {
	if s >= numSteps {
		return "??"
	}
	return stepTags[s]
}

// Apply runs the step on img.
func (s Step) Apply(img image.Image) image.Image {
	return stepFuncs[s](img)
}

// ParseStep converts a two-letter tag into a Step.
func ParseStep(tag string) (Step, error) {
	for i, t := range stepTags {
		if strings.EqualFold(t, tag) {
			return Step(i), nil
		}
	}
	return 0, errs.New(errs.CodeInvalidArgument, "unknown preprocessing step %q", tag)
}

// Variant is an ordered sequence of preprocessing steps.
type Variant []Step

// ParseVariant converts tags into a Variant.
func ParseVariant(tags []string) (Variant, error) {
	v := make(Variant, 0, len(tags))
	for _, tag := range tags {
		s, err := ParseStep(tag)
		if err != nil {
			return nil, err
		}
		v = append(v, s)
	}
	return v, nil
}

// ParseVariants converts every tag list, failing on the first unknown tag.
func ParseVariants(lists [][]string) ([]Variant, error) {
	out := make([]Variant, 0, len(lists))
	for _, tags := range lists {
		v, err := ParseVariant(tags)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// String joins the step tags, e.g. "US-TH-US-EC".
func (v Variant) String() string {
	tags := make([]string, len(v))
	for i, s := range v {
		tags[i] = s.String()
	}
	return strings.Join(tags, "-")
}

// UpscaleFactor returns the cumulative scale the variant applies.
func (v Variant) UpscaleFactor() int {
	f := 1
	for _, s := range v {
		if s == StepUpscale {
			f *= upscaleRatio
		}
	}
	return f
}

// Preprocess applies every step of v in order and returns the processed
// image with the cumulative upscale factor.
func Preprocess(img image.Image, v Variant) (image.Image, int) {
	out := img
	for _, s := range v {
		out = s.Apply(out)
	}
	return out, v.UpscaleFactor()
}

func enhanceContrast(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	return imaging.AdjustGamma(imaging.AdjustContrast(gray, contrastPercent), contrastGamma)
}

func blur(img image.Image) image.Image {
	return imaging.Blur(img, blurSigma)
}

func threshold(img image.Image) image.Image {
	return segment.Threshold(img, thresholdLevel)
}

func upscale(img image.Image) image.Image {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*upscaleRatio, b.Dy()*upscaleRatio, imaging.Lanczos)
}
