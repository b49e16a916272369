package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		tag  string
		want Step
	}{
		{"EC", StepEnhanceContrast},
		{"BL", StepBlur},
		{"TH", StepThreshold},
		{"us", StepUpscale},
	}
	for _, tt := range tests {
		got, err := ParseStep(tt.tag)
		require.NoError(t, err, tt.tag)
		assert.Equal(t, tt.want, got, tt.tag)
	}

	_, err := ParseStep("ED")
	assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
}

func TestParseVariants(t *testing.T) {
	vs, err := ParseVariants([][]string{{"US", "TH", "US", "EC"}, {"BL"}})
	require.NoError(t, err)
	assert.Equal(t, "US-TH-US-EC", vs[0].String())
	assert.Equal(t, 4, vs[0].UpscaleFactor())
	assert.Equal(t, 1, vs[1].UpscaleFactor())

	_, err = ParseVariants([][]string{{"EC"}, {"XX"}})
	assert.Error(t, err)
}

func TestPreprocess(t *testing.T) {
	img := floorPlanImage(40, 30, image.Rect(5, 5, 30, 25))

	out, factor := Preprocess(img, Variant{StepUpscale, StepThreshold, StepEnhanceContrast, StepBlur})
	assert.Equal(t, 2, factor)
	assert.Equal(t, 80, out.Bounds().Dx())
	assert.Equal(t, 60, out.Bounds().Dy())

	same, factor := Preprocess(img, nil)
	assert.Equal(t, 1, factor)
	assert.Same(t, img, same, "empty variant should return the input unchanged")
}

func TestThresholdStep(t *testing.T) {
	img := solidImage(4, 4, color.Gray{Y: 200})
	img.Set(0, 0, color.Gray{Y: 10})

	out := StepThreshold.Apply(img)
	assert.Equal(t, uint8(0), color.GrayModel.Convert(out.At(0, 0)).(color.Gray).Y)
	assert.Equal(t, uint8(255), color.GrayModel.Convert(out.At(1, 1)).(color.Gray).Y)
}
