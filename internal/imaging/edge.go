package imaging

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median-derived Canny thresholds, as fractions of the median intensity.
const (
	lowThresholdRatio  = 0.24
	highThresholdRatio = 0.96
)

// EdgeThresholds returns Canny thresholds (0-255) derived from the median
// grayscale intensity of img.
func EdgeThresholds(img image.Image) (low, high float64) {
	gray := luminance(img)
	if len(gray) == 0 || len(gray[0]) == 0 {
		return 0, 0
	}
	values := make([]float64, 0, len(gray)*len(gray[0]))
	for _, row := range gray {
		values = append(values, row...)
	}
	sort.Float64s(values)
	median := stat.Quantile(0.5, stat.Empirical, values, nil) * 255
	return lowThresholdRatio * median, highThresholdRatio * median
}

// EdgeDetect performs Canny edge detection and returns the edges as a mask.
//
// Thresholds are on the 0-255 scale. When both are zero they are derived
// from the median intensity (see EdgeThresholds).
//
// # Algorithm
//
//  1. Grayscale conversion using ITU-R BT.601 weights
//  2. 5x5 Gaussian blur
//  3. Sobel gradients
//  4. Non-maximum suppression along the gradient direction
//  5. Hysteresis: strong pixels seed the result and weak pixels are kept
//     when 8-connected to a kept pixel
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh float64) *Mask {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return NewMask(width, height)
	}
	if thresholdLow == 0 && thresholdHigh == 0 {
		thresholdLow, thresholdHigh = EdgeThresholds(img)
	}

	blurred := gaussianBlur(luminance(img), width, height)
	magnitude, direction := sobel(blurred, width, height)
	suppressed := suppress(magnitude, direction, width, height)

	return hysteresis(suppressed, width, height, thresholdLow/255.0, thresholdHigh/255.0)
}

// luminance converts img to a [row][col] grid of intensities in 0..1.
func luminance(img image.Image) [][]float64 {
	b := img.Bounds()
	gray := make([][]float64, b.Dy())
	for y := range gray {
		gray[y] = make([]float64, b.Dx())
		for x := range gray[y] {
			r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			gray[y][x] = (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)) / 255.0
		}
	}
	return gray
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobel(src [][]float64, width, height int) (magnitude, direction [][]float64) {
	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := src[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Hypot(gx, gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

func suppress(magnitude, direction [][]float64, width, height int) [][]float64 {
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}
			if mag := magnitude[y][x]; mag >= n1 && mag >= n2 {
				out[y][x] = mag
			}
		}
	}
	return out
}

func hysteresis(suppressed [][]float64, width, height int, low, high float64) *Mask {
	m := NewMask(width, height)
	var stack []image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if v := suppressed[y][x]; v > 0 && v >= high {
				m.Set(x, y, true)
				stack = append(stack, image.Pt(x, y))
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height || m.At(nx, ny) {
					continue
				}
				if v := suppressed[ny][nx]; v > 0 && v >= low {
					m.Set(nx, ny, true)
					stack = append(stack, image.Pt(nx, ny))
				}
			}
		}
	}
	return m
}

// gaussianBlur applies a 5x5 Gaussian kernel (sigma about 1.4, sum 273)
// with replicated borders.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += img[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / 273.0
		}
	}
	return result
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
