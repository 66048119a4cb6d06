package texel

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Resample names the filter used to bring octaves to the base octave's size.
type Resample string

// Supported resampling filters.
const (
	Linear  Resample = "linear"
	Nearest Resample = "nearest"
)

// Filter returns the imaging filter matching the resample name.
func (r Resample) Filter() (imaging.ResampleFilter, error) {
	switch r {
	case "", Linear:
		return imaging.Linear, nil
	case Nearest:
		return imaging.NearestNeighbor, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q: %w", string(r), ErrInvalidOption)
}

// FBMOptions configures the fractal Brownian motion compositor.
type FBMOptions struct {
	// Resample selects the scaler for octaves differing in size from the first one.
	Resample Resample
	// Strict rejects octaves whose size differs from the first one instead of resampling them.
	Strict bool
}

// FBM composites the octaves into a single grayscale image using fractal Brownian motion.
// The first octave is the base: it defines the output size and has the largest weight.
// Octave i is weighted by 2^-i, weights are normalised to sum to one and the weighted
// sum is stretched linearly to the full [0, 255] range.
//
// An empty octave list returns ErrEmptyInput, a composite with a single value
// (nothing to stretch) returns ErrDegenerateRange.
func FBM(octaves []image.Image, opts *FBMOptions) (*image.Gray, error) {
	if len(octaves) == 0 {
		return nil, fmt.Errorf("fbm: %w", ErrEmptyInput)
	}
	if opts == nil {
		opts = &FBMOptions{}
	}
	filter, err := opts.Resample.Filter()
	if err != nil {
		return nil, fmt.Errorf("fbm: %w", err)
	}

	base := octaves[0].Bounds()
	width, height := base.Dx(), base.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("fbm: %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	weights := octaveWeights(len(octaves))
	acc := make([]float64, width*height)

	for i, octave := range octaves {
		gray := imgToGray(octave)
		if gray.Rect.Empty() {
			return nil, fmt.Errorf("fbm: octave %d is %dx%d: %w",
				i, gray.Rect.Dx(), gray.Rect.Dy(), ErrInvalidDimensions)
		}
		if gray.Rect.Dx() != width || gray.Rect.Dy() != height {
			if opts.Strict {
				return nil, fmt.Errorf("fbm: octave %d is %dx%d, expected %dx%d: %w",
					i, gray.Rect.Dx(), gray.Rect.Dy(), width, height, ErrDimensionMismatch)
			}
			gray = imgToGray(imaging.Resize(gray, width, height, filter))
		}
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x, v := range row {
				acc[y*width+x] += float64(v) * weights[i]
			}
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range acc {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo == 0 {
		return nil, fmt.Errorf("fbm: %w", ErrDegenerateRange)
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	scale := 255 / (hi - lo)
	for i, v := range acc {
		dst.Pix[i] = uint8(math.Min((v-lo)*scale, 255))
	}

	return dst, nil
}

// octaveWeights returns n weights halving at every octave and summing to one.
func octaveWeights(n int) []float64 {
	weights := make([]float64, n)
	var total float64
	for i := range weights {
		weights[i] = math.Ldexp(1, -i)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}
