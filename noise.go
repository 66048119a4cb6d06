package texel

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/exp/rand"
)

// Default noise image dimensions.
const (
	DefaultNoiseWidth  = 256
	DefaultNoiseHeight = 256
)

// NoiseGenerator produces white noise images from a seedable source.
// It is not safe for concurrent use; create one generator per goroutine.
type NoiseGenerator struct {
	rng *rand.Rand
}

// NewNoiseGenerator returns a generator seeded with seed.
// Two generators created with the same seed produce identical images.
func NewNoiseGenerator(seed uint64) *NoiseGenerator {
	return &NoiseGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomNoiseGenerator returns a generator seeded from the current time.
func NewRandomNoiseGenerator() *NoiseGenerator {
	return NewNoiseGenerator(uint64(time.Now().UnixNano()))
}

// Generate returns a width x height grayscale image of independent, uniformly distributed bytes.
func (g *NoiseGenerator) Generate(width, height int) (*image.Gray, error) {
	return Noise(width, height, g.rng)
}

// Noise fills a new width x height grayscale image with bytes drawn from rng.
func Noise(width, height int, rng *rand.Rand) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("noise: %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))

	// Every 64 bit draw is split into eight independent bytes.
	var (
		buf  uint64
		left int
	)
	for i := range dst.Pix {
		if left == 0 {
			buf, left = rng.Uint64(), 8
		}
		dst.Pix[i] = uint8(buf)
		buf >>= 8
		left--
	}

	return dst, nil
}
