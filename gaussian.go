package texel

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// GaussianBlur blurs the image with a Gaussian kernel of the given sigma.
// Grayscale sources produce grayscale results.
func GaussianBlur(src image.Image, sigma float64) (image.Image, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("gaussian blur: %w", ErrInvalidStrength)
	}
	p := planeOf(src)
	blurred := imaging.Clone(blur.Gaussian(p.image(), sigma))
	if p.channels == 1 {
		return imgToGray(blurred), nil
	}
	return blurred, nil
}
