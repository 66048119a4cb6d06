package texel

import (
	"image"
)

// Grayscale converts the image to an 8-bit grayscale image.
// Height maps and noise octaves are always processed in this mode.
func Grayscale(src image.Image) *image.Gray {
	return imgToGray(src)
}
