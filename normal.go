package texel

import (
	"fmt"
	"image"
	"math"
)

// minNormalLength guards the normalisation against a zero length vector.
const minNormalLength = 1e-12

// NormalMap derives a tangent space normal map from a grayscale height map.
// The gradient of every interior pixel is estimated with central differences,
// the Z component is 1/strength, so smaller strength values flatten the result.
// The outermost rows and columns replicate their inner neighbours.
//
// Non grayscale sources are converted with the luma transform first.
// The source must be at least 3x3 pixels and strength must be positive,
// with a finite reciprocal.
func NormalMap(height image.Image, strength float64) (*image.NRGBA, error) {
	if !(strength > 0) || math.IsInf(strength, 1) {
		return nil, fmt.Errorf("normal map: %w", ErrInvalidStrength)
	}
	b := height.Bounds()
	dx, dy := b.Dx(), b.Dy()
	if dx < 3 || dy < 3 {
		return nil, fmt.Errorf("normal map: %dx%d: %w", dx, dy, ErrInvalidDimensions)
	}

	// Subnormal strengths overflow the Z component.
	dz := 1 / strength
	if math.IsInf(dz, 0) {
		return nil, fmt.Errorf("normal map: strength %g: %w", strength, ErrInvalidStrength)
	}

	src := imgToGray(height)
	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))

	for y := 1; y < dy-1; y++ {
		for x := 1; x < dx-1; x++ {
			gx := (float64(src.Pix[y*src.Stride+x+1]) - float64(src.Pix[y*src.Stride+x-1])) / 255
			gy := (float64(src.Pix[(y+1)*src.Stride+x]) - float64(src.Pix[(y-1)*src.Stride+x])) / 255

			nx, ny, nz := normalize(gx, gy, dz)

			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = unitToByte(nx)
			dst.Pix[i+1] = unitToByte(ny)
			dst.Pix[i+2] = unitToByte(nz)
			dst.Pix[i+3] = 0xff
		}
	}
	replicateEdges(dst)

	return dst, nil
}

func normalize(x, y, z float64) (float64, float64, float64) {
	length := math.Hypot(math.Hypot(x, y), z)
	if length < minNormalLength {
		return 0, 0, 1
	}
	return x / length, y / length, z / length
}

// unitToByte maps a component in the [-1, 1] range to [0, 255].
func unitToByte(c float64) uint8 {
	v := math.Round((c + 1) * 127.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// replicateEdges copies the first and last interior rows onto the border rows,
// then does the same for the columns. The image must be at least 3x3.
func replicateEdges(img *image.NRGBA) {
	dx, dy := img.Rect.Dx(), img.Rect.Dy()
	rowSize := dx * 4

	copy(img.Pix[0:rowSize], img.Pix[img.Stride:img.Stride+rowSize])
	last, prev := (dy-1)*img.Stride, (dy-2)*img.Stride
	copy(img.Pix[last:last+rowSize], img.Pix[prev:prev+rowSize])

	for y := 0; y < dy; y++ {
		row := y * img.Stride
		copy(img.Pix[row:row+4], img.Pix[row+4:row+8])
		copy(img.Pix[row+(dx-1)*4:row+dx*4], img.Pix[row+(dx-2)*4:row+(dx-1)*4])
	}
}
