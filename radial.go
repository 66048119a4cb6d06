package texel

import (
	"fmt"
	"image"
	"math"
)

// RadialBlur smears every pixel along the ray pointing from the pixel back towards the center.
// The number of samples grows with the distance from the center: floor(distance*strength)+1
// samples are taken at unit steps and averaged, skipping those falling outside the image.
// When center is nil the image center (integer division) is used.
func RadialBlur(src image.Image, center *image.Point, strength float64) (image.Image, error) {
	if !(strength > 0) || math.IsInf(strength, 1) {
		return nil, fmt.Errorf("radial blur: %w", ErrInvalidStrength)
	}
	p := planeOf(src)
	dst := newPlane(p.width, p.height, p.channels)

	cx, cy := p.width/2, p.height/2
	if center != nil {
		// Centers are given in source coordinates.
		cx, cy = center.X-src.Bounds().Min.X, center.Y-src.Bounds().Min.Y
	}

	// Samples further than this along any ray are always outside the image.
	diagonal := math.Hypot(float64(p.width), float64(p.height)) + 2

	total := make([]uint64, p.channels)
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			di := dst.offset(x, y)
			vx, vy := float64(x-cx), float64(y-cy)
			dist := math.Sqrt(vx*vx + vy*vy)
			if dist == 0 {
				copy(dst.pix[di:di+p.channels], p.pix[di:di+p.channels])
				continue
			}
			ux, uy := vx/dist, vy/dist

			for c := range total {
				total[c] = 0
			}
			var count uint64
			samples := int(math.Min(dist*strength, diagonal)) + 1
			for i := 0; i < samples; i++ {
				sx := int(float64(x) - ux*float64(i))
				sy := int(float64(y) - uy*float64(i))
				if sx < 0 || sx >= p.width || sy < 0 || sy >= p.height {
					continue
				}
				si := p.offset(sx, sy)
				for c := range total {
					total[c] += uint64(p.pix[si+c])
				}
				count++
			}

			if count == 0 {
				copy(dst.pix[di:di+p.channels], p.pix[di:di+p.channels])
				continue
			}
			for c := range total {
				dst.pix[di+c] = uint8(total[c] / count)
			}
		}
	}

	return dst.image(), nil
}
