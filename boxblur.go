package texel

import (
	"fmt"
	"image"
)

// BoxBlur replaces every pixel with the mean of the (2*radius+1)^2 window centered on it.
// Near the image edges the window is clamped to the image bounds, so fewer pixels
// contribute to the mean. Channels are averaged independently and the result keeps
// the color depth of the source (grayscale in, grayscale out). A zero radius returns a copy.
func BoxBlur(src image.Image, radius int) (image.Image, error) {
	if radius < 0 {
		return nil, fmt.Errorf("box blur: %w", ErrInvalidRadius)
	}
	p := planeOf(src)
	if radius == 0 || p.width == 0 || p.height == 0 {
		return p.image(), nil
	}

	// Wider windows cover the whole image anyway.
	radius = min(radius, max(p.width, p.height))

	sat := newSummedArea(p)
	dst := newPlane(p.width, p.height, p.channels)

	for y := 0; y < p.height; y++ {
		y0, y1 := max(0, y-radius), min(p.height, y+radius+1)
		for x := 0; x < p.width; x++ {
			x0, x1 := max(0, x-radius), min(p.width, x+radius+1)
			count := uint64((y1 - y0) * (x1 - x0))

			di := dst.offset(x, y)
			for c := 0; c < p.channels; c++ {
				dst.pix[di+c] = uint8(sat.sum(x0, y0, x1, y1, c) / count)
			}
		}
	}

	return dst.image(), nil
}

// summedArea is an integral image: table[(y*(w+1)+x)*ch+c] holds the sum of
// channel c over all pixels above and to the left of (x, y), exclusive.
type summedArea struct {
	table    []uint64
	stride   int
	channels int
}

func newSummedArea(p *plane) *summedArea {
	stride := p.width + 1
	s := &summedArea{
		table:    make([]uint64, stride*(p.height+1)*p.channels),
		stride:   stride,
		channels: p.channels,
	}
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			si := p.offset(x, y)
			for c := 0; c < p.channels; c++ {
				s.table[s.index(x+1, y+1, c)] = uint64(p.pix[si+c]) +
					s.table[s.index(x, y+1, c)] +
					s.table[s.index(x+1, y, c)] -
					s.table[s.index(x, y, c)]
			}
		}
	}
	return s
}

func (s *summedArea) index(x, y, c int) int {
	return (y*s.stride+x)*s.channels + c
}

// sum returns the channel total over the half open rectangle [x0, x1) x [y0, y1).
func (s *summedArea) sum(x0, y0, x1, y1, c int) uint64 {
	return s.table[s.index(x1, y1, c)] -
		s.table[s.index(x0, y1, c)] -
		s.table[s.index(x1, y0, c)] +
		s.table[s.index(x0, y0, c)]
}
