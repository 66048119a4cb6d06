package texel

import (
	"image"
	"image/color"
)

// plane is a flat, zero-origin copy of an 8-bit raster holding
// either one (grayscale) or four (NRGBA) interleaved channels per pixel.
type plane struct {
	pix      []uint8
	width    int
	height   int
	channels int
}

func newPlane(width, height, channels int) *plane {
	return &plane{
		pix:      make([]uint8, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}
}

// planeOf copies the source image into a plane. Grayscale images keep a single
// channel, every other color model is converted to NRGBA.
func planeOf(img image.Image) *plane {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		g := imgToGray(img)
		return &plane{pix: g.Pix, width: g.Rect.Dx(), height: g.Rect.Dy(), channels: 1}
	}
	src := imgToNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	p := newPlane(w, h, 4)
	for y := 0; y < h; y++ {
		copy(p.pix[y*w*4:(y+1)*w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
	}
	return p
}

func (p *plane) offset(x, y int) int {
	return (y*p.width + x) * p.channels
}

// image wraps the plane buffer into an image of the matching color model.
func (p *plane) image() image.Image {
	rect := image.Rect(0, 0, p.width, p.height)
	if p.channels == 1 {
		return &image.Gray{Pix: p.pix, Stride: p.width, Rect: rect}
	}
	return &image.NRGBA{Pix: p.pix, Stride: p.width * 4, Rect: rect}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// The result never shares its pixel buffer with the source.
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// imgToGray converts any image type to an 8-bit *image.Gray with min-point at (0, 0).
// Color pixels are reduced with the ITU-R 601-2 luma transform.
func imgToGray(img image.Image) *image.Gray {
	srcBounds := img.Bounds()
	dstW, dstH := srcBounds.Dx(), srcBounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, dstW, dstH))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < dstH; y++ {
			si := src.PixOffset(srcBounds.Min.X, srcBounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+dstW], src.Pix[si:si+dstW])
		}
	case *image.Gray16:
		for y := 0; y < dstH; y++ {
			for x := 0; x < dstW; x++ {
				c := src.Gray16At(srcBounds.Min.X+x, srcBounds.Min.Y+y)
				dst.Pix[y*dst.Stride+x] = uint8(c.Y >> 8)
			}
		}
	default:
		nrgba := imgToNRGBA(img)
		for y := 0; y < dstH; y++ {
			si := nrgba.PixOffset(0, y)
			for x := 0; x < dstW; x++ {
				dst.Pix[y*dst.Stride+x] = luma(nrgba.Pix[si], nrgba.Pix[si+1], nrgba.Pix[si+2])
				si += 4
			}
		}
	}

	return dst
}

// luma returns the rounded 0.299R + 0.587G + 0.114B value in 16.16 fixed point.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}
