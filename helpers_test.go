package texel

import (
	"image"
	"image/color"

	"golang.org/x/exp/rand"
)

// grayFrom builds a width x height grayscale image from row-major values.
func grayFrom(width, height int, values ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, values)
	return img
}

func randomGray(seed uint64, width, height int) *image.Gray {
	img, err := Noise(width, height, rand.New(rand.NewSource(seed)))
	if err != nil {
		panic(err)
	}
	return img
}

func randomNRGBA(seed uint64, width, height int) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 0xff,
			})
		}
	}
	return img
}

func uniformGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func grayValue(v uint8) color.Gray { return color.Gray{Y: v} }
