package texel

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFBM_EmptyInput(t *testing.T) {
	_, err := FBM(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, EmptyInput, KindOf(err))

	_, err = FBM([]image.Image{}, &FBMOptions{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestFBM_SingleFullRangeOctaveIsUnchanged(t *testing.T) {
	src := randomGray(51, 16, 16)
	src.Pix[0], src.Pix[1] = 0, 255

	res, err := FBM([]image.Image{src}, nil)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, res.Pix)
}

func TestFBM_SingleOctaveIsStretched(t *testing.T) {
	src := grayFrom(4, 1, 50, 75, 100, 150)

	res, err := FBM([]image.Image{src}, nil)
	require.NoError(t, err)

	want := make([]uint8, len(src.Pix))
	for i, v := range src.Pix {
		want[i] = uint8(math.Min((float64(v)-50)*(255.0/100.0), 255))
	}
	assert.Equal(t, want, res.Pix)
	assert.Equal(t, uint8(0), res.Pix[0])
	assert.Equal(t, uint8(255), res.Pix[3])
}

func TestFBM_OctaveWeights(t *testing.T) {
	weights := octaveWeights(3)
	assert.InDelta(t, 4.0/7, weights[0], 1e-12)
	assert.InDelta(t, 2.0/7, weights[1], 1e-12)
	assert.InDelta(t, 1.0/7, weights[2], 1e-12)

	for n := 1; n < 10; n++ {
		var sum float64
		for _, w := range octaveWeights(n) {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestFBM_BaseOctaveDominates(t *testing.T) {
	base := grayFrom(3, 1, 0, 255, 0)
	detail := grayFrom(3, 1, 0, 0, 255)

	res, err := FBM([]image.Image{base, detail}, nil)
	require.NoError(t, err)

	// 2/3 of the base plus 1/3 of the detail, stretched to the full range.
	assert.Equal(t, uint8(0), res.Pix[0])
	assert.Equal(t, uint8(255), res.Pix[1])
	assert.InDelta(t, 127, int(res.Pix[2]), 1)
}

func TestFBM_ResamplesToBaseSize(t *testing.T) {
	base := randomGray(52, 32, 24)
	octaves := []image.Image{base, randomGray(53, 16, 12), randomGray(54, 64, 64), randomNRGBA(55, 8, 8)}

	for _, r := range []Resample{Linear, Nearest} {
		res, err := FBM(octaves, &FBMOptions{Resample: r})
		require.NoError(t, err)
		assert.Equal(t, base.Bounds(), res.Bounds())
	}
}

func TestFBM_StrictRejectsMismatch(t *testing.T) {
	octaves := []image.Image{randomGray(56, 8, 8), randomGray(57, 4, 4)}

	_, err := FBM(octaves, &FBMOptions{Strict: true})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, DimensionMismatch, KindOf(err))
}

func TestFBM_EmptyOctave(t *testing.T) {
	octaves := []image.Image{randomGray(59, 4, 4), image.NewGray(image.Rect(0, 0, 0, 0))}

	_, err := FBM(octaves, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "octave 1")

	_, err = FBM([]image.Image{image.NewGray(image.Rect(0, 0, 3, 0))}, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFBM_DegenerateRange(t *testing.T) {
	octaves := []image.Image{uniformGray(8, 8, 90), uniformGray(8, 8, 90)}

	_, err := FBM(octaves, nil)
	assert.ErrorIs(t, err, ErrDegenerateRange)
	assert.Equal(t, DegenerateRange, KindOf(err))
}

func TestFBM_UnknownResample(t *testing.T) {
	_, err := FBM([]image.Image{randomGray(58, 4, 4)}, &FBMOptions{Resample: "lanczos"})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestFBM_ColorOctaveIsConverted(t *testing.T) {
	rgb := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	rgb.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	rgb.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})

	res, err := FBM([]image.Image{rgb}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 255}, res.Pix)
}
