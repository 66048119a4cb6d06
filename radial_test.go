package texel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadialBlur_CenterPixelUnchanged(t *testing.T) {
	src := randomNRGBA(41, 9, 7)

	for _, k := range []float64{0.01, 0.5, 3, 100} {
		res, err := RadialBlur(src, nil, k)
		require.NoError(t, err)
		assert.Equal(t, src.NRGBAAt(4, 3), res.(*image.NRGBA).NRGBAAt(4, 3), "strength %v", k)

		center := image.Point{X: 1, Y: 5}
		res, err = RadialBlur(src, &center, k)
		require.NoError(t, err)
		assert.Equal(t, src.NRGBAAt(1, 5), res.(*image.NRGBA).NRGBAAt(1, 5), "strength %v", k)
	}
}

func TestRadialBlur_SamplesTowardsCenter(t *testing.T) {
	src := grayFrom(5, 1, 0, 30, 60, 90, 120)

	res, err := RadialBlur(src, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 45, 60, 75, 90}, res.(*image.Gray).Pix)
}

func TestRadialBlur_WeakStrengthIsIdentity(t *testing.T) {
	src := randomGray(42, 10, 10)

	// Every pixel is closer than 1/strength to the center, so only the pixel itself is sampled.
	res, err := RadialBlur(src, nil, 0.01)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, res.(*image.Gray).Pix)
}

func TestRadialBlur_OffImageCenter(t *testing.T) {
	src := randomNRGBA(43, 8, 8)
	center := image.Point{X: -20, Y: 40}

	res, err := RadialBlur(src, &center, 0.5)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), res.Bounds())
}

func TestRadialBlur_HugeStrength(t *testing.T) {
	src := randomGray(44, 6, 6)

	res, err := RadialBlur(src, nil, 1e300)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), res.Bounds())
}

func TestRadialBlur_KeepsColorDepth(t *testing.T) {
	gray, err := RadialBlur(randomGray(45, 4, 4), nil, 0.5)
	require.NoError(t, err)
	assert.IsType(t, &image.Gray{}, gray)

	rgb, err := RadialBlur(randomNRGBA(46, 4, 4), nil, 0.5)
	require.NoError(t, err)
	assert.IsType(t, &image.NRGBA{}, rgb)
}

func TestRadialBlur_InvalidStrength(t *testing.T) {
	for _, k := range []float64{0, -0.5} {
		_, err := RadialBlur(randomGray(1, 3, 3), nil, k)
		assert.ErrorIs(t, err, ErrInvalidStrength)
	}
}
