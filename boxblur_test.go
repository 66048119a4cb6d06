package texel

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveBoxBlur averages the clamped window of every pixel with plain loops.
func naiveBoxBlur(p *plane, radius int) []uint8 {
	out := make([]uint8, len(p.pix))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			for c := 0; c < p.channels; c++ {
				var sum, count int
				for wy := y - radius; wy <= y+radius; wy++ {
					for wx := x - radius; wx <= x+radius; wx++ {
						if wx < 0 || wy < 0 || wx >= p.width || wy >= p.height {
							continue
						}
						sum += int(p.pix[p.offset(wx, wy)+c])
						count++
					}
				}
				out[p.offset(x, y)+c] = uint8(sum / count)
			}
		}
	}
	return out
}

func TestBoxBlur_ZeroRadiusIsIdentity(t *testing.T) {
	gray := randomGray(21, 9, 7)
	res, err := BoxBlur(gray, 0)
	require.NoError(t, err)
	assert.Equal(t, gray.Pix, res.(*image.Gray).Pix)

	rgb := randomNRGBA(22, 9, 7)
	res, err = BoxBlur(rgb, 0)
	require.NoError(t, err)
	assert.Equal(t, rgb.Pix, res.(*image.NRGBA).Pix)
}

func TestBoxBlur_ThreeByThree(t *testing.T) {
	src := grayFrom(3, 3,
		10, 20, 30,
		40, 50, 60,
		70, 80, 90,
	)

	res, err := BoxBlur(src, 1)
	require.NoError(t, err)
	dst := res.(*image.Gray)

	assert.Equal(t, uint8(50), dst.GrayAt(1, 1).Y, "center is the global mean")
	assert.Equal(t, uint8(30), dst.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(40), dst.GrayAt(2, 0).Y)
	assert.Equal(t, uint8(60), dst.GrayAt(0, 2).Y)
	assert.Equal(t, uint8(70), dst.GrayAt(2, 2).Y)
	assert.Equal(t, uint8(35), dst.GrayAt(1, 0).Y)
}

func TestBoxBlur_MatchesWindowMean(t *testing.T) {
	testCases := []struct {
		name   string
		img    image.Image
		radius int
	}{
		{"gray r1", randomGray(31, 12, 9), 1},
		{"gray r2", randomGray(32, 12, 9), 2},
		{"gray r5", randomGray(33, 7, 13), 5},
		{"rgb r1", randomNRGBA(34, 10, 10), 1},
		{"rgb r3", randomNRGBA(35, 11, 6), 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := BoxBlur(tc.img, tc.radius)
			require.NoError(t, err)

			want := naiveBoxBlur(planeOf(tc.img), tc.radius)
			assert.Equal(t, want, planeOf(res).pix)
			assert.Equal(t, tc.img.Bounds(), res.Bounds())
		})
	}
}

func TestBoxBlur_LargeRadiusGivesGlobalMean(t *testing.T) {
	src := grayFrom(2, 2, 0, 100, 200, 101)

	res, err := BoxBlur(src, 50)
	require.NoError(t, err)
	for _, v := range res.(*image.Gray).Pix {
		assert.Equal(t, uint8(100), v)
	}
}

func TestBoxBlur_MaxRadius(t *testing.T) {
	src := grayFrom(2, 2, 0, 100, 200, 101)

	res, err := BoxBlur(src, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []uint8{100, 100, 100, 100}, res.(*image.Gray).Pix)

	rgb := randomNRGBA(13, 5, 3)
	huge, err := BoxBlur(rgb, math.MaxInt)
	require.NoError(t, err)
	whole, err := BoxBlur(rgb, 5)
	require.NoError(t, err)
	assert.Equal(t, whole, huge)
}

func TestBoxBlur_KeepsChannelsIndependent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	copy(src.Pix, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	})

	res, err := BoxBlur(src, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		127, 127, 0, 255,
		85, 85, 85, 255,
		0, 127, 127, 255,
	}, res.(*image.NRGBA).Pix)
}

func TestBoxBlur_NegativeRadius(t *testing.T) {
	_, err := BoxBlur(randomGray(1, 3, 3), -1)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	assert.Equal(t, InvalidParameter, KindOf(err))
}
