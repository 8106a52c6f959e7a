// Copyright Slam Academy, 2026. All rights reserved.

package compare

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatGray builds a w x h grayImage filled with v.
func flatGray(w, h int, v float64) *grayImage {
	g := newGrayImage(w, h)
	for i := range g.pix {
		g.pix[i] = v
	}
	return g
}

// checkerboard builds an 8x8-cell checkerboard pattern.
func checkerboard(w, h int, invert bool) *grayImage {
	g := newGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			on := ((x/8)+(y/8))%2 == 0
			if invert {
				on = !on
			}
			if on {
				g.set(x, y, 1.0)
			}
		}
	}
	return g
}

func TestSSIMIdenticalImages(t *testing.T) {
	a := checkerboard(32, 32, false)
	b := checkerboard(32, 32, false)

	score, smap, err := ssim(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Equal(t, 32, smap.w)
	assert.Equal(t, 32, smap.h)
}

func TestSSIMOppositeImages(t *testing.T) {
	white := flatGray(32, 32, 1.0)
	black := flatGray(32, 32, 0.0)

	score, _, err := ssim(white, black)
	require.NoError(t, err)
	assert.Less(t, score, 0.01, "white vs black should score near zero")
}

func TestSSIMOrdersBySimilarity(t *testing.T) {
	base := checkerboard(64, 64, false)
	inverted := checkerboard(64, 64, true)

	// A mildly dimmed copy of the same pattern.
	dimmed := newGrayImage(64, 64)
	for i, v := range base.pix {
		dimmed.pix[i] = v * 0.9
	}

	same, _, err := ssim(base, dimmed)
	require.NoError(t, err)
	opposite, _, err := ssim(base, inverted)
	require.NoError(t, err)

	assert.Greater(t, same, opposite)
	assert.Greater(t, same, 0.9)
}

func TestSSIMSizeMismatch(t *testing.T) {
	_, _, err := ssim(flatGray(32, 32, 0.5), flatGray(16, 32, 0.5))
	assert.Error(t, err)
}

func TestSSIMBelowWindowSize(t *testing.T) {
	_, _, err := ssim(flatGray(4, 4, 0.5), flatGray(4, 4, 0.5))
	assert.Error(t, err)
}

func TestToGray(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)

	g := toGray(img)
	assert.InDelta(t, 1.0, g.at(0, 0), 1e-3)
	assert.InDelta(t, 0.0, g.at(1, 0), 1e-3)
}

func TestResizeTo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	dst := resizeTo(src, 32, 16)
	b := dst.Bounds()
	assert.Equal(t, 32, b.Dx())
	assert.Equal(t, 16, b.Dy())
}

func TestIntegralWindowSums(t *testing.T) {
	// 3x3 image with values 1..9 row-major.
	g := newGrayImage(3, 3)
	for i := range g.pix {
		g.pix[i] = float64(i + 1)
	}
	ii := integralOf(g)

	assert.InDelta(t, 45.0, ii.window(0, 0, 2, 2), 1e-12, "full image sum")
	assert.InDelta(t, 1.0, ii.window(0, 0, 0, 0), 1e-12, "top-left pixel")
	assert.InDelta(t, 5.0+6.0+8.0+9.0, ii.window(1, 1, 2, 2), 1e-12, "bottom-right quad")

	sq := integralProduct(g, g)
	assert.InDelta(t, 1+4+9+16+25+36+49+64+81, sq.window(0, 0, 2, 2), 1e-12, "squared sums")
}
