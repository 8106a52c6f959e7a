// Copyright Slam Academy, 2026. All rights reserved.

// Package compare scores rendered slides against reference images with a
// windowed structural-similarity measure. The score is a diagnostic
// heuristic only; nothing feeds back into the rebuild stage.
// See docs/ARCHITECTURE.md § Verification.
package compare

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// SSIM parameters: 7x7 uniform window and the standard stability
// constants for a unit data range.
const (
	winSize = 7
	c1      = 0.01 * 0.01
	c2      = 0.03 * 0.03
)

// grayImage is a float64 grayscale raster with values in [0, 1].
type grayImage struct {
	w, h int
	pix  []float64
}

func newGrayImage(w, h int) *grayImage {
	return &grayImage{w: w, h: h, pix: make([]float64, w*h)}
}

func (g *grayImage) at(x, y int) float64  { return g.pix[y*g.w+x] }
func (g *grayImage) set(x, y int, v float64) { g.pix[y*g.w+x] = v }

// toGray converts an image to float64 grayscale using the ITU-R BT.709
// luminance weights the reference comparisons were scored with.
func toGray(img image.Image) *grayImage {
	b := img.Bounds()
	g := newGrayImage(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, gr, bl, _ := img.At(x, y).RGBA()
			lum := 0.2125*float64(r) + 0.7154*float64(gr) + 0.0721*float64(bl)
			g.set(x-b.Min.X, y-b.Min.Y, lum/65535.0)
		}
	}
	return g
}

// resizeTo resamples src to w x h with Catmull-Rom interpolation.
func resizeTo(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// integralImage supports O(1) window sums over a grayImage product.
type integralImage struct {
	w, h int
	sum  []float64
}

// integralOf builds the summed-area table of a single image's values.
func integralOf(a *grayImage) *integralImage {
	w, h := a.w, a.h
	ii := &integralImage{w: w + 1, h: h + 1, sum: make([]float64, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += a.at(x, y)
			ii.sum[(y+1)*ii.w+(x+1)] = ii.sum[y*ii.w+(x+1)] + rowSum
		}
	}
	return ii
}

// integralProduct builds the summed-area table of the pixelwise product
// of two images. Pass the same image twice for squared sums.
func integralProduct(a, b *grayImage) *integralImage {
	w, h := a.w, a.h
	ii := &integralImage{w: w + 1, h: h + 1, sum: make([]float64, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += a.at(x, y) * b.at(x, y)
			ii.sum[(y+1)*ii.w+(x+1)] = ii.sum[y*ii.w+(x+1)] + rowSum
		}
	}
	return ii
}

// window returns the sum over [x0,x1] x [y0,y1], inclusive.
func (ii *integralImage) window(x0, y0, x1, y1 int) float64 {
	x1++
	y1++
	return ii.sum[y1*ii.w+x1] - ii.sum[y0*ii.w+x1] - ii.sum[y1*ii.w+x0] + ii.sum[y0*ii.w+x0]
}

// ssim computes the mean windowed structural similarity between two
// equally sized grayscale images, and the full per-pixel similarity map.
// The mean is taken over the interior region where the window fits
// entirely, matching how the reference scores were produced; the map
// covers every pixel, with the window clamped at the borders.
func ssim(a, b *grayImage) (float64, *grayImage, error) {
	if a.w != b.w || a.h != b.h {
		return 0, nil, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", a.w, a.h, b.w, b.h)
	}
	if a.w < winSize || a.h < winSize {
		return 0, nil, fmt.Errorf("images smaller than the %dx%d comparison window", winSize, winSize)
	}

	iiA := integralOf(a)
	iiB := integralOf(b)
	iiAA := integralProduct(a, a)
	iiBB := integralProduct(b, b)
	iiAB := integralProduct(a, b)

	pad := winSize / 2
	smap := newGrayImage(a.w, a.h)
	var total float64
	var count int

	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			x0, y0 := max(0, x-pad), max(0, y-pad)
			x1, y1 := min(a.w-1, x+pad), min(a.h-1, y+pad)
			n := float64((x1 - x0 + 1) * (y1 - y0 + 1))

			ux := iiA.window(x0, y0, x1, y1) / n
			uy := iiB.window(x0, y0, x1, y1) / n
			covNorm := n / (n - 1)
			vx := covNorm * (iiAA.window(x0, y0, x1, y1)/n - ux*ux)
			vy := covNorm * (iiBB.window(x0, y0, x1, y1)/n - uy*uy)
			vxy := covNorm * (iiAB.window(x0, y0, x1, y1)/n - ux*uy)

			s := ((2*ux*uy + c1) * (2*vxy + c2)) / ((ux*ux + uy*uy + c1) * (vx + vy + c2))
			smap.set(x, y, s)

			if x >= pad && x < a.w-pad && y >= pad && y < a.h-pad {
				total += s
				count++
			}
		}
	}
	return total / float64(count), smap, nil
}
