// Copyright Slam Academy, 2026. All rights reserved.

package compare

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "image/jpeg" // reference images are occasionally JPEG

	"github.com/slamacademy/deckfix/pkg/types"
)

// Reference images are named slide-NN.png, exports export_slide_NN.png.
const (
	refPrefix    = "slide-"
	exportPrefix = "export_slide_"
)

// Comparator scores exported slide images against references and writes
// per-slide difference heatmaps.
type Comparator struct {
	RefDir    string
	ExportDir string
	DiffDir   string
}

// RefPath returns the reference image path for a 1-based slide number.
func (c *Comparator) RefPath(slide int) string {
	return filepath.Join(c.RefDir, fmt.Sprintf("%s%02d.png", refPrefix, slide))
}

// ExportPath returns the exported image path for a 1-based slide number.
func (c *Comparator) ExportPath(slide int) string {
	return filepath.Join(c.ExportDir, fmt.Sprintf("%s%02d.png", exportPrefix, slide))
}

// SlideNumbers returns 1..N where N is the highest slide number present
// in either the reference or export directory, so the report covers both
// slides that failed to render and references with no matching export.
func (c *Comparator) SlideNumbers() ([]int, error) {
	maxRef, err := maxSlideNumber(c.RefDir, refPrefix)
	if err != nil {
		return nil, err
	}
	maxExp, err := maxSlideNumber(c.ExportDir, exportPrefix)
	if err != nil {
		return nil, err
	}
	n := max(maxRef, maxExp)
	nums := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		nums = append(nums, i)
	}
	return nums, nil
}

func maxSlideNumber(dir, prefix string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.png"))
	if err != nil {
		return 0, fmt.Errorf("globbing %s: %w", dir, err)
	}
	sort.Strings(matches)
	maxN := 0
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".png")
		numPart := strings.TrimPrefix(base, prefix)
		if n, err := strconv.Atoi(numPart); err == nil && n > maxN {
			maxN = n
		}
	}
	return maxN, nil
}

// CompareSlide scores one slide. A missing or unreadable reference or
// export does not abort the run; the slide is reported with the matching
// missing status and the remaining slides still get compared.
func (c *Comparator) CompareSlide(slide int) types.SlideResult {
	refImg, err := loadImage(c.RefPath(slide))
	if err != nil {
		return types.SlideResult{Slide: slide, Status: types.StatusMissingRef}
	}
	expImg, err := loadImage(c.ExportPath(slide))
	if err != nil {
		return types.SlideResult{Slide: slide, Status: types.StatusMissingExport}
	}

	rb := refImg.Bounds()
	if eb := expImg.Bounds(); eb.Dx() != rb.Dx() || eb.Dy() != rb.Dy() {
		expImg = resizeTo(expImg, rb.Dx(), rb.Dy())
	}

	score, smap, err := ssim(toGray(refImg), toGray(expImg))
	if err != nil {
		return types.SlideResult{Slide: slide, Status: types.StatusMissingExport}
	}

	result := types.SlideResult{
		Slide:  slide,
		Score:  score,
		Status: types.Classify(score),
	}
	if path, err := c.writeDiff(slide, smap); err == nil {
		result.DiffPath = path
	}
	return result
}

// writeDiff renders the inverted similarity map, so differences show up
// bright, and writes it under the diff directory.
func (c *Comparator) writeDiff(slide int, smap *grayImage) (string, error) {
	if c.DiffDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(c.DiffDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", c.DiffDir, err)
	}

	img := image.NewGray(image.Rect(0, 0, smap.w, smap.h))
	for y := 0; y < smap.h; y++ {
		for x := 0; x < smap.w; x++ {
			d := (1 - smap.at(x, y)) * 255
			if d < 0 {
				d = 0
			}
			if d > 255 {
				d = 255
			}
			img.SetGray(x, y, gray8(d))
		}
	}

	path := filepath.Join(c.DiffDir, fmt.Sprintf("diff_slide_%02d.png", slide))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	encErr := png.Encode(f, img)
	closeErr := f.Close()
	if encErr != nil {
		return "", fmt.Errorf("encoding %s: %w", path, encErr)
	}
	if closeErr != nil {
		return "", closeErr
	}
	return path, nil
}

func gray8(v float64) color.Gray {
	return color.Gray{Y: uint8(v + 0.5)}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
