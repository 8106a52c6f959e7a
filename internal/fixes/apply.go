// Copyright Slam Academy, 2026. All rights reserved.

package fixes

import (
	"fmt"
	"io"
	"sort"

	"github.com/slamacademy/deckfix/internal/pptx"
	"github.com/slamacademy/deckfix/pkg/types"
)

// titleBandInches is the top band within which a text shape counts as the
// slide title. The same rule was used when the records were measured.
const titleBandInches = 0.8

// Text boxes taller than clampThreshold get shrunk to an estimate of
// their content height. The Figma export defaulted nearly every text box
// to the full slide height.
const (
	clampThresholdInches = 4.5
	clampMaxInches       = 4.0
	clampMinInches       = 0.5
	inchesPerLine        = 0.25
)

// Apply locates each record's target shape and overwrites its geometry.
// The first missing slide or shape aborts the run: the table either
// applies completely or not at all, and recovery is the pre-run backup.
func Apply(doc *pptx.Document, records []types.FixRecord, w io.Writer) error {
	for _, rec := range records {
		slide, err := doc.Slide(rec.Slide)
		if err != nil {
			return err
		}
		shape, err := Locate(slide, rec.Select)
		if err != nil {
			return fmt.Errorf("slide %d (%s): %w", rec.Slide, rec.Note, err)
		}
		applyGeometry(shape, rec)
		fmt.Fprintf(w, "  slide %2d %-18s at (%.2f\", %.2f\") %.2f\" x %.2f\"\n",
			rec.Slide, rec.Note,
			pptx.EMUToInch(shape.OffsetX()), pptx.EMUToInch(shape.OffsetY()),
			pptx.EMUToInch(shape.Width()), pptx.EMUToInch(shape.Height()))
	}
	return nil
}

// applyGeometry writes the record's targets onto the shape. Negative
// targets keep the current value; aspect-locked records derive height
// from the shape's current width/height ratio.
func applyGeometry(shape *pptx.Shape, rec types.FixRecord) {
	x, y := shape.OffsetX(), shape.OffsetY()
	if rec.Left >= 0 {
		x = pptx.Inch(rec.Left)
	}
	if rec.Top >= 0 {
		y = pptx.Inch(rec.Top)
	}
	shape.SetPosition(x, y)

	if rec.LockAspect && rec.Width >= 0 {
		aspect := shape.AspectRatio()
		w := rec.Width
		h := w / aspect
		if rec.MaxHeight > 0 && h > rec.MaxHeight {
			h = rec.MaxHeight
			w = h * aspect
		}
		shape.SetSize(pptx.Inch(w), pptx.Inch(h))
		return
	}

	cw, ch := shape.Width(), shape.Height()
	if rec.Width >= 0 {
		cw = pptx.Inch(rec.Width)
	}
	if rec.Height >= 0 {
		ch = pptx.Inch(rec.Height)
	}
	shape.SetSize(cw, ch)
}

// Locate resolves a selector to exactly one shape on the slide.
func Locate(slide *pptx.SlidePart, sel types.Selector) (*pptx.Shape, error) {
	shapes := slide.Shapes()
	switch sel.Kind {
	case types.SelectByName:
		for _, s := range shapes {
			if s.Name() == sel.Name {
				return s, nil
			}
		}
		return nil, fmt.Errorf("no shape named %q", sel.Name)

	case types.SelectByIndex:
		if sel.Rank < 0 || sel.Rank >= len(shapes) {
			return nil, fmt.Errorf("shape index %d out of range (%d shapes)", sel.Rank, len(shapes))
		}
		return shapes[sel.Rank], nil

	case types.SelectTitle:
		if t := titleShape(shapes); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("no title shape in the top %.1f\"", titleBandInches)

	case types.SelectBody:
		body := bodyShapes(shapes)
		if sel.Rank >= len(body) {
			return nil, fmt.Errorf("body shape %d not found (%d body shapes)", sel.Rank, len(body))
		}
		return body[sel.Rank], nil

	case types.SelectPictureByArea:
		return rankedPicture(shapes, sel.Rank, byAreaDesc)

	case types.SelectPictureByAspect:
		return rankedPicture(shapes, sel.Rank, byAspectDesc)
	}
	return nil, fmt.Errorf("unknown selector kind %q", sel.Kind)
}

// titleShape returns the topmost text shape inside the title band.
func titleShape(shapes []*pptx.Shape) *pptx.Shape {
	var title *pptx.Shape
	for _, s := range shapes {
		if !s.HasTextFrame() {
			continue
		}
		if pptx.EMUToInch(s.OffsetY()) >= titleBandInches {
			continue
		}
		if title == nil || s.OffsetY() < title.OffsetY() {
			title = s
		}
	}
	return title
}

// bodyShapes returns non-title text shapes ordered left to right, then
// top to bottom. Column ranks in the fix table index into this order.
func bodyShapes(shapes []*pptx.Shape) []*pptx.Shape {
	title := titleShape(shapes)
	var body []*pptx.Shape
	for _, s := range shapes {
		if s.HasTextFrame() && s != title {
			body = append(body, s)
		}
	}
	sort.SliceStable(body, func(i, j int) bool {
		if body[i].OffsetX() != body[j].OffsetX() {
			return body[i].OffsetX() < body[j].OffsetX()
		}
		return body[i].OffsetY() < body[j].OffsetY()
	})
	return body
}

func byAreaDesc(a, b *pptx.Shape) bool {
	return a.Width()*a.Height() > b.Width()*b.Height()
}

func byAspectDesc(a, b *pptx.Shape) bool {
	return a.AspectRatio() > b.AspectRatio()
}

func rankedPicture(shapes []*pptx.Shape, rank int, less func(a, b *pptx.Shape) bool) (*pptx.Shape, error) {
	var pics []*pptx.Shape
	for _, s := range shapes {
		if s.Kind() == pptx.KindPicture {
			pics = append(pics, s)
		}
	}
	if rank >= len(pics) {
		return nil, fmt.Errorf("picture %d not found (%d pictures)", rank, len(pics))
	}
	sort.SliceStable(pics, func(i, j int) bool { return less(pics[i], pics[j]) })
	return pics[rank], nil
}

// ClampTextHeights shrinks any text box taller than the clamp threshold
// to an estimate of its content height (0.25" per line). The export left
// almost every text frame at the full placeholder height, which pushed
// later shapes off the slide.
func ClampTextHeights(doc *pptx.Document, w io.Writer) {
	for i, slide := range doc.Slides() {
		for _, shape := range slide.Shapes() {
			if !shape.HasTextFrame() {
				continue
			}
			heightIn := pptx.EMUToInch(shape.Height())
			if heightIn <= clampThresholdInches {
				continue
			}
			lines := 1 + countNewlines(shape.Text())
			est := float64(lines) * inchesPerLine
			if est < clampMinInches {
				est = clampMinInches
			}
			if est > clampMaxInches {
				est = clampMaxInches
			}
			shape.SetSize(shape.Width(), pptx.Inch(est))
			fmt.Fprintf(w, "  slide %2d: clamped %q height %.2f\" -> %.2f\"\n",
				i+1, shape.Name(), heightIn, est)
		}
	}
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
