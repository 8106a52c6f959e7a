// Copyright Slam Academy, 2026. All rights reserved.

package fixes

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slamacademy/deckfix/internal/pptx"
	"github.com/slamacademy/deckfix/pkg/types"
)

const slideXMLTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr/>
%s
</p:spTree></p:cSld>
</p:sld>`

// textBox renders a p:sp with a single-run text body at the given
// geometry in inches.
func textBox(id int, name, text string, left, top, width, height float64) string {
	return fmt.Sprintf(`<p:sp>
<p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody>
</p:sp>`, id, name, pptx.Inch(left), pptx.Inch(top), pptx.Inch(width), pptx.Inch(height), text)
}

// picture renders a p:pic at the given geometry in inches.
func picture(id int, name string, left, top, width, height float64) string {
	return fmt.Sprintf(`<p:pic>
<p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>
<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>
<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr>
</p:pic>`, id, name, pptx.Inch(left), pptx.Inch(top), pptx.Inch(width), pptx.Inch(height))
}

// openDeck builds a one-slide PPTX with the given spTree shapes and
// opens it.
func openDeck(t *testing.T, shapes string) *pptx.Document {
	t.Helper()

	parts := map[string]string{
		"ppt/presentation.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst><p:sldSz cx="9144000" cy="5143500"/></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/></Relationships>`,
		"ppt/slides/slide1.xml": fmt.Sprintf(slideXMLTmpl, shapes),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	doc, err := pptx.Open(path)
	require.NoError(t, err)
	return doc
}

// standardShapes is a slide with a title, two body columns, and two
// pictures: one wide and thin, one large and square-ish.
func standardShapes() string {
	return textBox(2, "Title 1", "Take It Further", 0.5, 0.2, 9.0, 0.6) +
		textBox(3, "Right Column", "Gigs", 5.1, 1.1, 4.0, 2.0) +
		textBox(4, "Left Column", "Practice", 0.3, 1.2, 4.0, 2.0) +
		picture(5, "Wide Strip", 0.5, 4.2, 8.0, 1.0) +
		picture(6, "Big Photo", 5.0, 1.0, 5.0, 4.0)
}

func TestLocateTitle(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, err := doc.Slide(1)
	require.NoError(t, err)

	shape, err := Locate(slide, types.Selector{Kind: types.SelectTitle})
	require.NoError(t, err)
	assert.Equal(t, "Title 1", shape.Name())
}

func TestLocateTitleMissing(t *testing.T) {
	// Every text box sits below the title band.
	doc := openDeck(t, textBox(2, "Body", "text", 0.5, 2.0, 4.0, 1.0))
	slide, _ := doc.Slide(1)

	_, err := Locate(slide, types.Selector{Kind: types.SelectTitle})
	assert.Error(t, err)
}

func TestLocateBodyOrderedLeftToRight(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)

	left, err := Locate(slide, types.Selector{Kind: types.SelectBody, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, "Left Column", left.Name(), "rank 0 should be the leftmost body")

	right, err := Locate(slide, types.Selector{Kind: types.SelectBody, Rank: 1})
	require.NoError(t, err)
	assert.Equal(t, "Right Column", right.Name())

	_, err = Locate(slide, types.Selector{Kind: types.SelectBody, Rank: 2})
	assert.Error(t, err)
}

func TestLocatePictureByArea(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)

	// Big Photo: 5.0 x 4.0 = 20 sq in. Wide Strip: 8.0 x 1.0 = 8 sq in.
	big, err := Locate(slide, types.Selector{Kind: types.SelectPictureByArea, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, "Big Photo", big.Name())

	strip, err := Locate(slide, types.Selector{Kind: types.SelectPictureByArea, Rank: 1})
	require.NoError(t, err)
	assert.Equal(t, "Wide Strip", strip.Name())
}

func TestLocatePictureByAspect(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)

	// Wide Strip: aspect 8.0. Big Photo: aspect 1.25.
	strip, err := Locate(slide, types.Selector{Kind: types.SelectPictureByAspect, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, "Wide Strip", strip.Name())

	_, err = Locate(slide, types.Selector{Kind: types.SelectPictureByAspect, Rank: 2})
	assert.Error(t, err)
}

func TestLocateByNameAndIndex(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)

	shape, err := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Big Photo"})
	require.NoError(t, err)
	assert.Equal(t, "Big Photo", shape.Name())

	_, err = Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Nope"})
	assert.Error(t, err)

	first, err := Locate(slide, types.Selector{Kind: types.SelectByIndex, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, "Title 1", first.Name())

	_, err = Locate(slide, types.Selector{Kind: types.SelectByIndex, Rank: 99})
	assert.Error(t, err)
}

func TestApplySetsExactGeometry(t *testing.T) {
	doc := openDeck(t, standardShapes())

	records := []types.FixRecord{
		{Slide: 1, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
			Left: 0.2, Top: 1.25, Width: 4.6, Height: 4.0, Note: "left column"},
	}
	require.NoError(t, Apply(doc, records, io.Discard))

	slide, _ := doc.Slide(1)
	shape, err := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Left Column"})
	require.NoError(t, err)
	assert.Equal(t, pptx.Inch(0.2), shape.OffsetX())
	assert.Equal(t, pptx.Inch(1.25), shape.OffsetY())
	assert.Equal(t, pptx.Inch(4.6), shape.Width())
	assert.Equal(t, pptx.Inch(4.0), shape.Height())
}

func TestApplyNegativeTargetsKeepCurrentValues(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)
	before, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Big Photo"})
	origX, origH := before.OffsetX(), before.Height()

	records := []types.FixRecord{
		{Slide: 1, Select: types.Selector{Kind: types.SelectByName, Name: "Big Photo"},
			Left: -1, Top: 0.8, Width: 4.0, Height: -1, Note: "photo"},
	}
	require.NoError(t, Apply(doc, records, io.Discard))

	assert.Equal(t, origX, before.OffsetX(), "negative left keeps the offset")
	assert.Equal(t, pptx.Inch(0.8), before.OffsetY())
	assert.Equal(t, pptx.Inch(4.0), before.Width())
	assert.Equal(t, origH, before.Height(), "negative height keeps the extent")
}

func TestApplyAspectLock(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)
	photo, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Big Photo"})
	aspect := photo.AspectRatio() // 5.0 / 4.0

	records := []types.FixRecord{
		{Slide: 1, Select: types.Selector{Kind: types.SelectByName, Name: "Big Photo"},
			Left: 5.0, Top: 0.8, Width: 4.5, Height: -1, LockAspect: true, MaxHeight: 4.8,
			Note: "photo"},
	}
	require.NoError(t, Apply(doc, records, io.Discard))

	assert.Equal(t, pptx.Inch(4.5), photo.Width())
	assert.InDelta(t, 4.5/aspect, pptx.EMUToInch(photo.Height()), 1e-4)
	assert.InDelta(t, aspect, photo.AspectRatio(), 1e-3, "aspect ratio survives the resize")
}

func TestApplyAspectLockCapsHeight(t *testing.T) {
	doc := openDeck(t, standardShapes())
	slide, _ := doc.Slide(1)
	photo, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Big Photo"})
	aspect := photo.AspectRatio()

	// Width 4.5 at aspect 1.25 wants height 3.6; cap at 2.0 and recompute.
	records := []types.FixRecord{
		{Slide: 1, Select: types.Selector{Kind: types.SelectByName, Name: "Big Photo"},
			Left: 5.0, Top: 0.8, Width: 4.5, Height: -1, LockAspect: true, MaxHeight: 2.0,
			Note: "photo"},
	}
	require.NoError(t, Apply(doc, records, io.Discard))

	assert.Equal(t, pptx.Inch(2.0), photo.Height())
	assert.InDelta(t, 2.0*aspect, pptx.EMUToInch(photo.Width()), 1e-4)
}

func TestApplyAbortsOnMissingShape(t *testing.T) {
	doc := openDeck(t, standardShapes())

	records := []types.FixRecord{
		{Slide: 1, Select: types.Selector{Kind: types.SelectByName, Name: "Ghost"},
			Left: 0, Top: 0, Width: 1, Height: 1, Note: "ghost"},
	}
	err := Apply(doc, records, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestApplyAbortsOnMissingSlide(t *testing.T) {
	doc := openDeck(t, standardShapes())

	records := []types.FixRecord{
		{Slide: 7, Select: types.Selector{Kind: types.SelectTitle},
			Left: 0, Top: 0, Width: 1, Height: 1, Note: "title"},
	}
	assert.Error(t, Apply(doc, records, io.Discard))
}

func TestClampTextHeights(t *testing.T) {
	tall := `<p:sp>
<p:nvSpPr><p:cNvPr id="2" name="Runaway"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="182880" y="1005840"/><a:ext cx="3657600" cy="5143500"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:p><a:r><a:t>one</a:t></a:r></a:p><a:p><a:r><a:t>two</a:t></a:r></a:p><a:p><a:r><a:t>three</a:t></a:r></a:p></p:txBody>
</p:sp>`
	doc := openDeck(t, tall+textBox(3, "Fine", "short", 0.2, 2.0, 4.0, 1.0))

	var out bytes.Buffer
	ClampTextHeights(doc, &out)

	slide, _ := doc.Slide(1)
	runaway, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Runaway"})
	// Three paragraphs at 0.25" per line.
	assert.Equal(t, pptx.Inch(0.75), runaway.Height())
	assert.Contains(t, out.String(), "Runaway")

	fine, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "Fine"})
	assert.Equal(t, pptx.Inch(1.0), fine.Height(), "boxes under the threshold stay put")
}

func TestClampTextHeightsMinimum(t *testing.T) {
	// A single-line box estimates 0.25", below the 0.5" floor.
	doc := openDeck(t, textBox(2, "One Liner", "hello", 0.2, 0.9, 4.0, 5.0))

	ClampTextHeights(doc, io.Discard)

	slide, _ := doc.Slide(1)
	shape, _ := Locate(slide, types.Selector{Kind: types.SelectByName, Name: "One Liner"})
	assert.Equal(t, pptx.Inch(0.5), shape.Height())
}

func TestTablesCoverExpectedSlides(t *testing.T) {
	slidesOf := func(records []types.FixRecord) map[int]bool {
		got := make(map[int]bool)
		for _, r := range records {
			got[r.Slide] = true
		}
		return got
	}

	assert.Equal(t, map[int]bool{2: true, 9: true, 18: true}, slidesOf(DefaultTable()))
	assert.Equal(t, map[int]bool{2: true, 9: true, 12: true, 17: true, 18: true}, slidesOf(FullTable()))
}
