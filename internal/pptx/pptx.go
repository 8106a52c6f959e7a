// Copyright Slam Academy, 2026. All rights reserved.

// Package pptx provides read/write access to PPTX presentation packages:
// slide enumeration, shape geometry inspection, and in-place geometry
// edits that preserve everything else in the file byte for byte.
// See docs/ARCHITECTURE.md § Presentation Access.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"

	// maxPackageSize guards against zip bombs; no real deck comes close.
	maxPackageSize = 512 << 20
)

// zipEntry holds one archive member in original order.
type zipEntry struct {
	name string
	data []byte
}

// SlidePart is one parsed slide XML part.
type SlidePart struct {
	name   string // archive member name, e.g. "ppt/slides/slide1.xml"
	doc    *etree.Document
	shapes []*Shape
	dirty  bool
}

// Shapes returns the slide's top-level shapes in document order.
func (s *SlidePart) Shapes() []*Shape { return s.shapes }

// Document is an opened PPTX package. Untouched archive members are kept
// verbatim; only slide parts whose geometry was edited are re-serialized
// on save, so repeated identical edits produce identical files.
type Document struct {
	path      string
	entries   []*zipEntry
	byName    map[string]*zipEntry
	slides    []*SlidePart
	widthEMU  int64
	heightEMU int64
}

// Open reads a PPTX file and parses its slide parts.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if len(data) > maxPackageSize {
		return nil, fmt.Errorf("%s: package size %d exceeds maximum (%d bytes)", path, len(data), maxPackageSize)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%s is not a zip package: %w", path, err)
	}

	d := &Document{
		path:   path,
		byName: make(map[string]*zipEntry, len(zr.File)),
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", f.Name, path, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", f.Name, path, err)
		}
		e := &zipEntry{name: f.Name, data: content}
		d.entries = append(d.entries, e)
		d.byName[f.Name] = e
	}

	if err := d.parsePresentation(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// parsePresentation reads the slide part order from presentation.xml and
// its relationships file, then parses each slide part.
func (d *Document) parsePresentation() error {
	pres, ok := d.byName[presentationPart]
	if !ok {
		return fmt.Errorf("missing %s", presentationPart)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pres.data); err != nil {
		return fmt.Errorf("parsing %s: %w", presentationPart, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty %s", presentationPart)
	}

	if sz := root.SelectElement("p:sldSz"); sz != nil {
		d.widthEMU = attrInt64(sz, "cx")
		d.heightEMU = attrInt64(sz, "cy")
	}

	rels, err := d.parseRelationships()
	if err != nil {
		return err
	}

	lst := root.SelectElement("p:sldIdLst")
	if lst == nil {
		return nil // a deck with no slides is valid, if useless
	}
	for _, sldID := range lst.SelectElements("p:sldId") {
		relID := sldID.SelectAttrValue("r:id", "")
		target, ok := rels[relID]
		if !ok {
			return fmt.Errorf("slide relationship %q not found in %s", relID, presentationRels)
		}
		partName := resolvePartName(target)
		entry, ok := d.byName[partName]
		if !ok {
			return fmt.Errorf("slide part %s missing from package", partName)
		}
		part, err := parseSlidePart(partName, entry.data)
		if err != nil {
			return err
		}
		d.slides = append(d.slides, part)
	}
	return nil
}

// parseRelationships maps relationship IDs to part targets.
func (d *Document) parseRelationships() (map[string]string, error) {
	entry, ok := d.byName[presentationRels]
	if !ok {
		return nil, fmt.Errorf("missing %s", presentationRels)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(entry.data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", presentationRels, err)
	}
	rels := make(map[string]string)
	root := doc.Root()
	if root == nil {
		return rels, nil
	}
	for _, rel := range root.SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		target := rel.SelectAttrValue("Target", "")
		if id != "" && target != "" {
			rels[id] = target
		}
	}
	return rels, nil
}

// resolvePartName converts a relationship target into an archive member name.
func resolvePartName(target string) string {
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "ppt/") {
		target = "ppt/" + target
	}
	return filepath.ToSlash(filepath.Clean(target))
}

func parseSlidePart(name string, data []byte) (*SlidePart, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	part := &SlidePart{name: name, doc: doc}

	root := doc.Root()
	if root == nil {
		return part, nil
	}
	cSld := root.SelectElement("p:cSld")
	if cSld == nil {
		return part, nil
	}
	spTree := cSld.SelectElement("p:spTree")
	if spTree == nil {
		return part, nil
	}
	for _, child := range spTree.ChildElements() {
		if sh := newShape(part, child); sh != nil {
			part.shapes = append(part.shapes, sh)
		}
	}
	return part, nil
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int { return len(d.slides) }

// Slide returns the slide at the given 1-based number.
func (d *Document) Slide(num int) (*SlidePart, error) {
	if num < 1 || num > len(d.slides) {
		return nil, fmt.Errorf("slide %d out of range (deck has %d slides)", num, len(d.slides))
	}
	return d.slides[num-1], nil
}

// Slides returns all slide parts in presentation order.
func (d *Document) Slides() []*SlidePart { return d.slides }

// SlideWidthInches returns the slide width in inches.
func (d *Document) SlideWidthInches() float64 { return EMUToInch(d.widthEMU) }

// SlideHeightInches returns the slide height in inches.
func (d *Document) SlideHeightInches() float64 { return EMUToInch(d.heightEMU) }

// Save writes the package to path. Unmodified members are copied verbatim
// in original order; modified slide parts are re-serialized. Zip headers
// carry no timestamps, so identical edits yield byte-identical files.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.write(&buf); err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (d *Document) write(w io.Writer) error {
	modified := make(map[string][]byte, len(d.slides))
	for _, s := range d.slides {
		if !s.dirty {
			continue
		}
		data, err := s.doc.WriteToBytes()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", s.name, err)
		}
		modified[s.name] = data
	}

	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		data := e.data
		if m, ok := modified[e.name]; ok {
			data = m
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("writing %s: %w", e.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	return zw.Close()
}

// attrInt64 parses an integer attribute, returning 0 when absent or malformed.
func attrInt64(el *etree.Element, key string) int64 {
	n, err := strconv.ParseInt(el.SelectAttrValue(key, "0"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
