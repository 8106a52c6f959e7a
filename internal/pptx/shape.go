// Copyright Slam Academy, 2026. All rights reserved.

package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ShapeKind categorizes a top-level slide shape.
type ShapeKind string

const (
	KindTextBox      ShapeKind = "text"
	KindPicture      ShapeKind = "picture"
	KindGraphicFrame ShapeKind = "frame"
	KindConnector    ShapeKind = "connector"
	KindGroup        ShapeKind = "group"
)

// Shape wraps one top-level shape element on a slide. Geometry reads and
// writes go straight to the underlying XML so that saving the document
// preserves every property the tool does not touch.
type Shape struct {
	part *SlidePart
	el   *etree.Element
	kind ShapeKind
}

// newShape wraps a spTree child element, or returns nil for non-shape
// children (nvGrpSpPr, grpSpPr, extension lists).
func newShape(part *SlidePart, el *etree.Element) *Shape {
	var kind ShapeKind
	switch el.Tag {
	case "sp":
		kind = KindTextBox
	case "pic":
		kind = KindPicture
	case "graphicFrame":
		kind = KindGraphicFrame
	case "cxnSp":
		kind = KindConnector
	case "grpSp":
		kind = KindGroup
	default:
		return nil
	}
	return &Shape{part: part, el: el, kind: kind}
}

// Kind returns the shape category.
func (s *Shape) Kind() ShapeKind { return s.kind }

// Name returns the shape's name attribute from its non-visual properties.
func (s *Shape) Name() string {
	if nv := s.nonVisual(); nv != nil {
		if cNvPr := nv.SelectElement("p:cNvPr"); cNvPr != nil {
			return cNvPr.SelectAttrValue("name", "")
		}
	}
	return ""
}

// nonVisual returns the shape's nvXxPr element.
func (s *Shape) nonVisual() *etree.Element {
	for _, tag := range []string{"p:nvSpPr", "p:nvPicPr", "p:nvGraphicFramePr", "p:nvCxnSpPr", "p:nvGrpSpPr"} {
		if el := s.el.SelectElement(tag); el != nil {
			return el
		}
	}
	return nil
}

// HasTextFrame reports whether the shape carries a text body.
func (s *Shape) HasTextFrame() bool {
	return s.el.SelectElement("p:txBody") != nil
}

// Text returns the concatenated run text of the shape, paragraphs joined
// with newlines. Empty for shapes without a text frame.
func (s *Shape) Text() string {
	body := s.el.SelectElement("p:txBody")
	if body == nil {
		return ""
	}
	var paras []string
	for _, p := range body.SelectElements("a:p") {
		var b strings.Builder
		for _, t := range p.FindElements(".//a:t") {
			b.WriteString(t.Text())
		}
		paras = append(paras, b.String())
	}
	return strings.Join(paras, "\n")
}

// xfrm returns the shape's transform element, or nil when the shape
// inherits its geometry from the layout.
func (s *Shape) xfrm() *etree.Element {
	if s.kind == KindGraphicFrame {
		return s.el.SelectElement("p:xfrm")
	}
	if pr := s.propsElement(); pr != nil {
		return pr.SelectElement("a:xfrm")
	}
	return nil
}

// propsElement returns the spPr (or grpSpPr) element holding the transform.
func (s *Shape) propsElement() *etree.Element {
	if s.kind == KindGroup {
		return s.el.SelectElement("p:grpSpPr")
	}
	return s.el.SelectElement("p:spPr")
}

// HasGeometry reports whether the shape carries its own transform.
func (s *Shape) HasGeometry() bool { return s.xfrm() != nil }

// OffsetX returns the left edge in EMU, 0 when inherited.
func (s *Shape) OffsetX() int64 { return s.geomAttr("a:off", "x") }

// OffsetY returns the top edge in EMU, 0 when inherited.
func (s *Shape) OffsetY() int64 { return s.geomAttr("a:off", "y") }

// Width returns the extent width in EMU, 0 when inherited.
func (s *Shape) Width() int64 { return s.geomAttr("a:ext", "cx") }

// Height returns the extent height in EMU, 0 when inherited.
func (s *Shape) Height() int64 { return s.geomAttr("a:ext", "cy") }

func (s *Shape) geomAttr(tag, key string) int64 {
	x := s.xfrm()
	if x == nil {
		return 0
	}
	el := x.SelectElement(tag)
	if el == nil {
		return 0
	}
	v, err := strconv.ParseInt(el.SelectAttrValue(key, "0"), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// AspectRatio returns width/height, or 1 when the height is zero.
func (s *Shape) AspectRatio() float64 {
	w, h := s.Width(), s.Height()
	if h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// SetPosition overwrites the shape's offset in EMU, materializing a
// transform when the shape inherited one.
func (s *Shape) SetPosition(x, y int64) {
	off := s.ensureGeomChild("a:off")
	setInt64Attr(off, "x", x)
	setInt64Attr(off, "y", y)
	s.part.dirty = true
}

// SetSize overwrites the shape's extent in EMU, materializing a transform
// when the shape inherited one.
func (s *Shape) SetSize(w, h int64) {
	ext := s.ensureGeomChild("a:ext")
	setInt64Attr(ext, "cx", w)
	setInt64Attr(ext, "cy", h)
	s.part.dirty = true
}

// ensureGeomChild returns the a:off or a:ext element, creating the
// transform and both children as needed. The schema requires xfrm first
// inside spPr and off before ext inside xfrm.
func (s *Shape) ensureGeomChild(tag string) *etree.Element {
	x := s.xfrm()
	if x == nil {
		x = s.createXfrm()
	}
	if el := x.SelectElement(tag); el != nil {
		return el
	}
	if tag == "a:off" {
		off := etree.NewElement("a:off")
		x.InsertChildAt(0, off)
		return off
	}
	ext := x.CreateElement("a:ext")
	return ext
}

func (s *Shape) createXfrm() *etree.Element {
	if s.kind == KindGraphicFrame {
		x := etree.NewElement("p:xfrm")
		s.el.InsertChildAt(1, x) // after nvGraphicFramePr
		return x
	}
	pr := s.propsElement()
	if pr == nil {
		pr = etree.NewElement("p:spPr")
		s.el.InsertChildAt(1, pr) // after the nvXxPr block
	}
	x := etree.NewElement("a:xfrm")
	pr.InsertChildAt(0, x)
	return x
}

func setInt64Attr(el *etree.Element, key string, v int64) {
	el.CreateAttr(key, strconv.FormatInt(v, 10))
}
