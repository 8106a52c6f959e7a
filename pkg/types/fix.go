// Copyright Slam Academy, 2026. All rights reserved.

// Package types defines shared data structures for the deckfix pipeline.
// See docs/ARCHITECTURE.md § Data Structures.
package types

// SelectorKind identifies how a FixRecord locates its target shape.
type SelectorKind string

const (
	// SelectByName matches a shape by its exact name attribute.
	SelectByName SelectorKind = "name"

	// SelectByIndex matches the n-th shape in slide order.
	SelectByIndex SelectorKind = "index"

	// SelectTitle matches the topmost text shape whose top edge sits above
	// the title band (the same rule used when the records were measured).
	SelectTitle SelectorKind = "title"

	// SelectBody matches the n-th non-title text shape, ordered left to right.
	SelectBody SelectorKind = "body"

	// SelectPictureByArea matches the n-th picture ranked by area, largest first.
	SelectPictureByArea SelectorKind = "picture_area"

	// SelectPictureByAspect matches the n-th picture ranked by aspect ratio,
	// widest first. Used to tell a wide diagram from a squarer one.
	SelectPictureByAspect SelectorKind = "picture_aspect"
)

// Selector locates one shape on one slide.
type Selector struct {
	// Kind selects the matching strategy.
	Kind SelectorKind `json:"kind" yaml:"kind"`

	// Name is the shape name, for SelectByName.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Rank is the zero-based position within the strategy's ordering
	// (shape index, body column, or picture rank).
	Rank int `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// FixRecord is a manually measured geometry override for one shape on one
// slide. Coordinates are in inches, measured against 4000x2250 px reference
// images of a 10.00" x 5.625" slide (400 px per inch). A negative value
// leaves that dimension unchanged.
type FixRecord struct {
	// Slide is the 1-based slide number.
	Slide int `json:"slide" yaml:"slide"`

	// Select locates the target shape on the slide.
	Select Selector `json:"select" yaml:"select"`

	// Left, Top, Width, Height are target values in inches. Negative means
	// keep the shape's current value.
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// LockAspect recomputes height from the shape's current width/height
	// ratio when Width changes, instead of taking Height literally.
	LockAspect bool `json:"lock_aspect,omitempty" yaml:"lock_aspect,omitempty"`

	// MaxHeight caps the height produced by an aspect-locked resize; when
	// the cap bites, width is recomputed from the ratio instead. Zero means
	// no cap.
	MaxHeight float64 `json:"max_height,omitempty" yaml:"max_height,omitempty"`

	// Note describes what the record fixes, for progress output.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}
