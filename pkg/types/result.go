// Copyright Slam Academy, 2026. All rights reserved.

package types

import "fmt"

// Status classifies one slide's similarity score against fixed thresholds.
// See docs/ARCHITECTURE.md § Verification.
type Status string

const (
	// StatusOK means the rendered slide matches its reference (score > 0.90).
	StatusOK Status = "ok"

	// StatusNeedsWork means a visible but partial mismatch (0.75 < score <= 0.90).
	StatusNeedsWork Status = "needs_work"

	// StatusMajorDiff means the layout is substantially wrong (score <= 0.75).
	StatusMajorDiff Status = "major_diff"

	// StatusMissingRef means no reference image exists for the slide.
	StatusMissingRef Status = "missing_ref"

	// StatusMissingExport means the renderer produced no image for the slide.
	StatusMissingExport Status = "missing_export"
)

// Score thresholds for Classify. Scores are in [0, 1].
const (
	ThresholdOK        = 0.90
	ThresholdNeedsWork = 0.75
)

// Classify maps a similarity score to a status label. It is a pure
// threshold lookup; equal inputs always produce equal outputs.
func Classify(score float64) Status {
	switch {
	case score > ThresholdOK:
		return StatusOK
	case score > ThresholdNeedsWork:
		return StatusNeedsWork
	default:
		return StatusMajorDiff
	}
}

// Compared reports whether the status carries a similarity score.
func (s Status) Compared() bool {
	return s == StatusOK || s == StatusNeedsWork || s == StatusMajorDiff
}

// SlideResult is one slide's verification outcome.
type SlideResult struct {
	// Slide is the 1-based slide number.
	Slide int `json:"slide" yaml:"slide"`

	// Score is the mean windowed structural similarity in [0, 1]. Only
	// meaningful when Status.Compared() is true.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// Status is the threshold classification for this slide.
	Status Status `json:"status" yaml:"status"`

	// DiffPath is the written difference heatmap, when comparison ran.
	DiffPath string `json:"diff_path,omitempty" yaml:"diff_path,omitempty"`
}

// String renders the result the way the report and terminal output show it.
func (r SlideResult) String() string {
	if r.Status.Compared() {
		return fmt.Sprintf("Slide %2d: %.1f%% match - %s", r.Slide, r.Score*100, r.Status)
	}
	return fmt.Sprintf("Slide %2d: %s", r.Slide, r.Status)
}
