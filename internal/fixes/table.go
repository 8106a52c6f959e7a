// Copyright Slam Academy, 2026. All rights reserved.

// Package fixes holds the hand-measured geometry override table for the
// DJ Foundations deck and the logic that applies it to a presentation.
// See docs/ARCHITECTURE.md § Rebuild.
package fixes

import "github.com/slamacademy/deckfix/pkg/types"

// The records below were measured by hand against 4000x2250 px reference
// images of the 10.00" x 5.625" deck (400 px per inch). They are constants
// by design: each one fixes a specific shape on a specific slide of one
// broken Figma export, and none of them generalize.

// slide18 fixes the two-column "Take It Further" slide, whose columns
// landed on top of each other in the export.
var slide18 = []types.FixRecord{
	{Slide: 18, Select: types.Selector{Kind: types.SelectTitle},
		Left: 0.2, Top: 0.15, Width: 9.6, Height: 0.9, Note: "title"},
	{Slide: 18, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
		Left: 0.2, Top: 1.25, Width: 4.6, Height: 4.0, Note: "left column"},
	{Slide: 18, Select: types.Selector{Kind: types.SelectBody, Rank: 1},
		Left: 5.2, Top: 1.25, Width: 4.6, Height: 4.0, Note: "right column"},
}

// slide9 fixes the beats/bars/phrases slide: bullet text constrained to
// the left column, the song-body diagram top-right, the 16-beat diagram
// across the bottom. The 16-beat strip is much wider than the song-body
// diagram, so the two pictures are told apart by aspect ratio.
var slide9 = []types.FixRecord{
	{Slide: 9, Select: types.Selector{Kind: types.SelectTitle},
		Left: 0.2, Top: 0.15, Width: 9.6, Height: 0.8, Note: "title"},
	{Slide: 9, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
		Left: 0.2, Top: 1.0, Width: 4.0, Height: 2.8, Note: "bullet text"},
	{Slide: 9, Select: types.Selector{Kind: types.SelectPictureByAspect, Rank: 0},
		Left: 0.8, Top: 4.0, Width: 8.4, Height: 1.2, Note: "16-beat diagram"},
	{Slide: 9, Select: types.Selector{Kind: types.SelectPictureByAspect, Rank: 1},
		Left: 4.2, Top: 0.95, Width: 5.6, Height: 2.2, Note: "song-body diagram"},
}

// slide2 fixes the "Who Am I?" slide. Both photos keep their aspect
// ratio; the export had squished them badly.
var slide2 = []types.FixRecord{
	{Slide: 2, Select: types.Selector{Kind: types.SelectTitle},
		Left: 0.2, Top: 0.15, Width: 9.6, Height: 0.8, Note: "title"},
	{Slide: 2, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
		Left: 0.2, Top: 1.1, Width: 4.4, Height: 1.8, Note: "intro text"},
	{Slide: 2, Select: types.Selector{Kind: types.SelectPictureByArea, Rank: 0},
		Left: 5.0, Top: 0.8, Width: 5.0, Height: -1, LockAspect: true, MaxHeight: 4.8,
		Note: "DJ photo"},
	{Slide: 2, Select: types.Selector{Kind: types.SelectPictureByArea, Rank: 1},
		Left: 0.3, Top: 3.0, Width: 2.0, Height: -1, LockAspect: true, MaxHeight: 2.5,
		Note: "meme character"},
}

// slide12 fixes the "Exporting to USB" slide: bullets left, USB drive
// photo right, the small Rekordbox screenshot strip bottom-left.
var slide12 = []types.FixRecord{
	{Slide: 12, Select: types.Selector{Kind: types.SelectTitle},
		Left: 0.0, Top: 0.15, Width: 10.0, Height: 0.85, Note: "title"},
	{Slide: 12, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
		Left: 0.2, Top: 1.2, Width: 5.5, Height: 2.5, Note: "bullet text"},
	{Slide: 12, Select: types.Selector{Kind: types.SelectPictureByArea, Rank: 0},
		Left: 5.5, Top: 1.0, Width: 4.4, Height: 4.4, Note: "USB drive"},
	{Slide: 12, Select: types.Selector{Kind: types.SelectPictureByArea, Rank: 1},
		Left: 0.9, Top: 3.8, Width: 4.6, Height: 0.75, Note: "screenshot"},
}

// slide17 fixes "Practice & Next Steps": two short text columns above the
// full-width equipment photo.
var slide17 = []types.FixRecord{
	{Slide: 17, Select: types.Selector{Kind: types.SelectTitle},
		Left: 0.0, Top: 0.15, Width: 10.0, Height: 0.75, Note: "title"},
	{Slide: 17, Select: types.Selector{Kind: types.SelectBody, Rank: 0},
		Left: 0.5, Top: 1.0, Width: 4.0, Height: 1.0, Note: "left column"},
	{Slide: 17, Select: types.Selector{Kind: types.SelectBody, Rank: 1},
		Left: 5.0, Top: 1.0, Width: 4.5, Height: 1.0, Note: "right column"},
	{Slide: 17, Select: types.Selector{Kind: types.SelectPictureByArea, Rank: 0},
		Left: 0.5, Top: 2.0, Width: 9.0, Height: 3.5, Note: "equipment photo"},
}

// DefaultTable returns the records for the slides that were still broken
// in the last iteration: 18 (76.3% match, overlapping columns), 9 (87.8%,
// diagram positions), and 2 (81.4%, photo placement).
func DefaultTable() []types.FixRecord {
	var records []types.FixRecord
	records = append(records, slide18...)
	records = append(records, slide9...)
	records = append(records, slide2...)
	return records
}

// FullTable additionally includes slides 12 and 17, which earlier
// iterations fixed and later runs left alone once they scored OK.
func FullTable() []types.FixRecord {
	records := DefaultTable()
	records = append(records, slide12...)
	records = append(records, slide17...)
	return records
}
