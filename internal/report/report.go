// Copyright Slam Academy, 2026. All rights reserved.

// Package report renders verification results for a human reader: a
// terminal summary, a plain-text report file regenerated wholesale each
// run, and a YAML sidecar for anything that wants the numbers.
// See docs/ARCHITECTURE.md § Verification.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/slamacademy/deckfix/pkg/types"
)

// Summary holds per-status counts for one verification run.
type Summary struct {
	OK        int `yaml:"ok"`
	NeedsWork int `yaml:"needs_work"`
	MajorDiff int `yaml:"major_diff"`
	Missing   int `yaml:"missing"`
}

// Total returns the number of slides in the run.
func (s Summary) Total() int {
	return s.OK + s.NeedsWork + s.MajorDiff + s.Missing
}

// Summarize tallies the results and prints the per-status counts plus a
// worst-first list of slides needing attention.
func Summarize(results []types.SlideResult, w io.Writer) Summary {
	var sum Summary
	var attention []types.SlideResult
	for _, r := range results {
		switch r.Status {
		case types.StatusOK:
			sum.OK++
		case types.StatusNeedsWork:
			sum.NeedsWork++
			attention = append(attention, r)
		case types.StatusMajorDiff:
			sum.MajorDiff++
			attention = append(attention, r)
		default:
			sum.Missing++
		}
	}

	fmt.Fprintf(w, "\nSUMMARY:\n")
	fmt.Fprintf(w, "  OK (>90%% match):      %d slides\n", sum.OK)
	fmt.Fprintf(w, "  Needs work (75-90%%):  %d slides\n", sum.NeedsWork)
	fmt.Fprintf(w, "  Major diff (<75%%):    %d slides\n", sum.MajorDiff)
	fmt.Fprintf(w, "  Missing:              %d slides\n", sum.Missing)

	if len(attention) > 0 {
		sort.Slice(attention, func(i, j int) bool { return attention[i].Score < attention[j].Score })
		fmt.Fprintf(w, "\nSLIDES NEEDING ATTENTION:\n")
		for _, r := range attention {
			diff := r.DiffPath
			if diff == "" {
				diff = "N/A"
			}
			fmt.Fprintf(w, "  Slide %2d: %.1f%% - see %s\n", r.Slide, r.Score*100, diff)
		}
	}
	return sum
}

// Write replaces the plain-text report at path with one line per slide.
func Write(results []types.SlideResult, path string) error {
	var b strings.Builder
	b.WriteString("SLIDE VERIFICATION REPORT\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	for _, r := range results {
		b.WriteString(r.String() + "\n")
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// yamlReport is the sidecar document layout.
type yamlReport struct {
	Summary Summary             `yaml:"summary"`
	Slides  []types.SlideResult `yaml:"slides"`
}

// WriteYAML writes the same results as a machine-readable sidecar next to
// the text report.
func WriteYAML(results []types.SlideResult, sum Summary, path string) error {
	data, err := yaml.Marshal(yamlReport{Summary: sum, Slides: results})
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
