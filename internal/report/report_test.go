// Copyright Slam Academy, 2026. All rights reserved.

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/slamacademy/deckfix/pkg/types"
)

func sampleResults() []types.SlideResult {
	return []types.SlideResult{
		{Slide: 1, Score: 0.981, Status: types.StatusOK},
		{Slide: 2, Score: 0.814, Status: types.StatusNeedsWork, DiffPath: "slide_diffs/diff_slide_02.png"},
		{Slide: 3, Score: 0.951, Status: types.StatusOK},
		{Slide: 4, Status: types.StatusMissingRef},
		{Slide: 5, Score: 0.612, Status: types.StatusMajorDiff, DiffPath: "slide_diffs/diff_slide_05.png"},
	}
}

func TestSummarize(t *testing.T) {
	var out bytes.Buffer
	sum := Summarize(sampleResults(), &out)

	assert.Equal(t, Summary{OK: 2, NeedsWork: 1, MajorDiff: 1, Missing: 1}, sum)
	assert.Equal(t, 5, sum.Total())

	text := out.String()
	assert.Contains(t, text, "OK (>90% match):      2 slides")
	assert.Contains(t, text, "Needs work (75-90%):  1 slides")
	assert.Contains(t, text, "Major diff (<75%):    1 slides")
	assert.Contains(t, text, "Missing:              1 slides")
}

func TestSummarizeWorstFirst(t *testing.T) {
	var out bytes.Buffer
	Summarize(sampleResults(), &out)

	text := out.String()
	require.Contains(t, text, "SLIDES NEEDING ATTENTION:")
	// Slide 5 (61.2%) sorts before slide 2 (81.4%).
	assert.Less(t, strings.Index(text, "Slide  5"), strings.Index(text, "Slide  2"))
	assert.Contains(t, text, "see slide_diffs/diff_slide_05.png")
}

func TestSummarizeAllOK(t *testing.T) {
	var out bytes.Buffer
	results := []types.SlideResult{{Slide: 1, Score: 0.99, Status: types.StatusOK}}
	sum := Summarize(results, &out)

	assert.Equal(t, Summary{OK: 1}, sum)
	assert.NotContains(t, out.String(), "SLIDES NEEDING ATTENTION")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verification_report.txt")
	require.NoError(t, Write(sampleResults(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "SLIDE VERIFICATION REPORT\n"+strings.Repeat("=", 40)+"\n\n"))
	assert.Contains(t, text, "Slide  2: 81.4% match - needs_work")
	assert.Contains(t, text, "Slide  4: missing_ref")
	assert.Contains(t, text, "Slide  5: 61.2% match - major_diff")
}

func TestWriteReplacesPreviousReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verification_report.txt")
	require.NoError(t, os.WriteFile(path, []byte("old run, many lines\n"), 0o644))

	require.NoError(t, Write(sampleResults()[:1], path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old run")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verification_report.yaml")
	results := sampleResults()
	sum := Summarize(results, &bytes.Buffer{})
	require.NoError(t, WriteYAML(results, sum, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Summary Summary             `yaml:"summary"`
		Slides  []types.SlideResult `yaml:"slides"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sum, got.Summary)
	assert.Equal(t, results, got.Slides)
}
