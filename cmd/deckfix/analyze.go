// Copyright Slam Academy, 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/slamacademy/deckfix/internal/pptx"
)

// problemSlides are the slides the fix table targets; analyze defaults to
// them when no slide numbers are given.
var problemSlides = []int{2, 9, 18}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [slide numbers...]",
	Short: "Dump current shape geometry for inspection",
	Long: `Analyze prints every shape on the given slides with its name, kind,
position, size, and a text preview. The output is what the fix table's
coordinates get measured against.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("file", "", "presentation to analyze (default: the working file)")
	analyzeCmd.Flags().String("format", "text", "output format: text or yaml")

	rootCmd.AddCommand(analyzeCmd)
}

// shapeGeometry is the YAML shape record emitted by --format yaml.
type shapeGeometry struct {
	Index  int     `yaml:"index"`
	Kind   string  `yaml:"kind"`
	Name   string  `yaml:"name"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Text   string  `yaml:"text,omitempty"`
}

type slideGeometry struct {
	Slide  int             `yaml:"slide"`
	Shapes []shapeGeometry `yaml:"shapes"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "file", "output")
	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()

	doc, err := pptx.Open(path)
	if err != nil {
		return err
	}

	nums := problemSlides
	if len(args) > 0 {
		nums = nums[:0]
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid slide number %q", a)
			}
			nums = append(nums, n)
		}
	}

	var geo []slideGeometry
	for _, num := range nums {
		slide, err := doc.Slide(num)
		if err != nil {
			return err
		}
		sg := slideGeometry{Slide: num}
		for i, shape := range slide.Shapes() {
			sg.Shapes = append(sg.Shapes, shapeGeometry{
				Index:  i,
				Kind:   string(shape.Kind()),
				Name:   shape.Name(),
				Left:   pptx.EMUToInch(shape.OffsetX()),
				Top:    pptx.EMUToInch(shape.OffsetY()),
				Width:  pptx.EMUToInch(shape.Width()),
				Height: pptx.EMUToInch(shape.Height()),
				Text:   textPreview(shape.Text()),
			})
		}
		geo = append(geo, sg)
	}

	if format == "yaml" {
		data, err := yaml.Marshal(geo)
		if err != nil {
			return fmt.Errorf("marshaling geometry: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	}

	for _, sg := range geo {
		fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
		fmt.Fprintf(w, "SLIDE %d ANALYSIS\n", sg.Slide)
		fmt.Fprintf(w, "%s\n", strings.Repeat("=", 60))
		for _, sh := range sg.Shapes {
			fmt.Fprintf(w, "\nShape %d: %s\n", sh.Index, sh.Kind)
			fmt.Fprintf(w, "  Name: %s\n", sh.Name)
			fmt.Fprintf(w, "  Position: left=%.2f\", top=%.2f\"\n", sh.Left, sh.Top)
			fmt.Fprintf(w, "  Size: width=%.2f\", height=%.2f\"\n", sh.Width, sh.Height)
			if sh.Text != "" {
				fmt.Fprintf(w, "  Text: %s\n", sh.Text)
			}
		}
	}
	return nil
}

// textPreview flattens and truncates shape text for one-line display.
func textPreview(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	return text
}
