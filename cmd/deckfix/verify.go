// Copyright Slam Academy, 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/slamacademy/deckfix/internal/compare"
	"github.com/slamacademy/deckfix/internal/render"
	"github.com/slamacademy/deckfix/internal/report"
	"github.com/slamacademy/deckfix/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Render the deck and score each slide against its reference image",
	Long: `Verify exports the working deck to PDF with LibreOffice, rasterizes the
pages with pdftoppm, and compares each slide pixel-by-pixel against its
reference image using a windowed structural-similarity measure. Each slide
is classified by score threshold and the whole report is rewritten.

The scores are diagnostic only: a human reads the report and decides what
to adjust in the fix table. Bad scores do not fail the command; only a
broken render pipeline does.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("file", "", "presentation to verify (default: the working file)")
	verifyCmd.Flags().String("reference-dir", "", "directory of slide-NN.png reference images")
	verifyCmd.Flags().String("export-dir", "", "directory for rendered slide images (cleaned each run)")
	verifyCmd.Flags().String("diff-dir", "", "directory for difference heatmaps")
	verifyCmd.Flags().String("report", "", "path of the plain-text report")
	verifyCmd.Flags().String("soffice", "", "LibreOffice binary")
	verifyCmd.Flags().String("pdftoppm", "", "pdftoppm binary")
	verifyCmd.Flags().Int("dpi", 0, "rasterization resolution")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := types.VerifyConfig{
		RenderConfig: types.RenderConfig{
			SofficeBin:  stringSetting(cmd, "soffice", "soffice"),
			PdftoppmBin: stringSetting(cmd, "pdftoppm", "pdftoppm"),
			DPI:         intSetting(cmd, "dpi", "dpi"),
			ToolTimeout: 120 * time.Second,
		},
		PPTX:         stringSetting(cmd, "file", "output"),
		ReferenceDir: stringSetting(cmd, "reference-dir", "reference_dir"),
		ExportDir:    stringSetting(cmd, "export-dir", "export_dir"),
		DiffDir:      stringSetting(cmd, "diff-dir", "diff_dir"),
		ReportPath:   stringSetting(cmd, "report", "report"),
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Rendering %s at %d dpi\n", cfg.PPTX, cfg.DPI)
	pipeline, err := render.NewPipeline(cfg.RenderConfig, logger)
	if err != nil {
		return err
	}
	exported, err := pipeline.Export(cmd.Context(), cfg.PPTX, cfg.ExportDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d slide images to %s\n\n", len(exported), cfg.ExportDir)

	comp := &compare.Comparator{
		RefDir:    cfg.ReferenceDir,
		ExportDir: cfg.ExportDir,
		DiffDir:   cfg.DiffDir,
	}
	nums, err := comp.SlideNumbers()
	if err != nil {
		return err
	}

	results := make([]types.SlideResult, 0, len(nums))
	for _, num := range nums {
		r := comp.CompareSlide(num)
		fmt.Fprintln(w, r.String())
		results = append(results, r)
	}

	sum := report.Summarize(results, w)

	if err := report.Write(results, cfg.ReportPath); err != nil {
		return err
	}
	yamlPath := yamlSidecarPath(cfg.ReportPath)
	if err := report.WriteYAML(results, sum, yamlPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nReport saved to: %s (and %s)\n", cfg.ReportPath, yamlPath)
	return nil
}

// yamlSidecarPath swaps the report extension for .yaml.
func yamlSidecarPath(reportPath string) string {
	if i := strings.LastIndex(reportPath, "."); i > 0 {
		return reportPath[:i] + ".yaml"
	}
	return reportPath + ".yaml"
}
