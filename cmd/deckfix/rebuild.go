// Copyright Slam Academy, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slamacademy/deckfix/internal/backup"
	"github.com/slamacademy/deckfix/internal/fixes"
	"github.com/slamacademy/deckfix/internal/pptx"
	"github.com/slamacademy/deckfix/pkg/types"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Apply the geometry fix table to the working deck",
	Long: `Rebuild backs up the working file, resets it from the pristine export,
applies the hand-measured fix table to the broken slides, clamps runaway
text-box heights, and saves. The first missing slide or shape aborts the
run; recovery is the pre-run backup copy.`,
	RunE: runRebuild,
}

func init() {
	rebuildCmd.Flags().String("source", "", "pristine export to reset from")
	rebuildCmd.Flags().String("output", "", "working presentation file")
	rebuildCmd.Flags().String("backup-dir", "", "directory for timestamped backups")
	rebuildCmd.Flags().Bool("all", false, "also re-apply the fixes for slides that already score OK")
	rebuildCmd.Flags().Bool("no-reset", false, "patch the working file in place instead of resetting from the source export")
	rebuildCmd.Flags().Bool("keep-heights", false, "skip the text-box height clamp pass")

	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := types.RebuildConfig{
		SourcePPTX: stringSetting(cmd, "source", "source"),
		OutputPPTX: stringSetting(cmd, "output", "output"),
		BackupDir:  stringSetting(cmd, "backup-dir", "backup_dir"),
	}
	all, _ := cmd.Flags().GetBool("all")
	noReset, _ := cmd.Flags().GetBool("no-reset")
	keepHeights, _ := cmd.Flags().GetBool("keep-heights")
	w := cmd.OutOrStdout()

	if backupPath, err := backup.Snapshot(cfg.OutputPPTX, cfg.BackupDir); err != nil {
		return err
	} else if backupPath != "" {
		fmt.Fprintf(w, "Backed up to: %s\n", backupPath)
	}

	if !noReset {
		if err := backup.Reset(cfg.SourcePPTX, cfg.OutputPPTX); err != nil {
			return err
		}
		fmt.Fprintf(w, "Reset to original: %s\n", cfg.SourcePPTX)
	}

	doc, err := pptx.Open(cfg.OutputPPTX)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Slides: %d (%.2f\" x %.2f\")\n",
		doc.SlideCount(), doc.SlideWidthInches(), doc.SlideHeightInches())

	records := fixes.DefaultTable()
	if all {
		records = fixes.FullTable()
	}

	fmt.Fprintln(w, "Applying fixes:")
	if err := fixes.Apply(doc, records, w); err != nil {
		return err
	}

	if !keepHeights {
		fmt.Fprintln(w, "Clamping text box heights:")
		fixes.ClampTextHeights(doc, w)
	}

	if err := doc.Save(cfg.OutputPPTX); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved: %s\n", cfg.OutputPPTX)

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Run 'deckfix verify' to score the result")
	fmt.Fprintln(w, "  2. Review the diff images for remaining problem slides")
	fmt.Fprintln(w, "  3. Adjust the fix table and iterate")
	return nil
}
