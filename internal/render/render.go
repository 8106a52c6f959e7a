// Copyright Slam Academy, 2026. All rights reserved.

// Package render exports presentation slides to raster images by shelling
// out to LibreOffice (PPTX to PDF) and pdftoppm (PDF to PNG). The two
// calls run strictly in sequence and block to completion; a non-zero exit
// from either tool fails the whole run.
// See docs/ARCHITECTURE.md § Verification.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/slamacademy/deckfix/pkg/types"
)

// ExportPrefix names the rendered slide images: export_slide_NN.png.
const ExportPrefix = "export_slide"

// pagePrefix is the intermediate name pdftoppm writes pages under.
const pagePrefix = "page"

// Executor abstracts command execution for testing.
type Executor interface {
	// LookPath reports whether the binary exists on PATH.
	LookPath(file string) (string, error)

	// Run executes a command to completion and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Pipeline renders a presentation into per-slide PNG files.
type Pipeline struct {
	cfg  types.RenderConfig
	exec Executor
	log  *zap.Logger
}

// NewPipeline builds a render pipeline using the real process executor.
// It verifies both tool binaries up front so a missing install fails
// before any work happens.
func NewPipeline(cfg types.RenderConfig, log *zap.Logger) (*Pipeline, error) {
	return newPipeline(cfg, osExecutor{}, log)
}

func newPipeline(cfg types.RenderConfig, ex Executor, log *zap.Logger) (*Pipeline, error) {
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = 120 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := ex.LookPath(cfg.SofficeBin); err != nil {
		return nil, fmt.Errorf("LibreOffice binary %q not found: %w", cfg.SofficeBin, err)
	}
	if _, err := ex.LookPath(cfg.PdftoppmBin); err != nil {
		return nil, fmt.Errorf("pdftoppm binary %q not found: %w", cfg.PdftoppmBin, err)
	}
	return &Pipeline{cfg: cfg, exec: ex, log: log}, nil
}

// Export renders every slide of the presentation at pptxPath into outDir
// as export_slide_NN.png, NN counting from 01 in page order. The output
// directory is cleared first; the intermediate PDF is left beside the
// images for inspection.
func (p *Pipeline) Export(ctx context.Context, pptxPath, outDir string) ([]string, error) {
	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	pdfPath, err := p.exportPDF(ctx, pptxPath, outDir)
	if err != nil {
		return nil, err
	}
	return p.rasterize(ctx, pdfPath, outDir)
}

// exportPDF runs LibreOffice headless and returns the produced PDF path.
func (p *Pipeline) exportPDF(ctx context.Context, pptxPath, outDir string) (string, error) {
	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, pptxPath}
	if err := p.run(ctx, p.cfg.SofficeBin, args); err != nil {
		return "", err
	}

	pdfs, err := filepath.Glob(filepath.Join(outDir, "*.pdf"))
	if err != nil {
		return "", fmt.Errorf("globbing %s: %w", outDir, err)
	}
	if len(pdfs) == 0 {
		return "", fmt.Errorf("LibreOffice produced no PDF in %s", outDir)
	}
	sort.Strings(pdfs)
	return pdfs[0], nil
}

// rasterize converts the PDF to page PNGs and renames them to the
// export_slide_NN naming the comparison stage expects.
func (p *Pipeline) rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	args := []string{"-png", "-r", fmt.Sprintf("%d", p.cfg.DPI), pdfPath, filepath.Join(outDir, pagePrefix)}
	if err := p.run(ctx, p.cfg.PdftoppmBin, args); err != nil {
		return nil, err
	}

	pages, err := filepath.Glob(filepath.Join(outDir, pagePrefix+"-*.png"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", outDir, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages from %s", pdfPath)
	}
	sort.Strings(pages)

	exported := make([]string, 0, len(pages))
	for i, page := range pages {
		dst := filepath.Join(outDir, fmt.Sprintf("%s_%02d.png", ExportPrefix, i+1))
		if err := os.Rename(page, dst); err != nil {
			return nil, fmt.Errorf("renaming %s: %w", page, err)
		}
		exported = append(exported, dst)
	}
	return exported, nil
}

// run executes one tool invocation with the configured timeout.
func (p *Pipeline) run(ctx context.Context, bin string, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.ToolTimeout)
	defer cancel()

	start := time.Now()
	out, err := p.exec.Run(ctx, bin, args...)
	p.log.Debug("tool finished",
		zap.String("bin", bin),
		zap.Strings("args", args),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return fmt.Errorf("%s failed: %w (output: %s)", bin, err, out)
	}
	return nil
}

// ExportedSlidePath returns the expected image path for a 1-based slide
// number under outDir.
func ExportedSlidePath(outDir string, slide int) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_%02d.png", ExportPrefix, slide))
}
