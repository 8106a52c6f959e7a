// Copyright Slam Academy, 2026. All rights reserved.

package types

import "time"

// RebuildConfig holds settings for the rebuild stage.
type RebuildConfig struct {
	// SourcePPTX is the pristine export the working file is reset from.
	SourcePPTX string `json:"source_pptx" yaml:"source_pptx"`

	// OutputPPTX is the working presentation file that gets patched.
	OutputPPTX string `json:"output_pptx" yaml:"output_pptx"`

	// BackupDir receives a timestamped copy of the working file before
	// each run. The copy is the only recovery mechanism.
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`
}

// RenderConfig holds settings for rendering slides to raster images.
type RenderConfig struct {
	// SofficeBin is the LibreOffice binary used for PPTX-to-PDF export.
	SofficeBin string `json:"soffice_bin" yaml:"soffice_bin"`

	// PdftoppmBin is the PDF rasterizer binary.
	PdftoppmBin string `json:"pdftoppm_bin" yaml:"pdftoppm_bin"`

	// DPI is the rasterization resolution (default 150).
	DPI int `json:"dpi" yaml:"dpi"`

	// ToolTimeout bounds each external tool invocation (default 120s).
	ToolTimeout time.Duration `json:"tool_timeout" yaml:"tool_timeout"`
}

// VerifyConfig holds settings for the verification stage.
type VerifyConfig struct {
	RenderConfig `yaml:",inline"`

	// PPTX is the presentation to verify.
	PPTX string `json:"pptx" yaml:"pptx"`

	// ReferenceDir holds slide-NN.png reference images.
	ReferenceDir string `json:"reference_dir" yaml:"reference_dir"`

	// ExportDir receives the intermediate PDF and rendered slide images.
	// It is cleaned at the start of every run.
	ExportDir string `json:"export_dir" yaml:"export_dir"`

	// DiffDir receives per-slide difference heatmaps.
	DiffDir string `json:"diff_dir" yaml:"diff_dir"`

	// ReportPath is the plain-text report, regenerated wholesale each run.
	ReportPath string `json:"report_path" yaml:"report_path"`
}
