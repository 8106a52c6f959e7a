// Copyright Slam Academy, 2026. All rights reserved.

// Package main is the entry point for the deckfix CLI.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostic output; human-facing progress goes to stdout.
var logger = zap.NewNop()

// rootCmd is the base command for the deckfix CLI.
var rootCmd = &cobra.Command{
	Use:   "deckfix",
	Short: "Remediate and verify a broken Figma-to-PPTX slide deck export",
	Long: `deckfix repairs the DJ Foundations deck export by applying a table of
hand-measured geometry overrides, and verifies the result by rendering the
deck through LibreOffice and scoring each slide against its reference image.

The stages are subcommands: analyze dumps current shape geometry, rebuild
applies the fix table, verify renders and scores the deck. A human inspects
the report between iterations; nothing loops automatically.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deckfix.yaml or ~/.config/deckfix/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	// A .env beside the deck can override paths; missing is fine.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deckfix")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deckfix"))
		}
	}

	viper.SetEnvPrefix("DECKFIX")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers the deck workspace layout. Every path can be
// overridden by config file, DECKFIX_* env var, or flag.
func setDefaults() {
	viper.SetDefault("source", filepath.Join("source_material", "DJ_Foundations_Styled.pptx"))
	viper.SetDefault("output", "DJ_Foundations.pptx")
	viper.SetDefault("backup_dir", "backups")
	viper.SetDefault("reference_dir", filepath.Join("source_material", "images", "slides"))
	viper.SetDefault("export_dir", "slide_exports")
	viper.SetDefault("diff_dir", "slide_diffs")
	viper.SetDefault("report", "verification_report.txt")
	viper.SetDefault("soffice", "soffice")
	viper.SetDefault("pdftoppm", "pdftoppm")
	viper.SetDefault("dpi", 150)
}

// stringSetting resolves a value from flag (when set) or viper.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

// intSetting resolves an int from flag (when set) or viper.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
