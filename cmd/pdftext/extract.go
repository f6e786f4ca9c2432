// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akarpov/pdftext/internal/extract"
	"github.com/akarpov/pdftext/internal/manifest"
	"github.com/akarpov/pdftext/internal/pdf"
	"github.com/akarpov/pdftext/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text from PDFs in a directory, splitting large documents",
	Long: `Extract processes every PDF in a directory: text is pulled page by
page, concatenated with page markers, and written to the output directory
as UTF-8 plain text. Documents above the character budget are split into
parts along paragraph boundaries and written as numbered artifacts.

Per-document failures are reported and counted but do not abort the run;
only a missing scan directory or an empty scan fails the command.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractConfig(cmd)

	var recorder extract.Recorder
	if flagOrConfigBool(cmd, "manifest", "manifest") {
		store, err := manifest.NewStore(manifestConfigFromFlags(cmd))
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	summary, err := extract.Run(context.Background(), pdf.NewReader(), recorder, cfg, os.Stdout)
	if err != nil {
		return err
	}

	// Per-document failures are reported in the summary but leave the
	// exit status at zero.
	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := extract.WriteReport(reportPath, summary); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}
	return nil
}

func extractConfig(cmd *cobra.Command) types.ExtractConfig {
	return types.ExtractConfig{
		ScanDir:   flagOrConfigString(cmd, "dir", "scan_dir"),
		OutputDir: flagOrConfigString(cmd, "output", "output_dir"),
		Recursive: flagOrConfigBool(cmd, "recursive", "recursive"),
		Policy: types.SplitPolicy{
			MaxCharsPerPart: flagOrConfigInt(cmd, "max-chars", "max_chars_per_part"),
			MinParts:        flagOrConfigInt(cmd, "min-parts", "min_parts"),
			MaxParts:        flagOrConfigInt(cmd, "max-parts", "max_parts"),
		},
	}
}

func init() {
	extractCmd.Flags().String("dir", ".", "directory to scan for PDF files")
	extractCmd.Flags().String("output", "extracted_texts", "directory for text artifacts")
	extractCmd.Flags().Bool("recursive", false, "scan subdirectories as well")
	extractCmd.Flags().Int("max-chars", 50000, "maximum characters per output part")
	extractCmd.Flags().Int("min-parts", 2, "minimum parts for a split document")
	extractCmd.Flags().Int("max-parts", 3, "maximum parts for a split document")
	extractCmd.Flags().Bool("manifest", false, "record results in the extraction manifest")
	extractCmd.Flags().String("manifest-dir", "manifest", "base directory for the extraction manifest")
	extractCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(extractCmd)
}
