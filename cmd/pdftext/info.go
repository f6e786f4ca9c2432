// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/cobra"

	"github.com/akarpov/pdftext/internal/scan"
)

var infoCmd = &cobra.Command{
	Use:   "info [pdfs...]",
	Short: "Show page counts and validity of PDF files without extracting",
	Long: `Info inspects PDF files structurally: page count and whether the file
validates as well-formed PDF. Pass file paths as arguments, or use --dir
to inspect every PDF in a directory.`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		dir, _ := cmd.Flags().GetString("dir")
		recursive, _ := cmd.Flags().GetBool("recursive")

		var err error
		paths, err = scan.DiscoverPDFs(dir, recursive)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDF files found in %s", dir)
		}
	}

	conf := model.NewDefaultConfiguration()

	fmt.Fprintf(os.Stdout, "%-40s  %-6s  %s\n", "File", "Pages", "Status")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))

	invalid := 0
	for _, path := range paths {
		name := filepath.Base(path)
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		if err := api.ValidateFile(path, conf); err != nil {
			fmt.Fprintf(os.Stdout, "%-40s  %-6s  invalid: %v\n", name, "-", err)
			invalid++
			continue
		}

		pages, err := api.PageCountFile(path)
		if err != nil {
			fmt.Fprintf(os.Stdout, "%-40s  %-6s  unreadable: %v\n", name, "-", err)
			invalid++
			continue
		}

		fmt.Fprintf(os.Stdout, "%-40s  %-6d  ok\n", name, pages)
	}

	fmt.Fprintf(os.Stdout, "\n%d files, %d invalid\n", len(paths), invalid)
	return nil
}

func init() {
	infoCmd.Flags().String("dir", ".", "directory to scan for PDF files")
	infoCmd.Flags().Bool("recursive", false, "scan subdirectories as well")

	rootCmd.AddCommand(infoCmd)
}
