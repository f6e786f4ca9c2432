// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akarpov/pdftext/internal/manifest"
	"github.com/akarpov/pdftext/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Query the extraction manifest (list, search, export)",
	Long: `Manifest manages the SQLite record of past extraction runs. Use
subcommands to list processed documents, full-text search the extracted
text, or export the manifest.

The manifest is populated by running extract with --manifest.`,
}

// --- list subcommand ---

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed documents, most recent first",
	RunE:  runManifestList,
}

func runManifestList(cmd *cobra.Command, args []string) error {
	store, err := manifest.NewStore(manifestConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("Manifest is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-6s  %-9s  %-5s  %-7s  %s\n",
		"Document", "Pages", "Chars", "Parts", "Status", "Processed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range records {
		id := r.ID
		if len(id) > 30 {
			id = id[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-6d  %-9d  %-5d  %-7s  %s\n",
			id, r.Pages, r.Chars, r.Parts, r.Status, r.ProcessedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(records))
	return nil
}

// --- search subcommand ---

var manifestSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search the extracted text of past runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runManifestSearch,
}

func runManifestSearch(cmd *cobra.Command, args []string) error {
	store, err := manifest.NewStore(manifestConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%d. %s (part %d, %s)\n   %s\n",
			i+1, r.DocumentID, r.PartNum, r.FileName, r.Snippet)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var manifestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest to YAML or JSON",
	RunE:  runManifestExport,
}

func runManifestExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := manifestConfigFromFlags(cmd)
	store, err := manifest.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.yaml\n", cfg.Dir)
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.json\n", cfg.Dir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func manifestConfigFromFlags(cmd *cobra.Command) types.ManifestConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.ManifestConfig{
		Dir:        flagOrConfigString(cmd, "manifest-dir", "manifest_dir"),
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	manifestCmd.PersistentFlags().String("manifest-dir", "manifest", "base directory for the extraction manifest")
	manifestCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	manifestListCmd.Flags().Bool("json", false, "output records as JSON")

	manifestSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	manifestSearchCmd.Flags().Bool("json", false, "output results as JSON")

	manifestExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestSearchCmd)
	manifestCmd.AddCommand(manifestExportCmd)
}
