package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kv.dev/portfolio/internal/models"
	"kv.dev/portfolio/internal/services"
)

// exportCmd dumps the stored projects to a JSON file
var exportCmd = &cobra.Command{
	Use:   "export <output-dir>",
	Short: "Write the stored projects to <output-dir>/projects.json",
	Long: `Write the stored project list to <output-dir>/projects.json as a
{"projects": [...]} document.

Examples:
  portfolio export ./dist`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	outputDir := args[0]
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	projects := services.NewRecordStore(e.kv, e.logger).Load(ctx)
	data, err := json.MarshalIndent(models.ProjectList{Projects: projects}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}

	path := filepath.Join(outputDir, "projects.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d projects)\n", path, len(projects))
	return nil
}
