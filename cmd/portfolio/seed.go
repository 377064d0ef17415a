package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/services"
)

var seedForce bool

// seedCmd writes the sample projects into the store
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample projects into the store",
	Long: `Write the sample projects into the store. Without --force an existing list
is left untouched.

Examples:
  # Seed only if the store is empty
  portfolio seed

  # Replace whatever is stored
  portfolio seed --force`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "replace an existing project list")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	store := services.NewRecordStore(e.kv, e.logger)
	defaults := catalog.SeedProjects()

	if seedForce {
		if err := store.Reset(ctx); err != nil {
			return err
		}
		e.logger.Info("cleared stored project list")
	}

	seeded, err := store.Seed(ctx, defaults)
	if err != nil {
		return fmt.Errorf("failed to seed projects: %w", err)
	}
	if !seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Store already has a project list; use --force to replace it.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d projects.\n", len(defaults))
	return nil
}
