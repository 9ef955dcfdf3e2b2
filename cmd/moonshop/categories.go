package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	pkgdb "github.com/toomajBandad/MoonShop-Backend/pkg/db"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Category tree maintenance",
}

var relevelCmd = &cobra.Command{
	Use:   "relevel",
	Short: "Recompute the stored level of every category",
	Long: `relevel walks every category up to its root and rewrites stored levels
that no longer match. Categories caught in a parent cycle are reported and
left untouched; the command then exits non-zero.`,
	RunE: runRelevel,
}

func init() {
	relevelCmd.Flags().Int("workers", 0, "concurrent level writes (overrides RELEVEL_WORKERS)")
	_ = v.BindPFlag("RELEVEL_WORKERS", relevelCmd.Flags().Lookup("workers"))
	categoriesCmd.AddCommand(relevelCmd)
}

func runRelevel(cmd *cobra.Command, _ []string) error {
	cfg, _ := loadConfig()
	if cfg.DatabaseURL == "" {
		return errors.New("missing required env DATABASE_URL")
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = pkgdb.Close(db) }()

	store := repo.NewCategoryRepo(db)
	r := &category.Resolver{Store: store, Workers: cfg.RelevelWorkers}
	report, err := r.RecomputeAllLevels(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(report); encErr != nil {
		return fmt.Errorf("write report: %w", encErr)
	}
	return err
}
