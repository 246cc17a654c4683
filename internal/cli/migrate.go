package cli

import (
	"context"

	"github.com/sangkips/optica-api/internal/bootstrap"
	"github.com/sangkips/optica-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := bootstrap.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		return database.AutoMigrate(app.DB)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the first store and owner from SEED_* settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := bootstrap.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		if err := database.AutoMigrate(app.DB); err != nil {
			return err
		}
		return database.SeedDefaultData(app.DB, cfg.Seed)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

// openStore wires the app and binds ctx to the store with the given slug.
func openStore(ctx context.Context, slug string) (*bootstrap.App, context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	storeCtx, err := app.TenantContext(ctx, slug)
	if err != nil {
		app.Close()
		return nil, nil, err
	}
	return app, storeCtx, nil
}
