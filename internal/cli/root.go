// Package cli holds the optica command line: the API server plus operator
// commands that run against the same database.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sangkips/optica-api/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "optica",
	Short: "Optica - back office and point of sale for optical stores",
	Long: `Optica serves the store API (customers, prescriptions, stock, service
orders, point of sale, finance) and offers operator commands for
migrations, seeding and receivables reports.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (env, yaml or json) read on top of the environment")
	rootCmd.PersistentFlags().String("port", "", "HTTP port, overrides APP_PORT")
	_ = viper.BindPFlag("APP_PORT", rootCmd.PersistentFlags().Lookup("port"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
