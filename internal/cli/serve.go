package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/bootstrap"
	"github.com/sangkips/optica-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "run migrations and seed before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if migrateOnStart {
		if err := database.AutoMigrate(app.DB); err != nil {
			return err
		}
		if err := database.SeedDefaultData(app.DB, cfg.Seed); err != nil {
			log.Printf("Warning: Failed to seed default data: %v", err)
		}
	}

	go app.SweepIdempotencyKeys(ctx, time.Hour)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           app.Router(ctx.Done()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s (env=%s)", cfg.App.Name, cfg.App.Port, cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
	return nil
}
