package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daysync/core/config"
	"daysync/core/logger"
	"daysync/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daysync server",
	Long: `Starts the HTTP server. Merge endpoints always work; sync endpoints need both
the local database and the remote storage to be reachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Both replicas are optional; without them the server only merges.
		var db *gorm.DB
		if conn, err := openDatabase(cfg, logg); err != nil {
			logg.Warn("Local database unavailable, sync disabled", zap.Error(err))
		} else {
			db = conn
		}

		var client storage.Client
		if db != nil {
			if c, err := openStorage(ctx, cfg, logg); err != nil {
				logg.Warn("Remote storage unavailable, sync disabled", zap.Error(err))
			} else {
				client = c
			}
		}

		app, err := newServer(cfg, logg, db, client)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
