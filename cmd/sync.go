package cmd

import (
	"context"
	"fmt"

	"daysync/core/config"
	"daysync/core/logger"
	"daysync/core/merge"
	"daysync/core/reconcile"
	"daysync/core/storage"
	"daysync/feature/catalog"
	"daysync/feature/day"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	syncDate   string
	syncDryRun bool
)

// syncCmd is the parent command for all sync runs.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local and remote replicas",
	Long: `Reconcile the local database with the remote bucket.

Keys present on one side are copied to the other; keys present on both are
merged and written back to both sides unless the merge is a no-op.

Examples:
  # Plan a full sweep of all days without writing
  daysync sync days --dry-run

  # Sync a single day
  daysync sync days --date 2025-01-02

  # Sync the product catalog
  daysync sync catalog`,
}

var syncDaysCmd = &cobra.Command{
	Use:   "days",
	Short: "Sync day snapshots (all days, or one with --date)",
	RunE:  runSyncDays,
}

var syncCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Sync the product catalog",
	RunE:  runSyncCatalog,
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&syncDryRun, "dry-run", false, "Plan without writing (overrides SYNC_DRY_RUN)")
	syncDaysCmd.Flags().StringVar(&syncDate, "date", "", "Sync only this day (YYYY-MM-DD)")

	syncCmd.AddCommand(syncDaysCmd, syncCatalogCmd)
	RootCmd.AddCommand(syncCmd)
}

// syncEnv is what every sync run needs.
type syncEnv struct {
	cfg    *config.Config
	db     *gorm.DB
	client storage.Client
	log    *zap.Logger
	days   *day.Service
	items  *catalog.Service
	dryRun bool
}

func newSyncEnv(ctx context.Context, cmd *cobra.Command) (*syncEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := openDatabase(cfg, l)
	if err != nil {
		return nil, err
	}
	client, err := openStorage(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	dryRun := cfg.Sync.DryRun
	if cmd.Flags().Changed("dry-run") {
		dryRun = syncDryRun
	}

	merger := merge.New(merge.WithLogger(l.Named("merge")))
	dayLocal := day.NewLocalStore(db)
	if err := dayLocal.Migrate(); err != nil {
		return nil, err
	}
	catalogLocal := catalog.NewLocalStore(db)
	if err := catalogLocal.Migrate(); err != nil {
		return nil, err
	}

	dayAdapter := day.NewAdapter(dayLocal, day.NewRemoteStore(client, cfg.Storage.Bucket, cfg.Sync.DayPrefix), merger, cfg.Server.Replica())
	catalogAdapter := catalog.NewAdapter(catalogLocal, catalog.NewRemoteStore(client, cfg.Storage.Bucket, cfg.Sync.CatalogObject), merger)

	return &syncEnv{
		cfg:    cfg,
		db:     db,
		client: client,
		log:    l,
		days:   day.NewService(merger, dayAdapter, cfg.Sync.Concurrency, l),
		items:  catalog.NewService(merger, catalogAdapter, l),
		dryRun: dryRun,
	}, nil
}

func runSyncDays(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := newSyncEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	if syncDate != "" {
		res, err := env.days.Sync(ctx, syncDate, env.dryRun)
		if err != nil {
			return err
		}
		printResult(env.log, res.Key, res.Action, res.Applied, env.dryRun)
		return nil
	}

	env.log.Info("Starting day sweep", zap.Bool("dry_run", env.dryRun))
	report, err := env.days.SyncAll(ctx, env.dryRun)
	if err != nil {
		return err
	}
	printReport(env.log, report)
	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d days failed to sync", report.Summary.Failed, report.Summary.Total)
	}
	return nil
}

func runSyncCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := newSyncEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	res, err := env.items.Sync(ctx, env.dryRun)
	if err != nil {
		return err
	}
	printResult(env.log, res.Key, res.Action, res.Applied, env.dryRun)
	return nil
}

func printResult(l *zap.Logger, key string, action reconcile.ActionType, applied, dryRun bool) {
	l.Info("Sync result",
		zap.String("key", key),
		zap.String("action", string(action)),
		zap.Bool("applied", applied),
	)
	if dryRun && action != reconcile.ActionNone {
		l.Info("Dry-run mode: No changes were made.")
	}
}

// printReport logs the sweep summary and a sample of the keys that needed work.
func printReport[T any](l *zap.Logger, report *reconcile.ReconcileReport[T]) {
	s := report.Summary
	l.Info("Sync report",
		zap.String("adapter", report.Adapter),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("total", s.Total),
		zap.Int("local_only", s.LocalOnly),
		zap.Int("remote_only", s.RemoteOnly),
		zap.Int("merged", s.Merged),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("failed", s.Failed),
	)

	const maxShow = 5
	shown, hidden := 0, 0
	for _, res := range report.Results {
		if res.Action == reconcile.ActionNone && res.Error == "" {
			continue
		}
		if shown == maxShow {
			hidden++
			continue
		}
		shown++
		fields := []zap.Field{
			zap.String("key", res.Key),
			zap.String("action", string(res.Action)),
			zap.Bool("applied", res.Applied),
		}
		if res.Error != "" {
			fields = append(fields, zap.String("error", res.Error))
		}
		l.Info("Sample result", fields...)
	}
	if hidden > 0 {
		l.Info("Additional results not shown", zap.Int("count", hidden))
	}
}
