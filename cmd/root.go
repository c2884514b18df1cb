package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/consultmatch/internal/adapters/repository"
	"github.com/okian/consultmatch/internal/adapters/repository/postgres"
	service "github.com/okian/consultmatch/internal/app"
	"github.com/okian/consultmatch/internal/config"
	"github.com/okian/consultmatch/pkg/logger"
)

const appName = "consultmatch"

// rootOptions carries persistent flags and the loaded configuration to
// subcommands.
type rootOptions struct {
	configFile string
	logLevel   string
	json       bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "consultmatch assembles consultant teams for projects",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (overrides "+config.EnvFile+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newAssignCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) init(ctx context.Context) error {
	if o.configFile != "" {
		if err := os.Setenv(config.EnvFile, o.configFile); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvFile, err)
		}
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.json {
		cfg.LogJSON = true
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg

	if err := logger.Init(logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// openStore returns the configured store backend.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.Store != config.StorePostgres {
		return repository.NewMemoryStore(), nil
	}
	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// newService builds a service over store from cfg.
func newService(cfg *config.Config, store repository.Store) (*service.Service, error) {
	engine, err := cfg.Scoring.Engine()
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(logger.Named("service")),
		service.WithStore(store),
		service.WithScoringEngine(engine),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithIdempotencySize(cfg.IdempotencySize),
	), nil
}
