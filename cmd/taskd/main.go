package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskservice/internal/config"
	"taskservice/internal/logging"
	"taskservice/internal/server"
	"taskservice/internal/service"
	"taskservice/internal/storage/sqlstore"
	"taskservice/internal/validation"
)

var _ service.Repository = (*sqlstore.Store)(nil)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "taskd",
		Short:         "Task tracking HTTP service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(v, configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.String("addr", "", "HTTP listen address")
	flags.String("db-driver", "", "Database driver: sqlite3 or pgx")
	flags.String("db-dsn", "", "SQLite file path or Postgres connection string")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")

	for key, flag := range map[string]string{
		config.KeyAddr:      "addr",
		config.KeyDBDriver:  "db-driver",
		config.KeyDBDSN:     "db-dsn",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
	} {
		// Only fails when the flag does not exist.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), v, configFile)
		},
	})

	return rootCmd
}

func setup(v *viper.Viper, configFile string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	return store, nil
}

func migrate(ctx context.Context, v *viper.Viper, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := setup(v, configFile)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("schema is up to date", slog.String("driver", cfg.DB.Driver))
	return store.Close()
}

func serve(v *viper.Viper, configFile string) error {
	cfg, logger, err := setup(v, configFile)
	if err != nil {
		return err
	}
	logger.Info("task service starting", slog.String("driver", cfg.DB.Driver))

	store, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks := service.NewTaskService(store, validation.New(nil), logger)
	srv := server.New(tasks, store, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serveErr:
		if ok {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			return err
		}
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
