package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/designemotion/transcript/internal/bootstrap"
	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/database"
	"github.com/designemotion/transcript/internal/kvstore"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "error: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string
	var debugMode bool

	command := &cobra.Command{
		Use:           "transcript-server",
		Short:         "Serve page transcripts over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	command.Flags().StringVar(&configFile, "config", os.Getenv("TRANSCRIPT_CONFIG"), "config file path")
	command.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	return command
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func loadConfig(configFile string) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func run(ctx context.Context, cfg *config.Config) error {
	app := bootstrap.New()

	redisClient, err := kvstore.Connect(cfg.Redis)
	if err != nil {
		return fmt.Errorf("kvstore.Connect() > %w", err)
	}
	app.AddShutdownHook("redis", func(context.Context) error { return redisClient.Close() })

	db, err := database.Open(cfg.Database)
	if err != nil {
		return errors.Join(fmt.Errorf("database.Open() > %w", err), redisClient.Close())
	}
	app.AddShutdownHook("mysql", func(context.Context) error { return db.Close() })

	svc, err := wire(cfg, kvstore.NewRedisStore(redisClient), db)
	if err != nil {
		return errors.Join(fmt.Errorf("wire() > %w", err), redisClient.Close(), db.Close())
	}
	app.AddShutdownHook("inference", func(context.Context) error { return svc.routes.Close() })

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(svc.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("http", httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}
