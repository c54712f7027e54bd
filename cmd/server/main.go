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
	"time"

	"github.com/spf13/cobra"
	"github.com/tripplanner/backend/internal/config"
	"github.com/tripplanner/backend/internal/handler"
	"github.com/tripplanner/backend/internal/logging"
	"github.com/tripplanner/backend/internal/repository"
	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/pkg/session"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile, addr, dbURL string
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the trip itinerary and expense API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = dbURL
			}
			logging.Setup(cfg.LogLevel)
			return run(cmd.Context(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
	cmd.Flags().StringVar(&dbURL, "database-url", "", "PostgreSQL URL for session snapshots (overrides DATABASE_URL)")
	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSecret() {
		slog.Warn("SESSION_SECRET not set, using development secret")
	}

	var (
		repo repository.SessionRepository
		db   repository.DB
	)
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		pg := repository.NewPgSessionRepository(pool)
		repo, db = pg, pg
		slog.Info("session store", "backend", "postgres")
	} else {
		mem := repository.NewMemorySessionRepository()
		repo, db = mem, mem
		slog.Info("session store", "backend", "memory")
	}

	sessionService := service.NewSessionService(repo, cfg.SessionTTL)
	go sessionService.RunSweeper(ctx, cfg.SweepInterval)

	var limiter *handler.RateLimiter
	if cfg.RateLimitPerMin > 0 {
		limiter = handler.NewRateLimiter(ctx, cfg.RateLimitPerMin, cfg.TrustedProxies)
	}

	routes := handler.Routes(handler.Deps{
		Base:      handler.New(db, cfg.FrontendURL),
		Sessions:  sessionService,
		Itinerary: handler.NewItineraryHandler(service.NewItineraryService(repo)),
		Expenses:  handler.NewExpenseHandler(service.NewExpenseService(repo)),
		Cookie: session.Config{
			Secret: session.SecretBytes(cfg.SessionSecret),
			TTL:    cfg.SessionTTL,
			Secure: cfg.SecureCookie,
		},
		Limiter: limiter,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      routes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
