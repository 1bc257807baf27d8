package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/n3vocab/internal/adapter/postgres"
	lessonrepo "github.com/heartmarshall/n3vocab/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/n3vocab/internal/config"
	lessonsvc "github.com/heartmarshall/n3vocab/internal/service/lesson"
	"github.com/heartmarshall/n3vocab/internal/transport/graphql"
	"github.com/heartmarshall/n3vocab/internal/transport/graphql/resolver"
	"github.com/heartmarshall/n3vocab/internal/transport/rest"
)

// Run starts the lesson API and blocks until ctx is cancelled, then shuts
// the server down within the configured timeout.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := lessonrepo.New(pool)
	lessons := lessonsvc.NewService(logger, repo, cfg.API.DefaultLimit, cfg.API.MaxLimit)
	schema := graphql.NewExecutableSchema(graphql.Config{Resolvers: resolver.NewResolver(lessons)})
	router := rest.NewRouter(logger, cfg.CORS,
		rest.NewHealthHandler(postgres.NewPinger(pool), BuildVersion()),
		rest.NewLessonHandler(lessons, logger),
		graphql.NewHandler(logger, schema, repo),
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
