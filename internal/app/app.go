package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/category"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/clusterrule"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/entry"
	"github.com/qiwenzhou/mytime-backend/internal/adapter/postgres/goal"
	"github.com/qiwenzhou/mytime-backend/internal/auth"
	"github.com/qiwenzhou/mytime-backend/internal/config"
	"github.com/qiwenzhou/mytime-backend/internal/domain"
	"github.com/qiwenzhou/mytime-backend/internal/service/analytics"
	"github.com/qiwenzhou/mytime-backend/internal/transport/middleware"
	"github.com/qiwenzhou/mytime-backend/internal/transport/rest"
	"github.com/qiwenzhou/mytime-backend/migrations"
)

// seriesColors adapts the static config color map to the analytics service.
type seriesColors map[string]string

func (c seriesColors) SeriesColor(key string) (string, bool) {
	color, ok := c[key]
	return color, ok
}

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires the analytics service, and serves HTTP until SIGINT or
// SIGTERM, then shuts down gracefully.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	loc := analytics.ParseTimezone(cfg.Analytics.Timezone)
	sensitivity, _ := domain.ParseSensitivity(cfg.Analytics.DefaultSensitivity)

	svc := analytics.NewService(
		logger,
		entry.New(pool),
		goal.New(pool),
		category.New(pool),
		clusterrule.New(pool),
		seriesColors(cfg.Analytics.SeriesColors()),
		clock,
		loc,
		sensitivity,
	)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Health:             rest.NewHealthHandler(pool, BuildVersion()),
		Analytics:          rest.NewAnalyticsHandler(svc, clock, loc, cfg.Analytics.SuggestionLimit, logger),
		Validator:          jwtMgr,
		CORS:               cfg.CORS,
		Logger:             logger,
		Limiter:            limiter,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
