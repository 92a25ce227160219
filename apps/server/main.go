package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/repofit/repofit/apps/server/internal/handler"
	"github.com/repofit/repofit/apps/server/internal/platform/logger"
	"github.com/repofit/repofit/apps/server/internal/platform/postgres"
	"github.com/repofit/repofit/apps/server/internal/platform/telemetry"
	"github.com/repofit/repofit/apps/server/internal/platform/validation"
	"github.com/repofit/repofit/internal/store"
	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/internal/platform/github"
	"github.com/repofit/repofit/schemas"
)

func main() {
	slog := logger.New()

	// --- Observability ---

	// Default the service name before any OTel init.
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", "repofit-server") //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	ctx := context.Background()
	tel, err := telemetry.New(ctx, otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Analysis rules ---

	cfg, err := analysis.LoadConfig(os.Getenv("RULES_FILE"))
	if err != nil {
		slog.Error("load rules config failed", "path", os.Getenv("RULES_FILE"), "error", err)
		os.Exit(1)
	}

	// --- Platform: GitHub ---

	gh, err := newGitHubAdapter()
	if err != nil {
		slog.Error("github client init failed", "error", err)
		os.Exit(1)
	}

	// --- Platform: report store ---

	reports, err := newReportStore(ctx)
	if err != nil {
		slog.Error("report store init failed", "backend", envOr("STORE", "memory"), "error", err)
		os.Exit(1)
	}
	slog.Info("report store ready", "backend", envOr("STORE", "memory"))

	// --- Service + HTTP ---

	svc := analysis.NewService(gh, gh, reports, cfg, slog)

	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router.Use(gin.Recovery(), otelgin.Middleware("repofit-server"), validator)
	handler.RegisterRoutes(router, svc, slog)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := envOr("PORT", "8080")
	slog.Info("starting repofit", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newGitHubAdapter builds the GitHub adapter from environment configuration.
// GitHub App credentials win over a plain token; with neither the client is
// unauthenticated (fine against the mock server, rate-limited against real
// GitHub).
func newGitHubAdapter() (*github.Adapter, error) {
	baseURL := os.Getenv("GITHUB_API_URL")

	if appID := os.Getenv("GITHUB_APP_ID"); appID != "" {
		id, err := strconv.ParseInt(appID, 10, 64)
		if err != nil {
			return nil, err
		}
		instID, err := strconv.ParseInt(os.Getenv("GITHUB_INSTALLATION_ID"), 10, 64)
		if err != nil {
			return nil, err
		}
		client, err := github.NewAppClient(id, instID, os.Getenv("GITHUB_PRIVATE_KEY_PATH"), baseURL)
		if err != nil {
			return nil, err
		}
		return github.New(client), nil
	}

	return github.New(github.NewTokenClient(os.Getenv("GITHUB_TOKEN"), baseURL)), nil
}

// newReportStore selects the report sink from the STORE env var:
// "postgres", "redis", or the default in-memory store.
func newReportStore(ctx context.Context) (analysis.ReportStore, error) {
	switch os.Getenv("STORE") {
	case "postgres":
		migrations, err := store.MigrationsFS()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.New(ctx, os.Getenv("DATABASE_URL"), migrations)
		if err != nil {
			return nil, err
		}
		return store.NewPGReportStore(pool), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: envOr("REDIS_ADDR", "localhost:6379")})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return store.NewRedisReportStore(rdb), nil
	default:
		return store.NewMemReportStore(), nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
