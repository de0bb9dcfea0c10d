// The worker refreshes the news digest cache on a schedule so API requests
// are served warm, and keeps the subscriber count gauge up to date.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	appconfig "neuradigest/internal/config"
	"neuradigest/internal/handler/http/respond"
	"neuradigest/internal/infra/cache"
	"neuradigest/internal/infra/fetcher"
	sheetsRepo "neuradigest/internal/infra/adapter/persistence/sheets"
	"neuradigest/internal/observability/logging"
	"neuradigest/internal/observability/metrics"
	loader "neuradigest/internal/pkg/config"
	"neuradigest/internal/repository"
	newsUC "neuradigest/internal/usecase/news"
	pkgconfig "neuradigest/pkg/config"
)

// workerConfig holds the scheduler settings, loaded from the environment
// with fail-open fallbacks.
type workerConfig struct {
	CronSchedule   string
	Timezone       string
	RefreshTimeout time.Duration

	// RefreshOnStart warms the cache immediately instead of waiting for
	// the first tick.
	RefreshOnStart bool
}

// configMetrics exposes worker_config_* gauges and counters so a schedule
// typo in the environment is visible on the metrics endpoint.
var configMetrics = loader.NewConfigMetrics("worker")

func loadWorkerConfig(logger *slog.Logger) workerConfig {
	var cfg workerConfig
	anyFallback := false

	apply := func(field string, result loader.ConfigLoadResult) loader.ConfigLoadResult {
		for _, warning := range result.Warnings {
			logger.Warn("worker configuration fallback", slog.String("warning", warning))
		}
		if result.FallbackApplied {
			configMetrics.RecordValidationError(field)
			configMetrics.RecordFallback(field)
			anyFallback = true
		}
		return result
	}

	cfg.CronSchedule = apply("cron_schedule",
		loader.LoadEnvWithFallback("CRON_SCHEDULE", "*/5 * * * *", loader.ValidateCronSchedule)).Value.(string)
	cfg.Timezone = apply("timezone",
		loader.LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", loader.ValidateTimezone)).Value.(string)
	cfg.RefreshTimeout = apply("refresh_timeout",
		loader.LoadEnvDuration("REFRESH_TIMEOUT", 2*time.Minute, pkgconfig.ValidatePositiveDuration)).Value.(time.Duration)
	cfg.RefreshOnStart = pkgconfig.GetEnvBool("REFRESH_ON_START", true)

	configMetrics.RecordLoadTimestamp()
	configMetrics.SetFallbackActive(anyFallback)
	return cfg
}

func main() {
	logger := logging.NewLogger()

	appCfg, err := appconfig.LoadAppConfig("")
	if err != nil {
		logger.Error("failed to load application config", slog.Any("error", err))
		os.Exit(1)
	}

	workerCfg := loadWorkerConfig(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.Duration("refresh_timeout", workerCfg.RefreshTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	newsCache := initNewsCache(ctx, logger)
	httpCfg := fetcher.LoadConfigFromEnv()
	newsSvc := newsUC.NewService(
		fetcher.NewRSSFetcher(httpCfg.NewHTTPClient(), httpCfg.UserAgent),
		newsCache,
		newsUC.Config{
			Sources:        appCfg.Feeds,
			Keywords:       appCfg.Keywords,
			PerFeedTimeout: appCfg.Digest.PerFeedTimeout,
			MaxPerSource:   appCfg.Digest.MaxPerSource,
			MaxTotal:       appCfg.Digest.MaxTotal,
			CacheTTL:       appCfg.Digest.CacheTTL,
		},
	)

	subscriberRepo := initSubscriberStore(ctx, logger)

	startMetricsServer(ctx, logger)
	startCronWorker(ctx, logger, newsSvc, subscriberRepo, workerCfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("worker shutting down")
	cancel()
}

// initNewsCache prefers Redis so the warmed digest is visible to the API
// process. The in-memory fallback still exercises the refresh path but only
// warms this process.
func initNewsCache(ctx context.Context, logger *slog.Logger) cache.NewsCache {
	redisCfg := cache.LoadRedisConfigFromEnv()
	if redisCfg.Addr == "" {
		logger.Warn("news cache: REDIS_ADDR not set, warming in-memory cache only")
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(ctx, redisCfg)
	if err != nil {
		logger.Warn("news cache: redis unavailable, falling back to in-memory",
			slog.Any("error", err))
		return cache.NewMemoryCache()
	}
	logger.Info("news cache: redis", slog.String("addr", redisCfg.Addr))
	return redisCache
}

// initSubscriberStore connects to the sheet for the subscriber count gauge.
// A missing configuration disables the gauge instead of failing startup.
func initSubscriberStore(ctx context.Context, logger *slog.Logger) repository.SubscriberRepository {
	cfg, err := sheetsRepo.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("subscriber gauge disabled", slog.Any("error", err))
		return nil
	}

	svc, err := sheetsRepo.NewService(ctx, cfg)
	if err != nil {
		logger.Warn("subscriber gauge disabled: sheets client setup failed", slog.Any("error", err))
		return nil
	}

	return sheetsRepo.NewSubscriberRepo(svc, cfg.SpreadsheetID)
}

// startCronWorker schedules the periodic refresh job. Unless disabled via
// REFRESH_ON_START it also runs the job once immediately so the cache is
// warm before the first tick.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	newsSvc *newsUC.Service,
	subscriberRepo repository.SubscriberRepository,
	cfg workerConfig,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		configMetrics.RecordValidationError("timezone")
		configMetrics.RecordFallback("timezone")
		configMetrics.SetFallbackActive(true)
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runRefreshJob(ctx, logger, newsSvc, subscriberRepo, cfg.RefreshTimeout)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	if cfg.RefreshOnStart {
		go runRefreshJob(ctx, logger, newsSvc, subscriberRepo, cfg.RefreshTimeout)
	}

	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))
}

// runRefreshJob executes a single digest refresh with timeout and updates
// the subscriber count gauge.
func runRefreshJob(
	ctx context.Context,
	logger *slog.Logger,
	newsSvc *newsUC.Service,
	subscriberRepo repository.SubscriberRepository,
	timeout time.Duration,
) {
	start := time.Now()
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, err := newsSvc.Refresh(jobCtx)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("digest refresh failed", slog.Any("error", respond.SanitizeError(err)))
	} else {
		logger.Info("digest refreshed",
			slog.Int("items", len(items)),
			slog.Duration("duration", time.Since(start)))
	}

	if subscriberRepo == nil {
		return
	}

	rows, err := subscriberRepo.List(jobCtx)
	if err != nil {
		logger.Warn("subscriber gauge update failed", slog.Any("error", respond.SanitizeError(err)))
		return
	}
	active := 0
	for _, row := range rows {
		if row.Subscriber.IsSubscribed() {
			active++
		}
	}
	metrics.UpdateSubscribersTotal(active)
	logger.Info("subscriber gauge updated", slog.Int("active", active))
}
