package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appconfig "neuradigest/internal/config"
	"neuradigest/internal/infra/cache"
	"neuradigest/internal/infra/fetcher"
	"neuradigest/internal/infra/notifier"
	sheetsRepo "neuradigest/internal/infra/adapter/persistence/sheets"
	"neuradigest/internal/observability/logging"
	"neuradigest/internal/repository"

	newsUC "neuradigest/internal/usecase/news"
	"neuradigest/internal/usecase/notify"
	subUC "neuradigest/internal/usecase/subscription"

	hhttp "neuradigest/internal/handler/http"
	hauth "neuradigest/internal/handler/http/auth"
	hnews "neuradigest/internal/handler/http/news"
	"neuradigest/internal/handler/http/requestid"
	hsub "neuradigest/internal/handler/http/subscription"
	authservice "neuradigest/internal/service/auth"
	"neuradigest/internal/observability/tracing"
)

func main() {
	logger := logging.NewLogger()
	validateAdminCredentials(logger)
	validateJWTSecret(logger)

	appCfg := loadAppConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := initSubscriberStore(ctx, logger)
	newsCache := initNewsCache(ctx, logger)
	notifySvc := initNotify(logger)

	newsSvc := newsUC.NewService(
		newRSSFetcher(),
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
	subSvc := subUC.NewService(repo, appCfg.Validator(), notifySvc)

	version := getVersion()
	handler := setupServer(logger, repo, newsSvc, subSvc, notifySvc, version)

	runServer(ctx, cancel, logger, handler, notifySvc, version)
}

// validateAdminCredentials validates the admin credentials at startup.
// This prevents the server from starting with empty or weak admin credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateJWTSecret validates the JWT_SECRET environment variable.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

func loadAppConfig(logger *slog.Logger) *appconfig.AppConfig {
	cfg, err := appconfig.LoadAppConfig("")
	if err != nil {
		logger.Error("failed to load application config", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application config loaded",
		slog.Int("feeds", len(cfg.Feeds)),
		slog.Int("keywords", len(cfg.Keywords)))
	return cfg
}

// initSubscriberStore connects to the Google Sheets backing store.
func initSubscriberStore(ctx context.Context, logger *slog.Logger) *sheetsRepo.SubscriberRepo {
	cfg, err := sheetsRepo.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load sheets configuration", slog.Any("error", err))
		os.Exit(1)
	}

	svc, err := sheetsRepo.NewService(ctx, cfg)
	if err != nil {
		logger.Error("failed to create sheets client", slog.Any("error", err))
		os.Exit(1)
	}

	return sheetsRepo.NewSubscriberRepo(svc, cfg.SpreadsheetID)
}

// initNewsCache picks Redis when REDIS_ADDR is set, the in-process cache
// otherwise.
func initNewsCache(ctx context.Context, logger *slog.Logger) cache.NewsCache {
	redisCfg := cache.LoadRedisConfigFromEnv()
	if redisCfg.Addr == "" {
		logger.Info("news cache: in-memory")
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

// initNotify builds the welcome-mail dispatcher. A missing SMTP configuration
// disables the email channel rather than failing startup.
func initNotify(logger *slog.Logger) notify.Service {
	var mailer notifier.Mailer

	smtpCfg, err := notifier.LoadSMTPConfigFromEnv()
	if err != nil {
		logger.Warn("welcome mail disabled", slog.Any("error", err))
	} else {
		m, err := notifier.NewSMTPMailer(smtpCfg)
		if err != nil {
			logger.Warn("welcome mail disabled: SMTP client setup failed", slog.Any("error", err))
		} else {
			mailer = m
			logger.Info("welcome mail enabled", slog.String("host", smtpCfg.Host))
		}
	}

	channel := notify.NewEmailChannel(mailer, mailer != nil)
	return notify.NewService([]notify.Channel{channel}, 10)
}

func newRSSFetcher() *fetcher.RSSFetcher {
	cfg := fetcher.LoadConfigFromEnv()
	return fetcher.NewRSSFetcher(cfg.NewHTTPClient(), cfg.UserAgent)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// buildAuthService assembles the auth provider from the built-in policy,
// applying SECURITY_CONFIG_PATH overrides when the variable names a file.
func buildAuthService(logger *slog.Logger) (*authservice.AuthService, time.Duration) {
	minLen := hauth.MinPasswordLength()
	weakPasswords := hauth.WeakPasswords()
	publicEndpoints := hauth.PublicEndpoints
	tokenTTL := 1 * time.Hour

	if path := os.Getenv("SECURITY_CONFIG_PATH"); path != "" {
		policy, err := appconfig.LoadSecurityPolicy(path)
		if err != nil {
			logger.Error("failed to load security policy", slog.Any("error", err))
			os.Exit(1)
		}
		if policy.Auth.Provider != "basic" {
			logger.Error("unsupported auth provider", slog.String("provider", policy.Auth.Provider))
			os.Exit(1)
		}
		minLen = policy.Auth.MinPasswordLength
		if len(policy.Auth.WeakPasswords) > 0 {
			weakPasswords = policy.Auth.WeakPasswords
		}
		if len(policy.PublicEndpoints) > 0 {
			publicEndpoints = policy.PublicEndpoints
			// Authz ミドルウェアも同じリストを見る
			hauth.PublicEndpoints = policy.PublicEndpoints
		}
		tokenTTL = policy.TokenTTL
		logger.Info("security policy loaded",
			slog.String("path", path),
			slog.Duration("token_ttl", tokenTTL))
	}

	provider := hauth.NewBasicAuthProvider(minLen, weakPasswords)
	return authservice.NewAuthService(provider, publicEndpoints), tokenTTL
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(
	logger *slog.Logger,
	store repository.SubscriberRepository,
	newsSvc *newsUC.Service,
	subSvc *subUC.Service,
	notifySvc notify.Service,
	version string,
) http.Handler {
	// レート制限: 認証エンドポイントは1分間に5リクエストまで
	authRateLimiter := hhttp.NewRateLimiter(5, 1*time.Minute)

	authService, tokenTTL := buildAuthService(logger)

	pinger, _ := store.(hhttp.StorePinger)

	mux := http.NewServeMux()
	mux.Handle("POST /auth/token", authRateLimiter.Limit(hauth.TokenHandler(authService, tokenTTL)))

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{Store: pinger, Notify: notifySvc, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: pinger})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hnews.Register(mux, newsSvc, logger)
	hsub.Register(mux, subSvc, logger)

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Tracing → Recovery → Logging →
// Rate Limit → Body Limit → Input Validation → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// レート制限: 全体で1分間に120リクエストまで
	globalRateLimiter := hhttp.NewRateLimiter(120, 1*time.Minute)

	chain := handler

	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = globalRateLimiter.Limit(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *slog.Logger,
	handler http.Handler,
	notifySvc notify.Service,
	version string,
) {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// 送信中のウェルカムメールを待つ
	if err := notifySvc.Shutdown(shutdownCtx); err != nil {
		logger.Error("notify shutdown failed", slog.Any("error", err))
	}

	logger.Info("server stopped")
}
