package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"civiclink/internal/analytics"
	"civiclink/internal/bills"
	"civiclink/internal/drafts"
	"civiclink/internal/officials"
	"civiclink/internal/platform/config"
	"civiclink/internal/platform/health"
	"civiclink/internal/platform/kafka/producer"
	"civiclink/internal/platform/logger"
	"civiclink/internal/ratelimit"
	httptransport "civiclink/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	log.Info("initializing civiclink",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"state_provider", cfg.StateProvider,
	)

	healthHandler := health.New(cfg.Environment)

	// Rate limiting: shared Redis when configured, per-process otherwise.
	rlMetrics := ratelimit.NewMetrics()
	var rlStore ratelimit.Store
	memoryStore := ratelimit.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		redisStore := ratelimit.NewRedisStore(redis.NewClient(redisOpts))
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisStore.Ping(ctx)
		})
		rlStore = redisStore
	} else {
		rlStore = memoryStore
	}
	limiter := ratelimit.NewMiddleware(rlStore, log, rlMetrics)

	// The memory store needs periodic bucket eviction; Redis expires keys
	// on its own.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	if cfg.RedisURL == "" {
		worker := ratelimit.NewCleanupWorker(memoryStore, log,
			ratelimit.WithInterval(cfg.RateLimitCleanupInterval),
			ratelimit.WithMetrics(rlMetrics),
		)
		go worker.Start(cleanupCtx)
	}

	officialsSvc := officials.NewService(
		officials.NewClient(cfg.CivicAPIKey, cfg.CivicBaseURL),
		log, officials.NewMetrics())

	billMetrics := bills.NewMetrics()
	var stateProvider bills.Provider
	switch cfg.StateProvider {
	case "openstates":
		stateProvider = bills.NewOpenStatesClient(cfg.OpenStatesAPIKey, cfg.OpenStatesBaseURL, billMetrics)
	default:
		stateProvider = bills.NewLegiScanClient(cfg.LegiScanAPIKey, cfg.LegiScanBaseURL, billMetrics)
	}
	billsSvc := bills.NewService(
		bills.NewCongressClient(cfg.CongressAPIKey, cfg.CongressBaseURL, billMetrics),
		stateProvider, log, billMetrics)

	draftsSvc := drafts.NewService(
		drafts.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMHTTPTimeout),
		log, drafts.NewMetrics())

	// Analytics: sqlite when a path is configured, memory otherwise.
	var eventStore analytics.Store
	if cfg.AnalyticsDBPath != "" {
		sqliteStore, err := analytics.NewSQLiteStore(cfg.AnalyticsDBPath)
		if err != nil {
			log.Error("analytics store error", "error", err)
			os.Exit(1)
		}
		eventStore = sqliteStore
	} else {
		eventStore = analytics.NewMemoryStore()
	}
	defer eventStore.Close()

	analyticsMetrics := analytics.NewMetrics()
	recorderOpts := []analytics.RecorderOption{
		analytics.WithBufferSize(cfg.AnalyticsBuffer),
		analytics.WithMetrics(analyticsMetrics),
	}
	var kafkaProducer *producer.Producer
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err = producer.New(cfg.KafkaBrokers, log)
		if err != nil {
			log.Error("kafka producer error", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		healthHandler.RegisterCheck("kafka", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if !kafkaProducer.Healthy(ctx) {
				return errors.New("kafka brokers unreachable")
			}
			return nil
		})
		recorderOpts = append(recorderOpts, analytics.WithMirror(kafkaProducer, cfg.KafkaTopic))
	}
	recorder := analytics.NewRecorder(eventStore, log, recorderOpts...)
	defer recorder.Close()

	if cfg.AnalyticsRetain > 0 {
		retention := analytics.NewRetentionWorker(eventStore, cfg.AnalyticsRetain, log,
			analytics.WithRetentionMetrics(analyticsMetrics))
		go retention.Start(cleanupCtx)
	}

	handlers := httptransport.NewHandlers(
		officialsSvc, billsSvc, draftsSvc,
		analytics.NewService(eventStore, log, analyticsMetrics),
		recorder)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		AdminToken:              cfg.AdminToken,
		RateLimitPerMinute:      cfg.RateLimitPerMinute,
		DraftRateLimitPerMinute: cfg.DraftRateLimitPerMinute,
	}, handlers, limiter, healthHandler, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")
	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
