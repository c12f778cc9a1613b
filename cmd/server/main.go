package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campaignkit/marketing-api/internal/auth"
	"github.com/campaignkit/marketing-api/internal/config"
	"github.com/campaignkit/marketing-api/internal/database"
	"github.com/campaignkit/marketing-api/internal/handlers"
	"github.com/campaignkit/marketing-api/internal/logger"
	"github.com/campaignkit/marketing-api/internal/metrics"
	"github.com/campaignkit/marketing-api/internal/middleware"
	"github.com/campaignkit/marketing-api/internal/services/ai"
	"github.com/campaignkit/marketing-api/internal/services/campaign"
	"github.com/campaignkit/marketing-api/internal/services/prompt"
	"github.com/campaignkit/marketing-api/internal/services/segment"
	"github.com/campaignkit/marketing-api/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

// routerDeps carries everything newRouter needs. Interfaces stand in for the
// database-backed types so the routing table is testable without a database.
type routerDeps struct {
	cfg          *config.Config
	logger       *zap.Logger
	metrics      *metrics.Metrics
	db           handlers.Pinger
	feedbackRepo database.FeedbackRepositoryInterface
	credentials  *auth.CredentialStore
	tokens       *auth.TokenService
	provider     ai.TextGenerator
	rateLimit    func(http.Handler) http.Handler
	otelEnabled  bool
}

// newRouter assembles the services, handlers, middleware stack, and routes
func newRouter(d routerDeps) *mux.Router {
	segmenter := segment.New(d.logger, d.metrics)
	optimizer := prompt.New(d.feedbackRepo, d.logger, d.metrics)
	generator := ai.NewGenerator(d.provider, d.logger, d.metrics)
	campaignService := campaign.NewService(segmenter, optimizer, generator, d.feedbackRepo, d.logger, d.metrics)

	healthHandler := handlers.NewHealthHandler(d.db)
	authHandler := handlers.NewAuthHandler(d.credentials, d.tokens, d.logger)
	segmentHandler := handlers.NewSegmentHandler(segmenter, d.metrics)
	optimizeHandler := handlers.NewOptimizeHandler(optimizer, d.metrics)
	generateHandler := handlers.NewGenerateHandler(generator, d.logger, d.metrics)
	campaignHandler := handlers.NewCampaignHandler(campaignService, d.logger, d.metrics)
	feedbackHandler := handlers.NewFeedbackHandler(d.feedbackRepo, d.metrics, d.logger)

	r := mux.NewRouter()

	if d.otelEnabled {
		r.Use(otelmux.Middleware(telemetry.ServiceName))
	}
	r.Use(middleware.SecurityHeaders(d.cfg.EnableHSTS))
	r.Use(middleware.CORS(d.cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Recovery(d.logger, d.metrics))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.logger))
	r.Use(middleware.Metrics(d.metrics))

	r.HandleFunc("/", healthHandler.Root).Methods("GET")
	r.HandleFunc("/healthz", healthHandler.Healthz).Methods("GET")
	r.Handle("/metrics", d.metrics.Handler()).Methods("GET")

	// Token issuance gets its own subrouter so the Redis rate limit, when
	// configured, only throttles the unauthenticated login path.
	tokenRouter := r.PathPrefix("/token").Subrouter()
	if d.rateLimit != nil {
		tokenRouter.Use(d.rateLimit)
	}
	tokenRouter.HandleFunc("", authHandler.Token).Methods("POST")

	r.HandleFunc("/segment", segmentHandler.Segment).Methods("POST")
	r.HandleFunc("/optimize", optimizeHandler.Optimize).Methods("POST")
	r.HandleFunc("/generate", generateHandler.Generate).Methods("POST")
	r.HandleFunc("/generate-content", generateHandler.GenerateContent).Methods("POST")
	r.HandleFunc("/feedbacks", feedbackHandler.List).Methods("GET")

	protectedRouter := r.PathPrefix("/create-campaign").Subrouter()
	protectedRouter.Use(middleware.Auth(d.tokens, d.logger))
	protectedRouter.HandleFunc("", campaignHandler.CreateCampaign).Methods("POST")

	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_base_url", cfg.AIBaseURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	if cfg.UsingDefaultSecret() {
		zapLogger.Warn("jwt_secret_is_development_default_set_JWT_SECRET")
	}

	otelEnabled := false
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			shutdown, err := telemetry.Setup(context.Background(), cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				otelEnabled = true
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()
	if err := db.Migrate(migrateCtx); err != nil {
		zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
	}

	var rateLimitMW func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		redisClient, err := middleware.NewRedisClient(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		rateLimitMW, err = middleware.RateLimit(redisClient, middleware.DefaultLoginRate)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
		zapLogger.Info("login_rate_limit_enabled", zap.String("rate", middleware.DefaultLoginRate))
	}

	r := newRouter(routerDeps{
		cfg:          cfg,
		logger:       zapLogger,
		metrics:      metrics.New(),
		db:           db,
		feedbackRepo: database.NewFeedbackRepository(db),
		credentials: auth.NewCredentialStore(map[string]string{
			cfg.AuthUsername: cfg.AuthPasswordHash,
		}),
		tokens:      auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute),
		provider:    ai.NewOpenAIProvider(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, zapLogger, debugMode),
		rateLimit:   rateLimitMW,
		otelEnabled: otelEnabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   150 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
