package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/auth"
	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/config"
	infraauth "github.com/AndresRicci93/countries-api/internal/infrastructure/auth"
	httprouter "github.com/AndresRicci93/countries-api/internal/infrastructure/http"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/http/handlers"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/http/middleware"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/persistence/db"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/persistence/postgres"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/queue"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/security"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	queries := db.New(pool)
	userRepo := postgres.NewUserRepository(queries)
	countryRepo := postgres.NewCountryRepository(queries)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var events ports.EventEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer enq.Close()
		events = enq
		worker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		events = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	tokens := infraauth.NewTokenService(cfg.JWT.Secret)
	tokenTTL := time.Duration(cfg.JWT.ExpirySec) * time.Second

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, tokens, tokenTTL, log)
	authenticator := auth.NewTokenAuthenticator(tokens, userRepo, log)

	mode := httprouter.ModeProduction
	if cfg.IsDevelopment() {
		mode = httprouter.ModeDevelopment
	}
	pipeline := httprouter.NewPipeline(mode, log)

	usersHandler := handlers.NewUsersHandler(registerUC, loginUC, userRepo, events, log)
	countriesHandler := handlers.NewCountriesHandler(countryRepo, authenticator, events, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment()))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		Users:       usersHandler,
		Countries:   countriesHandler,
		Health:      healthHandler,
		Pipeline:    pipeline,
		Log:         log,
		Secure:      secureMiddleware,
		CORS:        corsMiddleware,
		IPRateLimit: ipLimit,
		Metrics:     true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
