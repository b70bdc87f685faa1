package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/riaz37/job-finder-sub001/internal/client"
	"github.com/riaz37/job-finder-sub001/internal/config"
	"github.com/riaz37/job-finder-sub001/internal/db"
	"github.com/riaz37/job-finder-sub001/internal/handler"
	"github.com/riaz37/job-finder-sub001/internal/logging"
	"github.com/riaz37/job-finder-sub001/internal/ratelimit"
	"github.com/riaz37/job-finder-sub001/internal/service"
	"github.com/riaz37/job-finder-sub001/internal/session"
	"github.com/riaz37/job-finder-sub001/internal/token"
)

func main() {
	// A missing .env is fine in production; variables come from the runtime.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.Log.Level)

	if cfg.Auth.JWTSecret == "" {
		log.Error("SECRET_KEY is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	database := db.New(pool)
	if err := database.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	codec := token.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessions := session.NewStore(rdb)
	limiter := ratelimit.New(rdb, cfg.Auth.RateLimitPerMinute, log)

	activity := logging.NewActivityLog(log, 0)
	defer activity.Close()

	embedder, err := client.NewEmbeddingClient(cfg.Embedding)
	if err != nil {
		// Matching and vectorization degrade; everything else works.
		log.Warn("embedding client disabled", "error", err)
	}

	automationSvc := service.NewAutomationService()
	authSvc, err := service.NewAuthService(database, sessions, codec, activity, log)
	if err != nil {
		log.Error("auth service setup failed", "error", err)
		os.Exit(1)
	}
	prefsSvc := service.NewPreferencesService(database, automationSvc, log)
	jobSvc := service.NewJobService(database, asEmbedder(embedder), log)
	resumeSvc := service.NewResumeService(database, database, asEmbedder(embedder), log)
	appSvc := service.NewApplicationService(database, database, prefsSvc, automationSvc, activity, log)

	router := buildRouter(cfg, log, codec, sessions, limiter, routerHandlers{
		health:       handler.NewHealthHandler(pool, rdb),
		auth:         handler.NewAuthHandler(authSvc),
		jobs:         handler.NewJobHandler(jobSvc),
		resumes:      handler.NewResumeHandler(resumeSvc),
		preferences:  handler.NewPreferencesHandler(prefsSvc, automationSvc),
		applications: handler.NewApplicationHandler(appSvc),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown incomplete", "error", err)
	}
}

// asEmbedder keeps a nil client from becoming a non-nil interface.
func asEmbedder(c *client.EmbeddingClient) service.Embedder {
	if c == nil {
		return nil
	}
	return c
}
