package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/leadtrack/internal/config"
	"github.com/xavierca1/leadtrack/internal/entity"
	"github.com/xavierca1/leadtrack/internal/infra/blob"
	"github.com/xavierca1/leadtrack/internal/infra/database"
	"github.com/xavierca1/leadtrack/internal/infra/http/handlers"
	"github.com/xavierca1/leadtrack/internal/infra/http/middleware"
	"github.com/xavierca1/leadtrack/internal/infra/mail"
	"github.com/xavierca1/leadtrack/internal/infra/queue"
	"github.com/xavierca1/leadtrack/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	ctx := context.Background()

	// Blob store backend
	var (
		blobStore entity.LeadBlobStore
		db        *sql.DB
	)
	switch cfg.BlobBackend {
	case "file":
		blobStore = blob.NewFileStore(cfg.BlobPath)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		blobStore = blob.NewRedisStore(client, cfg.RedisKey)
	case "postgres":
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres unreachable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := database.NewPostgresBlobStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure blob schema", "error", err)
			os.Exit(1)
		}
		blobStore = pg
	default:
		logger.Error("unknown blob backend", "backend", cfg.BlobBackend)
		os.Exit(1)
	}

	clock := entity.SystemClock{}
	store := usecase.NewLeadStore(blobStore, clock, logger)
	store.OnMutation(middleware.MutationCounter())

	// Optional AMQP mutation-event stream
	var amqpConn *amqp.Connection
	if cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Error("rabbitmq unreachable", "error", err)
			os.Exit(1)
		}
		defer rabbit.Close()
		amqpConn = rabbit.Conn
		store.OnMutation(queue.NewProducer(rabbit.Ch, logger).Listener())
	}

	// Load must finish before the store serves anything. A malformed
	// blob is recovered with the seed dataset; report it and carry on.
	if err := store.Load(ctx); err != nil {
		logger.Warn("lead store recovered from persistence error", "error", err)
	}

	// Optional follow-up digest sender
	var digester handlers.FollowUpDigester
	if cfg.MailHost != "" && cfg.DigestTo != "" {
		digester = mail.NewDigestSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	}

	leadHandler := handlers.NewLeadHandler(store, logger)
	followUpHandler := handlers.NewFollowUpHandler(store, clock, digester, cfg.DigestTo, logger)
	healthHandler := handlers.NewHealthHandler(db, amqpConn, cfg.BlobBackend)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(limiter.Limit)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Post("/{id}/contacted", leadHandler.MarkContacted)
		r.Post("/{id}/notes", leadHandler.AppendNote)
	})

	r.Get("/followups", followUpHandler.List)
	r.Post("/followups/digest", followUpHandler.SendDigest)

	logger.Info("leadtrack API listening", "addr", cfg.ServerAddr, "backend", cfg.BlobBackend)
	if err := http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
