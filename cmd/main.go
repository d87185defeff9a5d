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

	// Drivers
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	// Instrumentation
	"github.com/exaring/otelpgx"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/Neobase1412/meow-circle/config"
	"github.com/Neobase1412/meow-circle/internal/adapters/primary/events"
	http_adapter "github.com/Neobase1412/meow-circle/internal/adapters/primary/http"
	"github.com/Neobase1412/meow-circle/internal/adapters/secondary/cache"
	"github.com/Neobase1412/meow-circle/internal/adapters/secondary/eventbroker"
	"github.com/Neobase1412/meow-circle/internal/adapters/secondary/repository"
	"github.com/Neobase1412/meow-circle/internal/adapters/secondary/security"
	"github.com/Neobase1412/meow-circle/internal/core/services"
)

func main() {
	// 1. Config & Logger
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)
	slog.Info("🚀 Starting Meow Circle", "env", cfg.Env, "port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: Base de données (Postgres)
	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		slog.Error("Unable to parse DB config", "error", err)
		os.Exit(1)
	}
	// Instrumentation SQL (Pour voir les requêtes dans Jaeger)
	dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	slog.Info("✅ Connected to Postgres")

	// 4. Infrastructure: Event Broker (NATS)
	nc, err := nats.Connect(cfg.NatsUrl)
	if err != nil {
		slog.Error("Unable to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer nc.Close()
	slog.Info("✅ Connected to NATS")

	// 5. Infrastructure: Cache timelines (Redis)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Warn("Failed to instrument Redis", "error", err)
	}
	defer redisClient.Close()

	// 6. Sécurité : vérification des tokens émis par le service d'identité
	verifier, err := security.NewJWTVerifierFromFile(cfg.RSAPublicKeyPath)
	if err != nil {
		slog.Error("Unable to load RSA public key", "error", err)
		os.Exit(1)
	}

	// 7. Initialisation des Adapters (Driven)
	relationRepo := repository.NewRelationPostgresRepo(dbPool)
	userRepo := repository.NewUserPostgresRepo(dbPool)
	postRepo := repository.NewPostPostgresRepo(dbPool)
	petRepo := repository.NewPetPostgresRepo(dbPool)
	discussionRepo := repository.NewDiscussionPostgresRepo(dbPool)
	notificationRepo := repository.NewNotificationPostgresRepo(dbPool)
	productRepo := repository.NewProductPostgresRepo(dbPool)
	timelineRepo := cache.NewRedisTimelineRepo(redisClient)
	eventPub := eventbroker.NewNatsPublisher(nc)

	// 8. Initialisation du Core (Domain Logic)
	relationService := services.NewRelationService(relationRepo, eventPub)
	readerService := services.NewReaderService(userRepo, postRepo, petRepo, discussionRepo, relationRepo)
	postService := services.NewPostService(postRepo, eventPub)
	petService := services.NewPetService(petRepo)
	discussionService := services.NewDiscussionService(discussionRepo)
	notificationService := services.NewNotificationService(notificationRepo, postRepo)
	feedService := services.NewFeedService(timelineRepo, relationRepo, cfg.FeedFanoutBatch)
	shopService := services.NewShopService(productRepo)
	profileService := services.NewProfileService(userRepo)

	// 9. Primary Adapter asynchrone : consommateurs NATS
	eventHandler := events.NewEventHandler(feedService, notificationService)
	if err := eventHandler.Subscribe(nc); err != nil {
		slog.Error("Unable to subscribe to NATS subjects", "error", err)
		os.Exit(1)
	}
	slog.Info("👂 Event consumers ready")

	// 10. Primary Adapter synchrone : HTTP (gin + otelhttp)
	router := http_adapter.NewRouter(cfg.Env, verifier,
		http_adapter.NewRelationHandler(relationService),
		http_adapter.NewPostHandler(postService, readerService),
		http_adapter.NewFeedHandler(feedService, readerService),
		http_adapter.NewUserHandler(readerService, postService, petService, profileService),
		http_adapter.NewPetHandler(petService, readerService),
		http_adapter.NewDiscussionHandler(discussionService, readerService),
		http_adapter.NewNotificationHandler(notificationService),
		http_adapter.NewShopHandler(shopService),
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "http.request"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 11. Démarrage
	go func() {
		slog.Info("📡 Meow Circle listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("👋 Server exited")
}

// --- Helpers (À déplacer un jour dans pkg/telemetry et pkg/logger) ---

func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Env == "local" {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
