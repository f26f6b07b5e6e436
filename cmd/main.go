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

	// Drivers
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	// Instrumentation
	"github.com/exaring/otelpgx"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"

	// Interne
	"github.com/jupiterclapton/cenackle/services/movie-service/config"
	"github.com/jupiterclapton/cenackle/services/movie-service/graph"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/adapters/primary/httpserver"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/adapters/secondary/repository"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/ports"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/services"
	"github.com/jupiterclapton/cenackle/services/movie-service/internal/telemetry"
)

func main() {
	// 1. Config & Logger
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(telemetry.NewLogger(os.Stdout, cfg.Env, cfg.ServiceName, cfg.LogLevel))
	slog.Info("🚀 Starting Movie Service", "env", cfg.Env, "port", cfg.Port, "grpc_port", cfg.GRPCPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.TracerOptions{
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
		Endpoint:    cfg.OtelEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	// 3. Infrastructure: Base de données (Postgres ou mémoire)
	var store ports.Store
	if cfg.UseMemoryStore() {
		store = repository.NewMemoryStore()
		slog.Warn("⚠️ Using in-memory store, data will not survive a restart")
	} else {
		dbPool, err := connectPostgres(ctx, cfg)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		pgStore := repository.NewPostgresStore(dbPool)
		if err := pgStore.Migrate(ctx); err != nil {
			slog.Error("Unable to apply schema", "error", err)
			os.Exit(1)
		}
		store = pgStore
		slog.Info("✅ Connected to Postgres")
	}

	// 4. Infrastructure: Event Broker (NATS JetStream)
	var publisher ports.EventPublisher = eventbroker.NopPublisher{}
	if cfg.NatsUrl != "" {
		broker, err := eventbroker.NewNatsBroker(ctx, cfg.NatsUrl)
		if err != nil {
			slog.Error("Unable to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer broker.Close()
		publisher = broker
		slog.Info("✅ Connected to NATS")
	} else {
		slog.Info("NATS_URL empty, catalog events disabled")
	}

	// 5. Core (Domain Logic)
	catalog := services.NewCatalogService(store, publisher)

	// 6. Primary Adapter: GraphQL over HTTP
	schema, err := graph.NewSchema(&graph.Resolver{Catalog: catalog}, cfg.GraphQLMaxDepth)
	if err != nil {
		slog.Error("Invalid GraphQL schema", "error", err)
		os.Exit(1)
	}

	srvHTTP := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpserver.NewRouter(schema, httpserver.Options{
			Env:            cfg.Env,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			SDL:            graph.SchemaSDL(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7. gRPC: Health Check standard pour K8s/Docker
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.Env != "prod" {
		// Active la reflection pour grpcurl / Postman
		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		slog.Error("Failed to listen", "error", err)
		os.Exit(1)
	}

	// 8. Démarrage Graceful
	go func() {
		slog.Info("📡 GraphQL listening", "port", cfg.Port)
		if err := srvHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		slog.Info("📡 Health gRPC listening", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	grpcServer.GracefulStop()

	slog.Info("👋 Server exited")
}

// --- Helpers ---

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	// Instrumentation SQL (Pour voir les requêtes dans Jaeger)
	dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	dbConfig.MaxConns = cfg.DBMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
