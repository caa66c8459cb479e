package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	post_service "post-board-service/internal/application/service/post"
	post_service_port "post-board-service/internal/domain/ports/input/post"
	grpc_server "post-board-service/internal/infrastructure/inbound/grpc"
	http_server "post-board-service/internal/infrastructure/inbound/http"
	metrics_server "post-board-service/internal/infrastructure/inbound/metrics"
	"post-board-service/internal/infrastructure/observability"
	redis_cache "post-board-service/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "post-board-service/internal/infrastructure/outbound/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP, gRPC health and metrics servers",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	log = log.With(slog.String("env", cfg.Env))

	sessionMiddleware, err := newSessionMiddleware(cfg.Auth, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.Env, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	store, err := openStorage(ctx, cfg, log, metrics)
	if err != nil {
		log.Error("Failed to open storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		return err
	}
	defer store.close()

	var postService post_service_port.Service = post_service.NewPostService(store.postRepo, store.uow, log, metrics)

	if cfg.Redis.Enabled {
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()
		postCache := redis_cache.NewPostCache(redisClient, log, cfg.Redis.TTL)
		postService = post_service.NewPostServiceCacheDecorator(postService, postCache, log, metrics)
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	tracingService := ""
	if cfg.Tracing.Enabled {
		tracingService = cfg.Tracing.ServiceName
	}
	router, err := http_server.NewRouter(http_server.RouterConfig{
		PostService:    postService,
		Validate:       validator.New(),
		Session:        sessionMiddleware,
		Log:            log,
		Metrics:        metrics,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		RequestTimeout: cfg.HTTPServer.RequestTimeout,
		TracingService: tracingService,
	})
	if err != nil {
		return err
	}

	httpServer := http_server.NewServer(router, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log)
	grpcServer := grpc_server.NewServer(cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, metrics)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpServer.Run)
	g.Go(grpcServer.Run)
	g.Go(metricsServer.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := grpcServer.Shutdown(); err != nil {
			errs = append(errs, err)
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", slog.String("error", err.Error()))
		return err
	}
	log.Info("Server exited")
	return nil
}
