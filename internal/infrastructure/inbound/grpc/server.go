package grpc_server

import (
	"fmt"
	"log/slog"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/inbound/grpc/middleware"
)

// ServiceName is the health service key reported for the post board.
const ServiceName = "postboard.v1.PostBoard"

// Server exposes grpc.health.v1 for orchestrators.
type Server struct {
	server  *grpc.Server
	health  *health.Server
	address string
	port    int
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewServer(address string, port int, log ports.Logger, metrics ports.MetricsProvider) *Server {
	s := &Server{
		health:  health.NewServer(),
		address: address,
		port:    port,
		log:     log,
		metrics: metrics,
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			middleware.UnaryLoggerInterceptor(log),
			middleware.UnaryMetricsInterceptor(metrics),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(func(p any) error {
				log.Error("Recovered from panic in gRPC handler", slog.Any("panic", p))
				return status.Error(codes.Internal, "internal server error")
			})),
		)),
	)
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	s.metrics.SetServiceHealth(serving)
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

// Serve blocks on an existing listener.
func (s *Server) Serve(lis net.Listener) error {
	s.SetServing(true)
	s.log.Info("Starting gRPC server", slog.String("address", lis.Addr().String()))
	return s.server.Serve(lis)
}

func (s *Server) Shutdown() error {
	s.SetServing(false)
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}
