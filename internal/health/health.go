// Package health exposes the standard grpc.health.v1 service, driven by a
// periodic database ping.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the per-service name reported next to the overall "" entry.
const ServiceName = "dilci.Gateway"

const (
	defaultInterval = 15 * time.Second
	checkTimeout    = 5 * time.Second
)

// Pinger is satisfied by store.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server tracks serving status for the gRPC health service.
type Server struct {
	hs     *health.Server
	pinger Pinger
	logger *slog.Logger
}

// NewServer creates a health server. A nil pinger means the service is
// always SERVING.
func NewServer(pinger Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{hs: health.NewServer(), pinger: pinger, logger: logger}
}

// Register attaches the health service to g.
func (s *Server) Register(g *grpc.Server) {
	healthpb.RegisterHealthServer(g, s.hs)
}

// Check pings the database once and publishes the result.
func (s *Server) Check(ctx context.Context) error {
	var err error
	if s.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err = s.pinger.Ping(pingCtx)
		cancel()
	}

	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("Health check failed", "error", err)
	}
	s.hs.SetServingStatus("", status)
	s.hs.SetServingStatus(ServiceName, status)
	return err
}

// Run checks immediately and then every interval until ctx is done, at
// which point every service is marked NOT_SERVING.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = s.Check(ctx)
	for {
		select {
		case <-ticker.C:
			_ = s.Check(ctx)
		case <-ctx.Done():
			s.hs.Shutdown()
			return
		}
	}
}
