package server

import (
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the service name reported alongside the overall status.
const HealthService = "countdown.Game"

// HealthServer exposes the standard gRPC health protocol. It starts
// NOT_SERVING and follows the lifecycle through SetServing.
type HealthServer struct {
	addr   string
	logger *zap.Logger
	grpc   *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewHealthServer creates a health server that will listen on addr.
//
// Precondition: addr must be a valid "host:port"; logger must be non-nil.
func NewHealthServer(addr string, logger *zap.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)

	return &HealthServer{
		addr:   addr,
		logger: logger,
		grpc:   srv,
		health: hs,
	}
}

// Start listens and serves until Stop is called.
func (h *HealthServer) Start() error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", h.addr, err)
	}
	h.mu.Lock()
	h.listener = ln
	h.mu.Unlock()

	h.logger.Info("health endpoint listening", zap.String("addr", ln.Addr().String()))
	if err := h.grpc.Serve(ln); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("serving health: %w", err)
	}
	return nil
}

// Stop marks every service NOT_SERVING and stops the gRPC server.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.grpc.GracefulStop()
}

// SetServing reports the game service and the server as a whole.
func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(HealthService, status)
	h.logger.Debug("health status changed", zap.Stringer("status", status))
}

// Addr returns the bound address, or nil before Start has listened.
func (h *HealthServer) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}
