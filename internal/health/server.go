// Package health serves the standard gRPC health-checking protocol for the
// archive endpoint.
package health

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"photoarchive/pkg/logger"
)

// ServiceName is the service reported next to the overall "" status.
const ServiceName = "photoarchive.Archive"

type Server struct {
	grpcServer *grpc.Server
	status     *health.Server
	logger     *logger.Logger
}

// NewServer returns a health server reporting NOT_SERVING until SetServing
// is called.
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.WithField("component", "health")
	}

	status := health.NewServer()
	status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	status.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, status)

	return &Server{
		grpcServer: grpcServer,
		status:     status,
		logger:     log,
	}
}

// SetServing flips both the overall and the archive service status.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.status.SetServingStatus("", st)
	s.status.SetServingStatus(ServiceName, st)
	s.logger.Debug("health status changed", "status", st.String())
}

// Listen opens a TCP listener on address.
func Listen(address string) (net.Listener, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	return lis, nil
}

// Serve blocks until Stop is called or lis fails.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("starting health server", "address", lis.Addr().String())
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		s.logger.Error("health server stopped with error", "error", err)
		return err
	}
	s.logger.Info("health server stopped")
	return nil
}

// Stop reports NOT_SERVING to open watchers and then stops the server.
func (s *Server) Stop() {
	s.status.Shutdown()
	s.grpcServer.GracefulStop()
}
