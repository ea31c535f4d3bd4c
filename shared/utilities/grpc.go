package utilities

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// RegisterHealthServer registers the gRPC health check service and returns it so the
// caller can flip the serving status, for example when the database goes away.
func RegisterHealthServer(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return healthServer
}

// ServeGRPCHealth starts a gRPC server exposing only the health service on addr.
// The returned server must be stopped by the caller.
func ServeGRPCHealth(addr string, logger *zerolog.Logger) (*grpc.Server, *health.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	grpcServer := grpc.NewServer()
	healthServer := RegisterHealthServer(grpcServer)

	go func() {
		logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC health server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("gRPC health server stopped")
		}
	}()

	return grpcServer, healthServer, nil
}
