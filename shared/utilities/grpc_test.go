package utilities

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestServeGRPCHealth(t *testing.T) {
	logger := zerolog.Nop()

	grpcServer, healthServer, err := ServeGRPCHealth("127.0.0.1:0", &logger)
	require.NoError(t, err)
	t.Cleanup(grpcServer.Stop)

	info := grpcServer.GetServiceInfo()
	_, ok := info["grpc.health.v1.Health"]
	assert.True(t, ok)

	resp, err := healthServer.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	resp, err = healthServer.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestRegisterHealthServer(t *testing.T) {
	s := grpc.NewServer(grpc.Creds(insecure.NewCredentials()))
	defer s.Stop()

	hs := RegisterHealthServer(s)
	require.NotNil(t, hs)
}
