package healthcheck

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"trustguard/internal/infrastructure/cache"
)

const serviceName = "trustguard.v1.TrustGuardService"

// RegisterHealthServer registers the gRPC health check service and
// starts a background probe. The analysis engine itself has no
// dependencies, so only the optional cache affects serving status.
func RegisterHealthServer(ctx context.Context, grpcServer *grpc.Server, cache *cache.RedisCache) {
	healthServer := health.NewServer()

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				healthServer.Shutdown()
				return
			case <-ticker.C:
				status := grpc_health_v1.HealthCheckResponse_SERVING
				if cache != nil {
					if _, err := cache.Client().Ping(ctx).Result(); err != nil {
						status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
					}
				}
				healthServer.SetServingStatus("", status)
				healthServer.SetServingStatus(serviceName, status)
			}
		}
	}()

	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
}
