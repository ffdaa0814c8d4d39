package interceptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	api "fleet-rental-backend/internal/api/grpc"
	"fleet-rental-backend/internal/logger"
)

type ErrorInterceptor struct{}

func NewErrorInterceptor() *ErrorInterceptor {
	return &ErrorInterceptor{}
}

// Unary returns a server interceptor that attaches a request ID to the context,
// logs each call and converts domain errors into gRPC status codes.
func (i *ErrorInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID, ok := api.RequestIDFromContext(ctx)
		if !ok {
			requestID = uuid.NewString()
		}
		ctx = logger.WithRequestID(ctx, requestID)

		start := time.Now()
		resp, err := handler(ctx, req)
		err = api.ToStatus(err)

		code := status.Code(err)
		logger.InfoContext(ctx, "gRPC request",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", time.Since(start).Milliseconds())
		return resp, err
	}
}
