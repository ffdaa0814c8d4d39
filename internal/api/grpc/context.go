package grpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// RequestIDHeader is the metadata key carrying a caller-supplied request ID.
const RequestIDHeader = "x-request-id"

// RequestIDFromContext extracts the request ID from the incoming gRPC metadata.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	ids := md.Get(RequestIDHeader)
	if len(ids) == 0 || ids[0] == "" {
		return "", false
	}
	return ids[0], true
}
