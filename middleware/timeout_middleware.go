package middleware

import (
	"context"
	"time"

	"httprpc/request"
	"httprpc/transport"
)

// Timeout bounds each round trip with a deadline on the request context.
func Timeout(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *request.EncodedRequest) (*transport.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, req)
		}
	}
}
