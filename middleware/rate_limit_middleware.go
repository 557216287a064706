package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"httprpc/request"
	"httprpc/transport"
)

// ErrRateLimited is returned when a request exceeds the configured rate.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects requests beyond r per second with the given burst,
// using a token bucket shared by all invocations through the chain.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *request.EncodedRequest) (*transport.Response, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next(ctx, req)
		}
	}
}
