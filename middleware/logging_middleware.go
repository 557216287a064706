package middleware

import (
	"context"
	"log"
	"time"

	"httprpc/request"
	"httprpc/transport"
)

// Logging logs each round trip: verb, URL, duration, and status or error.
func Logging() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *request.EncodedRequest) (*transport.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			duration := time.Since(start)
			if err != nil {
				log.Printf("%s %s failed after %s: %v", req.Method, req.URL, duration, err)
				return nil, err
			}
			log.Printf("%s %s -> %d (%s)", req.Method, req.URL, resp.StatusCode, duration)
			return resp, nil
		}
	}
}
