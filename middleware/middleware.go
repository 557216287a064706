// Package middleware composes cross-cutting behavior around the transport
// hop: a middleware wraps the next handler and sees every outgoing request
// and its response.
package middleware

import (
	"context"

	"httprpc/request"
	"httprpc/transport"
)

// HandlerFunc performs one round trip.
type HandlerFunc func(ctx context.Context, req *request.EncodedRequest) (*transport.Response, error)

// Middleware wraps a handler with additional behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain combines middlewares into one; the first listed runs outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
