// Package transport carries an encoded request over HTTP and returns the
// raw response envelope. The invocation proxy never touches net/http
// directly; it talks to the Transport interface, so the wire hop is an
// injection point for tests and custom clients.
package transport

import (
	"context"
	"net/http"

	"httprpc/request"
)

// Response is the raw result of one round trip, opaque until decoded.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs one HTTP round trip. Implementations must honor
// context cancellation and are called concurrently.
type Transport interface {
	RoundTrip(ctx context.Context, req *request.EncodedRequest) (*Response, error)
}
