package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"httprpc/request"
)

// HTTPTransport executes round trips with a net/http client. The client is
// injected: pooling, TLS, redirects and timeouts are its business.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps the given client; nil means http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) RoundTrip(ctx context.Context, req *request.EncodedRequest) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range req.Header {
		httpReq.Header[name] = values
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// drainAndClose consumes any unread data before closing so the underlying
// connection stays reusable.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
