// Package client implements the invocation proxy: it flattens arguments,
// builds and authenticates the request, dispatches it asynchronously, and
// delivers the decoded result (or an error) to the caller exactly once.
//
// Usage:
//
//	proxy, err := client.NewProxy("http://localhost:8080/api/",
//	    client.WithAuthentication(auth.Basic{Username: "user", Password: "pass"}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	args := argument.NewMap().Set("a", argument.Int(2)).Set("b", argument.Int(4))
//	handle := proxy.Invoke(ctx, "GET", "math/sum", args, nil, func(result any, err error) {
//	    // runs once, on the dispatch goroutine
//	})
//	handle.Cancel() // optional
//
// Errors are never returned synchronously from Invoke; every failure,
// including argument encoding problems, arrives through the callback.
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"httprpc/argument"
	"httprpc/auth"
	"httprpc/codec"
	"httprpc/loadbalance"
	"httprpc/middleware"
	"httprpc/registry"
	"httprpc/request"
	"httprpc/transport"
)

// defaultAccept mirrors what the proxy can decode out of the box.
const defaultAccept = "application/json, image/*, text/*"

// Proxy invokes remote operations over HTTP. Configuration is immutable
// after NewProxy, so one proxy is safe for any number of concurrent
// invocations.
type Proxy struct {
	baseURL  *url.URL
	resolver *Resolver
	builder  *request.Builder
	headers  http.Header
	auth     auth.Authentication
	decoders *codec.Registry
	send     middleware.HandlerFunc
}

// ProxyOption configures a proxy at construction time.
type ProxyOption func(*proxyConfig)

type proxyConfig struct {
	httpClient  *http.Client
	transport   transport.Transport
	auth        auth.Authentication
	decoders    *codec.Registry
	middlewares []middleware.Middleware
	headers     http.Header
	bodyless    []string
	resolver    *Resolver
}

// WithHTTPClient sets the net/http client backing the default transport.
func WithHTTPClient(c *http.Client) ProxyOption {
	return func(o *proxyConfig) { o.httpClient = c }
}

// WithTransport replaces the transport entirely.
func WithTransport(t transport.Transport) ProxyOption {
	return func(o *proxyConfig) { o.transport = t }
}

// WithAuthentication sets the authentication scheme applied to every
// request before dispatch.
func WithAuthentication(a auth.Authentication) ProxyOption {
	return func(o *proxyConfig) { o.auth = a }
}

// WithDecoders replaces the default decoder registry.
func WithDecoders(r *codec.Registry) ProxyOption {
	return func(o *proxyConfig) { o.decoders = r }
}

// WithMiddleware wraps the transport hop; the first middleware listed runs
// outermost.
func WithMiddleware(mw ...middleware.Middleware) ProxyOption {
	return func(o *proxyConfig) { o.middlewares = append(o.middlewares, mw...) }
}

// WithHeader adds a static header to every built request.
func WithHeader(name, value string) ProxyOption {
	return func(o *proxyConfig) { o.headers.Add(name, value) }
}

// WithBodylessVerbs designates extra verbs whose arguments always encode
// into the query string.
func WithBodylessVerbs(verbs ...string) ProxyOption {
	return func(o *proxyConfig) { o.bodyless = append(o.bodyless, verbs...) }
}

// WithResolver resolves the base URL per invocation from a service registry
// and a balancer, overriding the fixed base URL.
func WithResolver(reg registry.Registry, bal loadbalance.Balancer, service string) ProxyOption {
	return func(o *proxyConfig) { o.resolver = NewResolver(reg, bal, service) }
}

// NewProxy creates a proxy rooted at baseURL. baseURL may be empty when a
// resolver is configured.
func NewProxy(baseURL string, options ...ProxyOption) (*Proxy, error) {
	cfg := &proxyConfig{
		auth:     auth.None{},
		decoders: codec.DefaultRegistry(),
		headers:  make(http.Header),
	}
	for _, option := range options {
		option(cfg)
	}

	var base *url.URL
	if baseURL != "" {
		var err error
		base, err = url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
	} else if cfg.resolver == nil {
		return nil, errors.New("either a base URL or a resolver is required")
	}

	tr := cfg.transport
	if tr == nil {
		tr = transport.NewHTTPTransport(cfg.httpClient)
	}

	return &Proxy{
		baseURL:  base,
		resolver: cfg.resolver,
		builder:  request.NewBuilder(cfg.bodyless...),
		headers:  cfg.headers,
		auth:     cfg.auth,
		decoders: cfg.decoders,
		send:     middleware.Chain(cfg.middlewares...)(tr.RoundTrip),
	}, nil
}

// InvokeOption configures a single invocation.
type InvokeOption func(*invokeConfig)

type invokeConfig struct {
	decoder codec.Decoder
}

// WithDecoder sets a one-shot decoder that takes precedence over the
// registry regardless of the response content type. If it yields no value,
// the invocation fails with a DecodeError.
func WithDecoder(d codec.Decoder) InvokeOption {
	return func(o *invokeConfig) { o.decoder = d }
}

// Invoke executes a remote operation asynchronously.
//
// The outcome, a decoded value tree or an error, is delivered to handler
// exactly once, on the dispatch goroutine. handler may be nil; the outcome
// is then only available through the handle. The returned handle cancels
// the in-flight call; cancelling after the outcome is determined is a
// no-op.
func (p *Proxy) Invoke(ctx context.Context, method, path string, arguments *argument.Map, attachments *argument.FileSet, handler ResultHandler, options ...InvokeOption) *Handle {
	var cfg invokeConfig
	for _, option := range options {
		option(&cfg)
	}

	h := newHandle(handler)

	req, err := p.buildRequest(method, path, arguments, attachments)
	if err != nil {
		// Shape problems are detected synchronously but still delivered
		// through the callback: the handle is terminal before it is
		// returned, the callback fires off this goroutine.
		if h.complete(StateFailed, nil, err) {
			go h.deliver()
		}
		return h
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.markDispatched()

	go func() {
		defer cancel()

		resp, err := p.send(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				if h.complete(StateCancelled, nil, ErrCancelled) {
					h.deliver()
				}
			} else if h.complete(StateFailed, nil, &NetworkError{Cause: err}) {
				h.deliver()
			}
			return
		}

		// Decode regardless of status, so structured error bodies stay
		// available on StatusError.
		result, decodeErr := p.decodeBody(resp, cfg.decoder)

		switch {
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			err := &StatusError{Code: resp.StatusCode, Body: resp.Body, Value: result}
			if h.complete(StateFailed, nil, err) {
				h.deliver()
			}
		case decodeErr != nil:
			if h.complete(StateFailed, nil, decodeErr) {
				h.deliver()
			}
		default:
			if h.complete(StateSucceeded, result, nil) {
				h.deliver()
			}
		}
	}()

	return h
}

// Call is the synchronous form of Invoke: it blocks until the outcome is
// delivered.
func (p *Proxy) Call(ctx context.Context, method, path string, arguments *argument.Map, attachments *argument.FileSet, options ...InvokeOption) (any, error) {
	return p.Invoke(ctx, method, path, arguments, attachments, nil, options...).Result()
}

// buildRequest runs the synchronous half of the pipeline: resolve the
// target, flatten, build, decorate, authenticate.
func (p *Proxy) buildRequest(method, path string, arguments *argument.Map, attachments *argument.FileSet) (*request.EncodedRequest, error) {
	base := p.baseURL
	if p.resolver != nil {
		resolved, err := p.resolver.Resolve()
		if err != nil {
			return nil, &NetworkError{Cause: err}
		}
		base = resolved
	}

	rel, err := url.Parse(path)
	if err != nil {
		return nil, &argument.EncodingError{Reason: "invalid path " + path}
	}
	target := base.ResolveReference(rel)

	pairs, err := argument.Flatten(arguments)
	if err != nil {
		return nil, err
	}

	req, err := p.builder.Build(method, target, pairs, attachments)
	if err != nil {
		return nil, err
	}

	for name, values := range p.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", defaultAccept)
	}

	p.auth.Apply(req)

	return req, nil
}

// decodeBody turns a response body into a value tree. An empty body is a
// void result; a missing content type decodes to nil rather than failing.
func (p *Proxy) decodeBody(resp *transport.Response, override codec.Decoder) (any, error) {
	if len(resp.Body) == 0 {
		return nil, nil
	}

	contentType := resp.Header.Get("Content-Type")

	if override != nil {
		mimeType, charset, err := codec.ParseContentType(contentType)
		if err != nil {
			mimeType, charset = contentType, ""
		}
		value, err := override.Decode(resp.Body, charset)
		if err != nil {
			return nil, &codec.DecodeError{ContentType: mimeType, Cause: err}
		}
		if value == nil {
			return nil, &codec.DecodeError{ContentType: mimeType, Cause: errors.New("override decoder produced no value")}
		}
		return value, nil
	}

	if contentType == "" {
		return nil, nil
	}

	return p.decoders.Decode(contentType, resp.Body)
}
