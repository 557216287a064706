package client

import (
	"fmt"
	"net/url"

	"httprpc/loadbalance"
	"httprpc/registry"
)

// Resolver picks a base URL per invocation from a service registry and a
// load balancer, instead of a fixed base URL.
type Resolver struct {
	registry registry.Registry
	balancer loadbalance.Balancer
	service  string
}

// NewResolver creates a resolver for the named service.
func NewResolver(reg registry.Registry, bal loadbalance.Balancer, service string) *Resolver {
	return &Resolver{registry: reg, balancer: bal, service: service}
}

// Resolve discovers the service's endpoints and picks one.
func (r *Resolver) Resolve() (*url.URL, error) {
	endpoints, err := r.registry.Discover(r.service)
	if err != nil {
		return nil, fmt.Errorf("failed to discover service %q: %w", r.service, err)
	}

	endpoint, err := r.balancer.Pick(endpoints)
	if err != nil {
		return nil, fmt.Errorf("no usable endpoint for service %q: %w", r.service, err)
	}

	base, err := url.Parse(endpoint.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q for service %q: %w", endpoint.BaseURL, r.service, err)
	}
	return base, nil
}
