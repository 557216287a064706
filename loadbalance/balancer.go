// Package loadbalance provides strategies for spreading invocations across
// discovered service endpoints.
//
// Three strategies are implemented:
//   - RoundRobin:      stateless services, equal-capacity endpoints
//   - WeightedRandom:  heterogeneous endpoints (different capacity)
//   - ConsistentHash:  path affinity (same path → same endpoint)
package loadbalance

import "httprpc/registry"

// Balancer selects a target endpoint before each invocation.
// Pick is called on every invocation and must be goroutine-safe.
type Balancer interface {
	Pick(endpoints []registry.ServiceEndpoint) (*registry.ServiceEndpoint, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
