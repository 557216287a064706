// Package registry maps service names to HTTP base URLs, so a proxy can
// resolve its target endpoint per invocation instead of pinning one host.
package registry

// ServiceEndpoint describes one reachable instance of a service.
type ServiceEndpoint struct {
	BaseURL string // e.g. "http://10.0.0.5:8080/api/"
	Weight  int    // weight for load balancing
	Version string
}

// Registry is the service discovery interface.
type Registry interface {
	Register(serviceName string, endpoint ServiceEndpoint, ttl int64) error
	Deregister(serviceName string, baseURL string) error
	Discover(serviceName string) ([]ServiceEndpoint, error)
	Watch(serviceName string) <-chan []ServiceEndpoint
}
