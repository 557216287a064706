package registry

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/httprpc/"

// EtcdRegistry implements the Registry interface using etcd v3.
//
// Endpoints live under:
//
//	Key:   /httprpc/{ServiceName}/{escaped BaseURL}
//	Value: JSON-encoded ServiceEndpoint
//
// Registration uses TTL-based leases: if the publisher crashes, the lease
// expires and the entry disappears on its own, so consumers never resolve
// dead endpoints.
type EtcdRegistry struct {
	client *clientv3.Client // etcd client connection (thread-safe, shared across goroutines)
}

// NewEtcdRegistry creates a registry connected to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register publishes an endpoint with a TTL lease and keeps the lease alive
// in the background until the client is closed or the publisher exits.
func (r *EtcdRegistry) Register(serviceName string, endpoint ServiceEndpoint, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(endpoint)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, endpointKey(serviceName, endpoint.BaseURL), string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Consume keepalive responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an endpoint. Called on graceful shutdown.
func (r *EtcdRegistry) Deregister(serviceName string, baseURL string) error {
	_, err := r.client.Delete(context.TODO(), endpointKey(serviceName, baseURL))
	return err
}

// Watch emits the full endpoint list whenever anything under the service
// prefix changes (registration, deregistration, lease expiry).
func (r *EtcdRegistry) Watch(serviceName string) <-chan []ServiceEndpoint {
	ctx := context.TODO()
	ch := make(chan []ServiceEndpoint, 1)

	go func() {
		watchChan := r.client.Watch(ctx, keyPrefix+serviceName+"/", clientv3.WithPrefix())
		for range watchChan {
			// On any change, re-fetch the whole list; simpler than
			// reconstructing it from individual events.
			endpoints, _ := r.Discover(serviceName)
			ch <- endpoints
		}
	}()

	return ch
}

// Discover returns all currently registered endpoints for a service.
func (r *EtcdRegistry) Discover(serviceName string) ([]ServiceEndpoint, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+serviceName+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]ServiceEndpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var endpoint ServiceEndpoint
		if err := json.Unmarshal(kv.Value, &endpoint); err != nil {
			continue // skip malformed entries
		}
		endpoints = append(endpoints, endpoint)
	}

	return endpoints, nil
}

// Close releases the etcd connection.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}

// endpointKey escapes the base URL so its slashes don't fragment the key
// space under the service prefix.
func endpointKey(serviceName, baseURL string) string {
	return keyPrefix + serviceName + "/" + url.QueryEscape(baseURL)
}
