package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"

	"httprpc/registry"
)

// ConsistentHashBalancer maps keys (typically request paths) to endpoints
// on a hash ring, so the same key keeps hitting the same endpoint until the
// ring changes. Useful when endpoints keep per-resource caches.
//
// Each endpoint is placed on the ring as N virtual nodes; without them a
// handful of endpoints can cluster and skew the distribution.
//
// Pick takes a string key rather than an endpoint list, so it does not
// implement the Balancer interface directly.
type ConsistentHashBalancer struct {
	replicas int
	ring     []uint32 // sorted hash values on the ring
	nodes    map[uint32]*registry.ServiceEndpoint
}

// NewConsistentHashBalancer creates a hash ring with 100 virtual nodes per
// endpoint.
func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: 100,
		ring:     []uint32{},
		nodes:    make(map[uint32]*registry.ServiceEndpoint),
	}
}

// Add places an endpoint onto the ring with N virtual nodes, each hashed
// from "{baseURL}#{i}".
func (b *ConsistentHashBalancer) Add(endpoint *registry.ServiceEndpoint) {
	for i := 0; i < b.replicas; i++ {
		key := fmt.Sprintf("%s#%d", endpoint.BaseURL, i)
		hash := crc32.ChecksumIEEE([]byte(key))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = endpoint
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Pick finds the endpoint responsible for the given key: hash the key,
// binary-search for the first node >= hash, wrapping around at the end.
func (b *ConsistentHashBalancer) Pick(key string) (*registry.ServiceEndpoint, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("no endpoints on the ring")
	}

	hash := crc32.ChecksumIEEE([]byte(key))

	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}

	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
