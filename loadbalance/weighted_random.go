package loadbalance

import (
	"fmt"
	"math/rand"

	"httprpc/registry"
)

// WeightedRandomBalancer picks endpoints randomly in proportion to their
// registered weight. Endpoints with zero weight are never picked.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.ServiceEndpoint) (*registry.ServiceEndpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	totalWeight := 0
	for _, e := range endpoints {
		totalWeight += e.Weight
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("no endpoint has positive weight")
	}

	r := rand.Intn(totalWeight)
	for i := range endpoints {
		r -= endpoints[i].Weight
		if r < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
