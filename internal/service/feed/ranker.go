// internal/service/feed/ranker.go

package feed

import (
	"context"
	"log"
	"sort"

	feedDomain "dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

// ClientReader defines the client queries the ranker needs.
type ClientReader interface {
	ListByCity(ctx context.Context, city string, limit int) ([]feedDomain.TrendingBusiness, error)
	ListByNeighborhood(ctx context.Context, name string, limit int) ([]feedDomain.TrendingBusiness, error)
}

// RankerConfig contains configuration for the trending ranker.
type RankerConfig struct {
	FetchLimit int
	TopN       int
}

// TrendingRanker ranks businesses by reputation score within an area scope.
type TrendingRanker struct {
	store  ClientReader
	config RankerConfig
}

// NewTrendingRanker creates a new trending ranker.
func NewTrendingRanker(store ClientReader, config RankerConfig) *TrendingRanker {
	if config.FetchLimit <= 0 {
		config.FetchLimit = 20
	}
	if config.TopN <= 0 {
		config.TopN = 5
	}

	return &TrendingRanker{
		store:  store,
		config: config,
	}
}

// Trending returns the top businesses for the area, ranked by reputation
// score descending. Query failures degrade silently to an empty list.
func (r *TrendingRanker) Trending(ctx context.Context, area neighborhood.Area) []feedDomain.TrendingBusiness {
	var clients []feedDomain.TrendingBusiness
	var err error

	if area.IsCity() {
		clients, err = r.store.ListByCity(ctx, area.City, r.config.FetchLimit)
	} else {
		clients, err = r.store.ListByNeighborhood(ctx, area.Name, r.config.FetchLimit)
	}
	if err != nil {
		log.Printf("Error loading trending businesses for %s: %v", area.Name, err)
		return nil
	}

	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].ReputationScore > clients[j].ReputationScore
	})

	if len(clients) > r.config.TopN {
		clients = clients[:r.config.TopN]
	}

	return clients
}
