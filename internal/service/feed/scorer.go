// internal/service/feed/scorer.go

package feed

import (
	"context"
	"log"
	"time"

	feedDomain "dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

// ActivityReader defines the activity queries the scorer needs.
type ActivityReader interface {
	RecommendationAuthorsByCity(ctx context.Context, city string, since time.Time) ([]string, error)
	RecommendationAuthorsByNeighborhood(ctx context.Context, name string, since time.Time) ([]string, error)
	PostAuthors(ctx context.Context, name string, since time.Time) ([]string, error)
}

// ScorerConfig contains configuration for the activity scorer.
type ScorerConfig struct {
	Window time.Duration
}

// ActivityScorer computes the neighborhood barometer from recommendation
// and post activity over a trailing window.
type ActivityScorer struct {
	store  ActivityReader
	config ScorerConfig
}

// NewActivityScorer creates a new activity scorer.
func NewActivityScorer(store ActivityReader, config ScorerConfig) *ActivityScorer {
	if config.Window <= 0 {
		config.Window = 7 * 24 * time.Hour
	}

	return &ActivityScorer{
		store:  store,
		config: config,
	}
}

// Score counts recent recommendations and community posts for the area.
// Recommendations are city-scoped when viewing a city, neighborhood-scoped
// otherwise; posts are always neighborhood-scoped. Query failures degrade
// to the zero stats.
func (s *ActivityScorer) Score(ctx context.Context, area neighborhood.Area) feedDomain.ActivityStats {
	since := time.Now().Add(-s.config.Window)

	var recAuthors []string
	var err error
	if area.IsCity() {
		recAuthors, err = s.store.RecommendationAuthorsByCity(ctx, area.City, since)
	} else {
		recAuthors, err = s.store.RecommendationAuthorsByNeighborhood(ctx, area.Name, since)
	}
	if err != nil {
		log.Printf("Error loading recommendations for %s: %v", area.Name, err)
		return feedDomain.ComputeStats(0, 0)
	}

	postAuthors, err := s.store.PostAuthors(ctx, area.Name, since)
	if err != nil {
		log.Printf("Error loading posts for %s: %v", area.Name, err)
		return feedDomain.ComputeStats(0, 0)
	}

	weeklyPosts := len(recAuthors) + len(postAuthors)

	unique := make(map[string]struct{}, weeklyPosts)
	for _, u := range recAuthors {
		unique[u] = struct{}{}
	}
	for _, u := range postAuthors {
		unique[u] = struct{}{}
	}

	return feedDomain.ComputeStats(weeklyPosts, len(unique))
}
