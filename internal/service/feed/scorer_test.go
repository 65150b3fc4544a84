// internal/service/feed/scorer_test.go

package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

type fakeActivityStore struct {
	cityAuthors         []string
	neighborhoodAuthors []string
	postAuthors         []string
	err                 error

	cityCalls         []string
	neighborhoodCalls []string
}

func (f *fakeActivityStore) RecommendationAuthorsByCity(ctx context.Context, city string, since time.Time) ([]string, error) {
	f.cityCalls = append(f.cityCalls, city)
	return f.cityAuthors, f.err
}

func (f *fakeActivityStore) RecommendationAuthorsByNeighborhood(ctx context.Context, name string, since time.Time) ([]string, error) {
	f.neighborhoodCalls = append(f.neighborhoodCalls, name)
	return f.neighborhoodAuthors, f.err
}

func (f *fakeActivityStore) PostAuthors(ctx context.Context, name string, since time.Time) ([]string, error) {
	return f.postAuthors, f.err
}

func TestScoreCityScopesRecommendationsByCity(t *testing.T) {
	store := &fakeActivityStore{
		cityAuthors: []string{"a", "b"},
		postAuthors: []string{"c"},
	}
	scorer := NewActivityScorer(store, ScorerConfig{})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	stats := scorer.Score(context.Background(), area)

	assert.Equal(t, []string{"Hamburg"}, store.cityCalls)
	assert.Empty(t, store.neighborhoodCalls)
	assert.Equal(t, 3, stats.WeeklyPosts)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 45, stats.Score)
}

func TestScoreDistrictScopesRecommendationsByName(t *testing.T) {
	store := &fakeActivityStore{
		neighborhoodAuthors: []string{"a"},
	}
	scorer := NewActivityScorer(store, ScorerConfig{})

	area := neighborhood.Area{Name: "Ottensen", City: "Hamburg", Kind: neighborhood.KindDistrict}
	scorer.Score(context.Background(), area)

	assert.Empty(t, store.cityCalls)
	assert.Equal(t, []string{"Ottensen"}, store.neighborhoodCalls)
}

func TestScoreCountsUniqueAuthorsAcrossSources(t *testing.T) {
	store := &fakeActivityStore{
		neighborhoodAuthors: []string{"a", "a", "b"},
		postAuthors:         []string{"b", "c"},
	}
	scorer := NewActivityScorer(store, ScorerConfig{})

	area := neighborhood.Area{Name: "Ottensen", City: "Hamburg", Kind: neighborhood.KindDistrict}
	stats := scorer.Score(context.Background(), area)

	assert.Equal(t, 5, stats.WeeklyPosts)
	assert.Equal(t, 3, stats.ActiveUsers)
}

func TestScoreQueryErrorDegradesToZeroStats(t *testing.T) {
	store := &fakeActivityStore{err: assert.AnError}
	scorer := NewActivityScorer(store, ScorerConfig{})

	area := neighborhood.Area{Name: "Ottensen", City: "Hamburg", Kind: neighborhood.KindDistrict}
	stats := scorer.Score(context.Background(), area)

	assert.Equal(t, feed.ComputeStats(0, 0), stats)
}
