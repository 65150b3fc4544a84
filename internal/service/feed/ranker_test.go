// internal/service/feed/ranker_test.go

package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

type fakeClientStore struct {
	clients []feed.TrendingBusiness
	err     error

	cityCalls         []string
	neighborhoodCalls []string
	lastLimit         int
}

func (f *fakeClientStore) ListByCity(ctx context.Context, city string, limit int) ([]feed.TrendingBusiness, error) {
	f.cityCalls = append(f.cityCalls, city)
	f.lastLimit = limit
	return f.clients, f.err
}

func (f *fakeClientStore) ListByNeighborhood(ctx context.Context, name string, limit int) ([]feed.TrendingBusiness, error) {
	f.neighborhoodCalls = append(f.neighborhoodCalls, name)
	f.lastLimit = limit
	return f.clients, f.err
}

func TestTrendingRanksByReputationDescending(t *testing.T) {
	store := &fakeClientStore{clients: []feed.TrendingBusiness{
		{ID: "1", Name: "Bäckerei Nord", ReputationScore: 3.2},
		{ID: "2", Name: "Cafe Elbe", ReputationScore: 4.8},
		{ID: "3", Name: "Kiosk 24", ReputationScore: 0},
		{ID: "4", Name: "Friseur Mai", ReputationScore: 4.1},
	}}
	ranker := NewTrendingRanker(store, RankerConfig{})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	top := ranker.Trending(context.Background(), area)

	require.Len(t, top, 4)
	assert.Equal(t, "Cafe Elbe", top[0].Name)
	assert.Equal(t, "Friseur Mai", top[1].Name)
	assert.Equal(t, "Bäckerei Nord", top[2].Name)
	assert.Equal(t, "Kiosk 24", top[3].Name)
}

func TestTrendingTruncatesToTopN(t *testing.T) {
	clients := make([]feed.TrendingBusiness, 8)
	for i := range clients {
		clients[i] = feed.TrendingBusiness{ID: string(rune('a' + i)), ReputationScore: float64(i)}
	}
	store := &fakeClientStore{clients: clients}
	ranker := NewTrendingRanker(store, RankerConfig{FetchLimit: 20, TopN: 5})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	top := ranker.Trending(context.Background(), area)

	require.Len(t, top, 5)
	assert.Equal(t, float64(7), top[0].ReputationScore)
	assert.Equal(t, 20, store.lastLimit)
}

func TestTrendingScopesByAreaKind(t *testing.T) {
	store := &fakeClientStore{}
	ranker := NewTrendingRanker(store, RankerConfig{})

	ranker.Trending(context.Background(), neighborhood.Area{
		Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity,
	})
	ranker.Trending(context.Background(), neighborhood.Area{
		Name: "Ottensen", City: "Hamburg", Kind: neighborhood.KindDistrict,
	})

	assert.Equal(t, []string{"Hamburg"}, store.cityCalls)
	assert.Equal(t, []string{"Ottensen"}, store.neighborhoodCalls)
}

func TestTrendingQueryErrorDegradesToEmpty(t *testing.T) {
	store := &fakeClientStore{err: assert.AnError}
	ranker := NewTrendingRanker(store, RankerConfig{})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	assert.Empty(t, ranker.Trending(context.Background(), area))
}
