// internal/service/neighborhood/resolver_test.go

package neighborhood

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicilo/internal/adapter/storage"
	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

type fakeUserStore struct {
	records []neighborhood.Neighborhood
	err     error
}

func (f *fakeUserStore) ListUser(ctx context.Context) ([]neighborhood.Neighborhood, error) {
	return f.records, f.err
}

func (f *fakeUserStore) FindBySlug(ctx context.Context, slug string) (*neighborhood.Neighborhood, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	for i := range f.records {
		if f.records[i].Slug == slug {
			r := f.records[i]
			return &r, strings.EqualFold(r.Name, r.City), nil
		}
	}
	return nil, false, storage.ErrNotFound
}

func (f *fakeUserStore) FindByName(ctx context.Context, name string) (*neighborhood.Neighborhood, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	for i := range f.records {
		if strings.EqualFold(f.records[i].Name, name) {
			r := f.records[i]
			return &r, strings.EqualFold(r.Name, r.City), nil
		}
	}
	return nil, false, storage.ErrNotFound
}

func (f *fakeUserStore) Insert(ctx context.Context, n neighborhood.Neighborhood) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, n)
	return nil
}

type fakeSystemStore struct {
	countries []storage.SystemCountry
	err       error
}

func (f *fakeSystemStore) ListCountries(ctx context.Context) ([]storage.SystemCountry, error) {
	return f.countries, f.err
}

func newTestResolver(t *testing.T, user *fakeUserStore, system *fakeSystemStore) *Resolver {
	t.Helper()

	r := NewResolver(user, system, NewGazetteer(), nil, ResolverConfig{
		DefaultCity:    "Hamburg",
		DefaultCountry: "Germany",
	})
	require.NoError(t, r.Start(context.Background()))
	return r
}

func TestMergeRecordsUserWinsOnCollision(t *testing.T) {
	system := []neighborhood.Neighborhood{
		{ID: "Altona", Name: "Altona", City: "SystemCity", Provenance: neighborhood.ProvenanceSystem},
	}
	user := []neighborhood.Neighborhood{
		{
			ID:         "u1",
			Name:       "ALTONA",
			City:       "Hamburg",
			Location:   &geo.Coordinates{Lat: 53.55, Lng: 9.93},
			Provenance: neighborhood.ProvenanceUser,
		},
	}

	merged := mergeRecords(system, user)

	require.Len(t, merged, 1)
	assert.Equal(t, "Hamburg", merged[0].City)
	assert.Equal(t, neighborhood.ProvenanceUser, merged[0].Provenance)
	require.NotNil(t, merged[0].Location)
	assert.Equal(t, 53.55, merged[0].Location.Lat)
}

func TestMergeRecordsIdempotent(t *testing.T) {
	system := []neighborhood.Neighborhood{
		{ID: "Altona", Name: "Altona", City: "Hamburg"},
		{ID: "Ottensen", Name: "Ottensen", City: "Hamburg"},
	}
	user := []neighborhood.Neighborhood{
		{ID: "u1", Name: "Sternschanze", City: "Hamburg"},
		{ID: "u2", Name: "ottensen", City: "Hamburg"},
	}

	first := mergeRecords(system, user)
	second := mergeRecords(system, user)

	assert.Equal(t, first, second)

	// No duplicate names, case-insensitively.
	seen := make(map[string]bool)
	for _, r := range first {
		lower := strings.ToLower(r.Name)
		assert.False(t, seen[lower], "duplicate name %q", r.Name)
		seen[lower] = true
	}
}

func TestFlattenSystem(t *testing.T) {
	countries := []storage.SystemCountry{
		{
			Country: "Germany",
			Cities: []storage.SystemCity{
				{Name: "Hamburg", Districts: []string{"Altona", "Ottensen"}},
				{Name: "Berlin", Districts: []string{"Mitte"}},
			},
		},
	}

	flat := flattenSystem(countries)

	require.Len(t, flat, 3)
	assert.Equal(t, "Altona", flat[0].ID)
	assert.Equal(t, "Altona", flat[0].Name)
	assert.Equal(t, "Hamburg", flat[0].City)
	assert.Equal(t, "Germany", flat[0].Country)
	assert.Equal(t, neighborhood.ProvenanceSystem, flat[0].Provenance)
	assert.Equal(t, "Berlin", flat[2].City)
}

func TestResolveRootCity(t *testing.T) {
	r := newTestResolver(t, &fakeUserStore{}, &fakeSystemStore{})

	area := r.Resolve(context.Background(), "hamburg")

	assert.Equal(t, "Hamburg", area.Name)
	assert.Equal(t, "Hamburg", area.City)
	assert.Equal(t, neighborhood.KindCity, area.Kind)
	assert.True(t, area.IsCity())
}

func TestResolveGazetteerDistrict(t *testing.T) {
	r := newTestResolver(t, &fakeUserStore{}, &fakeSystemStore{})

	area := r.Resolve(context.Background(), "ottensen")

	assert.Equal(t, "Ottensen", area.Name)
	assert.Equal(t, "Hamburg", area.City)
	assert.Equal(t, neighborhood.KindDistrict, area.Kind)
}

func TestResolveUserRecordBySlug(t *testing.T) {
	user := &fakeUserStore{records: []neighborhood.Neighborhood{
		{ID: "u1", Name: "Sternschanze", Slug: "sternschanze", City: "Hamburg"},
	}}
	r := newTestResolver(t, user, &fakeSystemStore{})

	area := r.Resolve(context.Background(), "sternschanze")

	assert.Equal(t, "Sternschanze", area.Name)
	assert.Equal(t, "Hamburg", area.City)
	assert.Equal(t, neighborhood.KindDistrict, area.Kind)
}

func TestResolveUnknownNameBecomesDefaultCityDistrict(t *testing.T) {
	r := newTestResolver(t, &fakeUserStore{}, &fakeSystemStore{})

	area := r.Resolve(context.Background(), "Nirgendwo")

	assert.Equal(t, "Nirgendwo", area.Name)
	assert.Equal(t, "Hamburg", area.City)
	assert.Equal(t, neighborhood.KindDistrict, area.Kind)
}

func TestResolveStoreErrorFallsBackToDefaultCity(t *testing.T) {
	user := &fakeUserStore{err: assert.AnError}
	r := NewResolver(user, &fakeSystemStore{}, NewGazetteer(), nil, ResolverConfig{
		DefaultCity: "Hamburg",
	})

	area := r.Resolve(context.Background(), "Nirgendwo")

	assert.Equal(t, "Hamburg", area.Name)
	assert.Equal(t, neighborhood.KindCity, area.Kind)
}

func TestSubAreasAlphabeticalWithoutViewerLocation(t *testing.T) {
	user := &fakeUserStore{records: []neighborhood.Neighborhood{
		{ID: "u1", Name: "Sternschanze", City: "Hamburg"},
	}}
	r := newTestResolver(t, user, &fakeSystemStore{})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	areas := r.SubAreas(context.Background(), area, neighborhood.ListOptions{})

	require.NotEmpty(t, areas)

	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = a.Name
		// The city's own self entry never appears in its district list.
		assert.NotEqual(t, "Hamburg", a.Name)
	}

	assert.Contains(t, names, "Altona")
	assert.Contains(t, names, "Sternschanze")

	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, strings.ToLower(names[i-1]), strings.ToLower(names[i]))
	}
}

func TestSubAreasDistanceSortWithViewerLocation(t *testing.T) {
	user := &fakeUserStore{records: []neighborhood.Neighborhood{
		// No coordinates: must sort last.
		{ID: "u1", Name: "Sternschanze", City: "Hamburg"},
	}}
	r := newTestResolver(t, user, &fakeSystemStore{})

	// Viewer standing in Ottensen.
	viewer := &geo.Coordinates{Lat: 53.5542, Lng: 9.9201}
	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}
	areas := r.SubAreas(context.Background(), area, neighborhood.ListOptions{ViewerLocation: viewer})

	require.NotEmpty(t, areas)
	assert.Equal(t, "Ottensen", areas[0].Name)
	assert.Equal(t, "Sternschanze", areas[len(areas)-1].Name)
	assert.Equal(t, float64(geo.UnknownDistanceKm), areas[len(areas)-1].DistanceKm)

	for i := 1; i < len(areas); i++ {
		assert.LessOrEqual(t, areas[i-1].DistanceKm, areas[i].DistanceKm)
	}
}

func TestSubAreasCrossCitySearch(t *testing.T) {
	user := &fakeUserStore{records: []neighborhood.Neighborhood{
		{ID: "u1", Name: "Kreuzkölln", City: "Berlin"},
	}}
	r := newTestResolver(t, user, &fakeSystemStore{})

	area := neighborhood.Area{Name: "Hamburg", City: "Hamburg", Kind: neighborhood.KindCity}

	// Without a search term the Berlin record stays out of the Hamburg list.
	areas := r.SubAreas(context.Background(), area, neighborhood.ListOptions{})
	for _, a := range areas {
		assert.NotEqual(t, "Kreuzkölln", a.Name)
	}

	// With a matching search term it mixes in despite the city mismatch.
	areas = r.SubAreas(context.Background(), area, neighborhood.ListOptions{Search: "kreuzk"})
	require.Len(t, areas, 1)
	assert.Equal(t, "Kreuzkölln", areas[0].Name)
}

func TestRegisterExistingReturnsCanonicalSlug(t *testing.T) {
	user := &fakeUserStore{records: []neighborhood.Neighborhood{
		{ID: "u1", Name: "Sternschanze", Slug: "sternschanze", City: "Hamburg"},
	}}
	r := newTestResolver(t, user, &fakeSystemStore{})

	result, err := r.Register(context.Background(), "STERNSCHANZE", "user-1", "Germany")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Exists)
	assert.False(t, result.Created)
	assert.Equal(t, "sternschanze", result.Slug)
	assert.Equal(t, "Sternschanze", result.Name)
	assert.Len(t, user.records, 1, "no duplicate row created")
}

func TestRegisterCreatesNewNeighborhood(t *testing.T) {
	user := &fakeUserStore{}
	r := newTestResolver(t, user, &fakeSystemStore{})

	result, err := r.Register(context.Background(), "Karoviertel", "user-1", "")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Created)
	assert.Equal(t, "karoviertel", result.Slug)

	require.Len(t, user.records, 1)
	created := user.records[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hamburg", created.City)
	assert.Equal(t, "Germany", created.Country)
	assert.Equal(t, neighborhood.ProvenanceUser, created.Provenance)
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	r := newTestResolver(t, &fakeUserStore{}, &fakeSystemStore{})

	result, err := r.Register(context.Background(), "  ", "user-1", "Germany")

	require.Error(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}
