// internal/service/neighborhood/resolver.go

package neighborhood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"dicilo/internal/adapter/storage"
	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

// UserCollection defines storage for community-registered neighborhoods.
type UserCollection interface {
	ListUser(ctx context.Context) ([]neighborhood.Neighborhood, error)
	FindBySlug(ctx context.Context, slug string) (*neighborhood.Neighborhood, bool, error)
	FindByName(ctx context.Context, name string) (*neighborhood.Neighborhood, bool, error)
	Insert(ctx context.Context, n neighborhood.Neighborhood) error
}

// SystemCollection defines storage for the admin-managed location hierarchy.
type SystemCollection interface {
	ListCountries(ctx context.Context) ([]storage.SystemCountry, error)
}

// ResolverConfig contains configuration for the resolver.
type ResolverConfig struct {
	DefaultCity    string
	UserSubject    string
	SystemSubject  string
	DefaultCountry string
}

// Resolver resolves neighborhood names to city scope and maintains the
// merged neighborhood list. The two collections are refreshed independently
// when their change events arrive; every refresh feeds the latest snapshot
// of both through a pure merge, so the merged list is eventually consistent
// with whichever snapshots arrived last.
type Resolver struct {
	userStore   UserCollection
	systemStore SystemCollection
	gazetteer   *Gazetteer
	eventBus    *nats.Conn
	config      ResolverConfig

	mu         sync.RWMutex
	userSnap   []neighborhood.Neighborhood
	systemSnap []neighborhood.Neighborhood
	merged     []neighborhood.Neighborhood

	subs []*nats.Subscription
}

// NewResolver creates a new resolver. The event bus may be nil, in which
// case snapshots are loaded once at start and never refreshed.
func NewResolver(
	userStore UserCollection,
	systemStore SystemCollection,
	gazetteer *Gazetteer,
	eventBus *nats.Conn,
	config ResolverConfig,
) *Resolver {
	if config.DefaultCity == "" {
		config.DefaultCity = DefaultCity
	}

	return &Resolver{
		userStore:   userStore,
		systemStore: systemStore,
		gazetteer:   gazetteer,
		eventBus:    eventBus,
		config:      config,
	}
}

// Start loads both collection snapshots and subscribes to their change
// events.
func (r *Resolver) Start(ctx context.Context) error {
	r.reloadUser(ctx)
	r.reloadSystem(ctx)

	if r.eventBus == nil {
		return nil
	}

	userSub, err := r.eventBus.Subscribe(r.config.UserSubject, func(msg *nats.Msg) {
		r.reloadUser(context.Background())
	})
	if err != nil {
		return fmt.Errorf("error subscribing to user collection events: %w", err)
	}
	r.subs = append(r.subs, userSub)

	systemSub, err := r.eventBus.Subscribe(r.config.SystemSubject, func(msg *nats.Msg) {
		r.reloadSystem(context.Background())
	})
	if err != nil {
		return fmt.Errorf("error subscribing to system collection events: %w", err)
	}
	r.subs = append(r.subs, systemSub)

	return nil
}

// Stop tears down the live subscriptions.
func (r *Resolver) Stop(ctx context.Context) error {
	for _, sub := range r.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Error unsubscribing resolver: %v", err)
		}
	}
	r.subs = nil
	return nil
}

// reloadUser refreshes the user collection snapshot and re-merges. Load
// errors keep the previous snapshot.
func (r *Resolver) reloadUser(ctx context.Context) {
	records, err := r.userStore.ListUser(ctx)
	if err != nil {
		log.Printf("Error loading neighborhoods: %v", err)
		return
	}

	r.mu.Lock()
	r.userSnap = records
	r.merged = mergeRecords(r.systemSnap, r.userSnap)
	r.mu.Unlock()
}

// reloadSystem refreshes and flattens the system collection snapshot and
// re-merges.
func (r *Resolver) reloadSystem(ctx context.Context) {
	countries, err := r.systemStore.ListCountries(ctx)
	if err != nil {
		log.Printf("Error loading system locations: %v", err)
		return
	}

	r.mu.Lock()
	r.systemSnap = flattenSystem(countries)
	r.merged = mergeRecords(r.systemSnap, r.userSnap)
	r.mu.Unlock()
}

// Merged returns a copy of the current merged neighborhood list.
func (r *Resolver) Merged() []neighborhood.Neighborhood {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]neighborhood.Neighborhood, len(r.merged))
	copy(out, r.merged)
	return out
}

// Resolve determines the city context for a neighborhood name or slug.
// Lookup order: root cities, static gazetteer, user collection by slug then
// by name. Store errors fall back to the default city and are never
// returned to the caller.
func (r *Resolver) Resolve(ctx context.Context, nameOrSlug string) neighborhood.Area {
	input := strings.TrimSpace(nameOrSlug)
	if input == "" {
		return neighborhood.Area{
			Name: r.config.DefaultCity,
			City: r.config.DefaultCity,
			Kind: neighborhood.KindCity,
		}
	}

	if r.gazetteer.IsRootCity(input) {
		city := r.gazetteer.CanonicalCity(input)
		return neighborhood.Area{Name: city, City: city, Kind: neighborhood.KindCity}
	}

	if entry, ok := r.gazetteer.Lookup(input); ok {
		return neighborhood.Area{
			Name: entry.Name,
			City: entry.City,
			Kind: neighborhood.KindDistrict,
		}
	}

	record, isCity, err := r.userStore.FindBySlug(ctx, input)
	if err != nil && errors.Is(err, storage.ErrNotFound) {
		record, isCity, err = r.userStore.FindByName(ctx, input)
	}

	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Error resolving neighborhood %q: %v", input, err)
			return neighborhood.Area{
				Name: r.config.DefaultCity,
				City: r.config.DefaultCity,
				Kind: neighborhood.KindCity,
			}
		}

		// Unknown names render as a district of the default city until
		// someone registers them.
		return neighborhood.Area{
			Name: input,
			City: r.config.DefaultCity,
			Kind: neighborhood.KindDistrict,
		}
	}

	kind := neighborhood.KindDistrict
	if isCity {
		kind = neighborhood.KindCity
	}

	city := record.City
	if city == "" {
		city = r.config.DefaultCity
	}

	return neighborhood.Area{Name: record.Name, City: city, Kind: kind}
}

// SubAreas builds the visible neighborhood list for an area: static
// gazetteer districts of the city overlaid with dynamic entries that belong
// to the city, plus cross-city dynamic matches when a search term is active.
func (r *Resolver) SubAreas(ctx context.Context, area neighborhood.Area, opts neighborhood.ListOptions) []neighborhood.Neighborhood {
	search := strings.TrimSpace(opts.Search)

	byName := make(map[string]neighborhood.Neighborhood)
	for _, e := range r.gazetteer.Districts(area.City) {
		byName[strings.ToLower(e.Name)] = e
	}

	for _, e := range r.Merged() {
		sameCity := strings.EqualFold(e.City, area.City)
		matches := search != "" && containsFold(e.Name, search)
		if !sameCity && !matches {
			continue
		}
		// Skip the city's own self entry.
		if strings.EqualFold(e.Name, area.City) {
			continue
		}
		byName[strings.ToLower(e.Name)] = e
	}

	list := make([]neighborhood.Neighborhood, 0, len(byName))
	for _, e := range byName {
		if search != "" && !containsFold(e.Name, search) {
			continue
		}
		if opts.ViewerLocation != nil {
			e.DistanceKm = geo.DistanceFromKm(*opts.ViewerLocation, e.Location)
		}
		list = append(list, e)
	}

	if opts.ViewerLocation != nil {
		sort.Slice(list, func(i, j int) bool {
			return list[i].DistanceKm < list[j].DistanceKm
		})
	} else {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}

	return list
}

// Register creates a community neighborhood unless one with the same name
// already exists. Both success paths return the canonical slug so the
// caller can navigate to it; a change event is published so live merges
// pick up the new record.
func (r *Resolver) Register(ctx context.Context, name, userID, country string) (neighborhood.RegistrationResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return neighborhood.RegistrationResult{
			Message: "neighborhood name is required",
		}, fmt.Errorf("neighborhood name is required")
	}

	existing, _, err := r.userStore.FindByName(ctx, name)
	if err == nil {
		slug := existing.Slug
		if slug == "" {
			slug = Slugify(existing.Name)
		}
		return neighborhood.RegistrationResult{
			Success: true,
			Exists:  true,
			Slug:    slug,
			Name:    existing.Name,
		}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return neighborhood.RegistrationResult{
			Message: "could not check existing neighborhoods",
		}, fmt.Errorf("error checking existing neighborhood: %w", err)
	}

	city := r.config.DefaultCity
	if entry, ok := r.gazetteer.Lookup(name); ok {
		city = entry.City
	}
	if country == "" {
		country = r.config.DefaultCountry
	}

	record := neighborhood.Neighborhood{
		ID:         uuid.New().String(),
		Name:       name,
		Slug:       Slugify(name),
		City:       city,
		Country:    country,
		Provenance: neighborhood.ProvenanceUser,
		CreatedAt:  time.Now(),
	}

	if err := r.userStore.Insert(ctx, record); err != nil {
		return neighborhood.RegistrationResult{
			Message: "could not register neighborhood",
		}, fmt.Errorf("error registering neighborhood: %w", err)
	}

	r.publishChange(record)
	r.reloadUser(ctx)

	return neighborhood.RegistrationResult{
		Success: true,
		Created: true,
		Slug:    record.Slug,
		Name:    record.Name,
	}, nil
}

// publishChange notifies subscribers that the user collection changed.
func (r *Resolver) publishChange(record neighborhood.Neighborhood) {
	if r.eventBus == nil {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"name": record.Name,
		"slug": record.Slug,
		"city": record.City,
	})
	if err != nil {
		log.Printf("Error marshaling change event: %v", err)
		return
	}

	if err := r.eventBus.Publish(r.config.UserSubject, payload); err != nil {
		log.Printf("Error publishing change event: %v", err)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
