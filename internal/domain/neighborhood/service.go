// internal/domain/neighborhood/service.go

package neighborhood

import (
	"context"

	"dicilo/internal/domain/geo"
)

// ListOptions controls how a sub-area list is built.
type ListOptions struct {
	// Search mixes in dynamic entries from other cities that match the
	// term. Empty means a strict city filter.
	Search string

	// ViewerLocation, when set, switches the sort from alphabetical to
	// distance ascending.
	ViewerLocation *geo.Coordinates
}

// Resolver resolves neighborhood names to a city-scoped area and produces
// the deduplicated sub-area list for that scope.
type Resolver interface {
	// Resolve determines the current city context for a name or slug.
	// Lookup failures fall back to the default city and are not returned.
	Resolve(ctx context.Context, nameOrSlug string) Area

	// SubAreas returns the visible neighborhood list for an area:
	// gazetteer districts of the city merged with dynamic entries.
	SubAreas(ctx context.Context, area Area, opts ListOptions) []Neighborhood

	// Start begins listening for collection change events.
	Start(ctx context.Context) error

	// Stop tears down live subscriptions.
	Stop(ctx context.Context) error
}

// Registry handles community registration of new neighborhoods.
type Registry interface {
	// Register creates a neighborhood unless one with the same name
	// already exists (case-insensitive). Both outcomes carry the
	// canonical slug so callers can navigate to it.
	Register(ctx context.Context, name, userID, country string) (RegistrationResult, error)
}
