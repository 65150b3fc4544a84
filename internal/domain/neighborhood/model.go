// internal/domain/neighborhood/model.go

package neighborhood

import (
	"time"

	"dicilo/internal/domain/geo"
)

// Kind tags a resolved area as a root city or one of its districts.
type Kind string

const (
	KindCity     Kind = "city"
	KindDistrict Kind = "district"
)

// Provenance identifies which collection a neighborhood record came from.
type Provenance string

const (
	// ProvenanceSystem marks records flattened from the admin-curated
	// country/city/district hierarchy.
	ProvenanceSystem Provenance = "system"

	// ProvenanceUser marks community-registered neighborhoods. User records
	// win over system records when both share a name.
	ProvenanceUser Provenance = "user"
)

// Neighborhood is a named sub-area of a city used to scope feeds,
// businesses, and recommendations.
type Neighborhood struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Slug       string           `json:"slug,omitempty"`
	City       string           `json:"city"`
	Country    string           `json:"country,omitempty"`
	Location   *geo.Coordinates `json:"location,omitempty"`
	Provenance Provenance       `json:"provenance"`
	CreatedAt  time.Time        `json:"created_at,omitempty"`

	// DistanceKm is populated when a viewer location is known. Records
	// without coordinates carry geo.UnknownDistanceKm.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// Area is the result of resolving a neighborhood name or slug against the
// gazetteer and the live collections.
type Area struct {
	Name string `json:"name"`
	City string `json:"city"`
	Kind Kind   `json:"kind"`
}

// IsCity reports whether the area resolves to a root city rather than a
// district. City views scope activity and trending queries by city.
func (a Area) IsCity() bool {
	return a.Kind == KindCity
}

// RegistrationResult reports the outcome of registering a neighborhood.
// Exactly one of Exists or Created is set on success.
type RegistrationResult struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists,omitempty"`
	Created bool   `json:"created,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}
