// internal/adapter/storage/system_location_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// SystemCountry is one admin-curated country document with its city and
// district hierarchy, as stored in the system_locations collection.
type SystemCountry struct {
	Country string       `json:"country"`
	Cities  []SystemCity `json:"cities"`
}

// SystemCity is a city entry inside a system location document.
type SystemCity struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

// SystemLocationStore implements storage for the admin-managed location
// hierarchy. Each row holds one country document as JSONB.
type SystemLocationStore struct {
	db *pgxpool.Pool
}

// NewSystemLocationStore creates a new system location store.
func NewSystemLocationStore(db *pgxpool.Pool) *SystemLocationStore {
	return &SystemLocationStore{
		db: db,
	}
}

// ListCountries returns all country documents. Flattening into district
// records happens in the resolver.
func (s *SystemLocationStore) ListCountries(ctx context.Context) ([]SystemCountry, error) {
	query := `
		SELECT country, payload
		FROM system_locations
		ORDER BY country
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying system locations: %w", err)
	}
	defer rows.Close()

	var countries []SystemCountry
	for rows.Next() {
		var c SystemCountry
		var country string
		var payload []byte

		if err := rows.Scan(&country, &payload); err != nil {
			return nil, fmt.Errorf("error scanning system location: %w", err)
		}

		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, fmt.Errorf("error unmarshaling system location payload: %w", err)
		}
		c.Country = country

		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating system locations: %w", err)
	}

	return countries, nil
}
