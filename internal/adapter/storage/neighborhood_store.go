// internal/adapter/storage/neighborhood_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

// Legacy type value marking a record as a root city in the neighborhoods
// collection. Carried over from the original document store.
const typeCity = "ciudad"

// NeighborhoodStore implements storage for community-registered neighborhoods.
type NeighborhoodStore struct {
	db *pgxpool.Pool
}

// NewNeighborhoodStore creates a new neighborhood store.
func NewNeighborhoodStore(db *pgxpool.Pool) *NeighborhoodStore {
	return &NeighborhoodStore{
		db: db,
	}
}

// ListUser returns all community-registered neighborhoods with coordinates
// normalized at the boundary.
func (s *NeighborhoodStore) ListUser(ctx context.Context) ([]neighborhood.Neighborhood, error) {
	query := `
		SELECT id, name, slug, city, country, lat, lng, created_at
		FROM neighborhoods
		ORDER BY name
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying neighborhoods: %w", err)
	}
	defer rows.Close()

	var records []neighborhood.Neighborhood
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighborhoods: %w", err)
	}

	return records, nil
}

// FindBySlug retrieves a neighborhood by its canonical slug. The second
// return value reports whether the record is a root city.
func (s *NeighborhoodStore) FindBySlug(ctx context.Context, slug string) (*neighborhood.Neighborhood, bool, error) {
	query := `
		SELECT id, name, slug, city, country, lat, lng, type, created_at
		FROM neighborhoods
		WHERE slug = $1
	`

	return s.findOne(ctx, query, slug)
}

// FindByName retrieves a neighborhood by name, case-insensitively.
func (s *NeighborhoodStore) FindByName(ctx context.Context, name string) (*neighborhood.Neighborhood, bool, error) {
	query := `
		SELECT id, name, slug, city, country, lat, lng, type, created_at
		FROM neighborhoods
		WHERE LOWER(name) = LOWER($1)
	`

	return s.findOne(ctx, query, name)
}

func (s *NeighborhoodStore) findOne(ctx context.Context, query string, arg string) (*neighborhood.Neighborhood, bool, error) {
	var n neighborhood.Neighborhood
	var slug, country, recordType *string
	var lat, lng *float64

	err := s.db.QueryRow(ctx, query, arg).Scan(
		&n.ID, &n.Name, &slug, &n.City, &country, &lat, &lng, &recordType, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("error querying neighborhood: %w", err)
	}

	if slug != nil {
		n.Slug = *slug
	}
	if country != nil {
		n.Country = *country
	}
	if lat != nil && lng != nil {
		n.Location = &geo.Coordinates{Lat: *lat, Lng: *lng}
	}
	n.Provenance = neighborhood.ProvenanceUser

	isCity := (recordType != nil && *recordType == typeCity) ||
		strings.EqualFold(n.Name, n.City)

	return &n, isCity, nil
}

// Insert stores a newly registered neighborhood.
func (s *NeighborhoodStore) Insert(ctx context.Context, n neighborhood.Neighborhood) error {
	query := `
		INSERT INTO neighborhoods (id, name, slug, city, country, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var lat, lng *float64
	if n.Location != nil {
		lat = &n.Location.Lat
		lng = &n.Location.Lng
	}

	_, err := s.db.Exec(
		ctx,
		query,
		n.ID,
		n.Name,
		n.Slug,
		n.City,
		n.Country,
		lat,
		lng,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting neighborhood: %w", err)
	}

	return nil
}

func scanNeighborhood(rows pgx.Rows) (neighborhood.Neighborhood, error) {
	var n neighborhood.Neighborhood
	var slug, country *string
	var lat, lng *float64

	if err := rows.Scan(&n.ID, &n.Name, &slug, &n.City, &country, &lat, &lng, &n.CreatedAt); err != nil {
		return n, fmt.Errorf("error scanning neighborhood: %w", err)
	}

	if slug != nil {
		n.Slug = *slug
	}
	if country != nil {
		n.Country = *country
	}
	if lat != nil && lng != nil {
		n.Location = &geo.Coordinates{Lat: *lat, Lng: *lng}
	}
	n.Provenance = neighborhood.ProvenanceUser

	return n, nil
}
