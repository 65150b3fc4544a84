// internal/adapter/storage/client_store.go

package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"dicilo/internal/domain/feed"
)

// ClientStore implements read access to business client records for the
// trending ranking.
type ClientStore struct {
	db *pgxpool.Pool
}

// NewClientStore creates a new client store.
func NewClientStore(db *pgxpool.Pool) *ClientStore {
	return &ClientStore{
		db: db,
	}
}

// ListByCity returns clients registered in a city, capped at limit.
func (s *ClientStore) ListByCity(ctx context.Context, city string, limit int) ([]feed.TrendingBusiness, error) {
	query := `
		SELECT id, COALESCE(client_name, name), category, slug, city, neighborhood, reputation_score
		FROM clients
		WHERE city = $1
		LIMIT $2
	`

	return s.queryClients(ctx, query, city, limit)
}

// ListByNeighborhood returns clients registered in a neighborhood, capped at
// limit.
func (s *ClientStore) ListByNeighborhood(ctx context.Context, name string, limit int) ([]feed.TrendingBusiness, error) {
	query := `
		SELECT id, COALESCE(client_name, name), category, slug, city, neighborhood, reputation_score
		FROM clients
		WHERE neighborhood = $1
		LIMIT $2
	`

	return s.queryClients(ctx, query, name, limit)
}

func (s *ClientStore) queryClients(ctx context.Context, query string, scope string, limit int) ([]feed.TrendingBusiness, error) {
	rows, err := s.db.Query(ctx, query, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	var clients []feed.TrendingBusiness
	for rows.Next() {
		b, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

func scanClient(rows pgx.Rows) (feed.TrendingBusiness, error) {
	var b feed.TrendingBusiness
	var category, slug, nbhd *string
	var score *float64

	if err := rows.Scan(&b.ID, &b.Name, &category, &slug, &b.City, &nbhd, &score); err != nil {
		return b, fmt.Errorf("error scanning client: %w", err)
	}

	if category != nil {
		b.Category = *category
	}
	if slug != nil {
		b.Slug = *slug
	}
	if nbhd != nil {
		b.Neighborhood = *nbhd
	}
	// Missing reputation ranks as zero.
	if score != nil {
		b.ReputationScore = *score
	}

	return b, nil
}
