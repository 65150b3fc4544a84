// internal/adapter/storage/profile_store.go

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Profile is the slice of a user's private profile this service reads and
// writes: the favorite neighborhood.
type Profile struct {
	UserID               string  `json:"user_id"`
	FavoriteNeighborhood *string `json:"favorite_neighborhood"`
}

// ProfileStore implements storage for user profiles.
type ProfileStore struct {
	db *pgxpool.Pool
}

// NewProfileStore creates a new profile store.
func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{
		db: db,
	}
}

// Get retrieves a user's profile.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT user_id, favorite_neighborhood
		FROM profiles
		WHERE user_id = $1
	`

	var p Profile
	err := s.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FavoriteNeighborhood)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying profile: %w", err)
	}

	return &p, nil
}

// SetFavorite sets or clears (nil) the favorite neighborhood. The profile
// row is created on first write.
func (s *ProfileStore) SetFavorite(ctx context.Context, userID string, name *string) error {
	query := `
		INSERT INTO profiles (user_id, favorite_neighborhood)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET favorite_neighborhood = $2
	`

	_, err := s.db.Exec(ctx, query, userID, name)
	if err != nil {
		return fmt.Errorf("error updating favorite neighborhood: %w", err)
	}

	return nil
}
