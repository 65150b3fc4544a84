// internal/adapter/storage/activity_store.go

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"dicilo/internal/domain/feed"
)

// ActivityStore implements storage for the records feeding the barometer:
// recommendations and community wall posts.
type ActivityStore struct {
	db *pgxpool.Pool
}

// NewActivityStore creates a new activity store.
func NewActivityStore(db *pgxpool.Pool) *ActivityStore {
	return &ActivityStore{
		db: db,
	}
}

// RecommendationAuthorsByCity returns one author entry per recommendation
// created in a city since the cutoff. Length is the recommendation count.
func (s *ActivityStore) RecommendationAuthorsByCity(ctx context.Context, city string, since time.Time) ([]string, error) {
	query := `
		SELECT user_id
		FROM recommendations
		WHERE city = $1
		AND created_at >= $2
	`

	return s.queryAuthors(ctx, query, city, since)
}

// RecommendationAuthorsByNeighborhood returns one author entry per
// recommendation scoped to a neighborhood since the cutoff.
func (s *ActivityStore) RecommendationAuthorsByNeighborhood(ctx context.Context, name string, since time.Time) ([]string, error) {
	query := `
		SELECT user_id
		FROM recommendations
		WHERE neighborhood = $1
		AND created_at >= $2
	`

	return s.queryAuthors(ctx, query, name, since)
}

// PostAuthors returns one author entry per community post in a neighborhood
// since the cutoff. Posts are always neighborhood-scoped.
func (s *ActivityStore) PostAuthors(ctx context.Context, name string, since time.Time) ([]string, error) {
	query := `
		SELECT user_id
		FROM community_posts
		WHERE neighborhood = $1
		AND created_at >= $2
	`

	return s.queryAuthors(ctx, query, name, since)
}

func (s *ActivityStore) queryAuthors(ctx context.Context, query string, scope string, since time.Time) ([]string, error) {
	rows, err := s.db.Query(ctx, query, scope, since)
	if err != nil {
		return nil, fmt.Errorf("error querying activity: %w", err)
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("error scanning author: %w", err)
		}
		authors = append(authors, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

// InsertPost stores a community wall post.
func (s *ActivityStore) InsertPost(ctx context.Context, p feed.Post) error {
	query := `
		INSERT INTO community_posts (id, neighborhood, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, query, p.ID, p.Neighborhood, p.UserID, p.Content, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting post: %w", err)
	}

	return nil
}

// RecentPosts returns the latest wall posts for a neighborhood.
func (s *ActivityStore) RecentPosts(ctx context.Context, name string, limit int) ([]feed.Post, error) {
	query := `
		SELECT id, neighborhood, user_id, content, created_at
		FROM community_posts
		WHERE neighborhood = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var posts []feed.Post
	for rows.Next() {
		var p feed.Post
		if err := rows.Scan(&p.ID, &p.Neighborhood, &p.UserID, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}
