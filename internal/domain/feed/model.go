// internal/domain/feed/model.go

package feed

import (
	"time"

	"dicilo/internal/domain/neighborhood"
)

// Tab identifies a feed view.
type Tab string

const (
	TabWall            Tab = "wall"
	TabRecommendations Tab = "recommendations"
	TabSocial          Tab = "social"
)

// ActivityLevel is the discrete barometer level derived from the score.
type ActivityLevel string

const (
	LevelLow    ActivityLevel = "low"
	LevelMedium ActivityLevel = "medium"
	LevelHigh   ActivityLevel = "high"
	LevelFire   ActivityLevel = "fire"
)

// ActivityStats is the neighborhood barometer over a trailing week.
// Derived on every view load, never persisted.
type ActivityStats struct {
	Score       int           `json:"score"`
	Level       ActivityLevel `json:"level"`
	WeeklyPosts int           `json:"weekly_posts"`
	ActiveUsers int           `json:"active_users"`
}

// TrendingBusiness is a read-only projection of a client record ranked by
// reputation.
type TrendingBusiness struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	Slug            string  `json:"slug,omitempty"`
	City            string  `json:"city"`
	Neighborhood    string  `json:"neighborhood,omitempty"`
	ReputationScore float64 `json:"reputation_score"`
}

// Post is a community wall post scoped to a neighborhood.
type Post struct {
	ID           string    `json:"id"`
	Neighborhood string    `json:"neighborhood"`
	UserID       string    `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// View is the composed display model for a neighborhood: the resolved area
// plus everything the feed page renders around the tabs.
type View struct {
	Area       neighborhood.Area           `json:"area"`
	SubAreas   []neighborhood.Neighborhood `json:"sub_areas"`
	Stats      ActivityStats               `json:"stats"`
	Trending   []TrendingBusiness          `json:"trending"`
	IsFavorite bool                        `json:"is_favorite"`
	ActiveTab  Tab                         `json:"active_tab"`
}
