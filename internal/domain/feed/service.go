// internal/domain/feed/service.go

package feed

import (
	"context"

	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

// Scorer computes the activity barometer for an area.
type Scorer interface {
	// Score counts recommendations and community posts over the trailing
	// week and derives the 0-100 score and level. Read failures degrade
	// to the zero stats.
	Score(ctx context.Context, area neighborhood.Area) ActivityStats
}

// Ranker produces the trending business list for an area.
type Ranker interface {
	// Trending returns the top businesses by reputation score. Failures
	// degrade to an empty list.
	Trending(ctx context.Context, area neighborhood.Area) []TrendingBusiness
}

// ViewOptions carries per-request view parameters.
type ViewOptions struct {
	UserID         string
	Search         string
	ViewerLocation *geo.Coordinates
	Tab            Tab
}

// Orchestrator composes resolver, scorer, and ranker into the display model
// and owns the pass-through writes.
type Orchestrator interface {
	// ComposeView resolves the area and assembles stats, trending, and
	// the sub-area list. Sections degrade independently.
	ComposeView(ctx context.Context, nameOrSlug string, opts ViewOptions) View

	// ToggleFavorite sets the user's favorite neighborhood to the area,
	// or clears it when the area already is the favorite.
	ToggleFavorite(ctx context.Context, userID string, area neighborhood.Area) (favorited bool, err error)

	// CreatePost stores a community wall post for the area.
	CreatePost(ctx context.Context, area neighborhood.Area, userID, content string) (Post, error)
}
