// internal/service/feed/orchestrator.go

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"dicilo/internal/adapter/storage"
	feedDomain "dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

// ProfileAccess defines the profile reads and writes the orchestrator needs.
type ProfileAccess interface {
	Get(ctx context.Context, userID string) (*storage.Profile, error)
	SetFavorite(ctx context.Context, userID string, name *string) error
}

// PostWriter defines the wall post write the orchestrator delegates to.
type PostWriter interface {
	InsertPost(ctx context.Context, p feedDomain.Post) error
}

// OrchestratorConfig contains configuration for the feed orchestrator.
type OrchestratorConfig struct {
	PostsSubject   string
	MaxPostLength  int
	ComposeTimeout time.Duration
}

// Orchestrator composes the resolver, scorer, and ranker into the display
// model and owns the pass-through writes (favorite toggle, post creation).
type Orchestrator struct {
	resolver neighborhood.Resolver
	scorer   feedDomain.Scorer
	ranker   feedDomain.Ranker
	profiles ProfileAccess
	posts    PostWriter
	eventBus *nats.Conn
	config   OrchestratorConfig
}

// NewOrchestrator creates a new feed orchestrator.
func NewOrchestrator(
	resolver neighborhood.Resolver,
	scorer feedDomain.Scorer,
	ranker feedDomain.Ranker,
	profiles ProfileAccess,
	posts PostWriter,
	eventBus *nats.Conn,
	config OrchestratorConfig,
) *Orchestrator {
	if config.MaxPostLength <= 0 {
		config.MaxPostLength = 2000
	}

	return &Orchestrator{
		resolver: resolver,
		scorer:   scorer,
		ranker:   ranker,
		profiles: profiles,
		posts:    posts,
		eventBus: eventBus,
		config:   config,
	}
}

// ComposeView resolves the area and assembles the display model. The
// barometer and trending fetches run concurrently and each section degrades
// independently; a failure in one leaves the others intact.
func (o *Orchestrator) ComposeView(ctx context.Context, nameOrSlug string, opts feedDomain.ViewOptions) feedDomain.View {
	area := o.resolver.Resolve(ctx, nameOrSlug)

	view := feedDomain.View{
		Area:      area,
		ActiveTab: opts.Tab,
	}
	if view.ActiveTab == "" {
		view.ActiveTab = feedDomain.TabWall
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		view.Stats = o.scorer.Score(ctx, area)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		view.Trending = o.ranker.Trending(ctx, area)
	}()

	view.SubAreas = o.resolver.SubAreas(ctx, area, neighborhood.ListOptions{
		Search:         opts.Search,
		ViewerLocation: opts.ViewerLocation,
	})

	wg.Wait()

	if opts.UserID != "" {
		view.IsFavorite = o.isFavorite(ctx, opts.UserID, area)
	}

	return view
}

// isFavorite compares the stored favorite against the viewed area,
// case-insensitively. Profile read failures degrade to false.
func (o *Orchestrator) isFavorite(ctx context.Context, userID string, area neighborhood.Area) bool {
	profile, err := o.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Error loading profile %s: %v", userID, err)
		}
		return false
	}

	return profile.FavoriteNeighborhood != nil &&
		strings.EqualFold(*profile.FavoriteNeighborhood, area.Name)
}

// ToggleFavorite sets the user's favorite neighborhood to the area, or
// clears it when the area already is the favorite. There is no optimistic
// local mutation, so a failed write needs no rollback.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, userID string, area neighborhood.Area) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}

	currentlyFavorite := o.isFavorite(ctx, userID, area)

	if currentlyFavorite {
		if err := o.profiles.SetFavorite(ctx, userID, nil); err != nil {
			return false, fmt.Errorf("error clearing favorite: %w", err)
		}
		return false, nil
	}

	name := area.Name
	if err := o.profiles.SetFavorite(ctx, userID, &name); err != nil {
		return false, fmt.Errorf("error setting favorite: %w", err)
	}
	return true, nil
}

// CreatePost stores a community wall post for the area and publishes a
// change event so live views refresh.
func (o *Orchestrator) CreatePost(ctx context.Context, area neighborhood.Area, userID, content string) (feedDomain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return feedDomain.Post{}, fmt.Errorf("post content is required")
	}
	if len(content) > o.config.MaxPostLength {
		return feedDomain.Post{}, fmt.Errorf("post content exceeds %d characters", o.config.MaxPostLength)
	}
	if userID == "" {
		return feedDomain.Post{}, fmt.Errorf("user id is required")
	}

	post := feedDomain.Post{
		ID:           uuid.New().String(),
		Neighborhood: area.Name,
		UserID:       userID,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if err := o.posts.InsertPost(ctx, post); err != nil {
		return feedDomain.Post{}, fmt.Errorf("error storing post: %w", err)
	}

	o.publishPost(post)

	return post, nil
}

// publishPost notifies live view subscribers about new wall activity.
func (o *Orchestrator) publishPost(post feedDomain.Post) {
	if o.eventBus == nil || o.config.PostsSubject == "" {
		return
	}

	payload, err := json.Marshal(post)
	if err != nil {
		log.Printf("Error marshaling post event: %v", err)
		return
	}

	subject := fmt.Sprintf("%s.%s", o.config.PostsSubject, neighborhoodToken(post.Neighborhood))
	if err := o.eventBus.Publish(subject, payload); err != nil {
		log.Printf("Error publishing post event: %v", err)
	}
}

// neighborhoodToken makes a neighborhood name safe for use inside a NATS
// subject.
func neighborhoodToken(name string) string {
	token := strings.ToLower(strings.TrimSpace(name))
	token = strings.ReplaceAll(token, " ", "-")
	token = strings.ReplaceAll(token, ".", "-")
	return token
}
