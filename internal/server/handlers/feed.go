// internal/server/handlers/feed.go

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
	"dicilo/internal/service/social"
)

// SocialSource fetches recent public posts for the social tab.
type SocialSource interface {
	RecentPosts(ctx context.Context, neighborhood string, limit int) ([]social.Post, error)
}

// PostReader lists stored wall posts.
type PostReader interface {
	RecentPosts(ctx context.Context, name string, limit int) ([]feed.Post, error)
}

// FeedHandler handles barometer, trending, and tab content requests.
type FeedHandler struct {
	resolver     neighborhood.Resolver
	scorer       feed.Scorer
	ranker       feed.Ranker
	orchestrator feed.Orchestrator
	posts        PostReader
	social       SocialSource
	socialLimit  int
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(
	resolver neighborhood.Resolver,
	scorer feed.Scorer,
	ranker feed.Ranker,
	orchestrator feed.Orchestrator,
	posts PostReader,
	socialSource SocialSource,
	socialLimit int,
) *FeedHandler {
	if socialLimit <= 0 {
		socialLimit = 20
	}

	return &FeedHandler{
		resolver:     resolver,
		scorer:       scorer,
		ranker:       ranker,
		orchestrator: orchestrator,
		posts:        posts,
		social:       socialSource,
		socialLimit:  socialLimit,
	}
}

// GetBarometer returns the activity stats for a neighborhood.
func (h *FeedHandler) GetBarometer(w http.ResponseWriter, r *http.Request) {
	area, ok := h.resolveArea(w, r)
	if !ok {
		return
	}

	stats := h.scorer.Score(r.Context(), area)
	respondWithJSON(w, http.StatusOK, stats)
}

// GetTrending returns the top businesses for a neighborhood.
func (h *FeedHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	area, ok := h.resolveArea(w, r)
	if !ok {
		return
	}

	trending := h.ranker.Trending(r.Context(), area)
	if trending == nil {
		trending = []feed.TrendingBusiness{}
	}
	respondWithJSON(w, http.StatusOK, trending)
}

// GetSocial returns recent public social posts mentioning the neighborhood.
// Source failures degrade to an empty list.
func (h *FeedHandler) GetSocial(w http.ResponseWriter, r *http.Request) {
	area, ok := h.resolveArea(w, r)
	if !ok {
		return
	}

	posts, err := h.social.RecentPosts(r.Context(), area.Name, h.socialLimit)
	if err != nil {
		log.Printf("Error fetching social posts for %s: %v", area.Name, err)
		posts = []social.Post{}
	}
	respondWithJSON(w, http.StatusOK, posts)
}

// GetPosts returns the neighborhood wall.
func (h *FeedHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	area, ok := h.resolveArea(w, r)
	if !ok {
		return
	}

	posts, err := h.posts.RecentPosts(r.Context(), area.Name, 50)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load posts", err)
		return
	}
	if posts == nil {
		posts = []feed.Post{}
	}
	respondWithJSON(w, http.StatusOK, posts)
}

// createPostRequest is the wall post payload.
type createPostRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// CreatePost stores a wall post for the neighborhood.
func (h *FeedHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	area, ok := h.resolveArea(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.orchestrator.CreatePost(r.Context(), area, req.UserID, req.Content)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to create post", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, post)
}

func (h *FeedHandler) resolveArea(w http.ResponseWriter, r *http.Request) (neighborhood.Area, bool) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Missing neighborhood name", nil)
		return neighborhood.Area{}, false
	}

	return h.resolver.Resolve(r.Context(), name), true
}
