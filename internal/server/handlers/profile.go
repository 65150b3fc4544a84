// internal/server/handlers/profile.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dicilo/internal/adapter/storage"
	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
)

// ProfileReader reads user profiles.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (*storage.Profile, error)
}

// ProfileHandler handles profile reads and the favorite toggle.
type ProfileHandler struct {
	profiles     ProfileReader
	resolver     neighborhood.Resolver
	orchestrator feed.Orchestrator
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(
	profiles ProfileReader,
	resolver neighborhood.Resolver,
	orchestrator feed.Orchestrator,
) *ProfileHandler {
	return &ProfileHandler{
		profiles:     profiles,
		resolver:     resolver,
		orchestrator: orchestrator,
	}
}

// GetProfile returns the user's profile. A missing profile reads as one
// with no favorite set.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uid")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithJSON(w, http.StatusOK, storage.Profile{UserID: userID})
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// toggleFavoriteRequest names the neighborhood being toggled.
type toggleFavoriteRequest struct {
	Neighborhood string `json:"neighborhood"`
}

// ToggleFavorite sets or clears the user's favorite neighborhood.
func (h *ProfileHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uid")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user ID", nil)
		return
	}

	var req toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Neighborhood == "" {
		respondWithError(w, http.StatusBadRequest, "Neighborhood is required", nil)
		return
	}

	area := h.resolver.Resolve(r.Context(), req.Neighborhood)

	favorited, err := h.orchestrator.ToggleFavorite(r.Context(), userID, area)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update favorite", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favorited":    favorited,
		"neighborhood": area.Name,
	})
}
