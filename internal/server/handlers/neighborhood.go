// internal/server/handlers/neighborhood.go

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

// NeighborhoodHandler handles neighborhood resolution and registration.
type NeighborhoodHandler struct {
	orchestrator feed.Orchestrator
	resolver     neighborhood.Resolver
	registry     neighborhood.Registry
}

// NewNeighborhoodHandler creates a new neighborhood handler.
func NewNeighborhoodHandler(
	orchestrator feed.Orchestrator,
	resolver neighborhood.Resolver,
	registry neighborhood.Registry,
) *NeighborhoodHandler {
	return &NeighborhoodHandler{
		orchestrator: orchestrator,
		resolver:     resolver,
		registry:     registry,
	}
}

// GetView returns the composed feed view for a neighborhood.
func (h *NeighborhoodHandler) GetView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Missing neighborhood name", nil)
		return
	}

	opts := feed.ViewOptions{
		UserID:         r.URL.Query().Get("user_id"),
		Search:         r.URL.Query().Get("search"),
		Tab:            feed.Tab(r.URL.Query().Get("tab")),
		ViewerLocation: parseViewerLocation(r),
	}

	view := h.orchestrator.ComposeView(r.Context(), name, opts)
	respondWithJSON(w, http.StatusOK, view)
}

// ListAreas returns the sub-area list for a neighborhood's city scope.
func (h *NeighborhoodHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Missing neighborhood name", nil)
		return
	}

	area := h.resolver.Resolve(r.Context(), name)
	areas := h.resolver.SubAreas(r.Context(), area, neighborhood.ListOptions{
		Search:         r.URL.Query().Get("search"),
		ViewerLocation: parseViewerLocation(r),
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"area":      area,
		"sub_areas": areas,
	})
}

// registerRequest is the registration payload.
type registerRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	UserID  string `json:"user_id"`
}

// Register registers a community neighborhood.
func (h *NeighborhoodHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Neighborhood name is required", nil)
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required", nil)
		return
	}

	result, err := h.registry.Register(r.Context(), req.Name, req.UserID, req.Country)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, result.Message, err)
		return
	}

	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, result)
}

// parseViewerLocation reads optional lat/lng query parameters. Both must be
// present and valid; otherwise the viewer location is absent and lists sort
// alphabetically.
func parseViewerLocation(r *http.Request) *geo.Coordinates {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		return nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}

	return &geo.Coordinates{Lat: lat, Lng: lng}
}
