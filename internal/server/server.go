// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"dicilo/internal/config"
	"dicilo/internal/domain/feed"
	"dicilo/internal/domain/neighborhood"
	"dicilo/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Dependencies bundles the services the server routes to.
type Dependencies struct {
	Orchestrator feed.Orchestrator
	Resolver     neighborhood.Resolver
	Registry     neighborhood.Registry
	Scorer       feed.Scorer
	Ranker       feed.Ranker
	Profiles     handlers.ProfileReader
	Posts        handlers.PostReader
	Social       handlers.SocialSource
	NATS         *nats.Conn
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, community config.CommunityConfig, social config.SocialConfig, deps Dependencies) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	neighborhoodHandler := handlers.NewNeighborhoodHandler(deps.Orchestrator, deps.Resolver, deps.Registry)
	feedHandler := handlers.NewFeedHandler(
		deps.Resolver, deps.Scorer, deps.Ranker, deps.Orchestrator,
		deps.Posts, deps.Social, social.FetchLimit,
	)
	profileHandler := handlers.NewProfileHandler(deps.Profiles, deps.Resolver, deps.Orchestrator)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Neighborhoods API
			r.Route("/neighborhoods", func(r chi.Router) {
				r.Post("/", neighborhoodHandler.Register)
				r.Get("/{name}", neighborhoodHandler.GetView)
				r.Get("/{name}/areas", neighborhoodHandler.ListAreas)
				r.Get("/{name}/barometer", feedHandler.GetBarometer)
				r.Get("/{name}/trending", feedHandler.GetTrending)
				r.Get("/{name}/social", feedHandler.GetSocial)

				// Wall posts
				r.Route("/{name}/posts", func(r chi.Router) {
					r.Get("/", feedHandler.GetPosts)
					r.Post("/", feedHandler.CreatePost)
				})
			})

			// Profiles API
			r.Route("/profiles", func(r chi.Router) {
				r.Get("/{uid}", profileHandler.GetProfile)
				r.Put("/{uid}/favorite", profileHandler.ToggleFavorite)
			})
		})
	})

	// WebSocket endpoint for live view updates
	wsConfig := handlers.DefaultLiveViewConfig()
	wsConfig.UserSubject = community.UserSubject
	wsConfig.PostsSubject = community.PostsSubject
	router.Get("/ws/neighborhoods/{name}", handlers.LiveViewHandler(deps.NATS, deps.Orchestrator, wsConfig))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
