// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"dicilo/internal/adapter/storage"
	"dicilo/internal/config"
	"dicilo/internal/server"
	feedService "dicilo/internal/service/feed"
	neighborhoodService "dicilo/internal/service/neighborhood"
	"dicilo/internal/service/social"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize storage adapters
	neighborhoodStore := storage.NewNeighborhoodStore(db)
	systemLocationStore := storage.NewSystemLocationStore(db)
	activityStore := storage.NewActivityStore(db)
	clientStore := storage.NewClientStore(db)
	profileStore := storage.NewProfileStore(db)

	// Initialize the neighborhood resolver
	gazetteer := neighborhoodService.NewGazetteer()
	resolver := neighborhoodService.NewResolver(
		neighborhoodStore,
		systemLocationStore,
		gazetteer,
		natsConn,
		neighborhoodService.ResolverConfig{
			DefaultCity:    cfg.Community.DefaultCity,
			DefaultCountry: cfg.Community.DefaultCountry,
			UserSubject:    cfg.Community.UserSubject,
			SystemSubject:  cfg.Community.SystemSubject,
		},
	)

	if err := resolver.Start(ctx); err != nil {
		log.Fatalf("Failed to start neighborhood resolver: %v", err)
	}

	// Initialize feed services
	scorer := feedService.NewActivityScorer(activityStore, feedService.ScorerConfig{
		Window: cfg.Community.ActivityWindow,
	})

	ranker := feedService.NewTrendingRanker(clientStore, feedService.RankerConfig{
		FetchLimit: cfg.Community.TrendingFetchLimit,
		TopN:       cfg.Community.TrendingTopN,
	})

	orchestrator := feedService.NewOrchestrator(
		resolver,
		scorer,
		ranker,
		profileStore,
		activityStore,
		natsConn,
		feedService.OrchestratorConfig{
			PostsSubject:  cfg.Community.PostsSubject,
			MaxPostLength: cfg.Community.MaxPostLength,
		},
	)

	// Initialize the social source
	twitterClient := social.NewTwitterClient(social.TwitterConfig{
		BearerToken: cfg.Social.TwitterBearerToken,
	})

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		cfg.Community,
		cfg.Social,
		server.Dependencies{
			Orchestrator: orchestrator,
			Resolver:     resolver,
			Registry:     resolver,
			Scorer:       scorer,
			Ranker:       ranker,
			Profiles:     profileStore,
			Posts:        activityStore,
			Social:       twitterClient,
			NATS:         natsConn,
		},
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Stop the resolver's live subscriptions
	if err := resolver.Stop(shutdownCtx); err != nil {
		log.Printf("Resolver shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
