// internal/server/handlers/websocket.go

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"dicilo/internal/domain/feed"
)

// LiveViewConfig contains configuration for live view connections.
type LiveViewConfig struct {
	// Subjects whose events trigger a view refresh.
	UserSubject  string
	PostsSubject string

	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultLiveViewConfig returns the default live view configuration.
func DefaultLiveViewConfig() LiveViewConfig {
	return LiveViewConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

// liveViewClient represents a connected live view consumer.
type liveViewClient struct {
	conn         *websocket.Conn
	send         chan []byte
	neighborhood string
	userID       string
	orchestrator feed.Orchestrator
	config       LiveViewConfig
	subs         []*nats.Subscription

	// generation guards against a stale slower recompute overwriting a
	// newer one when events arrive in quick succession.
	generation atomic.Uint64
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// LiveViewHandler streams recomputed neighborhood views whenever the
// underlying collections change. It replaces the client-side document
// subscriptions of the original web app.
func LiveViewHandler(natsConn *nats.Conn, orchestrator feed.Orchestrator, config LiveViewConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			http.Error(w, "Missing neighborhood name", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client := &liveViewClient{
			conn:         conn,
			send:         make(chan []byte, 16),
			neighborhood: name,
			userID:       r.URL.Query().Get("user_id"),
			orchestrator: orchestrator,
			config:       config,
		}

		go client.writePump()
		go client.readPump()

		if err := client.subscribe(natsConn); err != nil {
			log.Printf("Failed to subscribe to change events: %v", err)
			client.close()
			return
		}

		log.Printf("New live view connection for neighborhood %s", name)

		// Initial view so the client renders without waiting for an event.
		go client.refresh()
	}
}

// subscribe registers for the change events that invalidate this view.
func (c *liveViewClient) subscribe(natsConn *nats.Conn) error {
	refresh := func(msg *nats.Msg) {
		go c.refresh()
	}

	userSub, err := natsConn.Subscribe(c.config.UserSubject, refresh)
	if err != nil {
		return fmt.Errorf("failed to subscribe to neighborhood events: %w", err)
	}
	c.subs = append(c.subs, userSub)

	postsSubject := fmt.Sprintf("%s.%s", c.config.PostsSubject, subjectToken(c.neighborhood))
	postsSub, err := natsConn.Subscribe(postsSubject, refresh)
	if err != nil {
		return fmt.Errorf("failed to subscribe to post events: %w", err)
	}
	c.subs = append(c.subs, postsSub)

	return nil
}

// refresh recomputes the view and pushes it unless a newer refresh started
// in the meantime.
func (c *liveViewClient) refresh() {
	gen := c.generation.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	view := c.orchestrator.ComposeView(ctx, c.neighborhood, feed.ViewOptions{
		UserID: c.userID,
	})

	// A newer refresh superseded this one; drop the stale result.
	if c.generation.Load() != gen {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type": "view",
		"view": view,
		"time": time.Now(),
	})
	if err != nil {
		log.Printf("Failed to marshal view update: %v", err)
		return
	}

	select {
	case c.send <- payload:
	default:
		// Slow consumer; skip this update rather than block.
	}
}

// readPump consumes control messages until the peer goes away.
func (c *liveViewClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps queued updates to the WebSocket connection.
func (c *liveViewClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close tears down subscriptions and the connection.
func (c *liveViewClient) close() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil

	c.conn.Close()

	log.Printf("Live view connection closed for neighborhood %s", c.neighborhood)
}

// subjectToken makes a neighborhood name safe for use inside a NATS subject.
func subjectToken(name string) string {
	token := strings.ToLower(strings.TrimSpace(name))
	token = strings.ReplaceAll(token, " ", "-")
	token = strings.ReplaceAll(token, ".", "-")
	return token
}
