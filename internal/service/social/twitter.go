// internal/service/social/twitter.go

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Post is one public social post surfaced on the social tab.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Reposts   int       `json:"reposts"`
}

// TwitterConfig contains configuration for the Twitter source.
type TwitterConfig struct {
	BearerToken string
	BaseURL     string
	Timeout     time.Duration
}

// TwitterClient fetches recent public posts mentioning a neighborhood from
// the Twitter search API.
type TwitterClient struct {
	config     TwitterConfig
	httpClient *http.Client
}

// NewTwitterClient creates a new Twitter API client.
func NewTwitterClient(config TwitterConfig) *TwitterClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.twitter.com/2"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &TwitterClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// recentSearchResponse mirrors the fields we read from the recent search
// endpoint.
type recentSearchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// RecentPosts fetches recent public posts mentioning the neighborhood.
// Results are best-effort; callers treat an error as an empty social tab.
func (c *TwitterClient) RecentPosts(ctx context.Context, neighborhood string, limit int) ([]Post, error) {
	if c.config.BearerToken == "" {
		return nil, fmt.Errorf("Twitter bearer token not configured")
	}

	if limit < 10 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := fmt.Sprintf("%q -is:retweet", neighborhood)
	endpoint := fmt.Sprintf(
		"%s/tweets/search/recent?query=%s&max_results=%d&tweet.fields=created_at,public_metrics",
		c.config.BaseURL, url.QueryEscape(query), limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+c.config.BearerToken)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Twitter API returned status code %d", resp.StatusCode)
	}

	var searchResp recentSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(searchResp.Data))
	for _, t := range searchResp.Data {
		posts = append(posts, Post{
			ID:        t.ID,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
			Likes:     t.PublicMetrics.LikeCount,
			Reposts:   t.PublicMetrics.RetweetCount,
		})
	}

	return posts, nil
}
