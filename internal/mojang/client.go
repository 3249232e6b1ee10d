// Package mojang looks up Minecraft account profiles on the Mojang session
// server. Only existence matters to this service.
package mojang

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

var _ model.ProfileProvider = (*Client)(nil)

// cacheLimit bounds the in-memory lookup cache. Profile existence is stable,
// so entries are kept until the cache is full and then dropped wholesale.
const cacheLimit = 200

// Client queries the Mojang session server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	cache map[uuid.UUID]bool
}

// New creates a Client for the given session server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[uuid.UUID]bool),
	}
}

// Exists reports whether a Minecraft profile exists for the given UUID.
// The session server answers 200 with a profile document, or 204/404 when
// the account is unknown; anything else is a lookup failure.
func (c *Client) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	c.mu.Lock()
	if exists, ok := c.cache[id]; ok {
		c.mu.Unlock()
		return exists, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/session/minecraft/profile/%s", c.baseURL, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("profile lookup failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	var exists bool
	switch resp.StatusCode {
	case http.StatusOK:
		exists = true
	case http.StatusNoContent, http.StatusNotFound:
		exists = false
	default:
		return false, fmt.Errorf("profile lookup returned status %d", resp.StatusCode)
	}

	c.mu.Lock()
	if len(c.cache) >= cacheLimit {
		c.cache = make(map[uuid.UUID]bool)
	}
	c.cache[id] = exists
	c.mu.Unlock()

	return exists, nil
}
