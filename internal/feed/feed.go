package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/news"
)

// Client fetches the news dataset and memoizes it for its own lifetime: one
// Client per build session, one fetch per language. A failed fetch is cached
// as an empty dataset, so callers see "no items" and no retry ever happens.
type Client struct {
	feed  config.Feed
	httpc *http.Client
	log   *zap.Logger

	mu    sync.Mutex
	cache map[string][]news.Item
}

// NewClient returns a session-scoped client for the configured feed.
func NewClient(feed config.Feed, log *zap.Logger) *Client {
	return &Client{
		feed:  feed,
		httpc: http.DefaultClient,
		log:   log,
		cache: make(map[string][]news.Item),
	}
}

// Fetch returns the dataset for a language. It never fails: any transport,
// status, or decode problem is logged and an empty dataset returned.
func (c *Client) Fetch(ctx context.Context, lang string) []news.Item {
	key := lang
	if c.feed.SinglePath != "" {
		key = "" // single-file feeds share one cache entry across languages
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if items, ok := c.cache[key]; ok {
		return items
	}

	items, err := c.load(ctx, lang)
	if err != nil {
		c.log.Warn("news feed unavailable, rendering empty",
			zap.String("lang", lang), zap.Error(err))
		items = nil
	}
	c.cache[key] = items
	return items
}

func (c *Client) load(ctx context.Context, lang string) ([]news.Item, error) {
	path := c.feed.Path(lang)

	var data []byte
	if c.feed.Remote() {
		var err error
		data, err = c.get(ctx, strings.TrimSuffix(c.feed.Base, "/")+"/"+strings.TrimPrefix(path, "/"))
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = os.ReadFile(filepath.Join(c.feed.Base, path))
		if err != nil {
			return nil, err
		}
	}

	var items []news.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
