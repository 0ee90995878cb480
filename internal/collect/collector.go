// Package collect gathers one user's metadata, posts, and comments through
// the reddit.Client, with an optional snapshot cache in front of the API.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mvoloshin/personify/internal/cache"
	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/reddit"
)

// Collector fetches profiles up to the configured limits
type Collector struct {
	client      reddit.Client
	store       cache.Cache // nil disables caching
	maxPosts    int
	maxComments int
}

// New creates a collector. Pass a nil store to always hit the API.
func New(client reddit.Client, store cache.Cache, maxPosts, maxComments int) *Collector {
	return &Collector{
		client:      client,
		store:       store,
		maxPosts:    maxPosts,
		maxComments: maxComments,
	}
}

// Collect fetches the user's profile: metadata first (so missing accounts
// fail before any listing call), then posts and comments in API order.
func (c *Collector) Collect(ctx context.Context, username string) (*model.Profile, error) {
	key := cache.Key(strings.ToLower(username), c.maxPosts, c.maxComments)

	if c.store != nil {
		if data, found := c.store.Get(key); found {
			var profile model.Profile
			if err := json.Unmarshal(data, &profile); err == nil {
				return &profile, nil
			}
			// Unreadable snapshot: fall through to a fresh fetch
			_ = c.store.Delete(key)
		}
	}

	meta, err := c.client.About(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", username, err)
	}

	posts, err := c.client.Submissions(ctx, username, c.maxPosts)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for %s: %w", username, err)
	}

	comments, err := c.client.Comments(ctx, username, c.maxComments)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", username, err)
	}

	profile := &model.Profile{
		Meta:        meta,
		Posts:       posts,
		Comments:    comments,
		CollectedAt: time.Now().UTC(),
	}

	if c.store != nil {
		if data, err := json.Marshal(profile); err == nil {
			_ = c.store.Set(key, data, 0)
		}
	}

	return profile, nil
}
