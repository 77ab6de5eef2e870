// Package service implements link caching and the extraction fallback chain.
package service

import (
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache maps the id of the bot's own reply message to the stream link that
// reply carries. Entries are written when a reply is sent and consumed when
// the hand-off action for that reply fires. Bounded by size and TTL: reply ids
// are ephemeral, so stale entries are evicted rather than kept forever.
type Cache struct {
	lru    *expirable.LRU[int64, string]
	logger *slog.Logger
}

// NewCache creates a link cache holding at most size entries, each expiring
// after ttl.
func NewCache(size int, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		lru:    expirable.NewLRU[int64, string](size, nil, ttl),
		logger: logger,
	}
}

// Put records the stream link behind a reply message id.
func (c *Cache) Put(replyMessageID int64, streamLink string) {
	c.lru.Add(replyMessageID, streamLink)
	c.logger.Debug("link cached",
		slog.Int64("reply_message_id", replyMessageID),
		slog.Int("entries", c.lru.Len()),
	)
}

// Get returns the stream link cached for a reply message id, if any.
func (c *Cache) Get(replyMessageID int64) (string, bool) {
	return c.lru.Get(replyMessageID)
}

// Evict removes the entry for a reply message id. Evicting an absent id is a
// no-op.
func (c *Cache) Evict(replyMessageID int64) {
	c.lru.Remove(replyMessageID)
}
