// Package cache holds synthesized coaching audio in memory so replaying a
// script does not re-bill the speech API.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// DefaultTTL is how long a synthesized clip stays reusable.
const DefaultTTL = 30 * time.Minute

type entry struct {
	audio     []byte
	expiresAt time.Time
}

// AudioCache is a TTL cache keyed by the content of the synthesized text.
type AudioCache struct {
	mu    sync.Mutex
	items map[string]entry
	ttl   time.Duration
}

// New creates an audio cache with the given TTL. A zero TTL uses DefaultTTL.
func New(ttl time.Duration) *AudioCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AudioCache{
		items: make(map[string]entry),
		ttl:   ttl,
	}
}

// Key derives the cache key for a voice and text pair.
func Key(voiceID, text string) string {
	sum := sha256.Sum256([]byte(voiceID + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached audio for a key, dropping it if expired.
func (c *AudioCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return item.audio, true
}

// Set stores audio under a key for the cache's TTL.
func (c *AudioCache) Set(key string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{
		audio:     audio,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear drops every cached clip.
func (c *AudioCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}
