package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/twvotelab/recall-o-meter/internal/prediction"
)

// Key is a canonical digest of a ScenarioInput. Two scenarios with the same
// inputs hash identically regardless of map ordering or display formatting.
type Key string

// KeyFor computes the cache key for a scenario. The canonical form writes
// every field in fixed order, so the key never depends on Go map iteration.
func KeyFor(s prediction.ScenarioInput) Key {
	var b strings.Builder

	fmt.Fprintf(&b, "target=%s|region=%s", s.Target.ID, s.Region)
	for _, group := range prediction.AgeGroups {
		fmt.Fprintf(&b, "|share.%s=%.9f", group, s.AgeShares[group])
	}
	fmt.Fprintf(&b, "|temp=%.4f|rain=%.4f|cond=%s",
		s.Weather.Temperature, s.Weather.Rainfall, strings.ToLower(strings.TrimSpace(s.Weather.Condition)))
	fmt.Fprintf(&b, "|dcard=%.9f|ptt=%.9f|heat=%.4f|pressure=%.4f",
		s.Forum.DcardPositive, s.Forum.PTTPositive, s.Forum.DiscussionHeat, s.Forum.PeerPressure)
	fmt.Fprintf(&b, "|hist=%.9f|mob=%.4f", s.HistoricalTurnout, s.MobilizationCapacity)
	if s.RegionalHint != nil {
		fmt.Fprintf(&b, "|hint=%.9f", *s.RegionalHint)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return Key(hex.EncodeToString(sum[:]))
}

type item struct {
	result    prediction.PredictionResult
	expiresAt time.Time
}

func (i *item) expired() bool { return time.Now().After(i.expiresAt) }

// PredictionCache is a thread-safe TTL cache of prediction results. It is
// owned by the caller (the HTTP layer holds one); the engine itself never
// touches it.
type PredictionCache struct {
	mu    sync.RWMutex
	items map[Key]*item
	ttl   time.Duration
}

// New creates a cache with the given TTL and starts the background sweep.
func New(ttl time.Duration) *PredictionCache {
	c := &PredictionCache{
		items: make(map[Key]*item),
		ttl:   ttl,
	}
	go c.sweep()
	return c
}

func (c *PredictionCache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for key, it := range c.items {
			if it.expired() {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// Get returns the cached result for a key, if present and fresh.
func (c *PredictionCache) Get(key Key) (prediction.PredictionResult, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || it.expired() {
		return prediction.PredictionResult{}, false
	}
	return it.result, true
}

// Set stores a result under a key.
func (c *PredictionCache) Set(key Key, result prediction.PredictionResult) {
	c.mu.Lock()
	c.items[key] = &item{result: result, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included until the sweep.
func (c *PredictionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics for the stats endpoint.
func (c *PredictionCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"items":       c.Len(),
		"ttl_seconds": c.ttl.Seconds(),
	}
}
