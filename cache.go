// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"time"

	"github.com/benbjohnson/clock"
)

// SeenCache is a time-windowed set of message IDs used for duplicate
// suppression. Entries are recorded once with their first-seen time and
// expire after the retention window. Pruning happens lazily on Insert; no
// background goroutine runs, keeping the engine's single-threaded contract.
//
// The cache cannot fail. Skipping pruning only risks memory growth, never
// dedup correctness within the window.
type SeenCache struct {
	clk     clock.Clock
	ttl     time.Duration
	entries map[MessageID]time.Time
	order   []seenEntry // insertion order, oldest first
}

type seenEntry struct {
	id MessageID
	at time.Time
}

// NewSeenCache creates a cache with the given time source and retention
// window.
func NewSeenCache(clk clock.Clock, ttl time.Duration) *SeenCache {
	return &SeenCache{
		clk:     clk,
		ttl:     ttl,
		entries: make(map[MessageID]time.Time),
	}
}

// Seen reports whether id is in the cache. It does not mutate.
func (c *SeenCache) Seen(id MessageID) bool {
	_, ok := c.entries[id]
	return ok
}

// Insert records id with the current time. Already-present IDs keep their
// original first-seen time.
func (c *SeenCache) Insert(id MessageID) {
	now := c.clk.Now()
	c.Prune(now)
	if _, ok := c.entries[id]; ok {
		return
	}
	c.entries[id] = now
	c.order = append(c.order, seenEntry{id: id, at: now})
}

// Prune removes every entry older than the retention window relative to now.
func (c *SeenCache) Prune(now time.Time) {
	cutoff := now.Add(-c.ttl)
	i := 0
	for ; i < len(c.order); i++ {
		e := c.order[i]
		if e.at.After(cutoff) {
			break
		}
		delete(c.entries, e.id)
	}
	if i > 0 {
		c.order = append(c.order[:0:0], c.order[i:]...)
	}
}

// Len returns the number of live entries.
func (c *SeenCache) Len() int {
	return len(c.entries)
}
