// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"time"

	"github.com/benbjohnson/clock"
)

// PublishPolicy controls what identity information Publish attaches to
// outgoing messages.
type PublishPolicy int

const (
	// PublishWithAuthor attaches the local peer identity and a monotonically
	// increasing sequence number to every published message. This is the
	// default; it gives every publish a distinct message ID.
	PublishWithAuthor PublishPolicy = iota

	// PublishAnonymous omits both. All anonymous unsequenced messages share
	// one ID under the default ID function; see DefaultMessageIDFn.
	PublishAnonymous
)

// config is fixed at engine construction. Changing configuration requires
// constructing a new engine.
type config struct {
	idFn           MessageIDFn
	hasher         TopicHasher
	seenTTL        time.Duration
	maxMessageSize int
	policy         PublishPolicy
	log            *Logger
	clk            clock.Clock
}

func defaultConfig() *config {
	return &config{
		idFn:           DefaultMessageIDFn,
		hasher:         IdentityTopicHash,
		seenTTL:        DefaultSeenTTL,
		maxMessageSize: DefaultMaxMessageSize,
		policy:         PublishWithAuthor,
		log:            DefaultLogger,
		clk:            clock.New(),
	}
}

// Option configures some aspect of an Engine.
type Option func(c *config)

// WithMessageIDFn overrides the message identity function.
func WithMessageIDFn(fn MessageIDFn) Option {
	return func(c *config) {
		c.idFn = fn
	}
}

// WithTopicHasher overrides how topic names are mapped to wire references.
func WithTopicHasher(h TopicHasher) Option {
	return func(c *config) {
		c.hasher = h
	}
}

// WithSeenTTL configures the retention window of the seen-message cache.
func WithSeenTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.seenTTL = ttl
	}
}

// WithMaxMessageSize configures the maximum payload size accepted for
// publish and relay.
func WithMaxMessageSize(size int) Option {
	return func(c *config) {
		c.maxMessageSize = size
	}
}

// WithPublishPolicy configures whether published messages carry the local
// identity and a sequence number.
func WithPublishPolicy(policy PublishPolicy) Option {
	return func(c *config) {
		c.policy = policy
	}
}

// WithLogger sets a dedicated Logger for the engine.
func WithLogger(log *Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithClock sets the time source used by the seen cache. Tests use a mock
// clock to drive the retention window deterministically.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clk = clk
	}
}
