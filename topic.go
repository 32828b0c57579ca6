// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"crypto/sha256"
	"encoding/hex"
)

// TopicHash is the wire-level reference to a topic, derived from the topic
// name by a TopicHasher. Two topics with equal names always derive equal
// hashes.
type TopicHash string

// TopicHasher derives the wire-level topic reference from a topic name.
// Derivation must be deterministic.
type TopicHasher func(name string) TopicHash

// IdentityTopicHash uses the topic name itself as the wire reference. This is
// the default: it is trivially collision-free and keeps topic names readable
// on the wire.
func IdentityTopicHash(name string) TopicHash {
	return TopicHash(name)
}

// SHA256TopicHash derives the wire reference as the hex form of the SHA-256
// digest of the topic name, for deployments that do not want topic names
// visible on the wire.
func SHA256TopicHash(name string) TopicHash {
	sum := sha256.Sum256([]byte(name))
	return TopicHash(hex.EncodeToString(sum[:]))
}

// Topic is an immutable named channel together with its derived wire
// reference.
type Topic struct {
	name string
	hash TopicHash
}

// NewTopic creates a Topic using the identity hasher.
func NewTopic(name string) Topic {
	return NewTopicWithHasher(name, IdentityTopicHash)
}

// NewTopicWithHasher creates a Topic using the given hasher.
func NewTopicWithHasher(name string, h TopicHasher) Topic {
	return Topic{name: name, hash: h(name)}
}

// Name returns the topic name.
func (t Topic) Name() string { return t.name }

// Hash returns the derived wire reference.
func (t Topic) Hash() TopicHash { return t.hash }

// String implements fmt.Stringer.
func (t Topic) String() string { return t.name }
