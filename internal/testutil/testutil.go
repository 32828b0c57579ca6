// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil provides testing utilities for the floodsub protocol.
package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/destiny/floodsub"
)

var topicCounter int64

// RandomPeerID returns a fresh 16-byte peer identity.
func RandomPeerID() floodsub.PeerID {
	u := uuid.New()
	return floodsub.PeerID(string(u[:]))
}

// RandomTopic returns a unique topic name with the given prefix.
func RandomTopic(prefix string) string {
	n := atomic.AddInt64(&topicCounter, 1)
	return fmt.Sprintf("%s-%d", prefix, n)
}

// SubscribeRPC builds an envelope subscribing to the given topics.
func SubscribeRPC(topics ...floodsub.TopicHash) *floodsub.RPC {
	return subRPC(true, topics)
}

// UnsubscribeRPC builds an envelope unsubscribing from the given topics.
func UnsubscribeRPC(topics ...floodsub.TopicHash) *floodsub.RPC {
	return subRPC(false, topics)
}

func subRPC(subscribe bool, topics []floodsub.TopicHash) *floodsub.RPC {
	subs := make([]floodsub.SubOpt, len(topics))
	for i, topic := range topics {
		subs[i] = floodsub.SubOpt{Subscribe: subscribe, Topic: topic}
	}
	return &floodsub.RPC{Subscriptions: subs}
}

// PublishRPC builds an envelope carrying the given messages.
func PublishRPC(msgs ...*floodsub.Message) *floodsub.RPC {
	return &floodsub.RPC{Publish: msgs}
}

// AuthoredMessage builds a message from a given source with an explicit
// sequence number.
func AuthoredMessage(from floodsub.PeerID, seqno byte, data string, topics ...floodsub.TopicHash) *floodsub.Message {
	return &floodsub.Message{
		From:   from,
		Seqno:  []byte{0, 0, 0, 0, 0, 0, 0, seqno},
		Topics: topics,
		Data:   []byte(data),
	}
}

// AnonymousMessage builds a message with no source and no sequence number.
func AnonymousMessage(data string, topics ...floodsub.TopicHash) *floodsub.Message {
	return &floodsub.Message{
		Topics: topics,
		Data:   []byte(data),
	}
}
