// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floodsub implements a flood-style publish/subscribe protocol engine.
// Peers declare interest in named topics, publish byte payloads to topics, and
// every message is forwarded to every subscribed neighbor except the one it
// was heard from. A time-windowed cache of message IDs bounds retransmission:
// each node relays a given message at most once.
//
// The engine is a synchronous state machine with no goroutines and no timers;
// it is driven entirely by a host session layer that owns transport, security
// and stream multiplexing. Session provides a ready-made channel-based host
// for the in-process Transport; other hosts drive Engine directly.
package floodsub

import (
	"encoding/binary"
	"time"
)

// Protocol constants.
const (
	// ProtocolID is the identifier negotiated during stream setup.
	ProtocolID = "/floodsub/1.0.0"

	// Protocol version
	ProtocolVersion = 1

	// Protocol signature - every floodsub frame starts with these bytes
	ProtocolSignature1 = 0xAA
	ProtocolSignature2 = 0xA2

	// Default retention window for the seen-message cache
	DefaultSeenTTL = 120 * time.Second

	// Default maximum payload size accepted for publish and relay (1MB)
	DefaultMaxMessageSize = 1024 * 1024

	// Limits
	MaxTopicLength = 255 // Maximum topic name length
)

// Event types emitted to the application
const (
	EventTypeSubscribed   = "SUBSCRIBED"   // A peer subscribed to a topic
	EventTypeUnsubscribed = "UNSUBSCRIBED" // A peer unsubscribed from a topic
	EventTypeMessage      = "MESSAGE"      // A message arrived on a locally subscribed topic
	EventTypeMalformed    = "MALFORMED"    // A peer sent an undecodable frame
)

// Message is a published record as carried on the wire: an optional publisher
// identity, an optional big-endian encoded sequence number, the set of topics
// it was published to, and the payload. Messages are immutable once
// constructed.
type Message struct {
	From   PeerID      // Publisher identity, empty when published anonymously
	Seqno  []byte      // Big-endian uint64 sequence number, nil when absent
	Topics []TopicHash // Topics this message was published to
	Data   []byte      // Application payload
}

// Source returns the publisher identity and whether one is attached.
func (m *Message) Source() (PeerID, bool) {
	return m.From, m.From != ""
}

// SequenceNumber decodes the sequence number and reports whether one is
// attached. Sequence numbers shorter or longer than 8 bytes are treated as
// absent.
func (m *Message) SequenceNumber() (uint64, bool) {
	if len(m.Seqno) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(m.Seqno), true
}

// HasTopic reports whether the message was published to topic.
func (m *Message) HasTopic(topic TopicHash) bool {
	for _, t := range m.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// SubOpt is a single subscription change announced to a peer.
type SubOpt struct {
	Subscribe bool      // true to subscribe, false to unsubscribe
	Topic     TopicHash // Topic the change applies to
}

// RPC is the envelope exchanged between directly connected peers: a batch of
// subscription changes and/or a batch of published messages. An empty RPC is
// valid and carries no information.
type RPC struct {
	Subscriptions []SubOpt   // Subscription changes, applied in order
	Publish       []*Message // Published messages to process
}

// OutboundRPC is an RPC queued by the engine for the host layer to transmit
// to a set of destination peers.
type OutboundRPC struct {
	Peers []PeerID // Destination peers
	RPC   *RPC     // Envelope to transmit
}
