// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"crypto/rand"
	"encoding/binary"
	"sort"
)

// Engine is the floodsub protocol state machine. It owns the local
// subscription set, the per-peer subscription table, the seen-message cache
// and the configuration, and it is advanced synchronously by the host session
// layer: every operation completes all internal mutation before returning,
// spawns no goroutines and owns no timers.
//
// The engine never touches the network. Outbound RPCs and application events
// are appended to internal queues that the host drains with PopOutbound and
// PopEvents after each call. Callers must serialize access; the engine is a
// single-writer structure with no internal locking.
type Engine struct {
	self PeerID
	cfg  *config
	log  *Logger

	seqno  uint64               // next sequence number for authored publishes
	topics map[TopicHash]string // local subscriptions: wire reference -> name
	peers  *SubscriptionTable
	seen   *SeenCache

	outbound []*OutboundRPC
	events   []*Event
}

// NewEngine creates an engine for the local peer identity self.
func NewEngine(self PeerID, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		self:   self,
		cfg:    cfg,
		log:    cfg.log,
		seqno:  randomSeqno(cfg),
		topics: make(map[TopicHash]string),
		peers:  NewSubscriptionTable(),
		seen:   NewSeenCache(cfg.clk, cfg.seenTTL),
	}
}

// randomSeqno picks the starting sequence number. A random start keeps an
// engine restarted under the same peer identity from replaying IDs still held
// in its neighbors' seen caches.
func randomSeqno(cfg *config) uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(cfg.clk.Now().UnixNano())
	}
	return binary.BigEndian.Uint64(b[:])
}

// Self returns the local peer identity.
func (e *Engine) Self() PeerID {
	return e.self
}

// Subscribe adds topic to the local subscription set and queues a subscribe
// announcement to every connected peer. It is idempotent: a second call for
// the same topic queues nothing.
func (e *Engine) Subscribe(topic string) {
	hash := e.cfg.hasher(topic)
	if _, ok := e.topics[hash]; ok {
		return
	}
	e.topics[hash] = topic
	e.broadcastSubChange(hash, true)
	e.log.Debug("subscribed to %q", topic)
}

// Unsubscribe removes topic from the local subscription set and queues an
// unsubscribe announcement to every connected peer. No-op if not subscribed.
func (e *Engine) Unsubscribe(topic string) {
	hash := e.cfg.hasher(topic)
	if _, ok := e.topics[hash]; !ok {
		return
	}
	delete(e.topics, hash)
	e.broadcastSubChange(hash, false)
	e.log.Debug("unsubscribed from %q", topic)
}

func (e *Engine) broadcastSubChange(hash TopicHash, subscribe bool) {
	peers := e.peers.Peers()
	if len(peers) == 0 {
		return
	}
	e.outbound = append(e.outbound, &OutboundRPC{
		Peers: peers,
		RPC:   &RPC{Subscriptions: []SubOpt{{Subscribe: subscribe, Topic: hash}}},
	})
}

// Topics returns the names of the local subscriptions, sorted.
func (e *Engine) Topics() []string {
	names := make([]string, 0, len(e.topics))
	for _, name := range e.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListPeers returns the connected peers subscribed to topic.
func (e *Engine) ListPeers(topic string) []PeerID {
	return e.peers.SubscribersOf(e.cfg.hasher(topic))
}

// Publish constructs a message for the given payload, records it as seen and
// queues it for relay to every connected peer subscribed to at least one of
// the topics, whether or not the local node is subscribed itself. The local
// node never receives a MESSAGE event for its own publishes.
//
// The message carries the local identity and a sequence number unless the
// engine was configured with PublishAnonymous. Returns the message ID.
func (e *Engine) Publish(topics []string, data []byte) (MessageID, error) {
	if len(topics) == 0 {
		return "", ErrEmptyTopicSet
	}
	if len(data) > e.cfg.maxMessageSize {
		return "", ErrPayloadTooLarge
	}

	hashes := make([]TopicHash, len(topics))
	for i, topic := range topics {
		hashes[i] = e.cfg.hasher(topic)
	}

	msg := &Message{Topics: hashes, Data: data}
	if e.cfg.policy == PublishWithAuthor {
		msg.From = e.self
		msg.Seqno = e.nextSeqno()
	}

	id := e.cfg.idFn(msg)
	e.seen.Insert(id)

	if peers := e.peers.SubscribersOfAny(hashes, ""); len(peers) > 0 {
		e.outbound = append(e.outbound, &OutboundRPC{
			Peers: peers,
			RPC:   &RPC{Publish: []*Message{msg}},
		})
		e.log.Debug("published %s to %d peers", id, len(peers))
	}
	return id, nil
}

func (e *Engine) nextSeqno() []byte {
	e.seqno++
	seqno := make([]byte, 8)
	binary.BigEndian.PutUint64(seqno, e.seqno)
	return seqno
}

// AddPeer records a newly connected peer and queues one RPC announcing every
// current local subscription to it. This announcement is the only
// subscription-sync mechanism; there is no periodic re-announcement.
func (e *Engine) AddPeer(peer PeerID) {
	if e.peers.Contains(peer) {
		return
	}
	e.peers.AddPeer(peer)
	e.log.Info("peer %s connected", peer)

	if len(e.topics) == 0 {
		return
	}
	hashes := make([]TopicHash, 0, len(e.topics))
	for hash := range e.topics {
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	subs := make([]SubOpt, len(hashes))
	for i, hash := range hashes {
		subs[i] = SubOpt{Subscribe: true, Topic: hash}
	}
	e.outbound = append(e.outbound, &OutboundRPC{
		Peers: []PeerID{peer},
		RPC:   &RPC{Subscriptions: subs},
	})
}

// RemovePeer drops a disconnected peer from the subscription table. Outbound
// RPCs already queued for it are left for the host layer to discard as
// undeliverable.
func (e *Engine) RemovePeer(peer PeerID) {
	if !e.peers.Contains(peer) {
		return
	}
	e.peers.RemovePeer(peer)
	e.log.Info("peer %s disconnected", peer)
}

// HandleRPC processes an inbound envelope from a directly connected peer:
// subscription changes first, then published messages. Messages already in
// the seen cache are dropped silently. A fresh message produces a MESSAGE
// event iff its topic set intersects the local subscriptions, and is queued
// for relay to every connected interested peer except from.
func (e *Engine) HandleRPC(from PeerID, rpc *RPC) {
	for _, sub := range rpc.Subscriptions {
		if !e.peers.Update(from, sub.Topic, sub.Subscribe) {
			continue
		}
		if sub.Subscribe {
			e.events = append(e.events, NewSubscribedEvent(from, sub.Topic))
		} else {
			e.events = append(e.events, NewUnsubscribedEvent(from, sub.Topic))
		}
	}

	for _, msg := range rpc.Publish {
		if len(msg.Topics) == 0 {
			e.log.Warn("dropping message without topics from %s", from)
			continue
		}
		if len(msg.Data) > e.cfg.maxMessageSize {
			e.log.Warn("dropping oversized message (%d bytes) from %s", len(msg.Data), from)
			continue
		}

		id := e.cfg.idFn(msg)
		if e.seen.Seen(id) {
			e.log.Debug("duplicate %s from %s", id, from)
			continue
		}
		e.seen.Insert(id)

		if e.subscribedToAny(msg.Topics) {
			e.events = append(e.events, NewMessageEvent(from, msg))
		}

		if peers := e.peers.SubscribersOfAny(msg.Topics, from); len(peers) > 0 {
			e.outbound = append(e.outbound, &OutboundRPC{
				Peers: peers,
				RPC:   &RPC{Publish: []*Message{msg}},
			})
			e.log.Debug("relaying %s to %d peers", id, len(peers))
		}
	}
}

// NotifyMalformed records that the host layer failed to decode a frame from
// peer. The engine emits a MALFORMED event and takes no corrective action:
// whether to terminate the connection is the host's decision.
func (e *Engine) NotifyMalformed(peer PeerID, err error) {
	e.log.Warn("malformed rpc from %s: %v", peer, err)
	e.events = append(e.events, NewMalformedEvent(peer, err))
}

func (e *Engine) subscribedToAny(topics []TopicHash) bool {
	for _, topic := range topics {
		if _, ok := e.topics[topic]; ok {
			return true
		}
	}
	return false
}

// PopOutbound drains and returns the queued outbound RPCs in the order they
// were produced.
func (e *Engine) PopOutbound() []*OutboundRPC {
	out := e.outbound
	e.outbound = nil
	return out
}

// PopEvents drains and returns the queued application events in the order
// they were produced.
func (e *Engine) PopEvents() []*Event {
	events := e.events
	e.events = nil
	return events
}
