// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"sort"
)

// SubscriptionTable records, per connected peer, which topics that peer has
// declared interest in. An entry exists iff the peer is currently connected:
// it is created by AddPeer and destroyed by RemovePeer, so flood decisions
// after a disconnect naturally exclude the peer even if stale RPCs still
// reference it.
type SubscriptionTable struct {
	peers map[PeerID]map[TopicHash]struct{}
}

// NewSubscriptionTable creates an empty table.
func NewSubscriptionTable() *SubscriptionTable {
	return &SubscriptionTable{
		peers: make(map[PeerID]map[TopicHash]struct{}),
	}
}

// AddPeer creates an empty subscription set for peer. Adding a peer that is
// already present is a no-op and keeps its subscriptions.
func (t *SubscriptionTable) AddPeer(peer PeerID) {
	if _, ok := t.peers[peer]; ok {
		return
	}
	t.peers[peer] = make(map[TopicHash]struct{})
}

// RemovePeer drops the peer's entry entirely.
func (t *SubscriptionTable) RemovePeer(peer PeerID) {
	delete(t.peers, peer)
}

// Contains reports whether peer is currently known.
func (t *SubscriptionTable) Contains(peer PeerID) bool {
	_, ok := t.peers[peer]
	return ok
}

// Update applies a subscription change for peer and reports whether the
// change took effect. Changes for unknown peers are ignored, as are
// duplicate subscribes and unsubscribes for topics the peer never joined:
// the host layer may deliver RPCs racing with a disconnect.
func (t *SubscriptionTable) Update(peer PeerID, topic TopicHash, subscribe bool) bool {
	topics, ok := t.peers[peer]
	if !ok {
		return false
	}
	if subscribe {
		if _, ok := topics[topic]; ok {
			return false
		}
		topics[topic] = struct{}{}
		return true
	}
	if _, ok := topics[topic]; !ok {
		return false
	}
	delete(topics, topic)
	return true
}

// Peers returns all connected peers, sorted for deterministic fan-out.
func (t *SubscriptionTable) Peers() []PeerID {
	peers := make([]PeerID, 0, len(t.peers))
	for p := range t.peers {
		peers = append(peers, p)
	}
	sortPeers(peers)
	return peers
}

// PeerCount returns the number of connected peers.
func (t *SubscriptionTable) PeerCount() int {
	return len(t.peers)
}

// Subscriptions returns the topics peer is subscribed to, or nil for an
// unknown peer.
func (t *SubscriptionTable) Subscriptions(peer PeerID) []TopicHash {
	topics, ok := t.peers[peer]
	if !ok {
		return nil
	}
	out := make([]TopicHash, 0, len(topics))
	for topic := range topics {
		out = append(out, topic)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SubscribersOf returns the connected peers subscribed to topic, sorted.
func (t *SubscriptionTable) SubscribersOf(topic TopicHash) []PeerID {
	return t.SubscribersOfAny([]TopicHash{topic}, "")
}

// SubscribersOfAny returns the connected peers whose subscription set
// intersects topics, excluding the given peer, sorted for deterministic
// fan-out.
func (t *SubscriptionTable) SubscribersOfAny(topics []TopicHash, except PeerID) []PeerID {
	var peers []PeerID
	for p, subs := range t.peers {
		if p == except {
			continue
		}
		for _, topic := range topics {
			if _, ok := subs[topic]; ok {
				peers = append(peers, p)
				break
			}
		}
	}
	sortPeers(peers)
	return peers
}

func sortPeers(peers []PeerID) {
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
}
