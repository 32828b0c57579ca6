// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"fmt"
	"sync"
)

// Inbound is a raw frame received from a directly connected peer.
type Inbound struct {
	From  PeerID // Peer the frame arrived from
	Frame []byte // Encoded RPC envelope
}

// Notice is a connection lifecycle notification from the transport.
type Notice struct {
	Peer      PeerID // Peer the notice concerns
	Connected bool   // true on connect, false on disconnect
}

// Transport abstracts peer-to-peer frame I/O for Session. The session uses
// this interface exclusively so that tests and examples can run over the
// in-process transport without real network sockets. Production hosts wrap
// their socket layer behind it.
type Transport interface {
	// Send transmits an encoded frame to a connected peer. Frames for peers
	// that disconnected in flight are silently dropped.
	Send(to PeerID, frame []byte) error

	// Incoming returns the channel of frames received from any peer.
	Incoming() <-chan Inbound

	// Notices returns the channel of connection lifecycle notifications.
	Notices() <-chan Notice

	// Close shuts down the transport and disconnects all peers.
	Close() error
}

// MemoryTransport is an in-process Transport for tests and examples. Two
// transports are wired together with Connect; a global registry maps peer IDs
// to instances.
type MemoryTransport struct {
	self     PeerID
	incoming chan Inbound
	notices  chan Notice

	mu     sync.RWMutex
	peers  map[PeerID]*MemoryTransport
	closed bool
}

var (
	memRegistryMu sync.Mutex
	memRegistry   = map[PeerID]*MemoryTransport{}
)

// NewMemoryTransport creates a MemoryTransport registered under self.
func NewMemoryTransport(self PeerID) *MemoryTransport {
	t := &MemoryTransport{
		self:     self,
		incoming: make(chan Inbound, 1024),
		notices:  make(chan Notice, 64),
		peers:    make(map[PeerID]*MemoryTransport),
	}
	memRegistryMu.Lock()
	memRegistry[self] = t
	memRegistryMu.Unlock()
	return t
}

// Connect wires this transport to the registered transport of peer, in both
// directions. Both sides receive a connect notice. Idempotent.
func (t *MemoryTransport) Connect(peer PeerID) error {
	memRegistryMu.Lock()
	other, ok := memRegistry[peer]
	memRegistryMu.Unlock()
	if !ok {
		return fmt.Errorf("memory transport: no peer %s", peer)
	}

	t.mu.Lock()
	if _, dup := t.peers[peer]; dup {
		t.mu.Unlock()
		return nil
	}
	t.peers[peer] = other
	t.mu.Unlock()

	other.mu.Lock()
	other.peers[t.self] = t
	other.mu.Unlock()

	t.notify(Notice{Peer: peer, Connected: true})
	other.notify(Notice{Peer: t.self, Connected: true})
	return nil
}

// Disconnect unwires a previously connected peer, in both directions. Both
// sides receive a disconnect notice.
func (t *MemoryTransport) Disconnect(peer PeerID) {
	t.mu.Lock()
	other, ok := t.peers[peer]
	delete(t.peers, peer)
	t.mu.Unlock()
	if !ok {
		return
	}

	other.mu.Lock()
	delete(other.peers, t.self)
	other.mu.Unlock()

	t.notify(Notice{Peer: peer, Connected: false})
	other.notify(Notice{Peer: t.self, Connected: false})
}

// Send implements Transport. Frames for unknown peers are dropped.
func (t *MemoryTransport) Send(to PeerID, frame []byte) error {
	t.mu.RLock()
	other, ok := t.peers[to]
	t.mu.RUnlock()
	if !ok {
		return nil
	}

	select {
	case other.incoming <- Inbound{From: t.self, Frame: frame}:
	default:
		// Receiver queue full; drop rather than block the sender.
	}
	return nil
}

// Incoming implements Transport.
func (t *MemoryTransport) Incoming() <-chan Inbound {
	return t.incoming
}

// Notices implements Transport.
func (t *MemoryTransport) Notices() <-chan Notice {
	return t.notices
}

// Close disconnects all peers and removes the transport from the registry.
func (t *MemoryTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	peers := make([]PeerID, 0, len(t.peers))
	for p := range t.peers {
		peers = append(peers, p)
	}
	t.mu.Unlock()

	for _, p := range peers {
		t.Disconnect(p)
	}

	memRegistryMu.Lock()
	delete(memRegistry, t.self)
	memRegistryMu.Unlock()
	return nil
}

func (t *MemoryTransport) notify(n Notice) {
	select {
	case t.notices <- n:
	default:
	}
}
