// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Session is a ready-made host for an Engine: it serializes all access to the
// engine (the single-writer discipline the engine requires), decodes inbound
// frames with the wire codec, applies connection notices from the transport,
// transmits queued outbound RPCs, and fans application events out on a
// channel.
//
// Hosts with their own transport stack can drive Engine directly instead.
type Session struct {
	engine    *Engine
	transport Transport
	log       *Logger

	mu     sync.Mutex // serializes engine access
	closed bool

	events chan *Event
	ctx    context.Context
	cancel context.CancelFunc
	grp    *errgroup.Group
}

// NewSession creates a session for the local peer identity self over the
// given transport. The session does not run until Start is called.
func NewSession(self PeerID, transport Transport, opts ...Option) *Session {
	engine := NewEngine(self, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		engine:    engine,
		transport: transport,
		log:       engine.log,
		events:    make(chan *Event, 1024),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins processing transport traffic.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.grp != nil {
		return nil
	}

	grp, ctx := errgroup.WithContext(s.ctx)
	grp.Go(func() error {
		return s.run(ctx)
	})
	s.grp = grp
	return nil
}

// Close stops the session. The transport is left to its owner; the event
// channel is closed once the session has fully stopped.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	grp := s.grp
	s.mu.Unlock()

	s.cancel()
	if grp != nil {
		grp.Wait()
	}
	close(s.events)
	return nil
}

// Self returns the local peer identity.
func (s *Session) Self() PeerID {
	return s.engine.Self()
}

// Events returns the application event channel. It is closed by Close.
func (s *Session) Events() <-chan *Event {
	return s.events
}

// Subscribe adds a local subscription and announces it to connected peers.
func (s *Session) Subscribe(topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.engine.Subscribe(topic)
	s.flushLocked()
	return nil
}

// Unsubscribe removes a local subscription and announces the change.
func (s *Session) Unsubscribe(topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.engine.Unsubscribe(topic)
	s.flushLocked()
	return nil
}

// Publish floods a payload to every connected peer interested in at least one
// of the topics.
func (s *Session) Publish(topics []string, data []byte) (MessageID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrSessionClosed
	}
	id, err := s.engine.Publish(topics, data)
	if err != nil {
		return "", err
	}
	s.flushLocked()
	return id, nil
}

// Topics returns the names of the local subscriptions.
func (s *Session) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Topics()
}

// ListPeers returns the connected peers subscribed to topic.
func (s *Session) ListPeers(topic string) []PeerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ListPeers(topic)
}

func (s *Session) run(ctx context.Context) error {
	for {
		// Drain pending connection notices before traffic so a frame never
		// outruns the connect notice for its sender.
		select {
		case n := <-s.transport.Notices():
			s.handleNotice(n)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case n := <-s.transport.Notices():
			s.handleNotice(n)
		case in := <-s.transport.Incoming():
			s.handleFrame(in)
		}
	}
}

func (s *Session) handleFrame(in Inbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	rpc := new(RPC)
	if err := rpc.Unmarshal(in.Frame); err != nil {
		s.engine.NotifyMalformed(in.From, err)
	} else {
		s.engine.HandleRPC(in.From, rpc)
	}
	s.flushLocked()
}

func (s *Session) handleNotice(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if n.Connected {
		s.engine.AddPeer(n.Peer)
	} else {
		s.engine.RemovePeer(n.Peer)
	}
	s.flushLocked()
}

// flushLocked drains the engine's outbound and event queues. Outbound RPCs
// are encoded once and sent to each destination peer; events are delivered on
// the event channel, dropping when the consumer is not keeping up so the
// session never blocks on the application.
func (s *Session) flushLocked() {
	for _, out := range s.engine.PopOutbound() {
		frame, err := out.RPC.Marshal()
		if err != nil {
			s.log.Error("encoding outbound rpc: %v", err)
			continue
		}
		for _, peer := range out.Peers {
			if err := s.transport.Send(peer, frame); err != nil {
				s.log.Warn("sending to %s: %v", peer, err)
			}
		}
	}

	for _, ev := range s.engine.PopEvents() {
		select {
		case s.events <- ev:
		default:
			s.log.Warn("event channel full, dropping %s event", ev.Type)
		}
	}
}
