// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"time"
)

// Event is an application-visible notification produced by the engine.
type Event struct {
	Type      string    // Event type (SUBSCRIBED, UNSUBSCRIBED, MESSAGE, MALFORMED)
	Peer      PeerID    // Peer the event concerns (sender for MESSAGE events)
	Topic     TopicHash // Topic (for SUBSCRIBED and UNSUBSCRIBED events)
	Message   *Message  // Message content (for MESSAGE events)
	Err       error     // Decode error (for MALFORMED events)
	Timestamp time.Time // When the event occurred
}

// NewSubscribedEvent creates a SUBSCRIBED event
func NewSubscribedEvent(peer PeerID, topic TopicHash) *Event {
	return &Event{
		Type:      EventTypeSubscribed,
		Peer:      peer,
		Topic:     topic,
		Timestamp: time.Now(),
	}
}

// NewUnsubscribedEvent creates an UNSUBSCRIBED event
func NewUnsubscribedEvent(peer PeerID, topic TopicHash) *Event {
	return &Event{
		Type:      EventTypeUnsubscribed,
		Peer:      peer,
		Topic:     topic,
		Timestamp: time.Now(),
	}
}

// NewMessageEvent creates a MESSAGE event. peer is the directly connected
// peer the message arrived from, which is not necessarily its publisher.
func NewMessageEvent(peer PeerID, msg *Message) *Event {
	return &Event{
		Type:      EventTypeMessage,
		Peer:      peer,
		Message:   msg,
		Timestamp: time.Now(),
	}
}

// NewMalformedEvent creates a MALFORMED event
func NewMalformedEvent(peer PeerID, err error) *Event {
	return &Event{
		Type:      EventTypeMalformed,
		Peer:      peer,
		Err:       err,
		Timestamp: time.Now(),
	}
}
