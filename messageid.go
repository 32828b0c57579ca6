// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"fmt"
	"strconv"
)

// MessageID is an opaque identity derived from a Message, used for duplicate
// suppression. Equality is exact byte comparison.
type MessageID string

// String renders the ID as hex for logs.
func (id MessageID) String() string {
	return fmt.Sprintf("%x", string(id))
}

// MessageIDFn derives a MessageID from a Message. Implementations must be
// pure: the same message always yields the same ID. The function is fixed at
// engine construction via WithMessageIDFn.
type MessageIDFn func(msg *Message) MessageID

// DefaultMessageIDFn derives the ID from the publisher identity and the
// sequence number: base58 of the source (a fixed sentinel identity when the
// message is anonymous) followed by the decimal sequence number (0 when
// absent).
//
// Anonymous, unsequenced messages therefore all collide into a single ID.
// That is deliberate: without a publisher identity or sequence number there
// is nothing reliable to deduplicate on, and collapsing them keeps the seen
// cache from being filled by unattributable traffic. Deployments publishing
// anonymously with distinct payloads should install a payload-based ID
// function instead.
func DefaultMessageIDFn(msg *Message) MessageID {
	src := msg.From
	if src == "" {
		src = anonymousPeer
	}
	seqno, _ := msg.SequenceNumber()
	return MessageID(src.Base58() + strconv.FormatUint(seqno, 10))
}
