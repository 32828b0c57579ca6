// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"github.com/mr-tron/base58"
)

// PeerID identifies a peer. It wraps the raw identity bytes assigned by the
// host layer; the engine treats it as opaque and only compares it for
// equality. The empty PeerID means "no identity" (anonymous publisher).
type PeerID string

// anonymousPeer is the fixed sentinel identity substituted for an absent
// publisher when deriving the default message ID. Its bytes match the
// all-zero identity used by interoperating floodsub implementations.
var anonymousPeer = PeerID(string([]byte{0x00, 0x01, 0x00}))

// Bytes returns the raw identity bytes.
func (p PeerID) Bytes() []byte {
	return []byte(p)
}

// Base58 returns the base58btc rendering of the identity bytes.
func (p PeerID) Base58() string {
	return base58.Encode([]byte(p))
}

// String implements fmt.Stringer.
func (p PeerID) String() string {
	if p == "" {
		return "<anon>"
	}
	return p.Base58()
}
