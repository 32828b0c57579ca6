// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"strconv"
	"testing"

	"github.com/mr-tron/base58"
)

func TestDefaultMessageIDDeterminism(t *testing.T) {
	msg := &Message{
		From:   PeerID("peer-one"),
		Seqno:  []byte{0, 0, 0, 0, 0, 9, 212, 126}, // 644222
		Topics: []TopicHash{"news"},
		Data:   []byte("test-data"),
	}

	id1 := DefaultMessageIDFn(msg)
	id2 := DefaultMessageIDFn(msg)
	if id1 != id2 {
		t.Errorf("expected identical IDs for repeated calls, got %q and %q", id1, id2)
	}

	want := MessageID(base58.Encode([]byte("peer-one")) + "644222")
	if id1 != want {
		t.Errorf("expected ID %q, got %q", want, id1)
	}
}

func TestDefaultMessageIDNoSource(t *testing.T) {
	msg := &Message{
		Seqno:  []byte{0, 0, 0, 0, 0, 9, 212, 126},
		Topics: []TopicHash{"news"},
		Data:   []byte("test-data"),
	}

	id1 := DefaultMessageIDFn(msg)
	id2 := DefaultMessageIDFn(msg)
	if id1 != id2 {
		t.Errorf("expected identical IDs for repeated calls, got %q and %q", id1, id2)
	}

	want := MessageID(anonymousPeer.Base58() + "644222")
	if id1 != want {
		t.Errorf("expected sentinel-based ID %q, got %q", want, id1)
	}
}

func TestAnonymousMessagesCollide(t *testing.T) {
	// Two distinct anonymous, unsequenced messages share one ID. This is the
	// documented trade-off of the default ID function.
	a := &Message{Topics: []TopicHash{"a"}, Data: []byte("first")}
	b := &Message{Topics: []TopicHash{"b"}, Data: []byte("second")}

	if DefaultMessageIDFn(a) != DefaultMessageIDFn(b) {
		t.Errorf("expected anonymous messages to collide, got %q and %q",
			DefaultMessageIDFn(a), DefaultMessageIDFn(b))
	}
}

func TestDistinctSeqnosDistinctIDs(t *testing.T) {
	from := PeerID("peer-one")
	seen := make(map[MessageID]bool)
	for i := 0; i < 10; i++ {
		msg := &Message{
			From:   from,
			Seqno:  []byte{0, 0, 0, 0, 0, 0, 0, byte(i)},
			Topics: []TopicHash{"news"},
		}
		id := DefaultMessageIDFn(msg)
		if seen[id] {
			t.Fatalf("duplicate ID %q for seqno %d", id, i)
		}
		seen[id] = true
	}
}

func TestShortSeqnoTreatedAsAbsent(t *testing.T) {
	msg := &Message{From: PeerID("p"), Seqno: []byte{1, 2}}
	if _, ok := msg.SequenceNumber(); ok {
		t.Error("expected malformed seqno to decode as absent")
	}
	want := MessageID(PeerID("p").Base58() + strconv.FormatUint(0, 10))
	if got := DefaultMessageIDFn(msg); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
