// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/destiny/floodsub"
	"github.com/destiny/floodsub/internal/testutil"
)

func TestRPCMarshalUnmarshal(t *testing.T) {
	from := testutil.RandomPeerID()
	rpc := &floodsub.RPC{
		Subscriptions: []floodsub.SubOpt{
			{Subscribe: true, Topic: "news"},
			{Subscribe: false, Topic: "weather"},
		},
		Publish: []*floodsub.Message{
			testutil.AuthoredMessage(from, 42, "hello", "news", "sports"),
			testutil.AnonymousMessage("anon payload", "news"),
		},
	}

	data, err := rpc.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal RPC: %v", err)
	}

	var decoded floodsub.RPC
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("Failed to unmarshal RPC: %v", err)
	}

	if len(decoded.Subscriptions) != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", len(decoded.Subscriptions))
	}
	if decoded.Subscriptions[0] != rpc.Subscriptions[0] {
		t.Errorf("Expected %+v, got %+v", rpc.Subscriptions[0], decoded.Subscriptions[0])
	}
	if decoded.Subscriptions[1] != rpc.Subscriptions[1] {
		t.Errorf("Expected %+v, got %+v", rpc.Subscriptions[1], decoded.Subscriptions[1])
	}

	if len(decoded.Publish) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(decoded.Publish))
	}
	msg := decoded.Publish[0]
	if msg.From != from {
		t.Errorf("Expected source %s, got %s", from, msg.From)
	}
	if seqno, ok := msg.SequenceNumber(); !ok || seqno != 42 {
		t.Errorf("Expected seqno 42, got %d (present=%v)", seqno, ok)
	}
	if len(msg.Topics) != 2 || msg.Topics[0] != "news" || msg.Topics[1] != "sports" {
		t.Errorf("Unexpected topics: %v", msg.Topics)
	}
	if !bytes.Equal(msg.Data, []byte("hello")) {
		t.Errorf("Expected payload %q, got %q", "hello", msg.Data)
	}

	anon := decoded.Publish[1]
	if _, ok := anon.Source(); ok {
		t.Error("Expected anonymous message to have no source")
	}
	if _, ok := anon.SequenceNumber(); ok {
		t.Error("Expected anonymous message to have no seqno")
	}
	if !bytes.Equal(anon.Data, []byte("anon payload")) {
		t.Errorf("Expected payload %q, got %q", "anon payload", anon.Data)
	}
}

func TestEmptyRPCRoundTrip(t *testing.T) {
	rpc := &floodsub.RPC{}
	data, err := rpc.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal empty RPC: %v", err)
	}

	var decoded floodsub.RPC
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("Failed to unmarshal empty RPC: %v", err)
	}
	if len(decoded.Subscriptions) != 0 || len(decoded.Publish) != 0 {
		t.Errorf("Expected empty RPC, got %+v", decoded)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	valid, err := testutil.SubscribeRPC("news").Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	cases := map[string][]byte{
		"empty":             {},
		"too short":         {0xAA},
		"bad signature":     {0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		"bad version":       {0xAA, 0xA2, 0x99, 0x00, 0x00, 0x00, 0x00},
		"truncated payload": valid[:len(valid)-1],
		"trailing bytes":    append(append([]byte{}, valid...), 0xFF),
	}

	for name, frame := range cases {
		var rpc floodsub.RPC
		err := rpc.Unmarshal(frame)
		if err == nil {
			t.Errorf("%s: expected decode error", name)
			continue
		}
		if !errors.Is(err, floodsub.ErrMalformedRPC) {
			t.Errorf("%s: expected ErrMalformedRPC, got %v", name, err)
		}
	}
}

func TestUnmarshalLyingLengths(t *testing.T) {
	// A subscription topic length pointing past the end of the frame must be
	// rejected without over-allocating.
	frame := []byte{
		0xAA, 0xA2, 0x01, // signature, version
		0x00, 0x01, // 1 subscription
		0x01,       // subscribe
		0xFF, 0xFF, // topic length 65535, nothing follows
	}
	var rpc floodsub.RPC
	if err := rpc.Unmarshal(frame); !errors.Is(err, floodsub.ErrMalformedRPC) {
		t.Errorf("expected ErrMalformedRPC, got %v", err)
	}
}
