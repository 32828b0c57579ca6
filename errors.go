// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"errors"
)

var (
	// ErrEmptyTopicSet is returned by Publish when no topics are given.
	ErrEmptyTopicSet = errors.New("floodsub: publish with empty topic set")

	// ErrPayloadTooLarge is returned by Publish when the payload exceeds the
	// configured maximum message size.
	ErrPayloadTooLarge = errors.New("floodsub: payload exceeds maximum message size")

	// ErrMalformedRPC wraps all RPC decode failures.
	ErrMalformedRPC = errors.New("floodsub: malformed rpc")

	// ErrSessionClosed is returned by session operations after Close.
	ErrSessionClosed = errors.New("floodsub: session closed")
)
