// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chat floods a handful of messages between three in-process nodes
// subscribed to the same topic.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/destiny/floodsub"
)

func newNode(name string) (*floodsub.Session, *floodsub.MemoryTransport) {
	u := uuid.New()
	self := floodsub.PeerID(string(u[:]))
	tr := floodsub.NewMemoryTransport(self)
	session := floodsub.NewSession(self, tr,
		floodsub.WithLogger(floodsub.NewLogger(floodsub.LogLevelInfo)),
	)
	if err := session.Start(); err != nil {
		log.Fatalf("starting %s: %v", name, err)
	}
	return session, tr
}

func main() {
	alice, trAlice := newNode("alice")
	bob, trBob := newNode("bob")
	carol, _ := newNode("carol")

	defer alice.Close()
	defer bob.Close()
	defer carol.Close()

	// Line topology: alice - bob - carol. Messages reach carol through bob.
	if err := trAlice.Connect(bob.Self()); err != nil {
		log.Fatal(err)
	}
	if err := trBob.Connect(carol.Self()); err != nil {
		log.Fatal(err)
	}

	for _, node := range []*floodsub.Session{alice, bob, carol} {
		if err := node.Subscribe("room/general"); err != nil {
			log.Fatal(err)
		}
	}

	go func() {
		for ev := range carol.Events() {
			if ev.Type == floodsub.EventTypeMessage {
				fmt.Printf("carol received: %s\n", ev.Message.Data)
			}
		}
	}()

	// Give the subscription announcements a moment to propagate.
	time.Sleep(100 * time.Millisecond)

	for i := 1; i <= 3; i++ {
		msg := fmt.Sprintf("hello from alice #%d", i)
		if _, err := alice.Publish([]string{"room/general"}, []byte(msg)); err != nil {
			log.Fatal(err)
		}
	}

	time.Sleep(200 * time.Millisecond)
}
