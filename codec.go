// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package floodsub

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Wire format for the RPC envelope. Hosts are free to bring their own
// encoding; the engine only ever sees decoded envelopes. Session uses this
// codec.
//
//	frame      = signature(2) version(1) subs msgs
//	subs       = count(u16) { flag(1) topic }*
//	msgs       = count(u16) { from seqno topics data }*
//	from       = len(u16) bytes     ; empty for anonymous messages
//	seqno      = len(u8) bytes      ; empty when absent
//	topics     = count(u16) topic*
//	topic      = len(u16) bytes
//	data       = len(u32) bytes
//
// All integers are big-endian.

// Marshal serializes the RPC envelope to wire format.
func (r *RPC) Marshal() ([]byte, error) {
	buf := bytes.NewBuffer(nil)

	buf.WriteByte(ProtocolSignature1)
	buf.WriteByte(ProtocolSignature2)
	buf.WriteByte(ProtocolVersion)

	if len(r.Subscriptions) > 0xFFFF {
		return nil, fmt.Errorf("too many subscription entries: %d", len(r.Subscriptions))
	}
	binary.Write(buf, binary.BigEndian, uint16(len(r.Subscriptions)))
	for _, sub := range r.Subscriptions {
		flag := byte(0)
		if sub.Subscribe {
			flag = 1
		}
		buf.WriteByte(flag)
		if err := writeBytes16(buf, []byte(sub.Topic)); err != nil {
			return nil, fmt.Errorf("subscription topic: %w", err)
		}
	}

	if len(r.Publish) > 0xFFFF {
		return nil, fmt.Errorf("too many messages: %d", len(r.Publish))
	}
	binary.Write(buf, binary.BigEndian, uint16(len(r.Publish)))
	for _, msg := range r.Publish {
		if err := writeBytes16(buf, []byte(msg.From)); err != nil {
			return nil, fmt.Errorf("message source: %w", err)
		}
		if len(msg.Seqno) > 0xFF {
			return nil, fmt.Errorf("seqno too long: %d", len(msg.Seqno))
		}
		buf.WriteByte(byte(len(msg.Seqno)))
		buf.Write(msg.Seqno)
		if len(msg.Topics) > 0xFFFF {
			return nil, fmt.Errorf("too many topics: %d", len(msg.Topics))
		}
		binary.Write(buf, binary.BigEndian, uint16(len(msg.Topics)))
		for _, topic := range msg.Topics {
			if err := writeBytes16(buf, []byte(topic)); err != nil {
				return nil, fmt.Errorf("message topic: %w", err)
			}
		}
		if uint64(len(msg.Data)) > 0xFFFFFFFF {
			return nil, fmt.Errorf("payload too long: %d", len(msg.Data))
		}
		binary.Write(buf, binary.BigEndian, uint32(len(msg.Data)))
		buf.Write(msg.Data)
	}

	return buf.Bytes(), nil
}

// Unmarshal deserializes an RPC envelope from wire format. All decode
// failures wrap ErrMalformedRPC.
func (r *RPC) Unmarshal(data []byte) error {
	if len(data) < 7 { // 2 sig + 1 ver + 2 sub count + 2 msg count
		return fmt.Errorf("%w: frame too short: %d bytes", ErrMalformedRPC, len(data))
	}

	buf := bytes.NewReader(data)

	sig1, _ := buf.ReadByte()
	sig2, _ := buf.ReadByte()
	if sig1 != ProtocolSignature1 || sig2 != ProtocolSignature2 {
		return fmt.Errorf("%w: invalid signature: %02x %02x", ErrMalformedRPC, sig1, sig2)
	}
	version, _ := buf.ReadByte()
	if version != ProtocolVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedRPC, version)
	}

	var subCount uint16
	binary.Read(buf, binary.BigEndian, &subCount)
	subs := make([]SubOpt, 0, subCount)
	for i := 0; i < int(subCount); i++ {
		flag, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: truncated subscription %d", ErrMalformedRPC, i)
		}
		topic, err := readBytes16(buf)
		if err != nil {
			return fmt.Errorf("%w: subscription topic %d: %v", ErrMalformedRPC, i, err)
		}
		subs = append(subs, SubOpt{Subscribe: flag != 0, Topic: TopicHash(topic)})
	}

	var msgCount uint16
	if err := binary.Read(buf, binary.BigEndian, &msgCount); err != nil {
		return fmt.Errorf("%w: truncated message count", ErrMalformedRPC)
	}
	msgs := make([]*Message, 0, msgCount)
	for i := 0; i < int(msgCount); i++ {
		msg, err := readMessage(buf)
		if err != nil {
			return fmt.Errorf("%w: message %d: %v", ErrMalformedRPC, i, err)
		}
		msgs = append(msgs, msg)
	}

	if buf.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedRPC, buf.Len())
	}

	r.Subscriptions = subs
	r.Publish = msgs
	return nil
}

func readMessage(buf *bytes.Reader) (*Message, error) {
	from, err := readBytes16(buf)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	seqnoLen, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("seqno length: %w", err)
	}
	var seqno []byte
	if seqnoLen > 0 {
		seqno = make([]byte, seqnoLen)
		if _, err := io.ReadFull(buf, seqno); err != nil {
			return nil, fmt.Errorf("seqno: %w", err)
		}
	}

	var topicCount uint16
	if err := binary.Read(buf, binary.BigEndian, &topicCount); err != nil {
		return nil, fmt.Errorf("topic count: %w", err)
	}
	topics := make([]TopicHash, 0, topicCount)
	for i := 0; i < int(topicCount); i++ {
		topic, err := readBytes16(buf)
		if err != nil {
			return nil, fmt.Errorf("topic %d: %w", i, err)
		}
		topics = append(topics, TopicHash(topic))
	}

	var dataLen uint32
	if err := binary.Read(buf, binary.BigEndian, &dataLen); err != nil {
		return nil, fmt.Errorf("payload length: %w", err)
	}
	if int(dataLen) > buf.Len() {
		return nil, fmt.Errorf("payload length %d exceeds remaining %d bytes", dataLen, buf.Len())
	}
	var data []byte
	if dataLen > 0 {
		data = make([]byte, dataLen)
		if _, err := io.ReadFull(buf, data); err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
	}

	return &Message{
		From:   PeerID(from),
		Seqno:  seqno,
		Topics: topics,
		Data:   data,
	}, nil
}

func writeBytes16(buf *bytes.Buffer, b []byte) error {
	if len(b) > 0xFFFF {
		return fmt.Errorf("field too long: %d", len(b))
	}
	binary.Write(buf, binary.BigEndian, uint16(len(b)))
	buf.Write(b)
	return nil
}

func readBytes16(buf *bytes.Reader) ([]byte, error) {
	var n uint16
	if err := binary.Read(buf, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}
	if int(n) > buf.Len() {
		return nil, fmt.Errorf("length %d exceeds remaining %d bytes", n, buf.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(buf, b); err != nil {
		return nil, err
	}
	return b, nil
}
