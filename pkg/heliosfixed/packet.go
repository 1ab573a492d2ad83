// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import "time"

// Packet represents a decoded heliosfixed protocol packet. The payload is a
// raw packed-struct byte image; use the Decode<Message> helpers in
// payloads.go to interpret it according to Type().
type Packet struct {
	length    uint8
	address   uint64
	msgType   uint8
	payload   []byte
	crc       uint16
	timestamp time.Time
}

// NewPacket creates a new packet with the given fields
func NewPacket(length uint8, address uint64, msgType uint8, payload []byte, crc uint16) *Packet {
	return &Packet{
		length:    length,
		address:   address,
		msgType:   msgType,
		payload:   payload,
		crc:       crc,
		timestamp: time.Now(),
	}
}

// NewPacketWithPayload creates a packet from an address, message type, and
// already-encoded payload bytes (see the New<Message> constructors in
// commands.go for the common case of building the payload bytes too).
func NewPacketWithPayload(address uint64, msgType uint8, payload []byte) *Packet {
	return &Packet{
		length:    uint8(len(payload)),
		address:   address,
		msgType:   msgType,
		payload:   payload,
		timestamp: time.Now(),
	}
}

// Length returns the packet's payload length
func (p *Packet) Length() uint8 {
	return p.length
}

// Address returns the packet's 64-bit device address
func (p *Packet) Address() uint64 {
	return p.address
}

// Type returns the packet's message type
func (p *Packet) Type() uint8 {
	return p.msgType
}

// Payload returns the raw packed-struct payload bytes
func (p *Packet) Payload() []byte {
	return p.payload
}

// CRC returns the packet's CRC value
func (p *Packet) CRC() uint16 {
	return p.crc
}

// Timestamp returns the packet's decode timestamp
func (p *Packet) Timestamp() time.Time {
	return p.timestamp
}

// IsBroadcast returns true if the packet is addressed to all devices
func (p *Packet) IsBroadcast() bool {
	return p.address == AddressBroadcast
}

// IsStateless returns true if the packet uses the stateless address
func (p *Packet) IsStateless() bool {
	return p.address == AddressStateless
}
