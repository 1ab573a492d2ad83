// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import "fmt"

// EncodePacket creates a complete wire-formatted Helios packet.
// Returns the packet bytes ready for transmission, including framing and
// byte stuffing.
func EncodePacket(msgType uint8, payload []byte) ([]byte, error) {
	if len(payload) > MAX_PAYLOAD_SIZE {
		return nil, fmt.Errorf("%w: payload too large: %d bytes (max %d)", ErrInvalidLength, len(payload), MAX_PAYLOAD_SIZE)
	}

	data := make([]byte, 2+len(payload))
	data[0] = uint8(len(payload))
	data[1] = msgType
	copy(data[2:], payload)

	crc := CalculateCRC(data)
	data = append(data, byte(crc>>8), byte(crc&0xFF))

	stuffed := stuffBytes(data)

	packet := make([]byte, 0, len(stuffed)+2)
	packet = append(packet, START_BYTE)
	packet = append(packet, stuffed...)
	packet = append(packet, END_BYTE)

	return packet, nil
}

// MustEncodePacket encodes an existing Packet struct back to wire format.
// Panics on encoding error (use EncodePacket for error handling).
func MustEncodePacket(p *Packet) []byte {
	data, err := EncodePacket(p.Type(), p.Payload())
	if err != nil {
		panic(fmt.Sprintf("helios: encode error: %v", err))
	}
	return data
}

// DecodePacket decodes a single complete wire-formatted packet in one call.
func DecodePacket(data []byte) (*Packet, error) {
	d := NewDecoder()
	var last *Packet
	for _, b := range data {
		p, err := d.DecodeByte(b)
		if err != nil {
			return nil, err
		}
		if p != nil {
			last = p
		}
	}
	if last == nil {
		return nil, fmt.Errorf("%w: incomplete packet", ErrInvalidMessage)
	}
	return last, nil
}

// stuffBytes applies byte stuffing to escape special bytes.
func stuffBytes(data []byte) []byte {
	result := make([]byte, 0, len(data)*2)
	for _, b := range data {
		if b == START_BYTE || b == END_BYTE || b == ESC_BYTE {
			result = append(result, ESC_BYTE, b^ESC_XOR)
		} else {
			result = append(result, b)
		}
	}
	return result
}

// unstuffBytes removes byte stuffing from escaped data.
func unstuffBytes(data []byte) ([]byte, error) {
	result := make([]byte, 0, len(data))
	escapeNext := false

	for _, b := range data {
		if escapeNext {
			result = append(result, b^ESC_XOR)
			escapeNext = false
		} else if b == ESC_BYTE {
			escapeNext = true
		} else {
			result = append(result, b)
		}
	}

	if escapeNext {
		return nil, fmt.Errorf("%w: incomplete escape sequence at end of data", ErrFramingError)
	}

	return result, nil
}
