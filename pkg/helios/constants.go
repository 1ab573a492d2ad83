// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package helios provides a Go implementation of the short, unaddressed
// variant of the Fusain/Helios serial protocol family: no device address
// field at all, intended for a single master talking to a single ICU over a
// dedicated point-to-point link.
package helios

// Protocol Framing Bytes
const (
	START_BYTE = 0x7E
	END_BYTE   = 0x7F
	ESC_BYTE   = 0x7D
	ESC_XOR    = 0x20
)

// Packet Size Limits
const (
	MAX_PACKET_SIZE  = 64
	MAX_PAYLOAD_SIZE = 58
	MIN_PACKET_SIZE  = 1 + 1 + 1 + 2 + 1 // START + LEN + TYPE + CRC(2) + END
)

// CRC-16-CCITT Configuration
const (
	CRC_POLYNOMIAL = 0x1021
	CRC_INITIAL    = 0xFFFF
)

// Message Types - Commands (Master → ICU)
const (
	MSG_SET_MODE           = 0x10
	MSG_SET_PUMP_RATE      = 0x11
	MSG_SET_TARGET_RPM     = 0x12
	MSG_PING_REQUEST       = 0x13
	MSG_SET_TIMEOUT_CONFIG = 0x14
	MSG_EMERGENCY_STOP     = 0x15
)

// Message Types - Data (ICU → Master)
const (
	MSG_STATE_DATA       = 0x20
	MSG_MOTOR_DATA       = 0x21
	MSG_TEMPERATURE_DATA = 0x22
	MSG_PUMP_DATA        = 0x23
	MSG_GLOW_DATA        = 0x24
	MSG_TELEMETRY_BUNDLE = 0x25
	MSG_PING_RESPONSE    = 0x26
)

// Message Types - Errors (Bidirectional)
const (
	MSG_ERROR_INVALID_COMMAND = 0xE0
	MSG_ERROR_INVALID_CRC     = 0xE1
	MSG_ERROR_INVALID_LENGTH  = 0xE2
	MSG_ERROR_TIMEOUT         = 0xE3
)

// Decoder States
const (
	STATE_IDLE = iota
	STATE_LENGTH
	STATE_TYPE
	STATE_PAYLOAD
	STATE_CRC1
	STATE_CRC2
)

// Operating Modes (SET_MODE payload)
const (
	MODE_IDLE      = 0x00
	MODE_FAN       = 0x01
	MODE_HEAT      = 0x02
	MODE_EMERGENCY = 0xFF
)

// System state and error code values carried in STATE_DATA/TELEMETRY_BUNDLE
// payloads are not given named constants here — like the rest of this
// package, they're raw bytes looked up against the name tables in
// formatter.go (stateNames, errorNames) rather than enumerated in Go.

// MAX_MOTORS and MAX_TEMPERATURES bound TELEMETRY_BUNDLE's variable-length
// motor/temperature records. Smaller than pkg/heliosfixed's bundle, and each
// motor record omits pwm_period — this variant predates that addition.
const (
	MAX_MOTORS       = 3
	MAX_TEMPERATURES = 3
)
