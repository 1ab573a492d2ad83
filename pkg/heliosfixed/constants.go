// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package heliosfixed provides a Go implementation of the long-addressed,
// fixed-layout variant of the Fusain/Helios serial protocol family: an
// 8-byte address like pkg/fusain, but a packed-struct payload with a
// separate TYPE byte instead of a CBOR body.
//
// It predates the CBOR-based pkg/fusain and is kept for appliances that
// need addressing but not a CBOR decoder.
package heliosfixed

// Protocol framing bytes
const (
	StartByte = 0x7E
	EndByte   = 0x7F
	EscByte   = 0x7D
	EscXor    = 0x20
)

// Packet size limits
const (
	MaxPacketSize  = 128 // START + LEN + ADDR(8) + TYPE + PAYLOAD(114) + CRC(2) + END
	MaxPayloadSize = 114
	AddressSize    = 8
	MinPacketSize  = 1 + 1 + AddressSize + 1 + 2 + 1 // START + LEN + ADDR + TYPE + CRC(2) + END
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Special addresses
const (
	AddressBroadcast = 0x0000000000000000
	AddressStateless = 0xFFFFFFFFFFFFFFFF
)

// Message types - Configuration Commands (Controller → Appliance)
const (
	MsgMotorConfig = 0x10
	MsgPumpConfig  = 0x11
	MsgTempConfig  = 0x12
	MsgGlowConfig  = 0x13
)

// Message types - Control Commands (Controller → Appliance)
const (
	MsgStateCommand    = 0x20
	MsgGlowCommand     = 0x23
	MsgTelemetryConfig = 0x26
	MsgPingRequest     = 0x2F
)

// Message types - Telemetry Data (Appliance → Controller)
const (
	MsgStateData       = 0x30
	MsgMotorData       = 0x31
	MsgTempData        = 0x32
	MsgPumpData        = 0x33
	MsgGlowData        = 0x34
	MsgTelemetryBundle = 0x35
	MsgDeviceAnnounce  = 0x36
	MsgPingResponse    = 0x3F
)

// Message types - Errors (Bidirectional)
const (
	MsgErrorInvalidMsg    = 0xE0
	MsgErrorCrcFail       = 0xE1
	MsgErrorInvalidCmd    = 0xE2
	MsgErrorInvalidLength = 0xE3
)

// Decoder states (internal). Unlike pkg/fusain, this variant keeps a
// dedicated TYPE state since the payload is a raw byte image with no
// embedded message type to parse lazily.
const (
	stateIdle = iota
	stateLength
	stateAddress
	stateType
	statePayload
	stateCRC1
	stateCRC2
)

// Mode represents operating modes for STATE_COMMAND
type Mode uint8

const (
	ModeIdle      Mode = 0x00
	ModeFan       Mode = 0x01
	ModeHeat      Mode = 0x02
	ModeEmergency Mode = 0xFF
)

// SysState represents system states reported in STATE_DATA/TELEMETRY_BUNDLE
type SysState uint32

const (
	SysStateInitializing SysState = iota
	SysStateIdle
	SysStateBlowing
	SysStatePreheat
	SysStatePreheatStage2
	SysStateHeating
	SysStateCooling
	SysStateError
	SysStateEstop
)

// ErrorCode represents error codes reported in STATE_DATA
type ErrorCode uint8

const (
	ErrorNone          ErrorCode = 0x00
	ErrorPreheatFailed ErrorCode = 0x01
	ErrorFlameOut      ErrorCode = 0x02
	ErrorOverheat      ErrorCode = 0x03
	ErrorPumpFault     ErrorCode = 0x04
	ErrorTimeout       ErrorCode = 0x05
)

// MaxMotors and MaxTemperatures bound TELEMETRY_BUNDLE's variable-length
// motor/temperature records for this variant.
const (
	MaxMotors       = 5
	MaxTemperatures = 4
)
