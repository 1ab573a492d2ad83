// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

// Command builder functions create Packet structs ready for encoding,
// wrapping the payload Encode() methods in payloads.go and bundle.go.

// --- Configuration commands ---

// NewMotorConfig creates a MOTOR_CONFIG packet.
func NewMotorConfig(address uint64, cfg MotorConfigPayload) *Packet {
	return NewPacketWithPayload(address, MsgMotorConfig, cfg.Encode())
}

// NewPumpConfig creates a PUMP_CONFIG packet.
func NewPumpConfig(address uint64, cfg PumpConfigPayload) *Packet {
	return NewPacketWithPayload(address, MsgPumpConfig, cfg.Encode())
}

// NewTempConfig creates a TEMP_CONFIG packet.
func NewTempConfig(address uint64, cfg TempConfigPayload) *Packet {
	return NewPacketWithPayload(address, MsgTempConfig, cfg.Encode())
}

// NewGlowConfig creates a GLOW_CONFIG packet.
func NewGlowConfig(address uint64, cfg GlowConfigPayload) *Packet {
	return NewPacketWithPayload(address, MsgGlowConfig, cfg.Encode())
}

// --- Control commands ---

// NewStateCommand creates a STATE_COMMAND packet.
// parameter is mode-specific: target RPM for FAN mode, pump rate ms for
// HEAT mode, ignored (pass 0) for IDLE/EMERGENCY.
func NewStateCommand(address uint64, mode Mode, parameter uint32) *Packet {
	p := StateCommandPayload{Mode: mode, Parameter: parameter}
	return NewPacketWithPayload(address, MsgStateCommand, p.Encode())
}

// NewGlowCommand creates a GLOW_COMMAND packet.
func NewGlowCommand(address uint64, glow int32, durationMs int32) *Packet {
	p := GlowCommandPayload{Glow: glow, Duration: durationMs}
	return NewPacketWithPayload(address, MsgGlowCommand, p.Encode())
}

// NewTelemetryConfig creates a TELEMETRY_CONFIG packet.
func NewTelemetryConfig(address uint64, enabled bool, intervalMs uint32, mode uint32) *Packet {
	p := TelemetryConfigPayload{Enabled: enabled, IntervalMs: intervalMs, Mode: mode}
	return NewPacketWithPayload(address, MsgTelemetryConfig, p.Encode())
}

// NewPingRequest creates a PING_REQUEST packet.
func NewPingRequest(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgPingRequest, nil)
}

// --- Telemetry data ---

// NewStateData creates a STATE_DATA packet.
func NewStateData(address uint64, state SysState, errCode ErrorCode) *Packet {
	p := StateDataPayload{State: state, Error: errCode}
	return NewPacketWithPayload(address, MsgStateData, p.Encode())
}

// NewMotorData creates a MOTOR_DATA packet.
func NewMotorData(address uint64, data MotorDataPayload) *Packet {
	return NewPacketWithPayload(address, MsgMotorData, data.Encode())
}

// NewTempData creates a TEMP_DATA packet.
func NewTempData(address uint64, data TempDataPayload) *Packet {
	return NewPacketWithPayload(address, MsgTempData, data.Encode())
}

// NewPumpData creates a PUMP_DATA packet.
func NewPumpData(address uint64, data PumpDataPayload) *Packet {
	return NewPacketWithPayload(address, MsgPumpData, data.Encode())
}

// NewGlowData creates a GLOW_DATA packet.
func NewGlowData(address uint64, data GlowDataPayload) *Packet {
	return NewPacketWithPayload(address, MsgGlowData, data.Encode())
}

// NewTelemetryBundle creates a TELEMETRY_BUNDLE packet, bounded by
// MaxMotors/MaxTemperatures. Returns an error if either bound is exceeded.
func NewTelemetryBundle(address uint64, bundle TelemetryBundlePayload) (*Packet, error) {
	encoded, err := bundle.Encode()
	if err != nil {
		return nil, err
	}
	return NewPacketWithPayload(address, MsgTelemetryBundle, encoded), nil
}

// NewDeviceAnnounce creates a DEVICE_ANNOUNCE packet.
func NewDeviceAnnounce(address uint64, deviceType, capabilities uint32) *Packet {
	p := DeviceAnnouncePayload{DeviceType: deviceType, Capabilities: capabilities}
	return NewPacketWithPayload(address, MsgDeviceAnnounce, p.Encode())
}

// NewPingResponse creates a PING_RESPONSE packet.
func NewPingResponse(address uint64, uptimeMs uint64) *Packet {
	p := PingResponsePayload{UptimeMs: uptimeMs}
	return NewPacketWithPayload(address, MsgPingResponse, p.Encode())
}

// --- Errors ---

// NewErrorInvalidMsg creates an ERROR_INVALID_MSG packet.
func NewErrorInvalidMsg(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgErrorInvalidMsg, nil)
}

// NewErrorCrcFail creates an ERROR_CRC_FAIL packet.
func NewErrorCrcFail(address uint64, receivedCRC, calculatedCRC uint16) *Packet {
	p := ErrorCrcFailPayload{ReceivedCRC: receivedCRC, CalculatedCRC: calculatedCRC}
	return NewPacketWithPayload(address, MsgErrorCrcFail, p.Encode())
}

// NewErrorInvalidCmd creates an ERROR_INVALID_CMD packet.
func NewErrorInvalidCmd(address uint64, invalidCommand uint8) *Packet {
	p := ErrorInvalidCmdPayload{InvalidCommand: invalidCommand}
	return NewPacketWithPayload(address, MsgErrorInvalidCmd, p.Encode())
}

// NewErrorInvalidLength creates an ERROR_INVALID_LENGTH packet.
func NewErrorInvalidLength(address uint64, receivedLength, expectedLength uint8) *Packet {
	p := ErrorInvalidLengthPayload{ReceivedLength: receivedLength, ExpectedLength: expectedLength}
	return NewPacketWithPayload(address, MsgErrorInvalidLength, p.Encode())
}
