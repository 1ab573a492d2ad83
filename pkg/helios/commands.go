// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

// Command builder functions create Packet structs ready for encoding,
// wrapping the payload Encode() methods in payloads.go and bundle.go. Names
// mirror the helios_create_* functions of the original C library.

// --- Commands (Master -> ICU) ---

// NewSetMode creates a SET_MODE packet. parameter is the RPM for FAN mode,
// 0 for others.
func NewSetMode(mode uint8, parameter uint32) *Packet {
	p := SetModePayload{Mode: mode, Parameter: parameter}
	return NewPacketWithPayload(MSG_SET_MODE, p.Encode())
}

// NewSetPumpRate creates a SET_PUMP_RATE packet.
func NewSetPumpRate(rateMs uint32) *Packet {
	p := SetPumpRatePayload{RateMs: rateMs}
	return NewPacketWithPayload(MSG_SET_PUMP_RATE, p.Encode())
}

// NewSetTargetRPM creates a SET_TARGET_RPM packet.
func NewSetTargetRPM(targetRPM uint32) *Packet {
	p := SetTargetRPMPayload{TargetRPM: targetRPM}
	return NewPacketWithPayload(MSG_SET_TARGET_RPM, p.Encode())
}

// NewPingRequest creates a PING_REQUEST packet.
func NewPingRequest() *Packet {
	return NewPacketWithPayload(MSG_PING_REQUEST, nil)
}

// NewSetTimeoutConfig creates a SET_TIMEOUT_CONFIG packet.
func NewSetTimeoutConfig(enabled bool, timeoutMs uint32) *Packet {
	var enabledByte uint8
	if enabled {
		enabledByte = 1
	}
	p := SetTimeoutConfigPayload{TimeoutEnabled: enabledByte, TimeoutMs: timeoutMs}
	return NewPacketWithPayload(MSG_SET_TIMEOUT_CONFIG, p.Encode())
}

// NewEmergencyStop creates an EMERGENCY_STOP packet.
func NewEmergencyStop() *Packet {
	return NewPacketWithPayload(MSG_EMERGENCY_STOP, nil)
}

// --- Data (ICU -> Master) ---

// NewStateData creates a STATE_DATA packet.
func NewStateData(state uint32, errCode uint8) *Packet {
	p := StateDataPayload{State: state, Error: errCode}
	return NewPacketWithPayload(MSG_STATE_DATA, p.Encode())
}

// NewMotorData creates a MOTOR_DATA packet.
func NewMotorData(data MotorDataPayload) *Packet {
	return NewPacketWithPayload(MSG_MOTOR_DATA, data.Encode())
}

// NewTemperatureData creates a TEMPERATURE_DATA packet.
func NewTemperatureData(data TemperatureDataPayload) *Packet {
	return NewPacketWithPayload(MSG_TEMPERATURE_DATA, data.Encode())
}

// NewPumpData creates a PUMP_DATA packet.
func NewPumpData(data PumpDataPayload) *Packet {
	return NewPacketWithPayload(MSG_PUMP_DATA, data.Encode())
}

// NewGlowData creates a GLOW_DATA packet.
func NewGlowData(data GlowDataPayload) *Packet {
	return NewPacketWithPayload(MSG_GLOW_DATA, data.Encode())
}

// NewTelemetryBundle creates a TELEMETRY_BUNDLE packet, bounded by
// MAX_MOTORS/MAX_TEMPERATURES. Returns an error if either bound is exceeded.
func NewTelemetryBundle(state uint32, errCode uint8, motors []TelemetryMotor, temps []TelemetryTemperature) (*Packet, error) {
	bundle := TelemetryBundlePayload{State: state, Error: errCode, Motors: motors, Temps: temps}
	encoded, err := bundle.Encode()
	if err != nil {
		return nil, err
	}
	return NewPacketWithPayload(MSG_TELEMETRY_BUNDLE, encoded), nil
}

// NewPingResponse creates a PING_RESPONSE packet.
func NewPingResponse(uptimeMs uint64) *Packet {
	p := PingResponsePayload{UptimeMs: uptimeMs}
	return NewPacketWithPayload(MSG_PING_RESPONSE, p.Encode())
}

// --- Errors (bidirectional) ---

// NewErrorInvalidCommand creates an ERROR_INVALID_COMMAND packet.
func NewErrorInvalidCommand(invalidCommand uint8) *Packet {
	p := ErrorInvalidCommandPayload{InvalidCommand: invalidCommand}
	return NewPacketWithPayload(MSG_ERROR_INVALID_COMMAND, p.Encode())
}

// NewErrorInvalidCrc creates an ERROR_INVALID_CRC packet.
func NewErrorInvalidCrc(receivedCRC, calculatedCRC uint16) *Packet {
	p := ErrorInvalidCrcPayload{ReceivedCRC: receivedCRC, CalculatedCRC: calculatedCRC}
	return NewPacketWithPayload(MSG_ERROR_INVALID_CRC, p.Encode())
}

// NewErrorInvalidLength creates an ERROR_INVALID_LENGTH packet.
func NewErrorInvalidLength(receivedLength, expectedLength uint8) *Packet {
	p := ErrorInvalidLengthPayload{ReceivedLength: receivedLength, ExpectedLength: expectedLength}
	return NewPacketWithPayload(MSG_ERROR_INVALID_LENGTH, p.Encode())
}

// NewErrorTimeout creates an ERROR_TIMEOUT packet.
func NewErrorTimeout() *Packet {
	return NewPacketWithPayload(MSG_ERROR_TIMEOUT, nil)
}
