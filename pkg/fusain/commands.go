// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package fusain

// Command builder functions create Packet structs ready for encoding.
// These are convenience wrappers around NewPacketWithPayload that ensure
// correct payload key usage per the Fusain protocol specification.

// --- Configuration commands (0x10-0x17, 0x1F) ---

// NewMotorConfig creates a MOTOR_CONFIG packet (0x10).
// All fields besides motor are optional; pass nil to leave a field unset so
// the appliance keeps its existing configuration for that field.
// CBOR keys: 0=motor, 1=pwm-period (opt), 2-4=PID kp/ki/kd (opt),
// 5=max-rpm (opt), 6=min-rpm (opt), 7=min-pwm (opt)
func NewMotorConfig(address uint64, motor uint8, pwmPeriod *uint32, kp, ki, kd *float64, maxRPM, minRPM *int32, minPWM *uint32) *Packet {
	payload := map[int]interface{}{0: uint64(motor)}
	if pwmPeriod != nil {
		payload[1] = uint64(*pwmPeriod)
	}
	if kp != nil {
		payload[2] = *kp
	}
	if ki != nil {
		payload[3] = *ki
	}
	if kd != nil {
		payload[4] = *kd
	}
	if maxRPM != nil {
		payload[5] = int64(*maxRPM)
	}
	if minRPM != nil {
		payload[6] = int64(*minRPM)
	}
	if minPWM != nil {
		payload[7] = uint64(*minPWM)
	}
	return NewPacketWithPayload(address, MsgMotorConfig, payload)
}

// NewPumpConfig creates a PUMP_CONFIG packet (0x11).
// CBOR keys: 0=pump, 1=pulse-ms (opt), 2=recovery-ms (opt)
func NewPumpConfig(address uint64, pump uint8, pulseMs, recoveryMs *uint32) *Packet {
	payload := map[int]interface{}{0: uint64(pump)}
	if pulseMs != nil {
		payload[1] = uint64(*pulseMs)
	}
	if recoveryMs != nil {
		payload[2] = uint64(*recoveryMs)
	}
	return NewPacketWithPayload(address, MsgPumpConfig, payload)
}

// NewTempConfig creates a TEMP_CONFIG packet (0x12).
// CBOR keys: 0=thermometer, 1-3=PID kp/ki/kd (opt)
func NewTempConfig(address uint64, thermometer uint8, kp, ki, kd *float64) *Packet {
	payload := map[int]interface{}{0: uint64(thermometer)}
	if kp != nil {
		payload[1] = *kp
	}
	if ki != nil {
		payload[2] = *ki
	}
	if kd != nil {
		payload[3] = *kd
	}
	return NewPacketWithPayload(address, MsgTempConfig, payload)
}

// NewGlowConfig creates a GLOW_CONFIG packet (0x13).
// CBOR keys: 0=glow, 1=max-duration-ms (opt)
func NewGlowConfig(address uint64, glow uint8, maxDurationMs *uint32) *Packet {
	payload := map[int]interface{}{0: uint64(glow)}
	if maxDurationMs != nil {
		payload[1] = uint64(*maxDurationMs)
	}
	return NewPacketWithPayload(address, MsgGlowConfig, payload)
}

// NewDataSubscription creates a DATA_SUBSCRIPTION packet (0x14), sent to a
// router with the stateless address to subscribe to a downstream appliance's
// telemetry stream.
// CBOR keys: 0=appliance-address
func NewDataSubscription(applianceAddress uint64) *Packet {
	payload := map[int]interface{}{0: applianceAddress}
	return NewPacketWithPayload(AddressStateless, MsgDataSubscription, payload)
}

// NewDataUnsubscribe creates a DATA_UNSUBSCRIBE packet (0x15).
// CBOR keys: 0=appliance-address
func NewDataUnsubscribe(applianceAddress uint64) *Packet {
	payload := map[int]interface{}{0: applianceAddress}
	return NewPacketWithPayload(AddressStateless, MsgDataUnsubscribe, payload)
}

// NewTelemetryConfig creates a TELEMETRY_CONFIG packet (0x16).
// When enabled is true and intervalMs > 0, the appliance sends periodic telemetry.
// When intervalMs is 0, polling mode is used (use SEND_TELEMETRY to request data).
func NewTelemetryConfig(address uint64, enabled bool, intervalMs uint32) *Packet {
	payload := map[int]interface{}{
		0: enabled,
		1: uint64(intervalMs),
	}
	return NewPacketWithPayload(address, MsgTelemetryConfig, payload)
}

// NewTimeoutConfig creates a TIMEOUT_CONFIG packet (0x17).
// CBOR keys: 0=enabled, 1=timeout-ms
func NewTimeoutConfig(address uint64, enabled bool, timeoutMs uint32) *Packet {
	payload := map[int]interface{}{
		0: enabled,
		1: uint64(timeoutMs),
	}
	return NewPacketWithPayload(address, MsgTimeoutConfig, payload)
}

// NewDiscoveryRequest creates a DISCOVERY_REQUEST packet (0x1F).
// Use AddressBroadcast to discover directly-connected appliances, or
// AddressStateless to ask a router for its known devices.
func NewDiscoveryRequest(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgDiscoveryRequest, nil)
}

// --- Control commands (0x20-0x25, 0x2F) ---

// NewStateCommand creates a STATE_COMMAND packet (0x20).
// Mode values: ModeIdle (0), ModeFan (1), ModeHeat (2), ModeEmergency (255).
// The argument is optional and mode-specific:
//   - FAN mode: target RPM
//   - HEAT mode: pump rate in milliseconds
//   - IDLE/EMERGENCY: ignored (pass nil)
func NewStateCommand(address uint64, mode uint8, argument *int64) *Packet {
	payload := map[int]interface{}{
		0: uint64(mode),
	}
	if argument != nil {
		payload[1] = *argument
	}
	return NewPacketWithPayload(address, MsgStateCommand, payload)
}

// NewMotorCommand creates a MOTOR_COMMAND packet (0x21).
// Sets the target RPM for the specified motor.
// Use rpm=0 to stop the motor.
func NewMotorCommand(address uint64, motor uint8, rpm int32) *Packet {
	payload := map[int]interface{}{
		0: int64(motor),
		1: int64(rpm),
	}
	return NewPacketWithPayload(address, MsgMotorCommand, payload)
}

// NewPumpCommand creates a PUMP_COMMAND packet (0x22).
// Sets the pulse interval for the specified fuel pump.
// Use rateMs=0 to stop the pump.
func NewPumpCommand(address uint64, pump uint8, rateMs int32) *Packet {
	payload := map[int]interface{}{
		0: int64(pump),
		1: int64(rateMs),
	}
	return NewPacketWithPayload(address, MsgPumpCommand, payload)
}

// NewGlowCommand creates a GLOW_COMMAND packet (0x23).
// Controls the glow plug for ignition.
// Use durationMs=0 to extinguish the glow plug.
func NewGlowCommand(address uint64, glow uint8, durationMs int32) *Packet {
	payload := map[int]interface{}{
		0: int64(glow),
		1: int64(durationMs),
	}
	return NewPacketWithPayload(address, MsgGlowCommand, payload)
}

// NewTempCommand creates a TEMP_COMMAND packet (0x24).
// cmdType selects the operation (TempCmdWatchMotor, TempCmdSetTargetTemp, ...);
// motorIndex and targetTemp are only meaningful for some cmdType values and may
// be left nil otherwise.
// CBOR keys: 0=thermometer, 1=type, 2=motor-index (opt), 3=target-temp (opt)
func NewTempCommand(address uint64, thermometer uint8, cmdType TempCmdType, motorIndex *int64, targetTemp *float64) *Packet {
	payload := map[int]interface{}{
		0: uint64(thermometer),
		1: uint64(cmdType),
	}
	if motorIndex != nil {
		payload[2] = *motorIndex
	}
	if targetTemp != nil {
		payload[3] = *targetTemp
	}
	return NewPacketWithPayload(address, MsgTempCommand, payload)
}

// NewSendTelemetry creates a SEND_TELEMETRY packet (0x25), used to pull one
// telemetry reading in polling mode. Pass index=nil (or IndexAll) to request
// every device of telType.
// CBOR keys: 0=telemetry-type, 1=index (opt)
func NewSendTelemetry(address uint64, telType TelemetryType, index *uint32) *Packet {
	payload := map[int]interface{}{0: uint64(telType)}
	if index != nil {
		payload[1] = uint64(*index)
	}
	return NewPacketWithPayload(address, MsgSendTelemetry, payload)
}

// NewPingRequest creates a PING_REQUEST packet (0x2F).
// Appliances respond with PING_RESPONSE containing uptime.
func NewPingRequest(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgPingRequest, nil)
}

// --- Telemetry data (0x30-0x36, 0x3F) ---

// NewStateData creates a STATE_DATA packet (0x30).
// CBOR keys: 0=error(bool), 1=code, 2=state, 3=timestamp-ms
func NewStateData(address uint64, hasError bool, code ErrorCode, state SysState, timestampMs uint64) *Packet {
	payload := map[int]interface{}{
		0: hasError,
		1: int64(code),
		2: uint64(state),
		3: timestampMs,
	}
	return NewPacketWithPayload(address, MsgStateData, payload)
}

// NewMotorData creates a MOTOR_DATA packet (0x31). Range and PWM fields are
// optional and only reported by appliances that track them.
// CBOR keys: 0=motor, 1=timestamp-ms, 2=rpm, 3=target,
// 4=max-rpm (opt), 5=min-rpm (opt), 6=pwm (opt), 7=pwm-max (opt)
func NewMotorData(address uint64, motor uint8, timestampMs uint64, rpm, target int32, maxRPM, minRPM *int32, pwm, pwmMax *uint32) *Packet {
	payload := map[int]interface{}{
		0: uint64(motor),
		1: timestampMs,
		2: int64(rpm),
		3: int64(target),
	}
	if maxRPM != nil {
		payload[4] = int64(*maxRPM)
	}
	if minRPM != nil {
		payload[5] = int64(*minRPM)
	}
	if pwm != nil {
		payload[6] = uint64(*pwm)
	}
	if pwmMax != nil {
		payload[7] = uint64(*pwmMax)
	}
	return NewPacketWithPayload(address, MsgMotorData, payload)
}

// NewPumpData creates a PUMP_DATA packet (0x32).
// CBOR keys: 0=pump, 1=timestamp-ms, 2=event, 3=rate-ms (opt)
func NewPumpData(address uint64, pump uint8, timestampMs uint64, event PumpEvent, rateMs *int32) *Packet {
	payload := map[int]interface{}{
		0: uint64(pump),
		1: timestampMs,
		2: uint64(event),
	}
	if rateMs != nil {
		payload[3] = int64(*rateMs)
	}
	return NewPacketWithPayload(address, MsgPumpData, payload)
}

// NewGlowData creates a GLOW_DATA packet (0x33).
// CBOR keys: 0=glow, 1=timestamp-ms, 2=lit(bool)
func NewGlowData(address uint64, glow uint8, timestampMs uint64, lit bool) *Packet {
	payload := map[int]interface{}{
		0: uint64(glow),
		1: timestampMs,
		2: lit,
	}
	return NewPacketWithPayload(address, MsgGlowData, payload)
}

// NewTempData creates a TEMP_DATA packet (0x34). RPM-control state, watched
// motor, and target temperature are only reported when the thermometer is
// driving a motor's RPM.
// CBOR keys: 0=thermometer, 1=timestamp-ms, 2=reading,
// 3=rpm-control (opt, bool), 4=watched-motor (opt), 5=target-temperature (opt)
func NewTempData(address uint64, thermometer uint8, timestampMs uint64, reading float64, rpmControl *bool, watchedMotor *int64, targetTemp *float64) *Packet {
	payload := map[int]interface{}{
		0: uint64(thermometer),
		1: timestampMs,
		2: reading,
	}
	if rpmControl != nil {
		payload[3] = *rpmControl
	}
	if watchedMotor != nil {
		payload[4] = *watchedMotor
	}
	if targetTemp != nil {
		payload[5] = *targetTemp
	}
	return NewPacketWithPayload(address, MsgTempData, payload)
}

// NewDeviceAnnounce creates a DEVICE_ANNOUNCE packet (0x35), sent in response
// to DISCOVERY_REQUEST. An announce with every count at zero is the
// end-of-discovery marker a router sends after listing its known devices.
// CBOR keys: 0=motor-count, 1=thermometer-count, 2=pump-count, 3=glow-count
func NewDeviceAnnounce(address uint64, motorCount, thermometerCount, pumpCount, glowCount uint8) *Packet {
	payload := map[int]interface{}{
		0: uint64(motorCount),
		1: uint64(thermometerCount),
		2: uint64(pumpCount),
		3: uint64(glowCount),
	}
	return NewPacketWithPayload(address, MsgDeviceAnnounce, payload)
}

// NewPingResponse creates a PING_RESPONSE packet (0x3F).
// CBOR keys: 0=uptime-ms
func NewPingResponse(address uint64, uptimeMs uint64) *Packet {
	payload := map[int]interface{}{0: uptimeMs}
	return NewPacketWithPayload(address, MsgPingResponse, payload)
}

// --- Errors (0xE0-0xE3) ---

// NewErrorInvalidMsg creates an ERROR_INVALID_MSG packet (0xE0), sent when a
// received frame fails to decode as a well-formed message.
func NewErrorInvalidMsg(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgErrorInvalidMsg, nil)
}

// NewErrorCrcFail creates an ERROR_CRC_FAIL packet (0xE1). In practice a peer
// that fails CRC validation silently drops the frame rather than replying, but
// the message type exists for links that choose to report it.
func NewErrorCrcFail(address uint64) *Packet {
	return NewPacketWithPayload(address, MsgErrorCrcFail, nil)
}

// NewErrorInvalidCmd creates an ERROR_INVALID_CMD packet (0xE2).
// CBOR keys: 0=error-code (1=invalid parameter value, 2=invalid device index)
func NewErrorInvalidCmd(address uint64, errorCode int) *Packet {
	payload := map[int]interface{}{0: int64(errorCode)}
	return NewPacketWithPayload(address, MsgErrorInvalidCmd, payload)
}

// NewErrorStateReject creates an ERROR_STATE_REJECT packet (0xE3), sent when
// a command is rejected because the appliance is in an incompatible SysState.
// CBOR keys: 0=state (the rejecting state)
func NewErrorStateReject(address uint64, state SysState) *Packet {
	payload := map[int]interface{}{0: uint64(state)}
	return NewPacketWithPayload(address, MsgErrorStateReject, payload)
}
