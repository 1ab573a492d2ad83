// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import "fmt"

// FormatPacket formats a packet into a human-readable string
func FormatPacket(p *Packet) string {
	timestamp := p.timestamp.Format("15:04:05.000")
	msgType := FormatMessageType(p.Type())

	result := fmt.Sprintf("[%s] %s (0x%02X) addr=%016X len=%d\n", timestamp, msgType, p.Type(), p.address, p.length)
	result += FormatPayload(p.Type(), p.Payload())
	return result
}

// FormatMessageType returns the human-readable name for a message type
func FormatMessageType(msgType uint8) string {
	switch msgType {
	case MsgMotorConfig:
		return "MOTOR_CONFIG"
	case MsgPumpConfig:
		return "PUMP_CONFIG"
	case MsgTempConfig:
		return "TEMP_CONFIG"
	case MsgGlowConfig:
		return "GLOW_CONFIG"
	case MsgStateCommand:
		return "STATE_COMMAND"
	case MsgGlowCommand:
		return "GLOW_COMMAND"
	case MsgTelemetryConfig:
		return "TELEMETRY_CONFIG"
	case MsgPingRequest:
		return "PING_REQUEST"
	case MsgStateData:
		return "STATE_DATA"
	case MsgMotorData:
		return "MOTOR_DATA"
	case MsgTempData:
		return "TEMP_DATA"
	case MsgPumpData:
		return "PUMP_DATA"
	case MsgGlowData:
		return "GLOW_DATA"
	case MsgTelemetryBundle:
		return "TELEMETRY_BUNDLE"
	case MsgDeviceAnnounce:
		return "DEVICE_ANNOUNCE"
	case MsgPingResponse:
		return "PING_RESPONSE"
	case MsgErrorInvalidMsg:
		return "ERROR_INVALID_MSG"
	case MsgErrorCrcFail:
		return "ERROR_CRC_FAIL"
	case MsgErrorInvalidCmd:
		return "ERROR_INVALID_CMD"
	case MsgErrorInvalidLength:
		return "ERROR_INVALID_LENGTH"
	default:
		return "UNKNOWN"
	}
}

// FormatPayload decodes and formats a raw payload based on message type.
func FormatPayload(msgType uint8, data []byte) string {
	switch msgType {
	case MsgPingRequest:
		return "  (no payload)\n"

	case MsgStateCommand:
		p, err := DecodeStateCommand(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Mode: %s (%d), Parameter: %d\n", formatMode(p.Mode), p.Mode, p.Parameter)

	case MsgGlowCommand:
		p, err := DecodeGlowCommand(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Glow: %d, Duration: %d ms\n", p.Glow, p.Duration)

	case MsgTelemetryConfig:
		p, err := DecodeTelemetryConfig(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		enabledStr := "Disabled"
		if p.Enabled {
			enabledStr = "Enabled"
		}
		return fmt.Sprintf("  Telemetry: %s, Interval: %d ms, Mode: %d\n", enabledStr, p.IntervalMs, p.Mode)

	case MsgStateData:
		p, err := DecodeStateData(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  State: %s (%d), Error: %s (%d)\n",
			formatState(p.State), p.State, formatErrorCode(p.Error), p.Error)

	case MsgMotorData:
		p, err := DecodeMotorData(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  RPM=%d (target=%d), PWM=%d/%d, Range=[%d-%d]\n",
			p.RPM, p.TargetRPM, p.PWMDuty, p.PWMPeriod, p.MinRPM, p.MaxRPM)

	case MsgTempData:
		p, err := DecodeTempData(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Temperature=%.1f°C, PID=%t (setpoint=%.1f°C, output=%d RPM)\n",
			p.Temperature, p.PIDEnabled, p.PIDSetpoint, p.PIDOutputRPM)

	case MsgPumpData:
		p, err := DecodePumpData(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Enabled=%t, Rate=%d ms, Pulses=%d\n", p.Enabled, p.RateMs, p.PulseCount)

	case MsgGlowData:
		p, err := DecodeGlowData(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		litStr := "Off"
		if p.Lit {
			litStr = "On"
		}
		return fmt.Sprintf("  Status=%s, LitAt=%d, TotalBurn=%d ms\n", litStr, p.LitTimestamp, p.TotalBurnTime)

	case MsgTelemetryBundle:
		p, err := DecodeTelemetryBundle(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		result := fmt.Sprintf("  State: %s (%d), Error: %s (%d), Motors=%d, Temps=%d\n",
			formatState(p.State), p.State, formatErrorCode(p.Error), p.Error, len(p.Motors), len(p.Temps))
		for i, m := range p.Motors {
			result += fmt.Sprintf("    Motor %d: RPM=%d (target=%d), PWM=%d/%d\n", i, m.RPM, m.TargetRPM, m.PWMDuty, m.PWMPeriod)
		}
		for i, t := range p.Temps {
			result += fmt.Sprintf("    Thermometer %d: %.1f°C\n", i, t.Temperature)
		}
		return result

	case MsgDeviceAnnounce:
		p, err := DecodeDeviceAnnounce(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  DeviceType=%d, Capabilities=0x%08X\n", p.DeviceType, p.Capabilities)

	case MsgPingResponse:
		p, err := DecodePingResponse(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Uptime: %d ms\n", p.UptimeMs)

	case MsgErrorCrcFail:
		p, err := DecodeErrorCrcFail(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Received CRC: 0x%04X, Calculated CRC: 0x%04X\n", p.ReceivedCRC, p.CalculatedCRC)

	case MsgErrorInvalidCmd:
		p, err := DecodeErrorInvalidCmd(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Invalid Command: 0x%02X\n", p.InvalidCommand)

	case MsgErrorInvalidLength:
		p, err := DecodeErrorInvalidLength(data)
		if err != nil {
			return fmt.Sprintf("  (decode error: %v)\n", err)
		}
		return fmt.Sprintf("  Received Length: %d, Expected Length: %d\n", p.ReceivedLength, p.ExpectedLength)

	case MsgErrorInvalidMsg:
		return "  (no detail)\n"
	}

	if len(data) == 0 {
		return "  (no payload)\n"
	}
	return fmt.Sprintf("  Payload: % X\n", data)
}

func formatMode(mode Mode) string {
	switch mode {
	case ModeIdle:
		return "IDLE"
	case ModeFan:
		return "FAN"
	case ModeHeat:
		return "HEAT"
	case ModeEmergency:
		return "EMERGENCY"
	default:
		return "UNKNOWN"
	}
}

func formatState(state SysState) string {
	names := []string{"INITIALIZING", "IDLE", "BLOWING", "PREHEAT", "PREHEAT_STAGE_2", "HEATING", "COOLING", "ERROR", "E_STOP"}
	if int(state) < len(names) {
		return names[state]
	}
	return "UNKNOWN"
}

func formatErrorCode(code ErrorCode) string {
	names := []string{"NONE", "PREHEAT_FAILED", "FLAME_OUT", "OVERHEAT", "PUMP_FAULT", "TIMEOUT"}
	if int(code) < len(names) {
		return names[code]
	}
	return "UNKNOWN"
}
