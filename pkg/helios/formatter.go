// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import (
	"fmt"
	"strings"
)

// FormatPacket formats a packet into a human-readable string
func FormatPacket(p *Packet) string {
	timestamp := p.timestamp.Format("15:04:05.000")
	msgType := FormatMessageType(p.msgType)

	result := fmt.Sprintf("[%s] %s (0x%02X) len=%d\n", timestamp, msgType, p.msgType, p.length)

	if len(p.payload) > 0 {
		result += FormatPayload(p.msgType, p.payload)
	}

	return result
}

// FormatMessageType returns the human-readable name for a message type
func FormatMessageType(msgType uint8) string {
	switch msgType {
	// Commands
	case MSG_SET_MODE:
		return "SET_MODE"
	case MSG_SET_PUMP_RATE:
		return "SET_PUMP_RATE"
	case MSG_SET_TARGET_RPM:
		return "SET_TARGET_RPM"
	case MSG_PING_REQUEST:
		return "PING_REQUEST"
	case MSG_SET_TIMEOUT_CONFIG:
		return "SET_TIMEOUT_CONFIG"
	case MSG_EMERGENCY_STOP:
		return "EMERGENCY_STOP"

	// Data
	case MSG_STATE_DATA:
		return "STATE_DATA"
	case MSG_MOTOR_DATA:
		return "MOTOR_DATA"
	case MSG_TEMPERATURE_DATA:
		return "TEMPERATURE_DATA"
	case MSG_PUMP_DATA:
		return "PUMP_DATA"
	case MSG_GLOW_DATA:
		return "GLOW_DATA"
	case MSG_TELEMETRY_BUNDLE:
		return "TELEMETRY_BUNDLE"
	case MSG_PING_RESPONSE:
		return "PING_RESPONSE"

	// Errors
	case MSG_ERROR_INVALID_COMMAND:
		return "ERROR_INVALID_COMMAND"
	case MSG_ERROR_INVALID_CRC:
		return "ERROR_INVALID_CRC"
	case MSG_ERROR_INVALID_LENGTH:
		return "ERROR_INVALID_LENGTH"
	case MSG_ERROR_TIMEOUT:
		return "ERROR_TIMEOUT"

	default:
		return "UNKNOWN"
	}
}

var stateNames = []string{"INITIALIZING", "IDLE", "BLOWING", "PREHEAT", "PREHEAT_STAGE_2", "HEATING", "COOLING", "ERROR", "E_STOP"}

var errorNames = []string{"NONE", "PREHEAT_FAILED", "FLAME_OUT", "OVERHEAT", "PUMP_FAULT", "TIMEOUT"}

func formatState(state uint32) string {
	if int(state) < len(stateNames) {
		return stateNames[state]
	}
	return "UNKNOWN"
}

func formatErrorCode(code uint8) string {
	if int(code) < len(errorNames) {
		return errorNames[code]
	}
	return "UNKNOWN"
}

func formatMode(mode uint8) string {
	switch mode {
	case MODE_IDLE:
		return "IDLE"
	case MODE_FAN:
		return "FAN"
	case MODE_HEAT:
		return "HEAT"
	case MODE_EMERGENCY:
		return "EMERGENCY"
	default:
		return "UNKNOWN"
	}
}

// FormatPayload formats the payload based on message type
func FormatPayload(msgType uint8, payload []byte) string {
	switch msgType {
	case MSG_PING_REQUEST, MSG_EMERGENCY_STOP, MSG_ERROR_TIMEOUT:
		return "  (no payload)\n"

	case MSG_PING_RESPONSE:
		if p, err := DecodePingResponse(payload); err == nil {
			return fmt.Sprintf("  Uptime: %s\n", formatDuration(p.UptimeMs))
		}

	case MSG_SET_MODE:
		if p, err := DecodeSetMode(payload); err == nil {
			return fmt.Sprintf("  Mode: %s (0x%02X), Parameter: %d\n", formatMode(p.Mode), p.Mode, p.Parameter)
		}

	case MSG_SET_PUMP_RATE:
		if p, err := DecodeSetPumpRate(payload); err == nil {
			return fmt.Sprintf("  Rate: %d ms\n", p.RateMs)
		}

	case MSG_SET_TARGET_RPM:
		if p, err := DecodeSetTargetRPM(payload); err == nil {
			return fmt.Sprintf("  Target RPM: %d\n", p.TargetRPM)
		}

	case MSG_SET_TIMEOUT_CONFIG:
		if p, err := DecodeSetTimeoutConfig(payload); err == nil {
			enabledStr := "Disabled"
			if p.TimeoutEnabled != 0 {
				enabledStr = "Enabled"
			}
			return fmt.Sprintf("  Timeout: %s, Interval: %d ms\n", enabledStr, p.TimeoutMs)
		}

	case MSG_STATE_DATA:
		if p, err := DecodeStateData(payload); err == nil {
			return fmt.Sprintf("  State: %s (%d), Error: %s (%d)\n", formatState(p.State), p.State, formatErrorCode(p.Error), p.Error)
		}

	case MSG_MOTOR_DATA:
		if p, err := DecodeMotorData(payload); err == nil {
			return fmt.Sprintf("  RPM=%d (target=%d), Range=[%d-%d], PWM Duty=%d\n",
				p.RPM, p.TargetRPM, p.MinRPM, p.MaxRPM, p.PWMDuty)
		}

	case MSG_TEMPERATURE_DATA:
		if p, err := DecodeTemperatureData(payload); err == nil {
			pidStr := "Off"
			if p.PIDEnabled != 0 {
				pidStr = "On"
			}
			return fmt.Sprintf("  %.1f°C (setpoint=%.1f°C), PID=%s, PID_RPM=%d\n",
				p.Temperature, p.PIDSetpoint, pidStr, p.PIDOutputRPM)
		}

	case MSG_PUMP_DATA:
		if p, err := DecodePumpData(payload); err == nil {
			enabledStr := "Disabled"
			if p.Enabled != 0 {
				enabledStr = "Enabled"
			}
			return fmt.Sprintf("  Pump: %s, Rate: %d ms, Pulses: %d\n", enabledStr, p.RateMs, p.PulseCount)
		}

	case MSG_GLOW_DATA:
		if p, err := DecodeGlowData(payload); err == nil {
			litStr := "Off"
			if p.Lit != 0 {
				litStr = "Lit"
			}
			return fmt.Sprintf("  Glow: %s, Lit at %d, Total burn %s\n", litStr, p.LitTimestamp, formatDuration(p.TotalBurnTime))
		}

	case MSG_TELEMETRY_BUNDLE:
		if p, err := DecodeTelemetryBundle(payload); err == nil {
			result := fmt.Sprintf("  State: %s (%d), Error: %s (%d), Motors: %d, Temps: %d\n",
				formatState(p.State), p.State, formatErrorCode(p.Error), p.Error, len(p.Motors), len(p.Temps))
			for i, m := range p.Motors {
				result += fmt.Sprintf("    Motor %d: RPM=%d (target=%d), PWM Duty=%d\n", i, m.RPM, m.TargetRPM, m.PWMDuty)
			}
			for i, t := range p.Temps {
				result += fmt.Sprintf("    Temp %d: %.1f°C\n", i, t.Temperature)
			}
			return result
		}

	case MSG_ERROR_INVALID_CRC:
		if p, err := DecodeErrorInvalidCrc(payload); err == nil {
			return fmt.Sprintf("  Received CRC: 0x%04X, Calculated CRC: 0x%04X\n", p.ReceivedCRC, p.CalculatedCRC)
		}

	case MSG_ERROR_INVALID_COMMAND:
		if p, err := DecodeErrorInvalidCommand(payload); err == nil {
			return fmt.Sprintf("  Invalid Command: 0x%02X\n", p.InvalidCommand)
		}

	case MSG_ERROR_INVALID_LENGTH:
		if p, err := DecodeErrorInvalidLength(payload); err == nil {
			return fmt.Sprintf("  Received Length: %d, Expected: %d\n", p.ReceivedLength, p.ExpectedLength)
		}
	}

	// Default: hex dump
	result := "  Payload: "
	for i, b := range payload {
		if i > 0 && i%16 == 0 {
			result += "\n           "
		}
		result += fmt.Sprintf("%02X ", b)
	}
	return result + "\n"
}

// formatDuration converts milliseconds to human-readable duration
func formatDuration(ms uint64) string {
	seconds := ms / 1000
	if seconds == 0 {
		return "0 seconds"
	}

	const (
		secondsPerMinute = 60
		secondsPerHour   = 60 * secondsPerMinute
		secondsPerDay    = 24 * secondsPerHour
		secondsPerYear   = 365 * secondsPerDay
	)

	years := seconds / secondsPerYear
	seconds %= secondsPerYear

	days := seconds / secondsPerDay
	seconds %= secondsPerDay

	hours := seconds / secondsPerHour
	seconds %= secondsPerHour

	minutes := seconds / secondsPerMinute
	seconds %= secondsPerMinute

	parts := []string{}

	if years > 0 {
		if years == 1 {
			parts = append(parts, "1 year")
		} else {
			parts = append(parts, fmt.Sprintf("%d years", years))
		}
	}

	if days > 0 {
		if days == 1 {
			parts = append(parts, "1 day")
		} else {
			parts = append(parts, fmt.Sprintf("%d days", days))
		}
	}

	if hours > 0 {
		if hours == 1 {
			parts = append(parts, "1 hour")
		} else {
			parts = append(parts, fmt.Sprintf("%d hours", hours))
		}
	}

	if minutes > 0 {
		if minutes == 1 {
			parts = append(parts, "1 minute")
		} else {
			parts = append(parts, fmt.Sprintf("%d minutes", minutes))
		}
	}

	if seconds > 0 {
		if seconds == 1 {
			parts = append(parts, "1 second")
		} else {
			parts = append(parts, fmt.Sprintf("%d seconds", seconds))
		}
	}

	if len(parts) == 0 {
		return "0 seconds"
	} else if len(parts) == 1 {
		return parts[0]
	} else if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	} else {
		last := parts[len(parts)-1]
		rest := parts[:len(parts)-1]
		return strings.Join(rest, ", ") + ", and " + last
	}
}
