// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import "fmt"

// AnomalyType represents different types of packet anomalies
type AnomalyType int

const (
	AnomalyInvalidCount AnomalyType = iota
	AnomalyLengthMismatch
	AnomalyHighRPM
	AnomalyInvalidTemp
	AnomalyInvalidPWM
	AnomalyInvalidValue
	AnomalyCRCError
	AnomalyDecodeError
)

// ValidationError represents a packet validation failure
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidatePacket validates packet structure and detects anomalies.
// Returns a slice of validation errors (empty if packet is valid).
func ValidatePacket(p *Packet) []ValidationError {
	errs := []ValidationError{}

	switch p.Type() {
	case MSG_STATE_DATA:
		errs = append(errs, validateStateData(p.Payload())...)
	case MSG_MOTOR_DATA:
		errs = append(errs, validateMotorData(p.Payload())...)
	case MSG_TEMPERATURE_DATA:
		errs = append(errs, validateTemperatureData(p.Payload())...)
	case MSG_TELEMETRY_BUNDLE:
		errs = append(errs, validateTelemetryBundle(p.Payload())...)
	}

	return errs
}

func validateStateData(data []byte) []ValidationError {
	p, err := DecodeStateData(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("STATE_DATA decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if p.State > 0x08 { // HELIOS_STATE_E_STOP is the highest defined state
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid state value=%d (max 8)", p.State),
			Details: map[string]interface{}{"state": p.State, "max": 8},
		})
	}
	if p.Error > 0x05 { // HELIOS_ERROR_TIMEOUT is the highest defined error
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid error code=%d (valid 0-5)", p.Error),
			Details: map[string]interface{}{"code": p.Error, "max": 5},
		})
	}
	return errs
}

func validateMotorData(data []byte) []ValidationError {
	p, err := DecodeMotorData(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("MOTOR_DATA decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if p.RPM > 6000 || p.TargetRPM > 6000 {
		errs = append(errs, ValidationError{
			Type:    AnomalyHighRPM,
			Message: fmt.Sprintf("High RPM (rpm=%d, target=%d, max 6000)", p.RPM, p.TargetRPM),
			Details: map[string]interface{}{"rpm": p.RPM, "target_rpm": p.TargetRPM, "max": 6000},
		})
	}
	if p.MinRPM > 0 && p.MaxRPM > 0 && p.MinRPM > p.MaxRPM {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("min_rpm > max_rpm (%d > %d)", p.MinRPM, p.MaxRPM),
			Details: map[string]interface{}{"min_rpm": p.MinRPM, "max_rpm": p.MaxRPM},
		})
	}
	return errs
}

func validateTemperatureData(data []byte) []ValidationError {
	p, err := DecodeTemperatureData(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("TEMPERATURE_DATA decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if p.Temperature < -50.0 || p.Temperature > 1000.0 {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidTemp,
			Message: fmt.Sprintf("Temperature out of range (%.1f°C, valid: -50 to 1000°C)", p.Temperature),
			Details: map[string]interface{}{"value": p.Temperature, "min": -50.0, "max": 1000.0},
		})
	}
	if p.PIDEnabled != 0 && (p.PIDSetpoint < -50.0 || p.PIDSetpoint > 1000.0) {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidTemp,
			Message: fmt.Sprintf("PID setpoint out of range (%.1f°C, valid: -50 to 1000°C)", p.PIDSetpoint),
			Details: map[string]interface{}{"value": p.PIDSetpoint, "min": -50.0, "max": 1000.0},
		})
	}
	return errs
}

func validateTelemetryBundle(data []byte) []ValidationError {
	p, err := DecodeTelemetryBundle(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("TELEMETRY_BUNDLE decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if len(p.Motors) > MAX_MOTORS {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidCount,
			Message: fmt.Sprintf("Invalid motor count=%d (max %d)", len(p.Motors), MAX_MOTORS),
			Details: map[string]interface{}{"motor_count": len(p.Motors), "max": MAX_MOTORS},
		})
	}
	if len(p.Temps) > MAX_TEMPERATURES {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidCount,
			Message: fmt.Sprintf("Invalid temperature count=%d (max %d)", len(p.Temps), MAX_TEMPERATURES),
			Details: map[string]interface{}{"temp_count": len(p.Temps), "max": MAX_TEMPERATURES},
		})
	}
	for _, m := range p.Motors {
		if m.RPM > 6000 || m.TargetRPM > 6000 {
			errs = append(errs, ValidationError{
				Type:    AnomalyHighRPM,
				Message: fmt.Sprintf("High RPM in bundle (rpm=%d, target=%d, max 6000)", m.RPM, m.TargetRPM),
				Details: map[string]interface{}{"rpm": m.RPM, "target_rpm": m.TargetRPM, "max": 6000},
			})
		}
	}
	for _, t := range p.Temps {
		if t.Temperature < -50.0 || t.Temperature > 1000.0 {
			errs = append(errs, ValidationError{
				Type:    AnomalyInvalidTemp,
				Message: fmt.Sprintf("Temperature out of range in bundle (%.1f°C, valid: -50 to 1000°C)", t.Temperature),
				Details: map[string]interface{}{"value": t.Temperature, "min": -50.0, "max": 1000.0},
			})
		}
	}
	return errs
}
