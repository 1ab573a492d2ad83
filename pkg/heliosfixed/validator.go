// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

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
	errors := []ValidationError{}

	switch p.Type() {
	case MsgStateData:
		errors = append(errors, validateStateData(p.Payload())...)
	case MsgMotorData:
		errors = append(errors, validateMotorData(p.Payload())...)
	case MsgTempData:
		errors = append(errors, validateTempData(p.Payload())...)
	case MsgGlowCommand:
		errors = append(errors, validateGlowCommand(p.Payload())...)
	case MsgDeviceAnnounce:
		errors = append(errors, validateDeviceAnnounce(p.Payload(), p.IsStateless())...)
	case MsgTelemetryBundle:
		errors = append(errors, validateTelemetryBundle(p.Payload())...)
	}

	return errors
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
	if p.State > SysStateEstop {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid state value=%d (max %d)", p.State, SysStateEstop),
			Details: map[string]interface{}{"state": p.State, "max": SysStateEstop},
		})
	}
	if p.Error > ErrorTimeout {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid error code=%d (valid 0-%d)", p.Error, ErrorTimeout),
			Details: map[string]interface{}{"code": p.Error, "max": ErrorTimeout},
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
	if p.PWMPeriod > 0 && p.PWMDuty > p.PWMPeriod {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidPWM,
			Message: fmt.Sprintf("PWM duty > period (%d > %d)", p.PWMDuty, p.PWMPeriod),
			Details: map[string]interface{}{"pwm_duty": p.PWMDuty, "pwm_period": p.PWMPeriod},
		})
	}
	return errs
}

func validateTempData(data []byte) []ValidationError {
	p, err := DecodeTempData(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("TEMP_DATA decode error: %v", err),
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
	if p.PIDEnabled && (p.PIDSetpoint < -50.0 || p.PIDSetpoint > 1000.0) {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidTemp,
			Message: fmt.Sprintf("PID setpoint out of range (%.1f°C, valid: -50 to 1000°C)", p.PIDSetpoint),
			Details: map[string]interface{}{"value": p.PIDSetpoint, "min": -50.0, "max": 1000.0},
		})
	}
	return errs
}

func validateGlowCommand(data []byte) []ValidationError {
	p, err := DecodeGlowCommand(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("GLOW_COMMAND decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if p.Duration < 0 || p.Duration > 300000 {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid glow duration (%d ms, valid: 0-300000)", p.Duration),
			Details: map[string]interface{}{"duration": p.Duration, "min": 0, "max": 300000},
		})
	}
	return errs
}

func validateDeviceAnnounce(data []byte, isStateless bool) []ValidationError {
	// End-of-discovery marker uses stateless address with an empty payload
	if isStateless {
		return []ValidationError{}
	}

	p, err := DecodeDeviceAnnounce(data)
	if err != nil {
		return []ValidationError{{
			Type:    AnomalyDecodeError,
			Message: fmt.Sprintf("DEVICE_ANNOUNCE decode error: %v", err),
			Details: map[string]interface{}{"error": err.Error()},
		}}
	}

	errs := []ValidationError{}
	if p.DeviceType > 0xFF {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidCount,
			Message: fmt.Sprintf("Suspicious device_type=%d", p.DeviceType),
			Details: map[string]interface{}{"device_type": p.DeviceType},
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
	if len(p.Motors) > MaxMotors {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidCount,
			Message: fmt.Sprintf("Invalid motor count=%d (max %d)", len(p.Motors), MaxMotors),
			Details: map[string]interface{}{"motor_count": len(p.Motors), "max": MaxMotors},
		})
	}
	if len(p.Temps) > MaxTemperatures {
		errs = append(errs, ValidationError{
			Type:    AnomalyInvalidCount,
			Message: fmt.Sprintf("Invalid temperature count=%d (max %d)", len(p.Temps), MaxTemperatures),
			Details: map[string]interface{}{"temp_count": len(p.Temps), "max": MaxTemperatures},
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
