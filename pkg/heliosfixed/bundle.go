// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// TelemetryBundleMotor is one motor record within a TELEMETRY_BUNDLE.
type TelemetryBundleMotor struct {
	RPM       int32
	TargetRPM int32
	PWMDuty   int32
	PWMPeriod int32
}

// TelemetryBundleTemperature is one temperature record within a TELEMETRY_BUNDLE.
type TelemetryBundleTemperature struct {
	Temperature float64
}

// TelemetryBundlePayload is the variable-length TELEMETRY_BUNDLE payload:
// a fixed header followed by MotorCount motor records and TempCount
// temperature records. Bounded by MaxMotors and MaxTemperatures.
type TelemetryBundlePayload struct {
	State    SysState
	Error    ErrorCode
	Motors   []TelemetryBundleMotor
	Temps    []TelemetryBundleTemperature
}

// Encode serializes the bundle to its wire bytes.
func (p TelemetryBundlePayload) Encode() ([]byte, error) {
	if len(p.Motors) == 0 || len(p.Motors) > MaxMotors {
		return nil, fmt.Errorf("%w: motor count %d out of range (1-%d)", ErrInvalidArgument, len(p.Motors), MaxMotors)
	}
	if len(p.Temps) == 0 || len(p.Temps) > MaxTemperatures {
		return nil, fmt.Errorf("%w: temperature count %d out of range (1-%d)", ErrInvalidArgument, len(p.Temps), MaxTemperatures)
	}

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(p.State))
	buf.WriteByte(uint8(p.Error))
	buf.WriteByte(uint8(len(p.Motors)))
	buf.WriteByte(uint8(len(p.Temps)))

	for _, m := range p.Motors {
		binary.Write(buf, binary.LittleEndian, m.RPM)
		binary.Write(buf, binary.LittleEndian, m.TargetRPM)
		binary.Write(buf, binary.LittleEndian, m.PWMDuty)
		binary.Write(buf, binary.LittleEndian, m.PWMPeriod)
	}
	for _, t := range p.Temps {
		putFloat64(buf, t.Temperature)
	}

	if buf.Len() > MaxPayloadSize {
		return nil, fmt.Errorf("%w: telemetry bundle %d bytes exceeds max payload %d", ErrInvalidArgument, buf.Len(), MaxPayloadSize)
	}

	return buf.Bytes(), nil
}

// DecodeTelemetryBundle parses a TELEMETRY_BUNDLE payload.
func DecodeTelemetryBundle(data []byte) (TelemetryBundlePayload, error) {
	var p TelemetryBundlePayload
	if len(data) < 7 {
		return p, fmt.Errorf("%w: TELEMETRY_BUNDLE header too short", ErrInvalidLength)
	}

	p.State = SysState(binary.LittleEndian.Uint32(data[0:4]))
	p.Error = ErrorCode(data[4])
	motorCount := int(data[5])
	tempCount := int(data[6])

	if motorCount > MaxMotors {
		return p, fmt.Errorf("%w: motor_count=%d exceeds MaxMotors (%d)", ErrInvalidMessage, motorCount, MaxMotors)
	}
	if tempCount > MaxTemperatures {
		return p, fmt.Errorf("%w: temp_count=%d exceeds MaxTemperatures (%d)", ErrInvalidMessage, tempCount, MaxTemperatures)
	}

	want := 7 + motorCount*16 + tempCount*8
	if len(data) < want {
		return p, fmt.Errorf("%w: TELEMETRY_BUNDLE truncated (have %d, want %d)", ErrInvalidLength, len(data), want)
	}

	r := bytes.NewReader(data[7:])
	for i := 0; i < motorCount; i++ {
		var m TelemetryBundleMotor
		if err := binary.Read(r, binary.LittleEndian, &m.RPM); err != nil {
			return p, err
		}
		if err := binary.Read(r, binary.LittleEndian, &m.TargetRPM); err != nil {
			return p, err
		}
		if err := binary.Read(r, binary.LittleEndian, &m.PWMDuty); err != nil {
			return p, err
		}
		if err := binary.Read(r, binary.LittleEndian, &m.PWMPeriod); err != nil {
			return p, err
		}
		p.Motors = append(p.Motors, m)
	}
	for i := 0; i < tempCount; i++ {
		temp, err := getFloat64(r)
		if err != nil {
			return p, err
		}
		p.Temps = append(p.Temps, TelemetryBundleTemperature{Temperature: temp})
	}

	return p, nil
}
