// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// TelemetryMotor is one motor record within a TELEMETRY_BUNDLE payload. It
// omits the pwm_period field carried by pkg/heliosfixed's equivalent record.
type TelemetryMotor struct {
	RPM       int32
	TargetRPM int32
	PWMDuty   int32
}

// TelemetryTemperature is one temperature record within a TELEMETRY_BUNDLE
// payload.
type TelemetryTemperature struct {
	Temperature float64
}

// TelemetryBundlePayload is the payload for MSG_TELEMETRY_BUNDLE: a fixed
// header followed by a variable number of motor and temperature records.
type TelemetryBundlePayload struct {
	State uint32
	Error uint8
	Motors []TelemetryMotor
	Temps  []TelemetryTemperature
}

func (p TelemetryBundlePayload) Encode() ([]byte, error) {
	if len(p.Motors) == 0 || len(p.Motors) > MAX_MOTORS {
		return nil, fmt.Errorf("%w: motor count %d out of range (1-%d)", ErrInvalidArgument, len(p.Motors), MAX_MOTORS)
	}
	if len(p.Temps) == 0 || len(p.Temps) > MAX_TEMPERATURES {
		return nil, fmt.Errorf("%w: temperature count %d out of range (1-%d)", ErrInvalidArgument, len(p.Temps), MAX_TEMPERATURES)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.State)
	buf.WriteByte(p.Error)
	buf.WriteByte(uint8(len(p.Motors)))
	buf.WriteByte(uint8(len(p.Temps)))

	for _, m := range p.Motors {
		binary.Write(buf, binary.LittleEndian, m.RPM)
		binary.Write(buf, binary.LittleEndian, m.TargetRPM)
		binary.Write(buf, binary.LittleEndian, m.PWMDuty)
	}
	for _, t := range p.Temps {
		putFloat64(buf, t.Temperature)
	}

	if buf.Len() > MAX_PAYLOAD_SIZE {
		return nil, fmt.Errorf("%w: telemetry bundle %d bytes exceeds max payload %d", ErrInvalidArgument, buf.Len(), MAX_PAYLOAD_SIZE)
	}

	return buf.Bytes(), nil
}

func DecodeTelemetryBundle(data []byte) (TelemetryBundlePayload, error) {
	if len(data) < 7 {
		return TelemetryBundlePayload{}, fmt.Errorf("%w: telemetry bundle too short: %d bytes", ErrInvalidLength, len(data))
	}

	r := bytes.NewReader(data)
	var p TelemetryBundlePayload
	binary.Read(r, binary.LittleEndian, &p.State)

	errByte, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.Error = errByte

	motorCount, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	tempCount, err := r.ReadByte()
	if err != nil {
		return p, err
	}

	if motorCount == 0 || motorCount > MAX_MOTORS {
		return p, fmt.Errorf("%w: motor count %d out of range (1-%d)", ErrInvalidMessage, motorCount, MAX_MOTORS)
	}
	if tempCount == 0 || tempCount > MAX_TEMPERATURES {
		return p, fmt.Errorf("%w: temperature count %d out of range (1-%d)", ErrInvalidMessage, tempCount, MAX_TEMPERATURES)
	}

	expectedLen := 7 + int(motorCount)*12 + int(tempCount)*8
	if len(data) != expectedLen {
		return p, fmt.Errorf("%w: telemetry bundle expects %d bytes for %d motors/%d temps, got %d", ErrInvalidLength, expectedLen, motorCount, tempCount, len(data))
	}

	p.Motors = make([]TelemetryMotor, motorCount)
	for i := range p.Motors {
		binary.Read(r, binary.LittleEndian, &p.Motors[i].RPM)
		binary.Read(r, binary.LittleEndian, &p.Motors[i].TargetRPM)
		binary.Read(r, binary.LittleEndian, &p.Motors[i].PWMDuty)
	}

	p.Temps = make([]TelemetryTemperature, tempCount)
	for i := range p.Temps {
		temp, err := getFloat64(r)
		if err != nil {
			return p, err
		}
		p.Temps[i].Temperature = temp
	}

	return p, nil
}
