// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

func putFloat64(buf *bytes.Buffer, f float64) {
	binary.Write(buf, binary.LittleEndian, math.Float64bits(f))
}

func getFloat64(r *bytes.Reader) (float64, error) {
	var bits uint64
	if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// SetModePayload is the payload for MSG_SET_MODE.
type SetModePayload struct {
	Mode      uint8
	Parameter uint32
}

func (p SetModePayload) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(p.Mode)
	binary.Write(buf, binary.LittleEndian, p.Parameter)
	return buf.Bytes()
}

func DecodeSetMode(data []byte) (SetModePayload, error) {
	if len(data) != 5 {
		return SetModePayload{}, fmt.Errorf("%w: SET_MODE expects 5 bytes, got %d", ErrInvalidLength, len(data))
	}
	return SetModePayload{
		Mode:      data[0],
		Parameter: binary.LittleEndian.Uint32(data[1:5]),
	}, nil
}

// SetPumpRatePayload is the payload for MSG_SET_PUMP_RATE.
type SetPumpRatePayload struct {
	RateMs uint32
}

func (p SetPumpRatePayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.RateMs)
	return buf.Bytes()
}

func DecodeSetPumpRate(data []byte) (SetPumpRatePayload, error) {
	if len(data) != 4 {
		return SetPumpRatePayload{}, fmt.Errorf("%w: SET_PUMP_RATE expects 4 bytes, got %d", ErrInvalidLength, len(data))
	}
	return SetPumpRatePayload{RateMs: binary.LittleEndian.Uint32(data)}, nil
}

// SetTargetRPMPayload is the payload for MSG_SET_TARGET_RPM.
type SetTargetRPMPayload struct {
	TargetRPM uint32
}

func (p SetTargetRPMPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.TargetRPM)
	return buf.Bytes()
}

func DecodeSetTargetRPM(data []byte) (SetTargetRPMPayload, error) {
	if len(data) != 4 {
		return SetTargetRPMPayload{}, fmt.Errorf("%w: SET_TARGET_RPM expects 4 bytes, got %d", ErrInvalidLength, len(data))
	}
	return SetTargetRPMPayload{TargetRPM: binary.LittleEndian.Uint32(data)}, nil
}

// SetTimeoutConfigPayload is the payload for MSG_SET_TIMEOUT_CONFIG.
type SetTimeoutConfigPayload struct {
	TimeoutEnabled uint8
	TimeoutMs      uint32
}

func (p SetTimeoutConfigPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(p.TimeoutEnabled)
	binary.Write(buf, binary.LittleEndian, p.TimeoutMs)
	return buf.Bytes()
}

func DecodeSetTimeoutConfig(data []byte) (SetTimeoutConfigPayload, error) {
	if len(data) != 5 {
		return SetTimeoutConfigPayload{}, fmt.Errorf("%w: SET_TIMEOUT_CONFIG expects 5 bytes, got %d", ErrInvalidLength, len(data))
	}
	return SetTimeoutConfigPayload{
		TimeoutEnabled: data[0],
		TimeoutMs:      binary.LittleEndian.Uint32(data[1:5]),
	}, nil
}

// StateDataPayload is the payload for MSG_STATE_DATA.
type StateDataPayload struct {
	State uint32
	Error uint8
}

func (p StateDataPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.State)
	buf.WriteByte(p.Error)
	return buf.Bytes()
}

func DecodeStateData(data []byte) (StateDataPayload, error) {
	if len(data) != 5 {
		return StateDataPayload{}, fmt.Errorf("%w: STATE_DATA expects 5 bytes, got %d", ErrInvalidLength, len(data))
	}
	return StateDataPayload{
		State: binary.LittleEndian.Uint32(data[0:4]),
		Error: data[4],
	}, nil
}

// MotorDataPayload is the payload for MSG_MOTOR_DATA. Unlike
// pkg/heliosfixed's equivalent, this record carries no pwm_period field.
type MotorDataPayload struct {
	RPM       int32
	TargetRPM int32
	PWMDuty   int32
	MinRPM    int32
	MaxRPM    int32
}

func (p MotorDataPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.RPM)
	binary.Write(buf, binary.LittleEndian, p.TargetRPM)
	binary.Write(buf, binary.LittleEndian, p.PWMDuty)
	binary.Write(buf, binary.LittleEndian, p.MinRPM)
	binary.Write(buf, binary.LittleEndian, p.MaxRPM)
	return buf.Bytes()
}

func DecodeMotorData(data []byte) (MotorDataPayload, error) {
	if len(data) != 20 {
		return MotorDataPayload{}, fmt.Errorf("%w: MOTOR_DATA expects 20 bytes, got %d", ErrInvalidLength, len(data))
	}
	r := bytes.NewReader(data)
	var p MotorDataPayload
	binary.Read(r, binary.LittleEndian, &p.RPM)
	binary.Read(r, binary.LittleEndian, &p.TargetRPM)
	binary.Read(r, binary.LittleEndian, &p.PWMDuty)
	binary.Read(r, binary.LittleEndian, &p.MinRPM)
	binary.Read(r, binary.LittleEndian, &p.MaxRPM)
	return p, nil
}

// TemperatureDataPayload is the payload for MSG_TEMPERATURE_DATA.
type TemperatureDataPayload struct {
	Temperature  float64
	PIDEnabled   uint8
	PIDSetpoint  float64
	PIDOutputRPM int32
}

func (p TemperatureDataPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	putFloat64(buf, p.Temperature)
	buf.WriteByte(p.PIDEnabled)
	putFloat64(buf, p.PIDSetpoint)
	binary.Write(buf, binary.LittleEndian, p.PIDOutputRPM)
	return buf.Bytes()
}

func DecodeTemperatureData(data []byte) (TemperatureDataPayload, error) {
	if len(data) != 21 {
		return TemperatureDataPayload{}, fmt.Errorf("%w: TEMPERATURE_DATA expects 21 bytes, got %d", ErrInvalidLength, len(data))
	}
	r := bytes.NewReader(data)
	var p TemperatureDataPayload
	var err error
	if p.Temperature, err = getFloat64(r); err != nil {
		return p, err
	}
	enabled, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.PIDEnabled = enabled
	if p.PIDSetpoint, err = getFloat64(r); err != nil {
		return p, err
	}
	binary.Read(r, binary.LittleEndian, &p.PIDOutputRPM)
	return p, nil
}

// PumpDataPayload is the payload for MSG_PUMP_DATA.
type PumpDataPayload struct {
	Enabled    uint8
	RateMs     uint32
	PulseCount uint64
}

func (p PumpDataPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(p.Enabled)
	binary.Write(buf, binary.LittleEndian, p.RateMs)
	binary.Write(buf, binary.LittleEndian, p.PulseCount)
	return buf.Bytes()
}

func DecodePumpData(data []byte) (PumpDataPayload, error) {
	if len(data) != 13 {
		return PumpDataPayload{}, fmt.Errorf("%w: PUMP_DATA expects 13 bytes, got %d", ErrInvalidLength, len(data))
	}
	r := bytes.NewReader(data)
	var p PumpDataPayload
	enabled, _ := r.ReadByte()
	p.Enabled = enabled
	binary.Read(r, binary.LittleEndian, &p.RateMs)
	binary.Read(r, binary.LittleEndian, &p.PulseCount)
	return p, nil
}

// GlowDataPayload is the payload for MSG_GLOW_DATA.
type GlowDataPayload struct {
	Lit           uint8
	LitTimestamp  uint64
	TotalBurnTime uint64
}

func (p GlowDataPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(p.Lit)
	binary.Write(buf, binary.LittleEndian, p.LitTimestamp)
	binary.Write(buf, binary.LittleEndian, p.TotalBurnTime)
	return buf.Bytes()
}

func DecodeGlowData(data []byte) (GlowDataPayload, error) {
	if len(data) != 17 {
		return GlowDataPayload{}, fmt.Errorf("%w: GLOW_DATA expects 17 bytes, got %d", ErrInvalidLength, len(data))
	}
	r := bytes.NewReader(data)
	var p GlowDataPayload
	lit, _ := r.ReadByte()
	p.Lit = lit
	binary.Read(r, binary.LittleEndian, &p.LitTimestamp)
	binary.Read(r, binary.LittleEndian, &p.TotalBurnTime)
	return p, nil
}

// PingResponsePayload is the payload for MSG_PING_RESPONSE.
type PingResponsePayload struct {
	UptimeMs uint64
}

func (p PingResponsePayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.UptimeMs)
	return buf.Bytes()
}

func DecodePingResponse(data []byte) (PingResponsePayload, error) {
	if len(data) != 8 {
		return PingResponsePayload{}, fmt.Errorf("%w: PING_RESPONSE expects 8 bytes, got %d", ErrInvalidLength, len(data))
	}
	return PingResponsePayload{UptimeMs: binary.LittleEndian.Uint64(data)}, nil
}

// ErrorInvalidCommandPayload is the payload for MSG_ERROR_INVALID_COMMAND.
type ErrorInvalidCommandPayload struct {
	InvalidCommand uint8
}

func (p ErrorInvalidCommandPayload) Encode() []byte {
	return []byte{p.InvalidCommand}
}

func DecodeErrorInvalidCommand(data []byte) (ErrorInvalidCommandPayload, error) {
	if len(data) != 1 {
		return ErrorInvalidCommandPayload{}, fmt.Errorf("%w: ERROR_INVALID_COMMAND expects 1 byte, got %d", ErrInvalidLength, len(data))
	}
	return ErrorInvalidCommandPayload{InvalidCommand: data[0]}, nil
}

// ErrorInvalidCrcPayload is the payload for MSG_ERROR_INVALID_CRC.
type ErrorInvalidCrcPayload struct {
	ReceivedCRC   uint16
	CalculatedCRC uint16
}

func (p ErrorInvalidCrcPayload) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, p.ReceivedCRC)
	binary.Write(buf, binary.LittleEndian, p.CalculatedCRC)
	return buf.Bytes()
}

func DecodeErrorInvalidCrc(data []byte) (ErrorInvalidCrcPayload, error) {
	if len(data) != 4 {
		return ErrorInvalidCrcPayload{}, fmt.Errorf("%w: ERROR_INVALID_CRC expects 4 bytes, got %d", ErrInvalidLength, len(data))
	}
	return ErrorInvalidCrcPayload{
		ReceivedCRC:   binary.LittleEndian.Uint16(data[0:2]),
		CalculatedCRC: binary.LittleEndian.Uint16(data[2:4]),
	}, nil
}

// ErrorInvalidLengthPayload is the payload for MSG_ERROR_INVALID_LENGTH.
type ErrorInvalidLengthPayload struct {
	ReceivedLength uint8
	ExpectedLength uint8
}

func (p ErrorInvalidLengthPayload) Encode() []byte {
	return []byte{p.ReceivedLength, p.ExpectedLength}
}

func DecodeErrorInvalidLength(data []byte) (ErrorInvalidLengthPayload, error) {
	if len(data) != 2 {
		return ErrorInvalidLengthPayload{}, fmt.Errorf("%w: ERROR_INVALID_LENGTH expects 2 bytes, got %d", ErrInvalidLength, len(data))
	}
	return ErrorInvalidLengthPayload{
		ReceivedLength: data[0],
		ExpectedLength: data[1],
	}, nil
}
