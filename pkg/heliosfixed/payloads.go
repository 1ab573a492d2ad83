// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Payload structs mirror the packed C layouts this variant is grounded on
// (original_source/include/fusain/fusain.h), field for field. Encoding is
// always explicit little-endian via encoding/binary, never an unsafe cast
// over the Go struct — Go struct layout and padding are not guaranteed to
// match the wire format.

func putFloat64(buf *bytes.Buffer, v float64) {
	binary.Write(buf, binary.LittleEndian, math.Float64bits(v))
}

func getFloat64(r *bytes.Reader) (float64, error) {
	var bits uint64
	if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// MotorConfigPayload is the MOTOR_CONFIG payload (CBOR-free fixed layout).
type MotorConfigPayload struct {
	Motor      int32
	PWMPeriod  uint32
	PIDKp      float64
	PIDKi      float64
	PIDKd      float64
	MaxRPM     int32
	MinRPM     int32
	MinPWMDuty uint32
}

// Encode serializes the payload to its wire bytes, including the 4 reserved
// padding bytes the original packed struct carried.
func (p MotorConfigPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.Motor)
	binary.Write(buf, binary.LittleEndian, p.PWMPeriod)
	putFloat64(buf, p.PIDKp)
	putFloat64(buf, p.PIDKi)
	putFloat64(buf, p.PIDKd)
	binary.Write(buf, binary.LittleEndian, p.MaxRPM)
	binary.Write(buf, binary.LittleEndian, p.MinRPM)
	binary.Write(buf, binary.LittleEndian, p.MinPWMDuty)
	buf.Write(make([]byte, 4)) // reserved
	return buf.Bytes()
}

// DecodeMotorConfig parses a MOTOR_CONFIG payload.
func DecodeMotorConfig(data []byte) (MotorConfigPayload, error) {
	var p MotorConfigPayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.Motor); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.PWMPeriod); err != nil {
		return p, err
	}
	var err error
	if p.PIDKp, err = getFloat64(r); err != nil {
		return p, err
	}
	if p.PIDKi, err = getFloat64(r); err != nil {
		return p, err
	}
	if p.PIDKd, err = getFloat64(r); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MaxRPM); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MinRPM); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MinPWMDuty); err != nil {
		return p, err
	}
	return p, nil
}

// PumpConfigPayload is the PUMP_CONFIG payload.
type PumpConfigPayload struct {
	Pump      int32
	MinRateMs uint32
	MaxRateMs uint32
}

func (p PumpConfigPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.Pump)
	binary.Write(buf, binary.LittleEndian, p.MinRateMs)
	binary.Write(buf, binary.LittleEndian, p.MaxRateMs)
	buf.Write(make([]byte, 4)) // reserved
	return buf.Bytes()
}

func DecodePumpConfig(data []byte) (PumpConfigPayload, error) {
	var p PumpConfigPayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.Pump); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MinRateMs); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MaxRateMs); err != nil {
		return p, err
	}
	return p, nil
}

// TempConfigPayload is the TEMP_CONFIG payload.
type TempConfigPayload struct {
	Thermometer int32
	PIDKp       float64
	PIDKi       float64
	PIDKd       float64
	SampleCount uint32
	ReadRate    uint32
}

func (p TempConfigPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.Thermometer)
	putFloat64(buf, p.PIDKp)
	putFloat64(buf, p.PIDKi)
	putFloat64(buf, p.PIDKd)
	binary.Write(buf, binary.LittleEndian, p.SampleCount)
	binary.Write(buf, binary.LittleEndian, p.ReadRate)
	buf.Write(make([]byte, 12)) // reserved
	return buf.Bytes()
}

func DecodeTempConfig(data []byte) (TempConfigPayload, error) {
	var p TempConfigPayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.Thermometer); err != nil {
		return p, err
	}
	var err error
	if p.PIDKp, err = getFloat64(r); err != nil {
		return p, err
	}
	if p.PIDKi, err = getFloat64(r); err != nil {
		return p, err
	}
	if p.PIDKd, err = getFloat64(r); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.SampleCount); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.ReadRate); err != nil {
		return p, err
	}
	return p, nil
}

// GlowConfigPayload is the GLOW_CONFIG payload.
type GlowConfigPayload struct {
	Glow          int32
	MaxDurationMs uint32
}

func (p GlowConfigPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.Glow)
	binary.Write(buf, binary.LittleEndian, p.MaxDurationMs)
	buf.Write(make([]byte, 8)) // reserved
	return buf.Bytes()
}

func DecodeGlowConfig(data []byte) (GlowConfigPayload, error) {
	var p GlowConfigPayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.Glow); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.MaxDurationMs); err != nil {
		return p, err
	}
	return p, nil
}

// StateCommandPayload is the STATE_COMMAND payload.
type StateCommandPayload struct {
	Mode      Mode
	Parameter uint32
}

func (p StateCommandPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(uint8(p.Mode))
	binary.Write(buf, binary.LittleEndian, p.Parameter)
	return buf.Bytes()
}

func DecodeStateCommand(data []byte) (StateCommandPayload, error) {
	var p StateCommandPayload
	if len(data) < 5 {
		return p, fmt.Errorf("%w: STATE_COMMAND payload too short", ErrInvalidLength)
	}
	p.Mode = Mode(data[0])
	p.Parameter = binary.LittleEndian.Uint32(data[1:5])
	return p, nil
}

// GlowCommandPayload is the GLOW_COMMAND payload.
type GlowCommandPayload struct {
	Glow     int32
	Duration int32
}

func (p GlowCommandPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.Glow)
	binary.Write(buf, binary.LittleEndian, p.Duration)
	return buf.Bytes()
}

func DecodeGlowCommand(data []byte) (GlowCommandPayload, error) {
	var p GlowCommandPayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.Glow); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Duration); err != nil {
		return p, err
	}
	return p, nil
}

// TelemetryConfigPayload is the TELEMETRY_CONFIG payload.
type TelemetryConfigPayload struct {
	Enabled    bool
	IntervalMs uint32
	Mode       uint32 // 0 = bundled, 1 = individual
}

func (p TelemetryConfigPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	enabled := uint32(0)
	if p.Enabled {
		enabled = 1
	}
	binary.Write(buf, binary.LittleEndian, enabled)
	binary.Write(buf, binary.LittleEndian, p.IntervalMs)
	binary.Write(buf, binary.LittleEndian, p.Mode)
	return buf.Bytes()
}

func DecodeTelemetryConfig(data []byte) (TelemetryConfigPayload, error) {
	var p TelemetryConfigPayload
	r := bytes.NewReader(data)
	var enabled uint32
	if err := binary.Read(r, binary.LittleEndian, &enabled); err != nil {
		return p, err
	}
	p.Enabled = enabled != 0
	if err := binary.Read(r, binary.LittleEndian, &p.IntervalMs); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Mode); err != nil {
		return p, err
	}
	return p, nil
}

// StateDataPayload is the STATE_DATA payload.
type StateDataPayload struct {
	State SysState
	Error ErrorCode
}

func (p StateDataPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(p.State))
	buf.WriteByte(uint8(p.Error))
	return buf.Bytes()
}

func DecodeStateData(data []byte) (StateDataPayload, error) {
	var p StateDataPayload
	if len(data) < 5 {
		return p, fmt.Errorf("%w: STATE_DATA payload too short", ErrInvalidLength)
	}
	p.State = SysState(binary.LittleEndian.Uint32(data[0:4]))
	p.Error = ErrorCode(data[4])
	return p, nil
}

// MotorDataPayload is the MOTOR_DATA payload.
type MotorDataPayload struct {
	RPM       int32
	TargetRPM int32
	PWMDuty   int32
	PWMPeriod int32
	MinRPM    int32
	MaxRPM    int32
}

func (p MotorDataPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.RPM)
	binary.Write(buf, binary.LittleEndian, p.TargetRPM)
	binary.Write(buf, binary.LittleEndian, p.PWMDuty)
	binary.Write(buf, binary.LittleEndian, p.PWMPeriod)
	binary.Write(buf, binary.LittleEndian, p.MinRPM)
	binary.Write(buf, binary.LittleEndian, p.MaxRPM)
	return buf.Bytes()
}

func DecodeMotorData(data []byte) (MotorDataPayload, error) {
	var p MotorDataPayload
	r := bytes.NewReader(data)
	fields := []*int32{&p.RPM, &p.TargetRPM, &p.PWMDuty, &p.PWMPeriod, &p.MinRPM, &p.MaxRPM}
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return p, err
		}
	}
	return p, nil
}

// TempDataPayload is the TEMP_DATA payload.
type TempDataPayload struct {
	Temperature  float64
	PIDEnabled   bool
	PIDSetpoint  float64
	PIDOutputRPM int32
}

func (p TempDataPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	putFloat64(buf, p.Temperature)
	enabled := uint8(0)
	if p.PIDEnabled {
		enabled = 1
	}
	buf.WriteByte(enabled)
	putFloat64(buf, p.PIDSetpoint)
	binary.Write(buf, binary.LittleEndian, p.PIDOutputRPM)
	return buf.Bytes()
}

func DecodeTempData(data []byte) (TempDataPayload, error) {
	var p TempDataPayload
	r := bytes.NewReader(data)
	var err error
	if p.Temperature, err = getFloat64(r); err != nil {
		return p, err
	}
	var enabled uint8
	if err := binary.Read(r, binary.LittleEndian, &enabled); err != nil {
		return p, err
	}
	p.PIDEnabled = enabled != 0
	if p.PIDSetpoint, err = getFloat64(r); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.PIDOutputRPM); err != nil {
		return p, err
	}
	return p, nil
}

// PumpDataPayload is the PUMP_DATA payload.
type PumpDataPayload struct {
	Enabled    bool
	RateMs     uint32
	PulseCount uint64
}

func (p PumpDataPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	enabled := uint8(0)
	if p.Enabled {
		enabled = 1
	}
	buf.WriteByte(enabled)
	binary.Write(buf, binary.LittleEndian, p.RateMs)
	binary.Write(buf, binary.LittleEndian, p.PulseCount)
	return buf.Bytes()
}

func DecodePumpData(data []byte) (PumpDataPayload, error) {
	var p PumpDataPayload
	r := bytes.NewReader(data)
	var enabled uint8
	if err := binary.Read(r, binary.LittleEndian, &enabled); err != nil {
		return p, err
	}
	p.Enabled = enabled != 0
	if err := binary.Read(r, binary.LittleEndian, &p.RateMs); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.PulseCount); err != nil {
		return p, err
	}
	return p, nil
}

// GlowDataPayload is the GLOW_DATA payload.
type GlowDataPayload struct {
	Lit           bool
	LitTimestamp  uint64
	TotalBurnTime uint64
}

func (p GlowDataPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	lit := uint8(0)
	if p.Lit {
		lit = 1
	}
	buf.WriteByte(lit)
	binary.Write(buf, binary.LittleEndian, p.LitTimestamp)
	binary.Write(buf, binary.LittleEndian, p.TotalBurnTime)
	return buf.Bytes()
}

func DecodeGlowData(data []byte) (GlowDataPayload, error) {
	var p GlowDataPayload
	r := bytes.NewReader(data)
	var lit uint8
	if err := binary.Read(r, binary.LittleEndian, &lit); err != nil {
		return p, err
	}
	p.Lit = lit != 0
	if err := binary.Read(r, binary.LittleEndian, &p.LitTimestamp); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.TotalBurnTime); err != nil {
		return p, err
	}
	return p, nil
}

// DeviceAnnouncePayload is the DEVICE_ANNOUNCE payload.
type DeviceAnnouncePayload struct {
	DeviceType   uint32
	Capabilities uint32
}

func (p DeviceAnnouncePayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.DeviceType)
	binary.Write(buf, binary.LittleEndian, p.Capabilities)
	return buf.Bytes()
}

func DecodeDeviceAnnounce(data []byte) (DeviceAnnouncePayload, error) {
	var p DeviceAnnouncePayload
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.DeviceType); err != nil {
		return p, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Capabilities); err != nil {
		return p, err
	}
	return p, nil
}

// PingResponsePayload is the PING_RESPONSE payload.
type PingResponsePayload struct {
	UptimeMs uint64
}

func (p PingResponsePayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.UptimeMs)
	return buf.Bytes()
}

func DecodePingResponse(data []byte) (PingResponsePayload, error) {
	var p PingResponsePayload
	if len(data) < 8 {
		return p, fmt.Errorf("%w: PING_RESPONSE payload too short", ErrInvalidLength)
	}
	p.UptimeMs = binary.LittleEndian.Uint64(data[0:8])
	return p, nil
}

// ErrorCrcFailPayload is the ERROR_CRC_FAIL payload.
type ErrorCrcFailPayload struct {
	ReceivedCRC   uint16
	CalculatedCRC uint16
}

func (p ErrorCrcFailPayload) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, p.ReceivedCRC)
	binary.Write(buf, binary.LittleEndian, p.CalculatedCRC)
	return buf.Bytes()
}

func DecodeErrorCrcFail(data []byte) (ErrorCrcFailPayload, error) {
	var p ErrorCrcFailPayload
	if len(data) < 4 {
		return p, fmt.Errorf("%w: ERROR_CRC_FAIL payload too short", ErrInvalidLength)
	}
	p.ReceivedCRC = binary.LittleEndian.Uint16(data[0:2])
	p.CalculatedCRC = binary.LittleEndian.Uint16(data[2:4])
	return p, nil
}

// ErrorInvalidCmdPayload is the ERROR_INVALID_CMD payload.
type ErrorInvalidCmdPayload struct {
	InvalidCommand uint8
}

func (p ErrorInvalidCmdPayload) Encode() []byte {
	return []byte{p.InvalidCommand}
}

func DecodeErrorInvalidCmd(data []byte) (ErrorInvalidCmdPayload, error) {
	if len(data) < 1 {
		return ErrorInvalidCmdPayload{}, fmt.Errorf("%w: ERROR_INVALID_CMD payload too short", ErrInvalidLength)
	}
	return ErrorInvalidCmdPayload{InvalidCommand: data[0]}, nil
}

// ErrorInvalidLengthPayload is the ERROR_INVALID_LENGTH payload.
type ErrorInvalidLengthPayload struct {
	ReceivedLength uint8
	ExpectedLength uint8
}

func (p ErrorInvalidLengthPayload) Encode() []byte {
	return []byte{p.ReceivedLength, p.ExpectedLength}
}

func DecodeErrorInvalidLength(data []byte) (ErrorInvalidLengthPayload, error) {
	if len(data) < 2 {
		return ErrorInvalidLengthPayload{}, fmt.Errorf("%w: ERROR_INVALID_LENGTH payload too short", ErrInvalidLength)
	}
	return ErrorInvalidLengthPayload{ReceivedLength: data[0], ExpectedLength: data[1]}, nil
}
