// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================
// CRC Tests
// ============================================================

func TestCalculateCRC_Empty(t *testing.T) {
	crc := CalculateCRC([]byte{})
	if crc != crcInitial {
		t.Errorf("CRC of empty data should be initial value, got 0x%04X", crc)
	}
}

func TestCalculateCRC_KnownValues(t *testing.T) {
	crc := CalculateCRC([]byte("123456789"))
	if crc != 0x29B1 {
		t.Errorf("CRC mismatch: expected 0x29B1, got 0x%04X", crc)
	}
}

func TestCalculateCRC_Deterministic(t *testing.T) {
	data := []byte{0x10, 0x30, 0x01, 0x02, 0x03, 0x04}
	crc1 := CalculateCRC(data)
	crc2 := CalculateCRC(data)
	if crc1 != crc2 {
		t.Errorf("CRC should be deterministic: 0x%04X != 0x%04X", crc1, crc2)
	}
}

// ============================================================
// Packet Tests
// ============================================================

func TestNewPacket(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	p := NewPacket(3, 0x0102030405060708, MsgPingResponse, payload, 0xBEEF)

	if p.Length() != 3 {
		t.Errorf("Length() = %d, want 3", p.Length())
	}
	if p.Address() != 0x0102030405060708 {
		t.Errorf("Address() = 0x%016X, want 0x0102030405060708", p.Address())
	}
	if p.Type() != MsgPingResponse {
		t.Errorf("Type() = 0x%02X, want 0x%02X", p.Type(), MsgPingResponse)
	}
	if string(p.Payload()) != string(payload) {
		t.Errorf("Payload() = %v, want %v", p.Payload(), payload)
	}
	if p.CRC() != 0xBEEF {
		t.Errorf("CRC() = 0x%04X, want 0xBEEF", p.CRC())
	}
}

func TestPacket_IsBroadcast(t *testing.T) {
	p := NewPingRequest(AddressBroadcast)
	if !p.IsBroadcast() {
		t.Error("expected IsBroadcast() true")
	}
	p2 := NewPingRequest(0x01)
	if p2.IsBroadcast() {
		t.Error("expected IsBroadcast() false")
	}
}

func TestPacket_IsStateless(t *testing.T) {
	p := NewPingRequest(AddressStateless)
	if !p.IsStateless() {
		t.Error("expected IsStateless() true")
	}
}

func TestPacket_Timestamp(t *testing.T) {
	p := NewPingRequest(0x01)
	if p.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

// ============================================================
// Decoder Tests
// ============================================================

func TestDecoder_Reset(t *testing.T) {
	d := NewDecoder()

	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)

	d.Reset()

	packet, err := d.DecodeByte(0x00)
	if packet != nil || err != nil {
		t.Error("After reset, decoder should be in IDLE state ignoring non-START bytes")
	}
}

func TestDecoder_GetRawBytes(t *testing.T) {
	d := NewDecoder()

	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)
	d.DecodeByte(MsgPingRequest)

	raw := d.GetRawBytes()
	if len(raw) == 0 {
		t.Error("GetRawBytes should return accumulated bytes")
	}
}

func buildFramedPacket(t *testing.T, address uint64, msgType uint8, payload []byte) []byte {
	t.Helper()
	encoded, err := EncodePacket(address, msgType, payload)
	if err != nil {
		t.Fatalf("EncodePacket failed: %v", err)
	}
	return encoded
}

func decodeAll(t *testing.T, encoded []byte) *Packet {
	t.Helper()
	d := NewDecoder()
	var packet *Packet
	for _, b := range encoded {
		p, err := d.DecodeByte(b)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if p != nil {
			packet = p
		}
	}
	return packet
}

func TestDecoder_SimplePacket(t *testing.T) {
	address := uint64(0x0102030405060708)
	encoded := buildFramedPacket(t, address, MsgPingRequest, nil)

	packet := decodeAll(t, encoded)
	if packet == nil {
		t.Fatal("Expected packet, got nil")
	}
	if packet.Address() != address {
		t.Errorf("Address mismatch: expected 0x%016X, got 0x%016X", address, packet.Address())
	}
	if packet.Type() != MsgPingRequest {
		t.Errorf("Type mismatch: expected 0x%02X, got 0x%02X", MsgPingRequest, packet.Type())
	}
}

func TestDecoder_PacketWithPayload(t *testing.T) {
	address := uint64(0x123456789ABCDEF0)
	data := StateDataPayload{State: SysStateHeating, Error: ErrorNone}.Encode()
	encoded := buildFramedPacket(t, address, MsgStateData, data)

	packet := decodeAll(t, encoded)
	if packet == nil {
		t.Fatal("Expected packet, got nil")
	}
	decoded, err := DecodeStateData(packet.Payload())
	if err != nil {
		t.Fatalf("DecodeStateData failed: %v", err)
	}
	if decoded.State != SysStateHeating {
		t.Errorf("state mismatch: expected %d, got %d", SysStateHeating, decoded.State)
	}
}

func TestDecoder_ByteStuffing(t *testing.T) {
	// Choose a motor config value whose encoding contains a byte equal to
	// StartByte (0x7E) to exercise the stuffing path.
	address := uint64(0x0102030405060708)
	cfg := MotorConfigPayload{Motor: 0x7E}
	encoded := buildFramedPacket(t, address, MsgMotorConfig, cfg.Encode())

	packet := decodeAll(t, encoded)
	if packet == nil {
		t.Fatal("Expected packet, got nil")
	}
	decoded, err := DecodeMotorConfig(packet.Payload())
	if err != nil {
		t.Fatalf("DecodeMotorConfig failed: %v", err)
	}
	if decoded.Motor != 0x7E {
		t.Errorf("decoded value = %d, want %d", decoded.Motor, 0x7E)
	}
}

func TestDecoder_CRCMismatch(t *testing.T) {
	d := NewDecoder()

	address := uint64(0x0102030405060708)
	length := uint8(0)
	wrongCRC := uint16(0xBEEF)

	d.DecodeByte(StartByte)
	d.DecodeByte(length)
	for i := 0; i < 8; i++ {
		d.DecodeByte(byte(address >> (i * 8)))
	}
	d.DecodeByte(MsgPingRequest)
	d.DecodeByte(byte(wrongCRC >> 8))
	d.DecodeByte(byte(wrongCRC))

	packet, err := d.DecodeByte(EndByte)
	if err == nil {
		t.Error("Expected CRC mismatch error, got nil")
	}
	if !errors.Is(err, ErrCRCMismatch) {
		t.Errorf("expected ErrCRCMismatch, got %v", err)
	}
	if packet != nil {
		t.Error("Expected nil packet on CRC error")
	}
}

func TestDecoder_InvalidLength(t *testing.T) {
	d := NewDecoder()

	d.DecodeByte(StartByte)
	_, err := d.DecodeByte(MaxPayloadSize + 1)
	if err == nil {
		t.Error("Expected error for invalid length")
	}
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecoder_StartByteResetsState(t *testing.T) {
	d := NewDecoder()

	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)
	d.DecodeByte(MsgPingRequest)

	// Another StartByte should reset and start fresh
	encoded := buildFramedPacket(t, 0x0102030405060708, MsgPingRequest, nil)

	var packet *Packet
	for _, b := range encoded {
		p, err := d.DecodeByte(b)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if p != nil {
			packet = p
		}
	}
	if packet == nil {
		t.Fatal("Expected packet after START reset")
	}
}

func TestDecoder_CorruptedEscapeNotMisreadAsFraming(t *testing.T) {
	// A bit flip on the wire can turn a valid escape pair (ESC, 0x5E) into
	// (ESC, 0x7E) -- the escaped encoding of a literal START byte corrupted
	// to equal the START byte itself. The decoder must keep treating the
	// second byte of the pair as escaped payload data rather than
	// resynchronizing on a spurious START.
	d := NewDecoder()

	mustDecode := func(b byte) {
		if _, err := d.DecodeByte(b); err != nil {
			t.Fatalf("DecodeByte(0x%02X): %v", b, err)
		}
	}

	mustDecode(StartByte)
	mustDecode(2)
	for i := 0; i < AddressSize; i++ {
		mustDecode(0)
	}
	mustDecode(MsgPingRequest)

	mustDecode(EscByte)
	if d.state != statePayload {
		t.Fatalf("expected state statePayload with escape pending, got %d", d.state)
	}

	mustDecode(StartByte)
	if d.state == stateLength {
		t.Fatal("decoder resynchronized on an escaped byte that was corrupted to equal the START delimiter")
	}
	if len(d.packet.payload) != 1 || d.packet.payload[0] != StartByte^EscXor {
		t.Fatalf("expected payload byte 0x%02X, got %v", StartByte^EscXor, d.packet.payload)
	}
}

func TestDecoder_ZeroLengthSkipsPayload(t *testing.T) {
	// A zero-length packet must transition straight from TYPE to CRC1,
	// never visiting PAYLOAD.
	encoded := buildFramedPacket(t, 0, MsgPingRequest, nil)
	packet := decodeAll(t, encoded)
	if packet == nil {
		t.Fatal("expected packet")
	}
}

func TestDecoder_BufferOverflow_AtLength(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)
	d.bufferIndex = MaxPacketSize

	_, err := d.DecodeByte(0x00)
	if !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestDecoder_BufferOverflow_AtAddress(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)
	d.bufferIndex = MaxPacketSize

	_, err := d.DecodeByte(0x01)
	if !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestDecoder_BufferOverflow_AtType(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)
	for i := 0; i < 8; i++ {
		d.DecodeByte(byte(i))
	}
	d.bufferIndex = MaxPacketSize

	_, err := d.DecodeByte(MsgPingRequest)
	if !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestDecoder_BufferOverflow_AtPayload(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)
	d.DecodeByte(0x01)
	for i := 0; i < 8; i++ {
		d.DecodeByte(byte(i))
	}
	d.DecodeByte(MsgStateData)
	d.bufferIndex = MaxPacketSize

	_, err := d.DecodeByte(0x01)
	if !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestDecoder_InvalidState(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)

	if d.state != stateLength {
		t.Fatalf("Expected stateLength after StartByte, got %d", d.state)
	}

	d.state = 999

	_, err := d.DecodeByte(0x00)
	if !errors.Is(err, ErrFramingError) {
		t.Errorf("expected ErrFramingError, got %v", err)
	}
}

func TestDecoder_UnexpectedEndByte(t *testing.T) {
	d := NewDecoder()
	d.DecodeByte(StartByte)
	d.DecodeByte(0x00)

	_, err := d.DecodeByte(EndByte)
	if !errors.Is(err, ErrFramingError) {
		t.Errorf("expected ErrFramingError, got %v", err)
	}
}

// ============================================================
// Payload Round-Trip Tests
// ============================================================

func TestMotorConfigPayload_RoundTrip(t *testing.T) {
	p := MotorConfigPayload{
		Motor: 1, PWMPeriod: 2000, PIDKp: 1.5, PIDKi: 0.25, PIDKd: 0.1,
		MaxRPM: 5000, MinRPM: 500, MinPWMDuty: 100,
	}
	decoded, err := DecodeMotorConfig(p.Encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != p {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, p)
	}
}

func TestTelemetryBundlePayload_RoundTrip(t *testing.T) {
	p := TelemetryBundlePayload{
		State: SysStateHeating,
		Error: ErrorNone,
		Motors: []TelemetryBundleMotor{
			{RPM: 3000, TargetRPM: 3000, PWMDuty: 50, PWMPeriod: 100},
		},
		Temps: []TelemetryBundleTemperature{
			{Temperature: 21.5},
		},
	}
	encoded, err := p.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeTelemetryBundle(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.Motors) != 1 || decoded.Motors[0].RPM != 3000 {
		t.Errorf("motor mismatch: %+v", decoded.Motors)
	}
	if len(decoded.Temps) != 1 || decoded.Temps[0].Temperature != 21.5 {
		t.Errorf("temp mismatch: %+v", decoded.Temps)
	}
}

func TestTelemetryBundlePayload_ExceedsMaxMotors(t *testing.T) {
	motors := make([]TelemetryBundleMotor, MaxMotors+1)
	p := TelemetryBundlePayload{Motors: motors}
	_, err := p.Encode()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTelemetryBundlePayload_ZeroMotors(t *testing.T) {
	p := TelemetryBundlePayload{
		Temps: []TelemetryBundleTemperature{{Temperature: 21.5}},
	}
	_, err := p.Encode()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTelemetryBundlePayload_ZeroTemps(t *testing.T) {
	p := TelemetryBundlePayload{
		Motors: []TelemetryBundleMotor{{RPM: 3000}},
	}
	_, err := p.Encode()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTelemetryBundlePayload_ExceedsMaxPayloadSize(t *testing.T) {
	p := TelemetryBundlePayload{
		Motors: make([]TelemetryBundleMotor, MaxMotors),
		Temps:  make([]TelemetryBundleTemperature, MaxTemperatures),
	}
	_, err := p.Encode()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDecodeTelemetryBundle_ExceedsMaxMotors(t *testing.T) {
	data := []byte{0, 0, 0, 0, 0, MaxMotors + 1, 0}
	_, err := DecodeTelemetryBundle(data)
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestDecodeTelemetryBundle_Truncated(t *testing.T) {
	data := []byte{0, 0, 0, 0, 0, 1, 0}
	_, err := DecodeTelemetryBundle(data)
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

// ============================================================
// Validation Tests
// ============================================================

func TestValidatePacket_StateData_Valid(t *testing.T) {
	p := NewStateData(0x123456789ABCDEF0, SysStateIdle, ErrorNone)
	errs := ValidatePacket(p)
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidatePacket_StateData_InvalidState(t *testing.T) {
	p := NewStateData(0x123456789ABCDEF0, SysState(255), ErrorNone)
	errs := ValidatePacket(p)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Type != AnomalyInvalidValue {
		t.Errorf("Expected AnomalyInvalidValue, got %d", errs[0].Type)
	}
}

func TestValidatePacket_MotorData_Valid(t *testing.T) {
	p := NewMotorData(0x123456789ABCDEF0, MotorDataPayload{
		RPM: 3000, TargetRPM: 3000, PWMDuty: 50, PWMPeriod: 100, MinRPM: 500, MaxRPM: 5000,
	})
	errs := ValidatePacket(p)
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidatePacket_MotorData_HighRPM(t *testing.T) {
	p := NewMotorData(0x123456789ABCDEF0, MotorDataPayload{RPM: 7000, TargetRPM: 7000})
	errs := ValidatePacket(p)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Type != AnomalyHighRPM {
		t.Errorf("Expected AnomalyHighRPM, got %d", errs[0].Type)
	}
}

func TestValidatePacket_MotorData_PWMExceedsPeriod(t *testing.T) {
	p := NewMotorData(0x123456789ABCDEF0, MotorDataPayload{PWMDuty: 150, PWMPeriod: 100})
	errs := ValidatePacket(p)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Type != AnomalyInvalidPWM {
		t.Errorf("Expected AnomalyInvalidPWM, got %d", errs[0].Type)
	}
}

func TestValidatePacket_TempData_Valid(t *testing.T) {
	p := NewTempData(0x123456789ABCDEF0, TempDataPayload{Temperature: 25.0})
	errs := ValidatePacket(p)
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidatePacket_TempData_InvalidTemp(t *testing.T) {
	p := NewTempData(0x123456789ABCDEF0, TempDataPayload{Temperature: -100.0})
	errs := ValidatePacket(p)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Type != AnomalyInvalidTemp {
		t.Errorf("Expected AnomalyInvalidTemp, got %d", errs[0].Type)
	}
}

func TestValidatePacket_GlowCommand_Valid(t *testing.T) {
	p := NewGlowCommand(0x123456789ABCDEF0, 0, 60000)
	errs := ValidatePacket(p)
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidatePacket_GlowCommand_InvalidDuration(t *testing.T) {
	p := NewGlowCommand(0x123456789ABCDEF0, 0, 400000)
	errs := ValidatePacket(p)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Type != AnomalyInvalidValue {
		t.Errorf("Expected AnomalyInvalidValue, got %d", errs[0].Type)
	}
}

func TestValidatePacket_DeviceAnnounce_Stateless(t *testing.T) {
	p := NewDeviceAnnounce(AddressStateless, 0, 0)
	errs := ValidatePacket(p)
	if len(errs) != 0 {
		t.Errorf("Expected no validation errors for stateless DEVICE_ANNOUNCE, got %d: %v", len(errs), errs)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Type:    AnomalyHighRPM,
		Message: "RPM exceeds maximum",
		Details: map[string]interface{}{"rpm": 7000},
	}
	errStr := err.Error()
	if errStr != "RPM exceeds maximum" {
		t.Errorf("Error() should return message, got '%s'", errStr)
	}
}

// ============================================================
// Formatter Tests
// ============================================================

func TestFormatMessageType(t *testing.T) {
	tests := []struct {
		msgType  uint8
		expected string
	}{
		{MsgMotorConfig, "MOTOR_CONFIG"},
		{MsgStateCommand, "STATE_COMMAND"},
		{MsgPingRequest, "PING_REQUEST"},
		{MsgStateData, "STATE_DATA"},
		{MsgTelemetryBundle, "TELEMETRY_BUNDLE"},
		{MsgDeviceAnnounce, "DEVICE_ANNOUNCE"},
		{MsgPingResponse, "PING_RESPONSE"},
		{MsgErrorInvalidMsg, "ERROR_INVALID_MSG"},
		{MsgErrorCrcFail, "ERROR_CRC_FAIL"},
		{MsgErrorInvalidCmd, "ERROR_INVALID_CMD"},
		{MsgErrorInvalidLength, "ERROR_INVALID_LENGTH"},
		{0x99, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatMessageType(tt.msgType)
			if result != tt.expected {
				t.Errorf("FormatMessageType(0x%02X) = %s, expected %s", tt.msgType, result, tt.expected)
			}
		})
	}
}

func TestFormatPayload_PingRequest(t *testing.T) {
	result := FormatPayload(MsgPingRequest, nil)
	if result != "  (no payload)\n" {
		t.Errorf("Expected '  (no payload)\\n', got '%s'", result)
	}
}

func TestFormatPayload_UnknownType(t *testing.T) {
	result := FormatPayload(0x99, []byte{0x01, 0x02})
	if !strings.Contains(result, "Payload:") {
		t.Error("Unknown type should produce a dump containing 'Payload:'")
	}
}

func TestFormatPayload_StateData(t *testing.T) {
	p := StateDataPayload{State: SysStateHeating, Error: ErrorOverheat}
	result := FormatPayload(MsgStateData, p.Encode())
	if !strings.Contains(result, "HEATING") {
		t.Error("Should contain state name 'HEATING'")
	}
	if !strings.Contains(result, "OVERHEAT") {
		t.Error("Should contain error code 'OVERHEAT'")
	}
}

func TestFormatPayload_AllModes(t *testing.T) {
	modes := []struct {
		mode     Mode
		expected string
	}{
		{ModeIdle, "IDLE"},
		{ModeFan, "FAN"},
		{ModeHeat, "HEAT"},
		{ModeEmergency, "EMERGENCY"},
	}

	for _, m := range modes {
		p := StateCommandPayload{Mode: m.mode}
		result := FormatPayload(MsgStateCommand, p.Encode())
		if !strings.Contains(result, m.expected) {
			t.Errorf("Mode %d should format as '%s', got '%s'", m.mode, m.expected, result)
		}
	}
}

func TestFormatPayload_AllStates(t *testing.T) {
	states := []string{"INITIALIZING", "IDLE", "BLOWING", "PREHEAT", "PREHEAT_STAGE_2", "HEATING", "COOLING", "ERROR", "E_STOP"}
	for i, name := range states {
		p := StateDataPayload{State: SysState(i)}
		result := FormatPayload(MsgStateData, p.Encode())
		if !strings.Contains(result, name) {
			t.Errorf("State %d should format as '%s', got '%s'", i, name, result)
		}
	}
}

func TestFormatPacket(t *testing.T) {
	p := NewStateData(0x123456789ABCDEF0, SysStateInitializing, ErrorNone)
	result := FormatPacket(p)
	if !strings.Contains(result, "STATE_DATA") {
		t.Error("Should contain message type")
	}
	if !strings.Contains(result, "123456789ABCDEF0") {
		t.Error("Should contain address")
	}
}

// ============================================================
// Statistics Tests
// ============================================================

func TestStatistics_NewStatistics(t *testing.T) {
	s := NewStatistics()
	if s.TotalPackets != 0 {
		t.Error("New statistics should have 0 total packets")
	}
	if s.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
}

func TestStatistics_Update_ValidPacket(t *testing.T) {
	s := NewStatistics()
	p := NewPingRequest(0x123456789ABCDEF0)

	s.Update(p, nil, nil)

	if s.TotalPackets != 1 {
		t.Errorf("TotalPackets should be 1, got %d", s.TotalPackets)
	}
	if s.ValidPackets != 1 {
		t.Errorf("ValidPackets should be 1, got %d", s.ValidPackets)
	}
}

func TestStatistics_Update_CRCError(t *testing.T) {
	s := NewStatistics()
	s.Update(nil, ErrCRCMismatch, nil)

	if s.TotalPackets != 1 {
		t.Errorf("TotalPackets should be 1, got %d", s.TotalPackets)
	}
	if s.CRCErrors != 1 {
		t.Errorf("CRCErrors should be 1, got %d", s.CRCErrors)
	}
}

func TestStatistics_Update_DecodeError(t *testing.T) {
	s := NewStatistics()
	s.Update(nil, ErrInvalidLength, nil)

	if s.DecodeErrors != 1 {
		t.Errorf("DecodeErrors should be 1, got %d", s.DecodeErrors)
	}
}

func TestStatistics_Reset(t *testing.T) {
	s := NewStatistics()
	s.TotalPackets = 100
	s.ValidPackets = 95
	s.CRCErrors = 5

	s.Reset()

	if s.TotalPackets != 0 || s.ValidPackets != 0 || s.CRCErrors != 0 {
		t.Error("counters should be zero after reset")
	}
}

func TestStatistics_String(t *testing.T) {
	s := NewStatistics()
	s.TotalPackets = 100
	s.ValidPackets = 90
	s.CRCErrors = 3

	result := s.String()
	if !strings.Contains(result, "Total Packets") || !strings.Contains(result, "CRC Errors") {
		t.Error("String() should mention packet and CRC error counts")
	}
}

// ============================================================
// Encoder Tests
// ============================================================

func TestEncodePacket_PayloadTooLarge(t *testing.T) {
	_, err := EncodePacket(0, MsgMotorConfig, make([]byte, MaxPayloadSize+1))
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodePacket_RoundTrip(t *testing.T) {
	address := uint64(0xAABBCCDD11223344)
	cfg := GlowConfigPayload{Glow: 1, MaxDurationMs: 120000}
	encoded, err := EncodePacket(address, MsgGlowConfig, cfg.Encode())
	if err != nil {
		t.Fatalf("EncodePacket failed: %v", err)
	}

	packet, err := DecodePacket(encoded)
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	if packet.Address() != address {
		t.Errorf("Address mismatch: got 0x%016X, want 0x%016X", packet.Address(), address)
	}
	if packet.Type() != MsgGlowConfig {
		t.Errorf("Type mismatch: got 0x%02X, want 0x%02X", packet.Type(), MsgGlowConfig)
	}
}
