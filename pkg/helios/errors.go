// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import "errors"

// Sentinel errors for use with errors.Is
var (
	ErrInvalidArgument = errors.New("helios: invalid argument")
	ErrBufferOverflow  = errors.New("helios: buffer overflow")
	ErrFramingError    = errors.New("helios: framing error")
	ErrInvalidLength   = errors.New("helios: invalid length")
	ErrCRCMismatch     = errors.New("helios: CRC mismatch")
	ErrInvalidMessage  = errors.New("helios: invalid message")
)
