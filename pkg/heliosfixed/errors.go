// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package heliosfixed

import "errors"

var (
	ErrInvalidArgument = errors.New("heliosfixed: invalid argument")
	ErrBufferOverflow  = errors.New("heliosfixed: buffer overflow")
	ErrFramingError    = errors.New("heliosfixed: framing error")
	ErrInvalidLength   = errors.New("heliosfixed: invalid length")
	ErrCRCMismatch     = errors.New("heliosfixed: CRC mismatch")
	ErrInvalidMessage  = errors.New("heliosfixed: invalid message")
)
