// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package fusain

import "errors"

// Sentinel errors returned by the encoder and decoder. Wrapped with %w so
// callers can branch with errors.Is instead of matching message text.
var (
	ErrInvalidArgument = errors.New("fusain: invalid argument")
	ErrBufferOverflow  = errors.New("fusain: buffer overflow")
	ErrFramingError    = errors.New("fusain: framing error")
	ErrInvalidLength   = errors.New("fusain: invalid length")
	ErrCRCMismatch     = errors.New("fusain: CRC mismatch")
	ErrInvalidMessage  = errors.New("fusain: invalid message")
)
