// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package helios

import "github.com/Thermoquad/heliostat/internal/crc16"

// CalculateCRC computes CRC-16-CCITT checksum for the given data
func CalculateCRC(data []byte) uint16 {
	return crc16.CCITT(data, CRC_POLYNOMIAL, CRC_INITIAL)
}
