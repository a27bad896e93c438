// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

// Compressed blocks are big-endian 64-bit codes. Bit 63 is the most
// significant bit of byte 0 and bit 0 is the least significant bit of byte 7.
// The field extraction helpers below are in terms of that 64-bit code.

func readU64BE(b []byte) uint64 {
	b = b[:8]
	return 0 |
		(uint64(b[0]) << 56) |
		(uint64(b[1]) << 48) |
		(uint64(b[2]) << 40) |
		(uint64(b[3]) << 32) |
		(uint64(b[4]) << 24) |
		(uint64(b[5]) << 16) |
		(uint64(b[6]) << 8) |
		(uint64(b[7]) << 0)
}

// bit returns bit i of code.
func bit(code uint64, i uint) uint32 {
	return uint32(code>>i) & 1
}

// field returns the n-bit unsigned field of code whose least significant bit
// is bit lsb.
func field(code uint64, lsb uint, n uint) uint32 {
	return uint32(code>>lsb) & ((1 << n) - 1)
}

// signed3 sign-extends a 3-bit two's complement value.
func signed3(x uint32) int32 {
	return (int32(x&7) ^ 4) - 4
}

// extend4 replicates a 4-bit value to 8 bits.
func extend4(x uint32) int32 {
	x &= 0x0F
	return int32((x << 4) | x)
}

// extend5 replicates a 5-bit value to 8 bits.
func extend5(x uint32) int32 {
	x &= 0x1F
	return int32((x << 3) | (x >> 2))
}

// extend6 replicates a 6-bit value to 8 bits.
func extend6(x uint32) int32 {
	x &= 0x3F
	return int32((x << 2) | (x >> 4))
}

// extend7 replicates a 7-bit value to 8 bits.
func extend7(x uint32) int32 {
	x &= 0x7F
	return int32((x << 1) | (x >> 6))
}

func clamp8(x int32) uint8 {
	return uint8(max(0, min(255, x)))
}
