// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

// AlphaBlock is a decoded 4×4 block of EAC alpha values, indexed by [y][x].
type AlphaBlock [4][4]uint8

// DecodeAlphaBlock decodes the 8 byte EAC alpha block src into dst.
//
// The first byte is the base value. The second byte holds a 4-bit multiplier
// (high nibble) and a 4-bit modifier table selector (low nibble). The other
// six bytes hold sixteen 3-bit modifier indexes, most significant bit first.
func DecodeAlphaBlock(dst *AlphaBlock, src []byte) error {
	if dst == nil {
		return ErrBadArgument
	} else if len(src) < 8 {
		return ErrTruncatedInput
	}
	decodeAlpha(dst, readU64BE(src))
	return nil
}

func decodeAlpha(dst *AlphaBlock, code uint64) {
	base := int32(field(code, 56, 8))
	multiplier := int32(field(code, 52, 4))
	table := &alphaModifiers[field(code, 48, 4)]

	// Like the color block's pixel indexes, these are column-major: the k'th
	// index is for the pixel at x = k/4, y = k%4.
	for k := range 16 {
		index := field(code, uint(45-(3*k)), 3)
		dst[k&3][k>>2] = clamp8(base + (multiplier * table[index]))
	}
}

var alphaModifiers = [16][8]int32{
	{-3, -6, -9, -15, 2, 5, 8, 14},
	{-3, -7, -10, -13, 2, 6, 9, 12},
	{-2, -5, -8, -13, 1, 4, 7, 12},
	{-2, -4, -6, -13, 1, 3, 5, 12},
	{-3, -6, -8, -12, 2, 5, 7, 11},
	{-3, -7, -9, -11, 2, 6, 8, 10},
	{-4, -7, -8, -11, 3, 6, 7, 10},
	{-3, -5, -8, -11, 2, 4, 7, 10},
	{-2, -6, -8, -10, 1, 5, 7, 9},
	{-2, -5, -8, -10, 1, 4, 7, 9},
	{-2, -4, -8, -10, 1, 3, 7, 9},
	{-2, -5, -7, -10, 1, 4, 6, 9},
	{-3, -4, -7, -10, 2, 3, 6, 9},
	{-1, -2, -3, -10, 0, 1, 2, 9},
	{-4, -6, -8, -9, 3, 5, 7, 8},
	{-3, -5, -7, -9, 2, 4, 6, 8},
}
