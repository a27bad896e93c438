// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package pkm implements the PKM container format for ETC textures.
//
// A PKM file is a 16 byte header followed by the compressed blocks. All
// multi-byte header fields are big-endian.
package pkm

import (
	"fmt"

	"github.com/etcdecode/etc2/lib/etc2"
)

// Magic is the byte string prefix of every PKM image file.
const Magic = "PKM "

// HeaderSize is the size in bytes of a PKM header.
const HeaderSize = 16

var (
	ErrNotAPKMFile = fmt.Errorf("pkm: not a PKM file: %w", etc2.ErrInvalidFormat)
)

var pkmToETC2Formats = [12]etc2.Format{
	0x00: etc2.FormatETC1,
	0x01: etc2.FormatETC2RGB,
	0x02: etc2.FormatInvalid,
	0x03: etc2.FormatETC2RGBA8,
	0x04: etc2.FormatETC2RGBA1,
	0x05: etc2.FormatETC2R11Unsigned,
	0x06: etc2.FormatETC2RG11Unsigned,
	0x07: etc2.FormatETC2R11Signed,
	0x08: etc2.FormatETC2RG11Signed,
	0x09: etc2.FormatETC2SRGB,
	0x0A: etc2.FormatETC2SRGBA8,
	0x0B: etc2.FormatETC2SRGBA1,
}

// ParseHeader parses the 16 byte PKM header at the start of buf.
//
// Only version "10" headers are accepted. Later versions are rejected with
// etc2.ErrUnsupportedVersion. A texture type that is unknown, or known but
// not decodable, is rejected with etc2.ErrUnsupportedTextureType.
func ParseHeader(buf []byte) (etc2.Header, error) {
	if len(buf) < HeaderSize {
		return etc2.Header{}, etc2.ErrTruncatedInput
	} else if (buf[0] != Magic[0]) ||
		(buf[1] != Magic[1]) ||
		(buf[2] != Magic[2]) ||
		(buf[3] != Magic[3]) {
		return etc2.Header{}, ErrNotAPKMFile
	}

	if (buf[4] == '1') && (buf[5] == '0') {
		// No-op.
	} else if ('2' <= buf[4]) && (buf[4] <= '9') && ('0' <= buf[5]) && (buf[5] <= '9') {
		return etc2.Header{}, fmt.Errorf("pkm: version %q: %w", buf[4:6], etc2.ErrUnsupportedVersion)
	} else {
		return etc2.Header{}, ErrNotAPKMFile
	}

	// The texture type is 16 bits but only the low byte is significant.
	format := etc2.FormatInvalid
	if f := int(buf[7]); f < len(pkmToETC2Formats) {
		format = pkmToETC2Formats[f]
	}
	if !format.Supported() {
		return etc2.Header{}, fmt.Errorf("pkm: texture type 0x%02X (%v): %w",
			buf[7], format, etc2.ErrUnsupportedTextureType)
	}

	h := etc2.Header{
		Format:       format,
		BlockWidth:   (uint32(buf[8]) << 8) | uint32(buf[9]),
		BlockHeight:  (uint32(buf[10]) << 8) | uint32(buf[11]),
		ActiveWidth:  (uint32(buf[12]) << 8) | uint32(buf[13]),
		ActiveHeight: (uint32(buf[14]) << 8) | uint32(buf[15]),
	}
	if err := h.Validate(); err != nil {
		return etc2.Header{}, fmt.Errorf("pkm: %v: %w", h, err)
	}
	return h, nil
}

// Decode decodes a whole PKM file held in buf.
//
// options may be nil, which means to use the default configuration.
func Decode(buf []byte, options *etc2.DecodeOptions) (etc2.PixelBuffer, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return etc2.PixelBuffer{}, err
	}
	return etc2.Decode(h, buf[HeaderSize:], options)
}

// AppendHeader appends the 16 byte PKM header for h to dst.
func AppendHeader(dst []byte, h etc2.Header) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return dst, err
	} else if (h.BlockWidth > 0xFFFF) || (h.BlockHeight > 0xFFFF) {
		return dst, etc2.ErrBadArgument
	}
	return append(dst,
		Magic[0], Magic[1], Magic[2], Magic[3],
		'1', '0',
		0x00, byte(h.Format),
		uint8(h.BlockWidth>>8), uint8(h.BlockWidth>>0),
		uint8(h.BlockHeight>>8), uint8(h.BlockHeight>>0),
		uint8(h.ActiveWidth>>8), uint8(h.ActiveWidth>>0),
		uint8(h.ActiveHeight>>8), uint8(h.ActiveHeight>>0),
	), nil
}
