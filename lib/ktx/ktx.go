// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package ktx implements enough of the KTX (Khronos Texture, version 1)
// container format to decode ETC textures.
//
// Multi-byte header fields are read big-endian, so the endianness field must
// hold the bytes 04 03 02 01. Files written in the other byte order are
// rejected with etc2.ErrUnsupportedEndianness rather than byte-swapped.
//
// KTX is specified at
// https://registry.khronos.org/KTX/specs/1.0/ktxspec.v1.html
package ktx

import (
	"fmt"

	"github.com/etcdecode/etc2/lib/etc2"
)

// Magic is the byte string prefix of every KTX image file.
const Magic = "\xABKTX 11\xBB\r\n\x1A\n"

// HeaderSize is the size in bytes of a KTX header, excluding the key/value
// data that follows it.
const HeaderSize = 64

// Endianness is the expected value of the header's endianness field.
const Endianness = 0x04030201

var (
	ErrNotAKTXFile = fmt.Errorf("ktx: not a KTX file: %w", etc2.ErrInvalidFormat)
)

const (
	glRGB  = 0x1907
	glRGBA = 0x1908
)

// glFormats maps (glBaseInternalFormat, glInternalFormat) pairs to Formats.
var glFormats = map[[2]uint32]etc2.Format{
	{glRGB, 0x8D64}:  etc2.FormatETC1,
	{glRGB, 0x9274}:  etc2.FormatETC2RGB,
	{glRGBA, 0x9278}: etc2.FormatETC2RGBA8,
	{glRGBA, 0x9276}: etc2.FormatETC2RGBA1,
}

// fileHeader is a parsed KTX header. Only the fields needed to locate and
// decode the first mipmap level are kept.
type fileHeader struct {
	etc2.Header

	GLInternalFormat     uint32
	GLBaseInternalFormat uint32

	NumberOfMipmapLevels uint32
	BytesOfKeyValueData  uint32
}

func readU32BE(b []byte) uint32 {
	b = b[:4]
	return (uint32(b[0]) << 24) |
		(uint32(b[1]) << 16) |
		(uint32(b[2]) << 8) |
		(uint32(b[3]) << 0)
}

// ParseHeader parses the 64 byte KTX header at the start of buf.
func ParseHeader(buf []byte) (etc2.Header, error) {
	h, err := parseHeader(buf)
	return h.Header, err
}

func parseHeader(buf []byte) (fileHeader, error) {
	if len(buf) < HeaderSize {
		return fileHeader{}, etc2.ErrTruncatedInput
	} else if string(buf[:len(Magic)]) != Magic {
		return fileHeader{}, ErrNotAKTXFile
	}

	if e := readU32BE(buf[12:]); e != Endianness {
		return fileHeader{}, fmt.Errorf("ktx: endianness 0x%08X: %w", e, etc2.ErrUnsupportedEndianness)
	}

	h := fileHeader{
		GLInternalFormat:     readU32BE(buf[28:]),
		GLBaseInternalFormat: readU32BE(buf[32:]),
		NumberOfMipmapLevels: readU32BE(buf[56:]),
		BytesOfKeyValueData:  readU32BE(buf[60:]),
	}

	format, ok := glFormats[[2]uint32{h.GLBaseInternalFormat, h.GLInternalFormat}]
	if !ok {
		return fileHeader{}, fmt.Errorf("ktx: glInternalFormat 0x%04X, glBaseInternalFormat 0x%04X: %w",
			h.GLInternalFormat, h.GLBaseInternalFormat, etc2.ErrUnsupportedTextureType)
	}

	width := readU32BE(buf[36:])
	height := readU32BE(buf[40:])
	if (width > etc2.MaxDimension) || (height > etc2.MaxDimension) {
		return fileHeader{}, fmt.Errorf("ktx: %dx%d: %w", width, height, etc2.ErrInvalidFormat)
	}
	h.Header = etc2.NewHeader(format, width, height)
	return h, nil
}

// Decode decodes the first mipmap level of a whole KTX file held in buf.
//
// options may be nil, which means to use the default configuration.
func Decode(buf []byte, options *etc2.DecodeOptions) (etc2.PixelBuffer, error) {
	h, err := parseHeader(buf)
	if err != nil {
		return etc2.PixelBuffer{}, err
	}

	// The key/value data is followed by a 4 byte imageSize and then the
	// mipmap level's blocks.
	offset := uint64(HeaderSize) + uint64(h.BytesOfKeyValueData)
	if uint64(len(buf)) < (offset + 4) {
		return etc2.PixelBuffer{}, etc2.ErrTruncatedInput
	}
	imageSize := readU32BE(buf[offset:])
	if uint64(imageSize) < uint64(h.CompressedSize()) {
		return etc2.PixelBuffer{}, fmt.Errorf("ktx: imageSize %d: %w", imageSize, etc2.ErrInvalidFormat)
	}
	return etc2.Decode(h.Header, buf[offset+4:], options)
}

// AppendHeader appends the 64 byte KTX header for a single mipmap level,
// non-array 2D texture with no key/value data, followed by the 4 byte
// imageSize field, to dst.
func AppendHeader(dst []byte, h etc2.Header) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return dst, err
	}
	base := uint32(glRGB)
	if h.Format.Channels() == 4 {
		base = glRGBA
	}
	dst = append(dst, Magic...)
	for _, u := range [...]uint32{
		Endianness,
		0, // glType
		1, // glTypeSize
		0, // glFormat
		h.Format.OpenGLInternalFormat(),
		base,
		h.ActiveWidth,
		h.ActiveHeight,
		0, // pixelDepth
		0, // numberOfArrayElements
		1, // numberOfFaces
		1, // numberOfMipmapLevels
		0, // bytesOfKeyValueData
		uint32(h.CompressedSize()),
	} {
		dst = append(dst, uint8(u>>24), uint8(u>>16), uint8(u>>8), uint8(u>>0))
	}
	return dst, nil
}
