// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package etc2 decodes the ETC (Ericsson Texture Compression) image format,
// supporting versions 1 and 2.
//
// ETC is often wrapped in .pkm container files (iPACKMAN was an earlier name
// for ETC), which prepends a small (16 byte) header stating width, height and
// format. ETC can also appear in .ktx (Khronos Texture) files. Parsing those
// containers is done by the sibling pkm, ktx and texture packages. This
// package works on the compressed blocks that follow the header.
//
// ETC is specified at
// https://registry.khronos.org/DataFormat/specs/1.3/dataformat.1.3.html#ETC2
package etc2

import (
	"errors"
	"image/color"
)

var (
	ErrBadArgument            = errors.New("etc2: bad argument")
	ErrInvalidFormat          = errors.New("etc2: invalid format")
	ErrMalformedBlock         = errors.New("etc2: malformed block")
	ErrNoHeader               = errors.New("etc2: no header")
	ErrTruncatedInput         = errors.New("etc2: truncated input")
	ErrUnsupportedEndianness  = errors.New("etc2: unsupported endianness")
	ErrUnsupportedTextureType = errors.New("etc2: unsupported texture type")
	ErrUnsupportedVersion     = errors.New("etc2: unsupported version")
)

// AlphaModel is a Format's transparency model.
type AlphaModel uint8

const (
	AlphaModelOpaque = AlphaModel(0)
	AlphaModel1Bit   = AlphaModel(1)
	AlphaModel8Bit   = AlphaModel(2)
)

// Format gives the "color type" specialization of the ETC family, also known
// as the texture type.
//
// A non-negative numerical int8 value matches that used in the PKM file
// format.
//
// Only FormatETC1, FormatETC2RGB, FormatETC2RGBA8 and FormatETC2RGBA1 can be
// decoded. The other values are recognized (so that a header naming them can
// be reported precisely) but every decoding function rejects them with
// ErrUnsupportedTextureType.
//
// The "RGBA" in these constants' names match those used by other ETC
// documentation but note that it uses non-premultiplied alpha. The
// corresponding image and color types from Go's standard library are called
// NRGBA, not RGBA.
type Format int8

const (
	FormatInvalid = Format(-1)

	FormatETC1 = Format(0x00)

	FormatETC2RGB   = Format(0x01)
	FormatETC2RGBA8 = Format(0x03)
	FormatETC2RGBA1 = Format(0x04)

	FormatETC2R11Unsigned  = Format(0x05)
	FormatETC2RG11Unsigned = Format(0x06)
	FormatETC2R11Signed    = Format(0x07)
	FormatETC2RG11Signed   = Format(0x08)

	FormatETC2SRGB   = Format(0x09)
	FormatETC2SRGBA8 = Format(0x0A)
	FormatETC2SRGBA1 = Format(0x0B)
)

var formatNames = [12]string{
	0x00: "ETC1_RGB",
	0x01: "ETC2_RGB",
	0x03: "ETC2_RGBA",
	0x04: "ETC2_RGBA1",
	0x05: "ETC2_R11_UNSIGNED",
	0x06: "ETC2_RG11_UNSIGNED",
	0x07: "ETC2_R11_SIGNED",
	0x08: "ETC2_RG11_SIGNED",
	0x09: "ETC2_SRGB",
	0x0A: "ETC2_SRGBA",
	0x0B: "ETC2_SRGBA1",
}

func (f Format) String() string {
	if (0 <= f) && (int(f) < len(formatNames)) && (formatNames[f] != "") {
		return formatNames[f]
	}
	return "INVALID"
}

// Supported returns whether this package can decode the Format.
func (f Format) Supported() bool {
	switch f {
	case FormatETC1,
		FormatETC2RGB,
		FormatETC2RGBA8,
		FormatETC2RGBA1:
		return true
	}
	return false
}

// AlphaModel returns the Format's transparency model.
func (f Format) AlphaModel() AlphaModel {
	switch f {
	case FormatETC1,
		FormatETC2RGB,
		FormatETC2SRGB,
		FormatETC2R11Unsigned,
		FormatETC2RG11Unsigned,
		FormatETC2R11Signed,
		FormatETC2RG11Signed:
		return AlphaModelOpaque

	case FormatETC2RGBA8,
		FormatETC2SRGBA8:
		return AlphaModel8Bit

	case FormatETC2RGBA1,
		FormatETC2SRGBA1:
		return AlphaModel1Bit
	}

	return 0
}

// BytesPerBlock returns the Format-dependent number of bytes used to encode
// each 4×4 pixel block.
func (f Format) BytesPerBlock() int {
	switch f {
	case FormatETC1,
		FormatETC2RGB,
		FormatETC2RGBA1,
		FormatETC2R11Unsigned,
		FormatETC2R11Signed,
		FormatETC2SRGB,
		FormatETC2SRGBA1:
		return 8

	case FormatETC2RGBA8,
		FormatETC2RG11Unsigned,
		FormatETC2RG11Signed,
		FormatETC2SRGBA8:
		return 16
	}

	return 0
}

// Channels returns the number of bytes per pixel in a decoded PixelBuffer:
// 3 (RGB) or 4 (RGBA). It returns 0 for unsupported Formats.
func (f Format) Channels() int {
	switch f {
	case FormatETC1,
		FormatETC2RGB:
		return 3

	case FormatETC2RGBA8,
		FormatETC2RGBA1:
		return 4
	}

	return 0
}

// ETCVersion returns 0, 1 or 2 depending on whether the Format is invalid,
// from ETC1 or from ETC2.
func (f Format) ETCVersion() int {
	switch f {
	case FormatETC1:
		return 1

	case FormatETC2RGB,
		FormatETC2RGBA8,
		FormatETC2RGBA1,
		FormatETC2R11Unsigned,
		FormatETC2RG11Unsigned,
		FormatETC2R11Signed,
		FormatETC2RG11Signed,
		FormatETC2SRGB,
		FormatETC2SRGBA8,
		FormatETC2SRGBA1:
		return 2
	}

	return 0
}

// ColorModel returns the Go standard library's color model that best matches
// the Format.
func (f Format) ColorModel() color.Model {
	switch f {
	case FormatETC1,
		FormatETC2RGB,
		FormatETC2RGBA1,
		FormatETC2SRGB,
		FormatETC2SRGBA1:
		return color.RGBAModel

	case FormatETC2RGBA8,
		FormatETC2SRGBA8:
		return color.NRGBAModel

	case FormatETC2R11Unsigned,
		FormatETC2R11Signed:
		return color.Gray16Model

	case FormatETC2RG11Unsigned,
		FormatETC2RG11Signed:
		return color.RGBA64Model
	}

	return nil
}

// OpenGLInternalFormat returns the OpenGL internalFormat enum value for f, as
// also stored in a KTX file's glInternalFormat field.
func (f Format) OpenGLInternalFormat() uint32 {
	switch f {
	case FormatETC1:
		return 0x8D64 // GL_ETC1_RGB8_OES
	case FormatETC2RGB:
		return 0x9274 // GL_COMPRESSED_RGB8_ETC2
	case FormatETC2RGBA8:
		return 0x9278 // GL_COMPRESSED_RGBA8_ETC2_EAC
	case FormatETC2RGBA1:
		return 0x9276 // GL_COMPRESSED_RGB8_PUNCHTHROUGH_ALPHA1_ETC2
	case FormatETC2R11Unsigned:
		return 0x9270 // GL_COMPRESSED_R11_EAC
	case FormatETC2RG11Unsigned:
		return 0x9272 // GL_COMPRESSED_RG11_EAC
	case FormatETC2R11Signed:
		return 0x9271 // GL_COMPRESSED_SIGNED_R11_EAC
	case FormatETC2RG11Signed:
		return 0x9273 // GL_COMPRESSED_SIGNED_RG11_EAC
	case FormatETC2SRGB:
		return 0x9275 // GL_COMPRESSED_SRGB8_ETC2
	case FormatETC2SRGBA8:
		return 0x9279 // GL_COMPRESSED_SRGB8_ALPHA8_ETC2_EAC
	case FormatETC2SRGBA1:
		return 0x9277 // GL_COMPRESSED_SRGB8_PUNCHTHROUGH_ALPHA1_ETC2
	}

	return 0
}
