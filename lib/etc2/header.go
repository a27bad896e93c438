// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

import (
	"fmt"
)

// MaxDimension is the largest active width or height that this package will
// decode.
const MaxDimension = 65536

// Header is what a container (PKM or KTX) says about the compressed texture
// that follows it.
//
// The block dimensions are the active (true) dimensions rounded up to a
// multiple of 4. Every 4×4 block is compressed, even those that straddle the
// right or bottom edge of the active area.
type Header struct {
	Format Format

	BlockWidth  uint32
	BlockHeight uint32

	ActiveWidth  uint32
	ActiveHeight uint32
}

// NewHeader returns the Header for a width×height texture in the Format f.
func NewHeader(f Format, width uint32, height uint32) Header {
	return Header{
		Format:       f,
		BlockWidth:   roundUp4(width),
		BlockHeight:  roundUp4(height),
		ActiveWidth:  width,
		ActiveHeight: height,
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%v %dx%d (blocks %dx%d)",
		h.Format, h.ActiveWidth, h.ActiveHeight, h.BlockWidth, h.BlockHeight)
}

// Validate returns nil if h's Format can be decoded and its block dimensions
// are consistent with its active dimensions.
func (h Header) Validate() error {
	if !h.Format.Supported() {
		return ErrUnsupportedTextureType
	} else if (h.ActiveWidth > MaxDimension) || (h.ActiveHeight > MaxDimension) {
		return ErrInvalidFormat
	} else if (roundUp4(h.ActiveWidth) != h.BlockWidth) ||
		(roundUp4(h.ActiveHeight) != h.BlockHeight) {
		return ErrInvalidFormat
	}
	return nil
}

// BlockColumns returns the number of blocks per block row.
func (h Header) BlockColumns() int { return int(h.BlockWidth / 4) }

// BlockRows returns the number of block rows.
func (h Header) BlockRows() int { return int(h.BlockHeight / 4) }

// NumBlocks returns the total number of 4×4 blocks.
func (h Header) NumBlocks() int { return h.BlockColumns() * h.BlockRows() }

// CompressedSize returns the number of bytes of compressed data that follow
// the header.
func (h Header) CompressedSize() int { return h.NumBlocks() * h.Format.BytesPerBlock() }

// PixelBufferSize returns the length of the decoded PixelBuffer's Pix.
func (h Header) PixelBufferSize() int {
	return int(h.ActiveWidth) * int(h.ActiveHeight) * h.Format.Channels()
}

func roundUp4(x uint32) uint32 {
	return (x + 3) &^ 3
}
