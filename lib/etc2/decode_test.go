// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBlocks are four color blocks in four different modes: Individual, T,
// Planar and Differential.
var testBlocks = [4][8]byte{
	{0xF0, 0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0xFB, 0x12, 0x34, 0x56, 0x12, 0x34, 0x56, 0x78},
	{0x80, 0x80, 0xFB, 0x12, 0x34, 0x56, 0x78, 0x9A},
	{0x81, 0x87, 0x80, 0x37, 0x00, 0xFF, 0xF0, 0x0F},
}

func concatTestBlocks() (ret []byte) {
	for _, b := range testBlocks {
		ret = append(ret, b[:]...)
	}
	return ret
}

func randomBytes(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = uint8(rng.Intn(256))
	}
	return b
}

func TestDecodeClipsToActiveArea(tt *testing.T) {
	// A 6×6 texture is a 2×2 grid of blocks, 8×8 pixels of which only 6×6
	// are kept.
	h := NewHeader(FormatETC2RGB, 6, 6)
	require.Equal(tt, uint32(8), h.BlockWidth)
	require.Equal(tt, uint32(8), h.BlockHeight)

	src := concatTestBlocks()
	got, err := Decode(h, src, nil)
	require.NoError(tt, err)
	assert.Equal(tt, 6, got.Width)
	assert.Equal(tt, 6, got.Height)
	assert.Equal(tt, 3, got.Channels)
	require.Len(tt, got.Pix, 6*6*3)

	blocks := [4]ColorBlock{}
	for i := range blocks {
		require.NoError(tt, DecodeColorBlock(&blocks[i], testBlocks[i][:], false))
	}
	for y := range 6 {
		for x := range 6 {
			c := blocks[(2*(y/4))+(x/4)].Colors[y%4][x%4]
			o := (6*y + x) * 3
			assert.Equal(tt, c[:], got.Pix[o:o+3], "(%d, %d)", x, y)
		}
	}
}

func TestDecodeRGBA8(tt *testing.T) {
	// Each unit is an alpha block followed by a color block.
	h := NewHeader(FormatETC2RGBA8, 4, 3)
	src := []byte{
		0x80, 0x2D, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC,
		0xF0, 0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	got, err := Decode(h, src, nil)
	require.NoError(tt, err)
	require.Len(tt, got.Pix, 4*3*4)
	assert.Equal(tt, 4, got.Channels)

	wantAlpha := [3][4]uint8{
		{126, 122, 108, 130},
		{128, 124, 132, 122},
		{128, 122, 124, 146},
	}
	for y := range 3 {
		for x := range 4 {
			o := (4*y + x) * 4
			wantRGB := []byte{255, 2, 2}
			if x >= 2 {
				wantRGB = []byte{2, 255, 2}
			}
			assert.Equal(tt, wantRGB, got.Pix[o:o+3], "(%d, %d)", x, y)
			assert.Equal(tt, wantAlpha[y][x], got.Pix[o+3], "(%d, %d)", x, y)
		}
	}
}

func TestDecodeRGBA1(tt *testing.T) {
	h := NewHeader(FormatETC2RGBA1, 4, 4)
	src := []byte{0xFB, 0x12, 0x34, 0x54, 0x0F, 0x0F, 0x33, 0x33}
	got, err := Decode(h, src, nil)
	require.NoError(tt, err)
	require.Len(tt, got.Pix, 4*4*4)

	// Pixel (0, 2) has index 10 and is transparent. Pixel (1, 2) has index
	// 00 and is the first paint color.
	assert.Equal(tt, []byte{0, 0, 0, 0}, got.Pix[(4*2+0)*4:][:4])
	assert.Equal(tt, []byte{255, 17, 34, 255}, got.Pix[(4*2+1)*4:][:4])
}

func TestDecodeErrors(tt *testing.T) {
	_, err := Decode(NewHeader(FormatETC2RGB, 8, 8), make([]byte, 31), nil)
	assert.ErrorIs(tt, err, ErrTruncatedInput)

	_, err = Decode(NewHeader(FormatETC2R11Unsigned, 8, 8), make([]byte, 64), nil)
	assert.ErrorIs(tt, err, ErrUnsupportedTextureType)

	_, err = Decode(Header{Format: FormatETC1, BlockWidth: 4, BlockHeight: 4, ActiveWidth: 8, ActiveHeight: 4}, make([]byte, 64), nil)
	assert.ErrorIs(tt, err, ErrInvalidFormat)

	_, err = Decode(NewHeader(FormatETC1, 4, 4), make([]byte, 8), &DecodeOptions{Workers: -1})
	assert.ErrorIs(tt, err, ErrBadArgument)
}

func TestDecodeIgnoresTrailingBytes(tt *testing.T) {
	h := NewHeader(FormatETC1, 8, 8)
	src := concatTestBlocks()
	want, err := Decode(h, src, nil)
	require.NoError(tt, err)
	got, err := Decode(h, append(src, 0xFF, 0xFF, 0xFF), nil)
	require.NoError(tt, err)
	assert.Equal(tt, want, got)
}

func TestDecodeParallelMatchesSequential(tt *testing.T) {
	for _, f := range []Format{FormatETC1, FormatETC2RGB, FormatETC2RGBA8, FormatETC2RGBA1} {
		h := NewHeader(f, 130, 70)
		src := randomBytes(int64(f)+1, h.CompressedSize())

		want, err := Decode(h, src, &DecodeOptions{Workers: 1})
		require.NoError(tt, err, "format=%v", f)
		for _, workers := range []int{0, 2, 7} {
			got, err := Decode(h, src, &DecodeOptions{Workers: workers})
			require.NoError(tt, err, "format=%v workers=%d", f, workers)
			assert.Equal(tt, want, got, "format=%v workers=%d", f, workers)
		}
	}
}

func TestDecoderIncremental(tt *testing.T) {
	h := NewHeader(FormatETC2RGB, 6, 6)
	src := concatTestBlocks()
	want, err := Decode(h, src, nil)
	require.NoError(tt, err)

	d, err := NewDecoder(h)
	require.NoError(tt, err)

	// Less than one block consumes nothing.
	for _, n := range []int{0, 1, 7} {
		consumed, err := d.Feed(src[:n])
		assert.ErrorIs(tt, err, ErrTruncatedInput)
		assert.Equal(tt, 0, consumed)
	}
	_, err = d.Finish()
	assert.ErrorIs(tt, err, ErrTruncatedInput)

	// Partial blocks are left for the caller to pass again.
	consumed, err := d.Feed(src[:12])
	require.NoError(tt, err)
	assert.Equal(tt, 8, consumed)
	assert.Equal(tt, 1, d.Cursor())
	assert.False(tt, d.Done())

	// Whole blocks are consumed exactly, and once the last block is decoded
	// the trailing bytes are ignored.
	consumed, err = d.Feed(src[8:16])
	require.NoError(tt, err)
	assert.Equal(tt, 8, consumed)
	consumed, err = d.Feed(append(src[16:32:32], 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x00, 0x11))
	require.NoError(tt, err)
	assert.Equal(tt, 16, consumed)
	assert.True(tt, d.Done())
	assert.Equal(tt, 4, d.Cursor())

	consumed, err = d.Feed(src)
	require.NoError(tt, err)
	assert.Equal(tt, 0, consumed)

	got, err := d.Finish()
	require.NoError(tt, err)
	assert.Equal(tt, want, got)

	// Finish is idempotent: the buffer was assembled once.
	again, err := d.Finish()
	require.NoError(tt, err)
	assert.Same(tt, &got.Pix[0], &again.Pix[0])
}

func TestDecoderIncrementalRGBA8(tt *testing.T) {
	h := NewHeader(FormatETC2RGBA8, 8, 4)
	src := randomBytes(5, h.CompressedSize())
	want, err := Decode(h, src, nil)
	require.NoError(tt, err)

	d, err := NewDecoder(h)
	require.NoError(tt, err)

	// An alpha block without its color block is not a whole unit.
	consumed, err := d.Feed(src[:8])
	assert.ErrorIs(tt, err, ErrTruncatedInput)
	assert.Equal(tt, 0, consumed)
	consumed, err = d.Feed(src[:24])
	require.NoError(tt, err)
	assert.Equal(tt, 16, consumed)
	consumed, err = d.Feed(src[16:])
	require.NoError(tt, err)
	assert.Equal(tt, 16, consumed)

	got, err := d.Finish()
	require.NoError(tt, err)
	assert.Equal(tt, want, got)
}

func TestDecoderStates(tt *testing.T) {
	d := &Decoder{}
	_, err := d.Feed(make([]byte, 8))
	assert.ErrorIs(tt, err, ErrNoHeader)
	_, err = d.Finish()
	assert.ErrorIs(tt, err, ErrNoHeader)

	_, err = NewDecoder(NewHeader(FormatETC2SRGB, 4, 4))
	assert.ErrorIs(tt, err, ErrUnsupportedTextureType)

	// A texture with no blocks is complete from the start.
	d, err = NewDecoder(NewHeader(FormatETC1, 0, 0))
	require.NoError(tt, err)
	assert.True(tt, d.Done())
	got, err := d.Finish()
	require.NoError(tt, err)
	assert.Empty(tt, got.Pix)
}

func TestPixelBufferImage(tt *testing.T) {
	h := NewHeader(FormatETC2RGB, 6, 6)
	buf, err := Decode(h, concatTestBlocks(), nil)
	require.NoError(tt, err)
	assert.Equal(tt, 18, buf.Stride())

	m, ok := buf.Image().(*image.RGBA)
	require.True(tt, ok)
	assert.Equal(tt, image.Rect(0, 0, 6, 6), m.Bounds())
	c := m.RGBAAt(5, 1)
	assert.Equal(tt, buf.Pix[(6*1+5)*3:][:3], []byte{c.R, c.G, c.B})
	assert.Equal(tt, uint8(0xFF), c.A)

	h = NewHeader(FormatETC2RGBA8, 4, 4)
	buf, err = Decode(h, randomBytes(9, h.CompressedSize()), nil)
	require.NoError(tt, err)
	n, ok := buf.Image().(*image.NRGBA)
	require.True(tt, ok)
	assert.Equal(tt, buf.Pix, n.Pix)
}
