// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

// BlockMode is how an 8 byte ETC color block is encoded. It is not stored
// explicitly. It is inferred from the diff bit and from whether the
// differential-mode red, green or blue sums overflow 5 bits.
type BlockMode uint8

const (
	ModeIndividual   = BlockMode(0)
	ModeDifferential = BlockMode(1)
	ModeT            = BlockMode(2)
	ModeH            = BlockMode(3)
	ModePlanar       = BlockMode(4)
)

func (m BlockMode) String() string {
	switch m {
	case ModeIndividual:
		return "Individual"
	case ModeDifferential:
		return "Differential"
	case ModeT:
		return "T"
	case ModeH:
		return "H"
	case ModePlanar:
		return "Planar"
	}
	return "Invalid"
}

// ColorBlock is a decoded 4×4 block of RGB pixels, indexed by [y][x].
//
// Alpha is only meaningful when HasAlpha is true, which is when the block
// was decoded with punchthrough (1-bit) alpha. Its values are then either
// 0x00 or 0xFF.
type ColorBlock struct {
	Mode     BlockMode
	Colors   [4][4][3]uint8
	Alpha    [4][4]uint8
	HasAlpha bool
}

// ColorBlockMode returns the BlockMode of the 8 byte block src.
func ColorBlockMode(src []byte, punchthrough bool) (BlockMode, error) {
	if len(src) < 8 {
		return 0, ErrTruncatedInput
	}
	return parseColorParams(readU64BE(src), punchthrough).mode(), nil
}

// DecodeColorBlock decodes the 8 byte ETC1 or ETC2 color block src into dst.
//
// punchthrough should be true for FormatETC2RGBA1 and false otherwise. It
// changes the meaning of the diff bit, which becomes an opaque bit.
func DecodeColorBlock(dst *ColorBlock, src []byte, punchthrough bool) error {
	if dst == nil {
		return ErrBadArgument
	} else if len(src) < 8 {
		return ErrTruncatedInput
	}
	decodeColor(dst, readU64BE(src), punchthrough)
	return nil
}

func decodeColor(dst *ColorBlock, code uint64, punchthrough bool) {
	p := parseColorParams(code, punchthrough)

	// With punchthrough alpha, the diff bit says whether the block is
	// entirely opaque. Planar blocks are always opaque.
	transparent := punchthrough && (bit(code, 33) == 0)

	dst.Mode = p.mode()
	dst.HasAlpha = punchthrough
	for y := range 4 {
		for x := range 4 {
			dst.Alpha[y][x] = 0xFF
		}
	}
	p.render(dst, code, transparent)
}

// colorParams is the mode-specific payload of a color block. Each BlockMode
// has its own concrete type.
type colorParams interface {
	mode() BlockMode
	render(dst *ColorBlock, code uint64, transparent bool)
}

// parseColorParams works out the block's mode and unpacks its fields. The
// overflow tests must happen in this order, as the bit patterns overlap.
func parseColorParams(code uint64, punchthrough bool) colorParams {
	flip := bit(code, 32) != 0

	if !punchthrough && (bit(code, 33) == 0) {
		return &individualParams{subBlocks{
			base: [2][3]int32{{
				extend4(field(code, 60, 4)),
				extend4(field(code, 52, 4)),
				extend4(field(code, 44, 4)),
			}, {
				extend4(field(code, 56, 4)),
				extend4(field(code, 48, 4)),
				extend4(field(code, 40, 4)),
			}},
			table: [2]uint32{field(code, 37, 3), field(code, 34, 3)},
			flip:  flip,
		}}
	}

	r1 := int32(field(code, 59, 5))
	g1 := int32(field(code, 51, 5))
	b1 := int32(field(code, 43, 5))
	r2 := r1 + signed3(field(code, 56, 3))
	g2 := g1 + signed3(field(code, 48, 3))
	b2 := b1 + signed3(field(code, 40, 3))

	if (r2 < 0) || (31 < r2) {
		return parseT(code)
	} else if (g2 < 0) || (31 < g2) {
		return parseH(code)
	} else if (b2 < 0) || (31 < b2) {
		return parsePlanar(code)
	}

	return &differentialParams{subBlocks{
		base: [2][3]int32{
			{extend5(uint32(r1)), extend5(uint32(g1)), extend5(uint32(b1))},
			{extend5(uint32(r2)), extend5(uint32(g2)), extend5(uint32(b2))},
		},
		table: [2]uint32{field(code, 37, 3), field(code, 34, 3)},
		flip:  flip,
	}}
}

// subBlocks holds the two half-block base colors and modifier tables shared
// by the Individual and Differential modes. When flip is false the halves
// are the left and right 2×4 columns, otherwise the top and bottom 4×2 rows.
type subBlocks struct {
	base  [2][3]int32
	table [2]uint32
	flip  bool
}

type individualParams struct{ subBlocks }

type differentialParams struct{ subBlocks }

func (p *individualParams) mode() BlockMode { return ModeIndividual }

func (p *differentialParams) mode() BlockMode { return ModeDifferential }

func (p *subBlocks) render(dst *ColorBlock, code uint64, transparent bool) {
	for y := range 4 {
		for x := range 4 {
			half := x >> 1
			if p.flip {
				half = y >> 1
			}
			index := pixelIndex(code, x, y)

			if transparent && (index == transparentIndex) {
				dst.Colors[y][x] = [3]uint8{}
				dst.Alpha[y][x] = 0x00
				continue
			}

			mod := modifiers[p.table[half]][index]
			if transparent && ((index & 1) == 0) {
				mod = 0
			}
			base := &p.base[half]
			dst.Colors[y][x] = [3]uint8{
				clamp8(base[0] + mod),
				clamp8(base[1] + mod),
				clamp8(base[2] + mod),
			}
		}
	}
}

// paintColors holds the four candidate colors of the T and H modes. A
// pixel's 2-bit index selects one of them directly.
type paintColors struct {
	paints [4][3]int32
}

type tParams struct{ paintColors }

type hParams struct{ paintColors }

func (p *tParams) mode() BlockMode { return ModeT }

func (p *hParams) mode() BlockMode { return ModeH }

func parseT(code uint64) *tParams {
	c1 := [3]int32{
		extend4((field(code, 59, 2) << 2) | field(code, 56, 2)),
		extend4(field(code, 52, 4)),
		extend4(field(code, 48, 4)),
	}
	c2 := [3]int32{
		extend4(field(code, 44, 4)),
		extend4(field(code, 40, 4)),
		extend4(field(code, 36, 4)),
	}
	d := distances[(field(code, 34, 2)<<1)|bit(code, 32)]

	p := &tParams{}
	for c := range 3 {
		p.paints[0][c] = c1[c]
		p.paints[1][c] = c2[c] + d
		p.paints[2][c] = c2[c]
		p.paints[3][c] = c2[c] - d
	}
	return p
}

func parseH(code uint64) *hParams {
	c1 := [3]int32{
		extend4(field(code, 59, 4)),
		extend4((field(code, 56, 3) << 1) | bit(code, 52)),
		extend4((bit(code, 51) << 3) | field(code, 47, 3)),
	}
	c2 := [3]int32{
		extend4(field(code, 43, 4)),
		extend4(field(code, 39, 4)),
		extend4(field(code, 35, 4)),
	}

	// The distance index's least significant bit is not stored. It is
	// implied by the ordering of the two base colors.
	di := (bit(code, 34) << 2) | (bit(code, 32) << 1)
	if ((c1[0] << 16) | (c1[1] << 8) | c1[2]) >= ((c2[0] << 16) | (c2[1] << 8) | c2[2]) {
		di |= 1
	}
	d := distances[di]

	p := &hParams{}
	for c := range 3 {
		p.paints[0][c] = c1[c] + d
		p.paints[1][c] = c1[c] - d
		p.paints[2][c] = c2[c] + d
		p.paints[3][c] = c2[c] - d
	}
	return p
}

func (p *paintColors) render(dst *ColorBlock, code uint64, transparent bool) {
	for y := range 4 {
		for x := range 4 {
			index := pixelIndex(code, x, y)
			if transparent && (index == transparentIndex) {
				dst.Colors[y][x] = [3]uint8{}
				dst.Alpha[y][x] = 0x00
				continue
			}
			paint := &p.paints[index]
			dst.Colors[y][x] = [3]uint8{
				clamp8(paint[0]),
				clamp8(paint[1]),
				clamp8(paint[2]),
			}
		}
	}
}

// planarParams holds the Planar mode's origin, horizontal and vertical
// colors, already expanded from 6, 7 and 6 bits (R, G, B) to 8 bits.
type planarParams struct {
	o, h, v [3]int32
}

func (p *planarParams) mode() BlockMode { return ModePlanar }

func parsePlanar(code uint64) *planarParams {
	return &planarParams{
		o: [3]int32{
			extend6(field(code, 57, 6)),
			extend7((bit(code, 56) << 6) | field(code, 49, 6)),
			extend6((bit(code, 48) << 5) | (field(code, 43, 2) << 3) | field(code, 39, 3)),
		},
		h: [3]int32{
			extend6((field(code, 34, 5) << 1) | bit(code, 32)),
			extend7(field(code, 25, 7)),
			extend6(field(code, 19, 6)),
		},
		v: [3]int32{
			extend6(field(code, 13, 6)),
			extend7(field(code, 6, 7)),
			extend6(field(code, 0, 6)),
		},
	}
}

func (p *planarParams) render(dst *ColorBlock, code uint64, transparent bool) {
	for y := range int32(4) {
		for x := range int32(4) {
			for c := range 3 {
				dst.Colors[y][x][c] = clamp8(((x * (p.h[c] - p.o[c])) +
					(y * (p.v[c] - p.o[c])) +
					(4 * p.o[c]) + 2) >> 2)
			}
		}
	}
}

// transparentIndex is the pixel index (MSB set, LSB clear) that means fully
// transparent in a punchthrough block whose opaque bit is clear.
const transparentIndex = 2

// pixelIndex returns the 2-bit index of the pixel at (x, y). The indexes are
// stored column-major: bit (4*x + y) holds the LSB and bit (16 + 4*x + y)
// holds the MSB.
func pixelIndex(code uint64, x int, y int) uint32 {
	i := uint((4 * x) + y)
	return (bit(code, i+16) << 1) | bit(code, i)
}

// modifiers is the ETC intensity modifier table, indexed by the 3-bit table
// selector and then by the 2-bit pixel index (MSB<<1 | LSB).
var modifiers = [8][4]int32{
	{+2, +8, -2, -8},
	{+5, +17, -5, -17},
	{+9, +29, -9, -29},
	{+13, +42, -13, -42},
	{+18, +60, -18, -60},
	{+24, +80, -24, -80},
	{+33, +106, -33, -106},
	{+47, +183, -47, -183},
}

// distances is the T and H modes' distance table.
var distances = [8]int32{3, 6, 11, 16, 23, 32, 41, 64}
