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
)

// PixelBuffer is a decoded texture: Width×Height pixels, row-major from the
// top-left, each pixel being Channels bytes (R, G, B and, for formats with
// alpha, non-premultiplied A).
type PixelBuffer struct {
	Format   Format
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Stride returns the distance in bytes between vertically adjacent pixels.
func (b PixelBuffer) Stride() int {
	return b.Width * b.Channels
}

// Image returns a copy of b as one of the standard library's image types,
// matching b.Format.ColorModel: *image.NRGBA for 8-bit alpha and *image.RGBA
// otherwise.
func (b PixelBuffer) Image() image.Image {
	r := image.Rect(0, 0, b.Width, b.Height)
	var pix []byte
	var m image.Image
	if b.Format.AlphaModel() == AlphaModel8Bit {
		dst := image.NewNRGBA(r)
		pix, m = dst.Pix, dst
	} else {
		dst := image.NewRGBA(r)
		pix, m = dst.Pix, dst
	}

	// A punchthrough transparent pixel is black, so its RGB values are
	// already premultiplied.
	for i, j := 0, 0; j < len(b.Pix); i, j = i+4, j+b.Channels {
		pix[i+0] = b.Pix[j+0]
		pix[i+1] = b.Pix[j+1]
		pix[i+2] = b.Pix[j+2]
		if b.Channels == 4 {
			pix[i+3] = b.Pix[j+3]
		} else {
			pix[i+3] = 0xFF
		}
	}
	return m
}

// assemble composes the decoded blocks into a PixelBuffer, dropping the
// pixels of edge blocks that lie outside the active area.
//
// colors and (for FormatETC2RGBA8) alphas are indexed in row-major block
// order. alphas is ignored for other formats.
func assemble(h Header, colors []ColorBlock, alphas []AlphaBlock) PixelBuffer {
	channels := h.Format.Channels()
	buf := PixelBuffer{
		Format:   h.Format,
		Width:    int(h.ActiveWidth),
		Height:   int(h.ActiveHeight),
		Channels: channels,
		Pix:      make([]byte, h.PixelBufferSize()),
	}
	alphaModel := h.Format.AlphaModel()
	blockColumns := h.BlockColumns()
	activeW, activeH := int(h.ActiveWidth), int(h.ActiveHeight)

	for blockY := range h.BlockRows() {
		for blockX := range blockColumns {
			i := (blockY * blockColumns) + blockX
			for y := range 4 {
				py := (4 * blockY) + y
				if py >= activeH {
					break
				}
				for x := range 4 {
					px := (4 * blockX) + x
					if px >= activeW {
						break
					}
					o := ((py * activeW) + px) * channels
					c := &colors[i].Colors[y][x]
					p := buf.Pix[o : o+channels]
					p[0], p[1], p[2] = c[0], c[1], c[2]
					switch alphaModel {
					case AlphaModel8Bit:
						p[3] = alphas[i][y][x]
					case AlphaModel1Bit:
						p[3] = colors[i].Alpha[y][x]
					}
				}
			}
		}
	}

	return buf
}
