// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package etc2

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DecodeOptions are optional arguments to Decode. The zero value is valid and
// means to use the default configuration.
type DecodeOptions struct {
	// Workers is the maximum number of goroutines decoding blocks
	// concurrently. If zero, the default is runtime.GOMAXPROCS(0). One means
	// to decode sequentially on the calling goroutine.
	Workers int
}

// parallelThreshold is the minimum number of blocks worth spreading over
// more than one goroutine.
const parallelThreshold = 256

// Decode decodes the compressed texture data src, which holds h.NumBlocks()
// blocks in row-major order. Any bytes after those blocks are ignored.
//
// options may be nil, which means to use the default configuration.
func Decode(h Header, src []byte, options *DecodeOptions) (PixelBuffer, error) {
	if err := h.Validate(); err != nil {
		return PixelBuffer{}, err
	} else if len(src) < h.CompressedSize() {
		return PixelBuffer{}, ErrTruncatedInput
	}

	workers := 0
	if options != nil {
		if options.Workers < 0 {
			return PixelBuffer{}, ErrBadArgument
		}
		workers = options.Workers
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := newBlockGrid(h)
	n := h.NumBlocks()
	if (workers <= 1) || (n < parallelThreshold) {
		for i := range n {
			g.decodeUnit(i, src[i*g.unitSize:])
		}
		return g.assemble(), nil
	}

	// Blocks are independent, so each worker claims the next undecoded
	// block index until none are left.
	workers = min(workers, n)
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				g.decodeUnit(i, src[i*g.unitSize:])
			}
		}()
	}
	wg.Wait()
	return g.assemble(), nil
}

// blockGrid holds one texture's decoded blocks, in row-major block order.
type blockGrid struct {
	header       Header
	unitSize     int
	punchthrough bool
	colors       []ColorBlock
	alphas       []AlphaBlock
}

func newBlockGrid(h Header) *blockGrid {
	n := h.NumBlocks()
	g := &blockGrid{
		header:       h,
		unitSize:     h.Format.BytesPerBlock(),
		punchthrough: h.Format.AlphaModel() == AlphaModel1Bit,
		colors:       make([]ColorBlock, n),
	}
	if h.Format.AlphaModel() == AlphaModel8Bit {
		g.alphas = make([]AlphaBlock, n)
	}
	return g
}

// decodeUnit decodes the i'th block from src, which must hold at least
// g.unitSize bytes. A 16 byte unit is an EAC alpha block followed by a color
// block.
func (g *blockGrid) decodeUnit(i int, src []byte) {
	if g.alphas != nil {
		decodeAlpha(&g.alphas[i], readU64BE(src[0:8]))
		src = src[8:]
	}
	decodeColor(&g.colors[i], readU64BE(src[0:8]), g.punchthrough)
}

func (g *blockGrid) assemble() PixelBuffer {
	return assemble(g.header, g.colors, g.alphas)
}

type decoderState uint8

const (
	stateAwaitingHeader = decoderState(0)
	stateDecoding       = decoderState(1)
	stateComplete       = decoderState(2)
)

// Decoder is an incremental decoding session for one texture. Compressed
// bytes are passed to Feed in successive chunks, and the PixelBuffer is
// assembled once, when the last block has been decoded.
//
// The zero value is a Decoder that is still waiting for its Header. Use
// NewDecoder instead.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	state  decoderState
	cursor int
	grid   *blockGrid
	result PixelBuffer
}

// NewDecoder returns a Decoder for the texture described by h.
func NewDecoder(h Header) (*Decoder, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder{
		state: stateDecoding,
		grid:  newBlockGrid(h),
	}
	d.completeIfDone()
	return d, nil
}

// Feed decodes as many whole blocks from p as it can, returning the number of
// bytes consumed. That is a multiple of h.Format.BytesPerBlock(), and the
// caller should pass any unconsumed bytes again, prefixed to the next chunk.
//
// If p is too short to hold even one block, Feed consumes nothing and returns
// ErrTruncatedInput. Once every block has been decoded, further input is
// ignored: Feed returns (0, nil).
func (d *Decoder) Feed(p []byte) (int, error) {
	switch d.state {
	case stateAwaitingHeader:
		return 0, ErrNoHeader
	case stateComplete:
		return 0, nil
	}

	unitSize := d.grid.unitSize
	if len(p) < unitSize {
		return 0, ErrTruncatedInput
	}

	consumed := 0
	for n := len(d.grid.colors); (d.cursor < n) && ((len(p) - consumed) >= unitSize); d.cursor++ {
		d.grid.decodeUnit(d.cursor, p[consumed:])
		consumed += unitSize
	}
	d.completeIfDone()
	return consumed, nil
}

func (d *Decoder) completeIfDone() {
	if (d.state == stateDecoding) && (d.cursor >= len(d.grid.colors)) {
		d.result = d.grid.assemble()
		d.state = stateComplete
		d.grid = nil
	}
}

// Cursor returns the number of blocks decoded so far. The next block to be
// decoded is at block column (Cursor % BlockColumns) and block row (Cursor /
// BlockColumns).
func (d *Decoder) Cursor() int {
	return d.cursor
}

// Done returns whether every block has been decoded.
func (d *Decoder) Done() bool {
	return d.state == stateComplete
}

// Finish returns the assembled PixelBuffer. It returns ErrTruncatedInput if
// some blocks have not been fed yet.
func (d *Decoder) Finish() (PixelBuffer, error) {
	switch d.state {
	case stateAwaitingHeader:
		return PixelBuffer{}, ErrNoHeader
	case stateDecoding:
		return PixelBuffer{}, ErrTruncatedInput
	}
	return d.result, nil
}
