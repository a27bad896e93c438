// Copyright 2025 The Etc2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package texture recognizes whether ETC texture bytes are wrapped in a PKM
// or a KTX container and dispatches to the matching package.
package texture

import (
	"strings"

	"github.com/etcdecode/etc2/lib/etc2"
	"github.com/etcdecode/etc2/lib/ktx"
	"github.com/etcdecode/etc2/lib/pkm"
)

// Container is a texture container file format.
type Container uint8

const (
	ContainerUnknown = Container(0)
	ContainerPKM     = Container(1)
	ContainerKTX     = Container(2)
)

func (c Container) String() string {
	switch c {
	case ContainerPKM:
		return "PKM"
	case ContainerKTX:
		return "KTX"
	}
	return "unknown"
}

// HeaderSize returns the size in bytes of the Container's fixed header, or 0
// for ContainerUnknown.
func (c Container) HeaderSize() int {
	switch c {
	case ContainerPKM:
		return pkm.HeaderSize
	case ContainerKTX:
		return ktx.HeaderSize
	}
	return 0
}

// Sniff returns the Container whose magic bytes prefix buf.
func Sniff(buf []byte) Container {
	s := string(buf[:min(len(buf), len(ktx.Magic))])
	if strings.HasPrefix(s, pkm.Magic) {
		return ContainerPKM
	} else if strings.HasPrefix(s, ktx.Magic) {
		return ContainerKTX
	}
	return ContainerUnknown
}

// ParseHeader parses the PKM or KTX header at the start of buf. It returns
// etc2.ErrInvalidFormat if buf starts with neither container's magic bytes.
func ParseHeader(buf []byte) (etc2.Header, error) {
	switch Sniff(buf) {
	case ContainerPKM:
		return pkm.ParseHeader(buf)
	case ContainerKTX:
		return ktx.ParseHeader(buf)
	}
	return etc2.Header{}, etc2.ErrInvalidFormat
}

// Decode decodes a whole PKM or KTX file held in buf.
//
// options may be nil, which means to use the default configuration.
func Decode(buf []byte, options *etc2.DecodeOptions) (etc2.PixelBuffer, error) {
	switch Sniff(buf) {
	case ContainerPKM:
		return pkm.Decode(buf, options)
	case ContainerKTX:
		return ktx.Decode(buf, options)
	}
	return etc2.PixelBuffer{}, etc2.ErrInvalidFormat
}
