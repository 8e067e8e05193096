// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iccprofile decodes the header, tag table, and TRC/VCGT tags of an
// ICC.1:2010 color profile directly from its binary layout.
package iccprofile

import (
	"encoding/binary"
	"fmt"
)

const headerSize = 128

// DeviceClass is the 4-byte device-class signature at header offset 12.
type DeviceClass uint32

const (
	ClassDisplay DeviceClass = 0x6d6e7472 // 'mntr'
	ClassInput   DeviceClass = 0x73636e72 // 'scnr'
	ClassOutput  DeviceClass = 0x70727472 // 'prtr'
	ClassLink    DeviceClass = 0x6c696e6b // 'link'
	ClassSpace   DeviceClass = 0x73706163 // 'spac'
)

// ColorSpace is the 4-byte color-space signature at header offset 16.
type ColorSpace uint32

const (
	SpaceXYZ ColorSpace = 0x58595a20 // 'XYZ '
	SpaceLab ColorSpace = 0x4c616220 // 'Lab '
	SpaceRGB ColorSpace = 0x52474220 // 'RGB '
	SpaceGray ColorSpace = 0x47524159 // 'GRAY'
	SpaceCMYK ColorSpace = 0x434d594b // 'CMYK'
)

// Channels returns the number of color channels the space signature
// implies, or 0 if unrecognized.
func (c ColorSpace) Channels() int {
	switch c {
	case SpaceXYZ, SpaceLab, SpaceRGB:
		return 3
	case SpaceGray:
		return 1
	case SpaceCMYK:
		return 4
	default:
		return 0
	}
}

// Header is the fixed 128-byte ICC profile header, decoded to the fields
// load_from_icc's validation needs.
type Header struct {
	Size        uint32
	MajorVer    uint8
	MinorVer    uint8
	Class       DeviceClass
	ColorSpace  ColorSpace
	PCS         ColorSpace
}

// tagEntry is one row of the tag table: signature, offset, size.
type tagEntry struct {
	sig    uint32
	offset uint32
	size   uint32
}

// Profile is a parsed ICC profile: header plus the raw bytes of every tag,
// addressable by 4-character tag signature (e.g. "rTRC", "vcgt").
type Profile struct {
	Header Header
	tags   map[string][]byte
}

// Parse decodes an ICC profile from its binary representation. It does not
// validate display-class/3-channel constraints; callers apply those checks
// against the returned Header (load_from_icc's job, not Parse's).
func Parse(data []byte) (*Profile, error) {
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("iccprofile: truncated header (%d bytes)", len(data))
	}
	h := Header{
		Size:       binary.BigEndian.Uint32(data[0:4]),
		MajorVer:   data[8],
		MinorVer:   data[9] >> 4,
		Class:      DeviceClass(binary.BigEndian.Uint32(data[12:16])),
		ColorSpace: ColorSpace(binary.BigEndian.Uint32(data[16:20])),
		PCS:        ColorSpace(binary.BigEndian.Uint32(data[20:24])),
	}

	tagCount := binary.BigEndian.Uint32(data[headerSize : headerSize+4])
	entries := make([]tagEntry, tagCount)
	tableOff := headerSize + 4
	for i := range entries {
		base := tableOff + i*12
		if base+12 > len(data) {
			return nil, fmt.Errorf("iccprofile: truncated tag table at entry %d", i)
		}
		entries[i] = tagEntry{
			sig:    binary.BigEndian.Uint32(data[base : base+4]),
			offset: binary.BigEndian.Uint32(data[base+4 : base+8]),
			size:   binary.BigEndian.Uint32(data[base+8 : base+12]),
		}
	}

	tags := make(map[string][]byte, len(entries))
	for _, e := range entries {
		end := e.offset + e.size
		if int(end) > len(data) || e.offset > end {
			return nil, fmt.Errorf("iccprofile: tag %s out of bounds", sigString(e.sig))
		}
		tags[sigString(e.sig)] = data[e.offset:end]
	}
	return &Profile{Header: h, tags: tags}, nil
}

func sigString(sig uint32) string {
	b := [4]byte{byte(sig >> 24), byte(sig >> 16), byte(sig >> 8), byte(sig)}
	return string(b[:])
}

// IsDisplay reports whether the profile's device class is "Display".
func (p *Profile) IsDisplay() bool {
	return p.Header.Class == ClassDisplay
}

// Tag returns the raw bytes of the named tag, if present.
func (p *Profile) Tag(name string) ([]byte, bool) {
	b, ok := p.tags[name]
	return b, ok
}
