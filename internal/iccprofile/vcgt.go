// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iccprofile

import (
	"encoding/binary"
	"fmt"
)

// VCGT is a decoded 'vcgt' video-card gamma tag: three per-channel curves
// applied on top of the display's inverse EOTF.
type VCGT struct {
	Red, Green, Blue Curve
}

// ParseVCGT decodes a 'vcgt' tag. gammaType 0 is a per-channel sampled
// table; gammaType 1 is a per-channel gamma/min/max formula, normalized
// here to a Curve the same way ParseCurv normalizes sampled tables.
func ParseVCGT(data []byte) (*VCGT, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("iccprofile: vcgt tag too short")
	}
	gammaType := binary.BigEndian.Uint32(data[8:12])
	switch gammaType {
	case 0:
		return parseVCGTTable(data[12:])
	case 1:
		return parseVCGTFormula(data[12:])
	default:
		return nil, fmt.Errorf("iccprofile: unsupported vcgt gammaType %d", gammaType)
	}
}

func parseVCGTTable(data []byte) (*VCGT, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("iccprofile: vcgt table header too short")
	}
	numChannels := binary.BigEndian.Uint16(data[0:2])
	numEntries := binary.BigEndian.Uint16(data[2:4])
	entrySize := binary.BigEndian.Uint16(data[4:6])
	if numChannels != 3 {
		return nil, fmt.Errorf("iccprofile: vcgt table has %d channels, want 3", numChannels)
	}
	if entrySize != 2 {
		return nil, fmt.Errorf("iccprofile: unsupported vcgt entry size %d", entrySize)
	}
	need := 6 + 3*int(numEntries)*2
	if len(data) < need {
		return nil, fmt.Errorf("iccprofile: vcgt table truncated")
	}
	readChannel := func(ch int) Curve {
		samples := make([]float64, numEntries)
		base := 6 + ch*int(numEntries)*2
		for i := 0; i < int(numEntries); i++ {
			off := base + i*2
			samples[i] = float64(binary.BigEndian.Uint16(data[off:off+2])) / 65535.0
		}
		return Curve{Kind: CurveSampled, Samples: samples}
	}
	return &VCGT{Red: readChannel(0), Green: readChannel(1), Blue: readChannel(2)}, nil
}

func parseVCGTFormula(data []byte) (*VCGT, error) {
	if len(data) < 36 {
		return nil, fmt.Errorf("iccprofile: vcgt formula tag too short")
	}
	read := func(off int) float64 { return s15Fixed16(binary.BigEndian.Uint32(data[off : off+4])) }
	gammaCurve := func(gamma, min, max float64) Curve {
		return Curve{Kind: CurveParametric, FunctionType: 2, Params: []float64{gamma, max - min, min, 0}}
	}
	return &VCGT{
		Red:   gammaCurve(read(0), read(4), read(8)),
		Green: gammaCurve(read(12), read(16), read(20)),
		Blue:  gammaCurve(read(24), read(28), read(32)),
	}, nil
}
