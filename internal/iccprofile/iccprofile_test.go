// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iccprofile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putSig(b []byte, off int, s string) {
	copy(b[off:off+4], []byte(s))
}

func buildProfile(t *testing.T, class, space string, tags map[string][]byte) []byte {
	t.Helper()
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}

	tableOff := headerSize + 4 + 12*len(names)
	dataOff := tableOff
	offsets := make(map[string]int, len(names))
	for _, name := range names {
		offsets[name] = dataOff
		dataOff += len(tags[name])
	}

	buf := make([]byte, dataOff)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))
	buf[8] = 4  // major version 4
	buf[9] = 0x20 // minor 2, bugfix 0
	putSig(buf, 12, class)
	putSig(buf, 16, space)
	putSig(buf, 20, "XYZ ")

	binary.BigEndian.PutUint32(buf[headerSize:headerSize+4], uint32(len(names)))
	for i, name := range names {
		base := headerSize + 4 + i*12
		putSig(buf, base, name)
		binary.BigEndian.PutUint32(buf[base+4:base+8], uint32(offsets[name]))
		binary.BigEndian.PutUint32(buf[base+8:base+12], uint32(len(tags[name])))
		copy(buf[offsets[name]:offsets[name]+len(tags[name])], tags[name])
	}
	return buf
}

func gammaCurvTag(gamma uint16) []byte {
	b := make([]byte, 14)
	putSig(b, 0, "curv")
	binary.BigEndian.PutUint32(b[8:12], 1)
	binary.BigEndian.PutUint16(b[12:14], gamma)
	return b
}

func TestParseDisplayRGB(t *testing.T) {
	data := buildProfile(t, "mntr", "RGB ", map[string][]byte{
		"rTRC": gammaCurvTag(256 * 2), // gamma 2.0
	})
	p, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, p.IsDisplay())
	assert.Equal(t, 3, p.Header.ColorSpace.Channels())
	assert.EqualValues(t, 4, p.Header.MajorVer)

	raw, ok := p.Tag("rTRC")
	require.True(t, ok)
	curve, err := ParseCurv(raw)
	require.NoError(t, err)
	assert.Equal(t, CurveGamma, curve.Kind)
	assert.InDelta(t, 2.0, curve.Gamma, 1e-6)
	assert.InDelta(t, 0.25, curve.Eval(0.5), 1e-6)
}

func TestParseNonDisplayRejected(t *testing.T) {
	data := buildProfile(t, "scnr", "RGB ", nil)
	p, err := Parse(data)
	require.NoError(t, err)
	assert.False(t, p.IsDisplay())
}

func TestParseIdentityCurv(t *testing.T) {
	b := make([]byte, 12)
	putSig(b, 0, "curv")
	binary.BigEndian.PutUint32(b[8:12], 0)
	curve, err := ParseCurv(b)
	require.NoError(t, err)
	assert.Equal(t, CurveIdentity, curve.Kind)
	assert.Equal(t, 0.3, curve.Eval(0.3))
}

func TestParseSampledCurv(t *testing.T) {
	b := make([]byte, 12+2*3)
	putSig(b, 0, "curv")
	binary.BigEndian.PutUint32(b[8:12], 3)
	binary.BigEndian.PutUint16(b[12:14], 0)
	binary.BigEndian.PutUint16(b[14:16], 32768)
	binary.BigEndian.PutUint16(b[16:18], 65535)
	curve, err := ParseCurv(b)
	require.NoError(t, err)
	require.Equal(t, CurveSampled, curve.Kind)
	assert.InDelta(t, 0.5, curve.Eval(0.5), 0.01)
	assert.InDelta(t, 1.0, curve.Eval(1.0), 1e-6)
}

func TestParseVCGTTable(t *testing.T) {
	entries := uint16(2)
	b := make([]byte, 12+6+3*int(entries)*2)
	putSig(b, 0, "vcgt")
	binary.BigEndian.PutUint32(b[8:12], 0)
	binary.BigEndian.PutUint16(b[12:14], 3)
	binary.BigEndian.PutUint16(b[14:16], entries)
	binary.BigEndian.PutUint16(b[16:18], 2)
	base := 18
	for ch := 0; ch < 3; ch++ {
		binary.BigEndian.PutUint16(b[base:base+2], 0)
		binary.BigEndian.PutUint16(b[base+2:base+4], 65535)
		base += 4
	}
	vcgt, err := ParseVCGT(b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vcgt.Red.Eval(1.0), 1e-6)
	assert.InDelta(t, 1.0, vcgt.Green.Eval(1.0), 1e-6)
	assert.InDelta(t, 1.0, vcgt.Blue.Eval(1.0), 1e-6)
}

func TestParseTruncatedHeader(t *testing.T) {
	_, err := Parse(make([]byte, 10))
	assert.Error(t, err)
}
