// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorprofile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewm/compose/internal/errs"
)

const headerSize = 128

func putSig(b []byte, off int, s string) {
	copy(b[off:off+4], []byte(s))
}

func gammaCurvTag(gammaX256 uint16) []byte {
	b := make([]byte, 14)
	putSig(b, 0, "curv")
	binary.BigEndian.PutUint32(b[8:12], 1)
	binary.BigEndian.PutUint16(b[12:14], gammaX256)
	return b
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
	buf[8] = 4
	buf[9] = 0x20
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

func displayRGBProfile(t *testing.T) []byte {
	g := gammaCurvTag(256 * 2)
	return buildProfile(t, "mntr", "RGB ", map[string][]byte{
		"rTRC": g,
		"gTRC": g,
		"bTRC": g,
	})
}

func TestRegistryLoadDedup(t *testing.T) {
	data := displayRGBProfile(t)
	reg := NewRegistry()
	p1, err := reg.Load(data, "display-a")
	require.NoError(t, err)
	p2, err := reg.Load(append([]byte(nil), data...), "display-a-again")
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Len(t, reg.Snapshot(), 1)
	assert.Equal(t, 2, reg.Snapshot()[0].RefCount)
}

func TestLoadRejectsNonDisplay(t *testing.T) {
	g := gammaCurvTag(256 * 2)
	data := buildProfile(t, "scnr", "RGB ", map[string][]byte{"rTRC": g, "gTRC": g, "bTRC": g})
	reg := NewRegistry()
	_, err := reg.Load(data, "scanner")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidProfile)
}

func TestLoadRejectsNonRGB(t *testing.T) {
	g := gammaCurvTag(256 * 2)
	data := buildProfile(t, "mntr", "GRAY", map[string][]byte{"rTRC": g})
	reg := NewRegistry()
	_, err := reg.Load(data, "gray-display")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidProfile)
}

func TestLoadExtractsForwardAndInverseCurves(t *testing.T) {
	data := displayRGBProfile(t)
	reg := NewRegistry()
	p, err := reg.Load(data, "display-a")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p.Forward[0].Eval(0.5), 1e-6)
	assert.InDelta(t, 0.5, p.Inverse[0].Eval(p.Forward[0].Eval(0.5)), 0.02)
	assert.False(t, p.VCGT)
}

func TestRegistryRelease(t *testing.T) {
	data := displayRGBProfile(t)
	reg := NewRegistry()
	p, err := reg.Load(data, "display-a")
	require.NoError(t, err)
	reg.Release(p.MD5)
	assert.Len(t, reg.Snapshot(), 0)
}
