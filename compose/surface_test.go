// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewm/compose/clip"
	"github.com/corewm/compose/internal/gpu"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestClassifyShmImageOpaqueIsRGBX(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	f, err := classifyShmImage(img)
	assert.NoError(t, err)
	assert.Equal(t, gpu.FormatRGBX, f)
}

func TestClassifyShmImageTranslucentIsRGBA(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 255, A: 128})
	f, err := classifyShmImage(img)
	assert.NoError(t, err)
	assert.Equal(t, gpu.FormatRGBA, f)
}

func TestClassifyDmaBufKnownFormats(t *testing.T) {
	cases := []struct {
		fourcc uint32
		format gpu.TextureFormat
		planes int
	}{
		{fourccXRGB8888, gpu.FormatRGBX, 1},
		{fourccARGB8888, gpu.FormatRGBA, 1},
		{fourccNV12, gpu.FormatNV12, 2},
		{fourccYUV420, gpu.FormatYUV420, 3},
		{fourccYUYV, gpu.FormatYUV422Packed, 1},
		{fourccXYUV8888, gpu.FormatXYUV, 1},
		{fourccXBGR2101010, gpu.FormatRGB10A2, 1},
		{fourccABGR16161616F, gpu.FormatRGBA16F, 1},
	}
	for _, c := range cases {
		f, planes, err := classifyDmaBuf(c.fourcc)
		assert.NoError(t, err)
		assert.Equal(t, c.format, f)
		assert.Equal(t, c.planes, planes)
	}
}

func TestClassifyDmaBufUnknownFourccErrors(t *testing.T) {
	_, _, err := classifyDmaBuf(0xdeadbeef)
	assert.Error(t, err)
}

func TestSurfaceStateAttachMarksFullUploadOnFormatChange(t *testing.T) {
	s := &SurfaceState{}
	s.Attach(BufferShm, gpu.FormatRGBA, 100, 100)
	assert.True(t, s.needsFullUpload)

	plan := s.PlanUpload()
	assert.True(t, plan.Full)
	s.CommitUpload(plan, &gpu.Texture{})
	assert.False(t, s.needsFullUpload)

	s.Attach(BufferShm, gpu.FormatRGBA, 100, 100)
	assert.False(t, s.needsFullUpload)
}

func TestSurfaceStateAttachDimensionChangeForcesFullUpload(t *testing.T) {
	s := &SurfaceState{}
	s.Attach(BufferShm, gpu.FormatRGBA, 100, 100)
	plan := s.PlanUpload()
	s.CommitUpload(plan, &gpu.Texture{})

	s.Attach(BufferShm, gpu.FormatRGBA, 200, 100)
	assert.True(t, s.needsFullUpload)
}

func TestSurfaceStatePlanUploadUsesDamageUnion(t *testing.T) {
	s := &SurfaceState{}
	s.Attach(BufferShm, gpu.FormatRGBA, 100, 100)
	plan := s.PlanUpload()
	s.CommitUpload(plan, &gpu.Texture{})

	s.QueueDamage([]clip.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 50, Y0: 50, X1: 60, Y1: 60},
	})
	plan = s.PlanUpload()
	assert.False(t, plan.Full)
	assert.Equal(t, clip.Rect{X0: 0, Y0: 0, X1: 60, Y1: 60}, plan.Region)
}

func TestSurfaceStateCommitUploadClearsPendingDamage(t *testing.T) {
	s := &SurfaceState{}
	s.Attach(BufferShm, gpu.FormatRGBA, 100, 100)
	plan := s.PlanUpload()
	s.CommitUpload(plan, &gpu.Texture{})

	s.QueueDamage([]clip.Rect{{X0: 0, Y0: 0, X1: 10, Y1: 10}})
	plan = s.PlanUpload()
	s.CommitUpload(plan, s.Texture)
	assert.Empty(t, s.pendingDamage)
}
