// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// TextureFormat enumerates the texture layouts the compositor's source
// surfaces and shadow buffers can arrive in.
type TextureFormat int

const (
	FormatRGBX TextureFormat = iota
	FormatRGBA
	FormatYUV420
	FormatNV12
	FormatYUV422Packed
	FormatXYUV
	FormatSolid
	FormatExternal
	FormatRGB10A2
	FormatRGBA16F
)

func (f TextureFormat) vkFormat() vk.Format {
	switch f {
	case FormatRGBA, FormatRGBX, FormatXYUV, FormatSolid, FormatExternal:
		return vk.FormatR8g8b8a8Unorm
	case FormatRGB10A2:
		return vk.FormatA2r10g10b10UnormPack32
	case FormatRGBA16F:
		return vk.FormatR16g16b16a16Sfloat
	default:
		// Planar YUV formats are uploaded as separate single/dual-channel
		// planes; the plane format, not a packed one, is what gets bound.
		return vk.FormatR8Unorm
	}
}

// Texture is a GPU-resident image plus the memory backing it and a view
// suitable for sampling or framebuffer attachment.
type Texture struct {
	Image  vk.Image
	Memory vk.DeviceMemory
	View   vk.ImageView
	Format TextureFormat
	Width  uint32
	Height uint32
}

// NewTexture allocates a 2D texture of the given format and dimensions,
// usable as a sampled image and/or color attachment per usage.
func NewTexture(dev *Device, memProps vk.PhysicalDeviceMemoryProperties, format TextureFormat, w, h uint32, usage vk.ImageUsageFlagBits) (*Texture, error) {
	vf := format.vkFormat()
	var image vk.Image
	ret := vk.CreateImage(dev.Device, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vk.ImageType2d,
		Format:        vf,
		Extent:        vk.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(usage),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}, nil, &image)
	if IsError(ret) {
		return nil, NewError(ret)
	}

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(dev.Device, image, &memReqs)
	memReqs.Deref()
	memType, ok := FindRequiredMemoryType(memProps, vk.MemoryPropertyFlagBits(memReqs.MemoryTypeBits),
		vk.MemoryPropertyDeviceLocalBit)
	if !ok {
		vk.DestroyImage(dev.Device, image, nil)
		return nil, errors.New("vulkan error: no device-local memory type for texture")
	}

	var memory vk.DeviceMemory
	ret = vk.AllocateMemory(dev.Device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &memory)
	if IsError(ret) {
		vk.DestroyImage(dev.Device, image, nil)
		return nil, NewError(ret)
	}
	vk.BindImageMemory(dev.Device, image, memory, 0)

	var view vk.ImageView
	ret = vk.CreateImageView(dev.Device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   vf,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR, G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB, A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil, &view)
	if IsError(ret) {
		vk.FreeMemory(dev.Device, memory, nil)
		vk.DestroyImage(dev.Device, image, nil)
		return nil, NewError(ret)
	}

	return &Texture{Image: image, Memory: memory, View: view, Format: format, Width: w, Height: h}, nil
}

func (t *Texture) Destroy(dev vk.Device) {
	vk.DestroyImageView(dev, t.View, nil)
	vk.DestroyImage(dev, t.Image, nil)
	vk.FreeMemory(dev, t.Memory, nil)
}

// Framebuffer is a render target: a single color-attachment FBO over a
// shadow-buffer Texture, matched against a compatible render pass.
type Framebuffer struct {
	Framebuffer vk.Framebuffer
	Texture     *Texture
	RenderPass  vk.RenderPass
}

// NewFramebuffer attaches tex to renderPass and checks completeness: the
// attachment's extent must match the requested dimensions and its format
// must be one renderPass was created to accept (vk.CreateFramebuffer
// itself validates this against the Vulkan spec; NewFramebuffer surfaces
// that as a plain error rather than a validation-layer abort).
func NewFramebuffer(dev vk.Device, renderPass vk.RenderPass, tex *Texture, w, h uint32) (*Framebuffer, error) {
	if tex.Width != w || tex.Height != h {
		return nil, errors.New("vulkan error: framebuffer attachment extent mismatch")
	}
	var fb vk.Framebuffer
	ret := vk.CreateFramebuffer(dev, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{tex.View},
		Width:           w,
		Height:          h,
		Layers:          1,
	}, nil, &fb)
	if IsError(ret) {
		return nil, NewError(ret)
	}
	return &Framebuffer{Framebuffer: fb, Texture: tex, RenderPass: renderPass}, nil
}

func (f *Framebuffer) Destroy(dev vk.Device) {
	vk.DestroyFramebuffer(dev, f.Framebuffer, nil)
}
