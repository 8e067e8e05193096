// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// ShaderType is the stage a compiled Shader module runs at.
type ShaderType int

const (
	VertexShader ShaderType = iota
	FragmentShader
	ComputeShader
)

func (t ShaderType) vkStage() vk.ShaderStageFlagBits {
	switch t {
	case VertexShader:
		return vk.ShaderStageVertexBit
	case FragmentShader:
		return vk.ShaderStageFragmentBit
	default:
		return vk.ShaderStageComputeBit
	}
}

// Shader manages a single compiled shader module.
type Shader struct {
	init   bool
	Shader vk.ShaderModule
	name   string
	typ    ShaderType
	src    string
	orgSrc string // original source as provided by user -- program adds extra source..
}

// Name returns the unique name of this Shader
func (sh *Shader) Name() string {
	return sh.name
}

// Type returns the stage this Shader runs at.
func (sh *Shader) Type() ShaderType {
	return sh.typ
}

// Compile compiles the given SPIR-V bytecode for the Shader against dev.
func (sh *Shader) Compile(dev vk.Device, src []byte) error {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(dev, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(src)),
		PCode:    SliceUint32(src),
	}, nil, &module)
	if IsError(ret) {
		return NewError(ret)
	}
	sh.Shader = module
	sh.src = string(src)
	sh.init = true
	return nil
}

// Source returns the source code passed to Compile for the Shader
// excluding the null terminator (for display purposes), unchanged.
func (sh *Shader) Source() string {
	return sh.src
}

// OrigSource returns the original user-supplied source code
// excluding the null terminator (for display purposes)
func (sh *Shader) OrigSource() string {
	return sh.orgSrc
}

// Delete deletes the Shader
func (sh *Shader) Delete(dev vk.Device) {
	if !sh.init {
		return
	}
	vk.DestroyShaderModule(dev, sh.Shader, nil)
	sh.Shader = nil
	sh.init = false
}

func SliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}
