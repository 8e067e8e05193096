// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Program links a vertex and fragment Shader into a graphics pipeline and
// tracks the uniform bindings a composition strategy needs to set per draw
// (transform matrix, source texture sampler, color-transform LUT).
type Program struct {
	name     string
	shaders  map[ShaderType]*Shader
	uniforms map[string]uint32

	layout   vk.PipelineLayout
	pipeline vk.Pipeline
	init     bool
}

func (p *Program) Name() string { return p.name }

// AddShader attaches src (SPIR-V bytecode) to the program at the given
// stage, compiling it against dev.
func (p *Program) AddShader(dev vk.Device, typ ShaderType, src []byte) error {
	if p.shaders == nil {
		p.shaders = make(map[ShaderType]*Shader)
	}
	sh := &Shader{name: fmt.Sprintf("%s/%d", p.name, typ), typ: typ}
	if err := sh.Compile(dev, src); err != nil {
		return err
	}
	p.shaders[typ] = sh
	return nil
}

// SetUniform records the descriptor binding index for a named uniform
// (draw-time transform matrix, sampler, LUT), looked up later by Uniform.
func (p *Program) SetUniform(name string, binding uint32) {
	if p.uniforms == nil {
		p.uniforms = make(map[string]uint32)
	}
	p.uniforms[name] = binding
}

// Uniform returns the descriptor binding index for name.
func (p *Program) Uniform(name string) (uint32, bool) {
	b, ok := p.uniforms[name]
	return b, ok
}

// Compile builds the graphics pipeline from the attached shader stages
// against renderPass, using vertexInput to describe the per-vertex data
// layout (position/UV for a TRIANGLE_FAN quad, position-only for LINES
// border strokes).
func (p *Program) Compile(dev vk.Device, renderPass vk.RenderPass, vertexInput vk.PipelineVertexInputStateCreateInfo, topology vk.PrimitiveTopology) error {
	stages := make([]vk.PipelineShaderStageCreateInfo, 0, len(p.shaders))
	for typ, sh := range p.shaders {
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFlagBits(typ.vkStage()),
			Module: sh.Shader,
			PName:  "main\x00",
		})
	}

	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(dev, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if IsError(ret) {
		return NewError(ret)
	}
	p.layout = layout

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: topology,
	}
	raster := vk.PipelineRasterizationStateCreateInfo{
		SType:    vk.StructureTypePipelineRasterizationStateCreateInfo,
		CullMode: vk.CullModeFlags(vk.CullModeNone),
		LineWidth: 1,
	}
	blend := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: 0xf,
		BlendEnable:    vk.True,
		SrcColorBlendFactor: vk.BlendFactorOne,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		SrcAlphaBlendFactor: vk.BlendFactorOne,
		DstAlphaBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:   vk.BlendOpAdd,
		AlphaBlendOp:   vk.BlendOpAdd,
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{blend},
	}
	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
	}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: 2,
		PDynamicStates:    []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor},
	}

	pipelines := make([]vk.Pipeline, 1)
	ret = vk.CreateGraphicsPipelines(dev, vk.NullPipelineCache, 1, []vk.GraphicsPipelineCreateInfo{{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:           uint32(len(stages)),
		PStages:              stages,
		PVertexInputState:    &vertexInput,
		PInputAssemblyState:  &inputAssembly,
		PViewportState:       &viewport,
		PRasterizationState:  &raster,
		PMultisampleState:    &multisample,
		PColorBlendState:     &colorBlend,
		PDynamicState:        &dynamic,
		Layout:               layout,
		RenderPass:            renderPass,
	}}, nil, pipelines)
	if IsError(ret) {
		vk.DestroyPipelineLayout(dev, layout, nil)
		return NewError(ret)
	}
	p.pipeline = pipelines[0]
	p.init = true
	return nil
}

func (p *Program) Delete(dev vk.Device) {
	for _, sh := range p.shaders {
		sh.Delete(dev)
	}
	if !p.init {
		return
	}
	vk.DestroyPipeline(dev, p.pipeline, nil)
	vk.DestroyPipelineLayout(dev, p.layout, nil)
	p.init = false
}
