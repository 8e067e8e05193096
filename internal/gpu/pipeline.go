// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// Pipeline manages a sequence of Programs that can be activated in an
// appropriate order to achieve some overall step of rendering: a quad fill
// via TRIANGLE_FAN, a border stroke via LINES. A new Pipeline is created
// against a Device (the generic graphics device, or a dedicated compute
// device).
type Pipeline struct {
	GPU        *GPU
	Device     vk.Device
	QueueIndex uint32
	name       string
	progs      map[string]*Program

	CmdPool vk.CommandPool
	CmdBuff vk.CommandBuffer
}

// Name returns name of this pipeline
func (pl *Pipeline) Name() string {
	return pl.name
}

// SetName sets name of this pipeline
func (pl *Pipeline) SetName(name string) {
	pl.name = name
}

// AddProgram adds program with given name to the pipeline
func (pl *Pipeline) AddProgram(name string) *Program {
	if pl.progs == nil {
		pl.progs = make(map[string]*Program)
	}
	pr := &Program{name: name}
	pl.progs[name] = pr
	return pr
}

// ProgramByName returns Program by name.
// Returns nil if not found (error auto logged).
func (pl *Pipeline) ProgramByName(name string) *Program {
	pr, ok := pl.progs[name]
	if !ok {
		log.Printf("gpu Pipeline ProgramByName: Program: %s not found in pipeline: %s\n", name, pl.name)
		return nil
	}
	return pr
}

// Programs returns list (slice) of Programs in pipeline
func (pl *Pipeline) Programs() []*Program {
	progs := make([]*Program, 0, len(pl.progs))
	for _, pr := range pl.progs {
		progs = append(progs, pr)
	}
	return progs
}

func (pl *Pipeline) Delete() {
	for _, pr := range pl.progs {
		pr.Delete(pl.Device)
	}
	vk.DestroyCommandPool(pl.Device, pl.CmdPool, nil)
}

func (pl *Pipeline) Init(gp *GPU) {
	pl.GPU = gp

	var CmdPool vk.CommandPool
	ret := vk.CreateCommandPool(pl.Device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: pl.QueueIndex,
	}, nil, &CmdPool)
	IfPanic(NewError(ret))
	pl.CmdPool = CmdPool

	var CmdBuff = make([]vk.CommandBuffer, 1)
	ret = vk.AllocateCommandBuffers(pl.Device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pl.CmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, CmdBuff)
	IfPanic(NewError(ret))
	pl.CmdBuff = CmdBuff[0]

	ret = vk.BeginCommandBuffer(pl.CmdBuff, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	})
	IfPanic(NewError(ret))
}

// DrawQuad records a TRIANGLE_FAN draw of a single quad's vertex fan
// (vertexCount vertices: 4 for an unclipped quad, 3 to 8 after clipping)
// using prog's currently bound pipeline.
func (pl *Pipeline) DrawQuad(prog *Program, vertexCount uint32) {
	vk.CmdBindPipeline(pl.CmdBuff, vk.PipelineBindPointGraphics, prog.pipeline)
	vk.CmdDraw(pl.CmdBuff, vertexCount, 1, 0, 0)
}

// DrawBorder records a draw of vertexCount vertices with prog's pipeline,
// for border-region strokes. The output repaint engine does not call it;
// Output.DrawBorders draws its border textures with DrawQuad.
func (pl *Pipeline) DrawBorder(prog *Program, vertexCount uint32) {
	vk.CmdBindPipeline(pl.CmdBuff, vk.PipelineBindPointGraphics, prog.pipeline)
	vk.CmdDraw(pl.CmdBuff, vertexCount, 1, 0, 0)
}

func (pl *Pipeline) Submit(queue vk.Queue, fence vk.Fence) error {
	ret := vk.EndCommandBuffer(pl.CmdBuff)
	if IsError(ret) {
		return NewError(ret)
	}
	ret = vk.QueueSubmit(queue, 1, []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{pl.CmdBuff},
	}}, fence)
	if IsError(ret) {
		return NewError(ret)
	}
	return nil
}
