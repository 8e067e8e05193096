// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compose

import "github.com/corewm/compose/internal/gpu"

// Engine owns the GPU context and pipeline a frame loop drives DrawNode,
// Output, and SurfaceState against: one Vulkan instance and graphics
// device, held current for the loop's lifetime.
type Engine struct {
	GPU      *gpu.GPU
	Pipeline *gpu.Pipeline
}

// NewEngine brings up the Vulkan instance, graphics device, and pipeline
// a backend constructs once at startup. name is the application name
// passed to vkCreateInstance; debug enables the validation layers and
// debug report callback.
func NewEngine(name string, debug bool) (*Engine, error) {
	gp, pl, err := gpu.NewEngine(name, debug)
	if err != nil {
		return nil, err
	}
	return &Engine{GPU: gp, Pipeline: pl}, nil
}

// Close tears down the engine's pipeline and GPU context.
func (e *Engine) Close() {
	gpu.Destroy(e.GPU, e.Pipeline)
}
