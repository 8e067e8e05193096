// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// NewEngine brings up a Vulkan instance, selects a physical device, and
// initializes the generic graphics device and a ready-to-record Pipeline
// in one call. This is the entry point a backend's frame loop constructs
// once at startup, giving it the single GPU context it holds current for
// the loop's lifetime.
func NewEngine(name string, debug bool) (*GPU, *Pipeline, error) {
	gp := &GPU{Debug: debug}
	gp.Defaults()
	if err := gp.Init(name, debug); err != nil {
		return nil, nil, err
	}
	if err := gp.InitGraphicsDevice(); err != nil {
		gp.Destroy()
		return nil, nil, err
	}

	pl := &Pipeline{Device: gp.Device.Device, QueueIndex: gp.Device.QueueIndex}
	pl.Init(gp)
	return gp, pl, nil
}

// Destroy tears down the pipeline's command pool and everything NewEngine
// brought up, in reverse order.
func Destroy(gp *GPU, pl *Pipeline) {
	if pl != nil {
		pl.Delete()
	}
	if gp != nil {
		gp.Destroy()
	}
}
