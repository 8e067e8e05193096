// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"errors"

	"golang.org/x/sys/unix"

	vk "github.com/vulkan-go/vulkan"
)

// Fence wraps a Vulkan fence signaled on render completion. The compositor
// hands its duplicated file descriptor to clients as the release fence for
// a buffer, so a client can wait on GPU completion without holding a
// reference to this process's fence object.
type Fence struct {
	Fence vk.Fence
}

// NewFence creates an initially unsignaled fence on dev.
func NewFence(dev vk.Device) (*Fence, error) {
	var fence vk.Fence
	ret := vk.CreateFence(dev, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}, nil, &fence)
	if IsError(ret) {
		return nil, NewError(ret)
	}
	return &Fence{Fence: fence}, nil
}

// Wait blocks until f is signaled or timeoutNs elapses.
func (f *Fence) Wait(dev vk.Device, timeoutNs uint64) error {
	ret := vk.WaitForFences(dev, 1, []vk.Fence{f.Fence}, vk.True, timeoutNs)
	if ret == vk.Timeout {
		return errors.New("vulkan error: fence wait timed out")
	}
	if IsError(ret) {
		return NewError(ret)
	}
	return nil
}

// Signaled reports whether f has already been signaled, without blocking.
func (f *Fence) Signaled(dev vk.Device) bool {
	return vk.GetFenceStatus(dev, f.Fence) == vk.Success
}

// Reset clears f back to the unsignaled state for reuse on the next frame.
func (f *Fence) Reset(dev vk.Device) error {
	ret := vk.ResetFences(dev, 1, []vk.Fence{f.Fence})
	if IsError(ret) {
		return NewError(ret)
	}
	return nil
}

func (f *Fence) Destroy(dev vk.Device) {
	vk.DestroyFence(dev, f.Fence, nil)
}

// DupFD duplicates fd for handing to a client as an independent release
// fence descriptor (§4.H: "duplicate the render-completion fence fd");
// the client closes its copy when done, the compositor keeps its own.
func DupFD(fd int) (int, error) {
	dup, err := unix.Dup(fd)
	if err != nil {
		return -1, err
	}
	return dup, nil
}
