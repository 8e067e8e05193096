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

// Device is a logical Vulkan device bound to one queue family, along with a
// persistent command pool for allocating one-off command buffers against
// it. GPU.InitGraphicsDevice creates the generic graphics device; offscreen
// compute paths create their own via Init with vk.QueueComputeBit.
type Device struct {
	Device     vk.Device
	QueueIndex uint32
	Queue      vk.Queue
	CmdPool    vk.CommandPool
}

// Init finds the first queue family on gp.GPU supporting queueFlags,
// creates a logical device exposing that single queue, and allocates a
// command pool against it.
func (d *Device) Init(gp *GPU, queueFlags vk.QueueFlagBits) error {
	idx, ok := findQueueFamily(gp.GPU, queueFlags)
	if !ok {
		return errors.New("vulkan error: no queue family supports the required flags")
	}
	d.QueueIndex = idx

	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: idx,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}
	deviceExts := SafeStrings(gp.DeviceExts)
	var device vk.Device
	ret := vk.CreateDevice(gp.GPU, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       []vk.DeviceQueueCreateInfo{queueInfo},
		EnabledExtensionCount:   uint32(len(deviceExts)),
		PpEnabledExtensionNames: deviceExts,
	}, nil, &device)
	IfPanic(NewError(ret))
	d.Device = device

	var queue vk.Queue
	vk.GetDeviceQueue(device, idx, 0, &queue)
	d.Queue = queue

	var cmdPool vk.CommandPool
	ret = vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: idx,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &cmdPool)
	IfPanic(NewError(ret))
	d.CmdPool = cmdPool
	return nil
}

func (d *Device) Destroy() {
	if d.Device == nil {
		return
	}
	vk.DestroyCommandPool(d.Device, d.CmdPool, nil)
	vk.DestroyDevice(d.Device, nil)
	d.Device = nil
}

// CmdBuffer allocates a single primary command buffer from d's pool.
func (d *Device) CmdBuffer() vk.CommandBuffer {
	bufs := make([]vk.CommandBuffer, 1)
	ret := vk.AllocateCommandBuffers(d.Device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        d.CmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, bufs)
	IfPanic(NewError(ret))
	return bufs[0]
}

func findQueueFamily(pd vk.PhysicalDevice, flags vk.QueueFlagBits) (uint32, bool) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, props)
	for i := range props {
		props[i].Deref()
		if vk.QueueFlagBits(props[i].QueueFlags)&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}
