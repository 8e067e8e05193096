// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestGPUDefaultsSetsAPIAndAppVersion(t *testing.T) {
	gp := &GPU{}
	gp.Defaults()
	assert.Equal(t, vk.Version(vk.MakeVersion(1, 1, 0)), gp.APIVersion)
	assert.Equal(t, vk.Version(vk.MakeVersion(1, 0, 0)), gp.AppVersion)
}

func TestGPUDestroyOnZeroValueIsNoop(t *testing.T) {
	gp := &GPU{}
	assert.NotPanics(t, gp.Destroy)
}
