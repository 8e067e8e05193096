// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeStringAppendsNullTerminator(t *testing.T) {
	assert.Equal(t, "compose\x00", SafeString("compose"))
}

func TestSafeStringLeavesExistingTerminatorAlone(t *testing.T) {
	assert.Equal(t, "compose\x00", SafeString("compose\x00"))
}

func TestSafeStringEmptyYieldsBareTerminator(t *testing.T) {
	assert.Equal(t, "\x00", SafeString(""))
}

func TestSafeStringsTerminatesEveryEntry(t *testing.T) {
	in := []string{"VK_KHR_surface", "VK_KHR_swapchain\x00"}
	out := SafeStrings(in)
	assert.Equal(t, []string{"VK_KHR_surface\x00", "VK_KHR_swapchain\x00"}, out)
}

func TestCheckExistingReturnsOnlyPresentRequirements(t *testing.T) {
	actual := []string{"VK_KHR_surface", "VK_KHR_swapchain", "VK_EXT_debug_report"}
	required := []string{"VK_KHR_surface", "VK_KHR_missing"}
	existing, missing := CheckExisting(actual, required)
	assert.Equal(t, []string{"VK_KHR_surface\x00"}, existing)
	assert.Equal(t, 1, missing)
}

func TestCheckExistingAllPresentReportsNoneMissing(t *testing.T) {
	actual := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	required := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	_, missing := CheckExisting(actual, required)
	assert.Equal(t, 0, missing)
}
