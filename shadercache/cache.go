// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shadercache

import (
	"fmt"
	"time"

	vk "github.com/vulkan-go/vulkan"

	"github.com/corewm/compose/internal/errs"
	"github.com/corewm/compose/internal/gpu"
)

// entry is one MRU-linked cache slot.
type entry struct {
	key      ShaderKey
	prog     *gpu.Program
	lastUsed time.Time
}

// Uniforms lists per-draw binding indices by role. Nothing in this module
// uses it: compile records its bindings on the Program by name through
// SetUniform.
type Uniforms struct {
	Projection     uint32
	Plane0         uint32
	Plane1         uint32
	Plane2         uint32
	AlphaUnicolor  uint32
	ColorTransform uint32
}

// Cache compiles and caches shader Programs keyed by ShaderKey, evicting
// on an MRU-with-grace-period policy after each frame. MaxMRU and
// EvictAfter are exported, tunable fields rather than constants: the
// spec's own default eviction grace period is a tunable, not load-bearing.
type Cache struct {
	Device     vk.Device
	MaxMRU     int
	EvictAfter time.Duration

	entries  []*entry // MRU order, index 0 is most recently used
	fallback *entry

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewCache returns a Cache with the spec's default eviction policy (keep
// 10 most-recently-used, evict anything idle past 60s) and compiles the
// fallback solid-color shader immediately so it's never subject to a
// compile failure mid-frame.
func NewCache(dev vk.Device) (*Cache, error) {
	c := &Cache{
		Device:     dev,
		MaxMRU:     10,
		EvictAfter: 60 * time.Second,
	}
	prog, err := compile(dev, solidDarkRed)
	if err != nil {
		return nil, fmt.Errorf("shadercache: fallback shader: %w", err)
	}
	c.fallback = &entry{key: solidDarkRed, prog: prog}
	return c, nil
}

// Get returns the Program for key, compiling and caching it on miss. If
// compilation or linking fails, the fallback shader is returned instead
// and the error is still reported so the caller can deliver a protocol
// error to the offending client.
func (c *Cache) Get(key ShaderKey, now time.Time) (*gpu.Program, error) {
	for i, e := range c.entries {
		if e.key == key {
			e.lastUsed = now
			c.promote(i)
			c.hits++
			return e.prog, nil
		}
	}

	c.misses++
	prog, err := compile(c.Device, key)
	if err != nil {
		return c.fallback.prog, fmt.Errorf("%w: %v", errs.ErrShaderCompile, err)
	}
	c.entries = append([]*entry{{key: key, prog: prog, lastUsed: now}}, c.entries...)
	return prog, nil
}

// promote moves the entry at index i to the front of the MRU list.
func (c *Cache) promote(i int) {
	if i == 0 {
		return
	}
	e := c.entries[i]
	copy(c.entries[1:i+1], c.entries[:i])
	c.entries[0] = e
}

// EndFrame applies the eviction policy: the MaxMRU most-recently-used
// entries are kept unconditionally; beyond that, any entry idle past
// EvictAfter (relative to now, the repaint clock) is dropped. The
// fallback shader is never a candidate.
func (c *Cache) EndFrame(now time.Time) {
	kept := make([]*entry, 0, len(c.entries))
	for i, e := range c.entries {
		if i < c.MaxMRU || now.Sub(e.lastUsed) <= c.EvictAfter {
			kept = append(kept, e)
			continue
		}
		e.prog.Delete(c.Device)
		c.evictions++
	}
	c.entries = kept
}

// Stats is a diagnostic snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Live      int
}

// Stats returns a snapshot of hit/miss/eviction counters and current live
// entry count.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Live: len(c.entries)}
}

// Fallback returns the distinguished, eviction-exempt solid-color shader
// created at Cache construction.
func (c *Cache) Fallback() *gpu.Program {
	return c.fallback.prog
}

// compile synthesizes and compiles the vertex/fragment pair for key and
// registers its uniform binding indices. It does not build a graphics
// pipeline (render pass, vertex input layout), and nothing else in this
// module calls gpu.Program.Compile for the programs Cache returns.
func compile(dev vk.Device, key ShaderKey) (*gpu.Program, error) {
	vertex, fragment := Source(key)
	prog := &gpu.Program{}
	if err := prog.AddShader(dev, gpu.VertexShader, []byte(vertex)); err != nil {
		return nil, err
	}
	if err := prog.AddShader(dev, gpu.FragmentShader, []byte(fragment)); err != nil {
		return nil, err
	}
	prog.SetUniform("projection", 0)
	prog.SetUniform("plane0", 1)
	prog.SetUniform("plane1", 2)
	prog.SetUniform("plane2", 3)
	prog.SetUniform("uniforms", 5)
	return prog, nil
}
