// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorprofile

import (
	"crypto/md5"
	"sort"
	"sync"
)

// Registry deduplicates ColorProfile values by MD5 identity: loading bytes
// that hash to an already-registered profile returns the existing value
// instead of constructing a duplicate, so two callers that load the same
// profile file end up sharing one ColorProfile and one cache key.
type Registry struct {
	mu       sync.Mutex
	byMD5    map[[16]byte]*ColorProfile
	refCount map[[16]byte]int
}

// NewRegistry returns an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{
		byMD5:    make(map[[16]byte]*ColorProfile),
		refCount: make(map[[16]byte]int),
	}
}

// Load validates and decodes data as an ICC display profile, returning the
// existing registered profile if one with the same MD5 identity is already
// present, or registering and returning a new one otherwise.
func (r *Registry) Load(data []byte, name string) (*ColorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sumOnly := md5.Sum(data)
	if existing, ok := r.byMD5[sumOnly]; ok {
		r.refCount[sumOnly]++
		return existing, nil
	}

	prof, err := loadFromICC(data, name)
	if err != nil {
		return nil, err
	}
	r.byMD5[prof.MD5] = prof
	r.refCount[prof.MD5] = 1
	return prof, nil
}

// Release drops one reference to the profile with the given identity,
// removing it from the registry once the count reaches zero.
func (r *Registry) Release(md5 [16]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refCount[md5]--
	if r.refCount[md5] <= 0 {
		delete(r.byMD5, md5)
		delete(r.refCount, md5)
	}
}

// Info is one row of a Registry.Snapshot listing.
type Info struct {
	Name     string
	MD5      string
	RefCount int
	HasVCGT  bool
}

// Snapshot returns a read-only diagnostic listing of every currently
// registered profile, sorted by MD5 for stable output (a tool surface, not
// used by any transform-building code path).
func (r *Registry) Snapshot() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Info, 0, len(r.byMD5))
	for md5, prof := range r.byMD5 {
		out = append(out, Info{
			Name:     prof.Name,
			MD5:      prof.MD5String(),
			RefCount: r.refCount[md5],
			HasVCGT:  prof.VCGT,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MD5 < out[j].MD5 })
	return out
}
