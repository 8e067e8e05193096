// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import "errors"

// Sentinel errors for the per-frame/per-surface error taxonomy: callers
// check with errors.Is rather than matching on error strings.
var (
	// ErrInvalidProfile: ICC bytes fail version/class/channel validation,
	// or the MD5 identity check fails. No state is mutated.
	ErrInvalidProfile = errors.New("invalid color profile")

	// ErrTransformConstruction: chain build or roundtrip tolerance check
	// failed. The caller receives no transform; the output falls back to
	// identity for that category.
	ErrTransformConstruction = errors.New("color transform construction failed")

	// ErrShaderCompile: shader source failed to compile or link. The
	// fallback shader is used in its place for the current draw.
	ErrShaderCompile = errors.New("shader compile failed")

	// ErrGPUResourceExhausted: FBO incomplete or image import rejected.
	// Fatal for the current frame only; the frame is skipped.
	ErrGPUResourceExhausted = errors.New("GPU resource exhausted")

	// ErrAcquireFenceDup: duplicating a client's acquire fence fd failed.
	// The offending surface is dissociated from its buffer.
	ErrAcquireFenceDup = errors.New("acquire fence dup failed")
)
