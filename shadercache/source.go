// Copyright (c) 2026, The Core Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shadercache

import "fmt"

// vertexTemplate is the single fixed vertex shader every variant shares:
// it transforms a clipped quad's (position, texcoord) vertices and passes
// texcoord through for the fragment stage to sample.
const vertexTemplate = `#version 450
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inTexCoord;
layout(location = 0) out vec2 texCoord;
layout(binding = 0) uniform Projection { mat4 proj; } u;
void main() {
	texCoord = inTexCoord;
	gl_Position = u.proj * vec4(inPosition, 0.0, 1.0);
}
`

// fragmentTemplateFmt is substituted with the variant's sampling path and the
// debug/premultiply feature flags to produce the final fragment source.
const fragmentTemplateFmt = `#version 450
layout(location = 0) in vec2 texCoord;
layout(location = 0) out vec4 outColor;
layout(binding = 1) uniform sampler2D plane0;
%s
layout(binding = 5) uniform Uniforms {
	float alpha;
	vec4 unicolor;
	mat4 colorTransform;
} u;
void main() {
	vec4 c = %s;
%s
	outColor = c * u.alpha;
}
`

// planeDeclarations returns the extra sampler bindings a variant needs
// beyond plane0 (YUV formats sample two or three planes).
func planeDeclarations(v Variant) string {
	switch v {
	case VariantYUV420, VariantNV12, VariantYUV422Packed:
		return "layout(binding = 2) uniform sampler2D plane1;\nlayout(binding = 3) uniform sampler2D plane2;"
	default:
		return ""
	}
}

// sampleExpr returns the GLSL expression that produces the raw sampled
// color for a variant.
func sampleExpr(v Variant) string {
	switch v {
	case VariantSolid:
		return "u.unicolor"
	case VariantYUV420, VariantNV12, VariantYUV422Packed, VariantXYUV:
		return "yuvToRGBA(texture(plane0, texCoord), texture(plane1, texCoord), texture(plane2, texCoord))"
	default:
		return "texture(plane0, texCoord)"
	}
}

// Source synthesizes GLSL vertex and fragment source for key by
// substituting its variant and feature flags into the fixed templates.
func Source(key ShaderKey) (vertex, fragment string) {
	v := key.Variant()
	body := "\tc = u.colorTransform * c;"
	if key.GreenTint() {
		body += "\n\tc.g = 1.0;"
	}
	fragment = fmt.Sprintf(fragmentTemplateFmt, planeDeclarations(v), sampleExpr(v), body)
	return vertexTemplate, fragment
}
