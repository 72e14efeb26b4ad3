// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DepthVertexShader transforms geometry into light clip space.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes nothing; only the depth buffer is kept.
//
//go:embed depth.frag
var DepthFragmentShader string

// LitVertexShader is the vertex shader for the shadowed scene pass.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader applies ambient + diffuse lighting attenuated by the
// shadow map.
//
//go:embed lit.frag
var LitFragmentShader string

// SunVertexShader is the vertex shader for the unlit sun marker.
//
//go:embed sun.vert
var SunVertexShader string

// SunFragmentShader paints the sun marker a flat colour.
//
//go:embed sun.frag
var SunFragmentShader string

// OverlaySolidVertexShader positions flat-coloured HUD quads in pixels.
//
//go:embed overlay_solid.vert
var OverlaySolidVertexShader string

// OverlaySolidFragmentShader outputs the vertex colour.
//
//go:embed overlay_solid.frag
var OverlaySolidFragmentShader string

// OverlayTextVertexShader positions glyph quads in pixels.
//
//go:embed overlay_text.vert
var OverlayTextVertexShader string

// OverlayTextFragmentShader tints the glyph atlas coverage.
//
//go:embed overlay_text.frag
var OverlayTextFragmentShader string
