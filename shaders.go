package volview

import (
	_ "embed"
)

// Shader asset names the renderer resolves through the AssetServer.
const (
	VolumeVertexShaderName   = "volume.vert"
	VolumeFragmentShaderName = "volume.frag"
)

//go:embed shaders/volume.vert
var defaultVolumeVertexShader string

//go:embed shaders/volume.frag
var defaultVolumeFragmentShader string

// registerDefaultShaders installs the embedded GLSL sources. Callers may
// re-register either name from disk afterwards; last registration wins.
func registerDefaultShaders(server *AssetServer) {
	server.RegisterShader(VolumeVertexShaderName, defaultVolumeVertexShader)
	server.RegisterShader(VolumeFragmentShaderName, defaultVolumeFragmentShader)
}
