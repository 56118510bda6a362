package volview

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

type AssetId string

// AssetServer owns the CPU-side assets of the viewer: raw volume datasets and
// GLSL shader sources. The renderer looks shaders up by well-known name, so
// embedded defaults can be overridden from disk before the GL program is
// built.
type AssetServer struct {
	volumes     map[AssetId]*VolumeAsset
	shaders     map[AssetId]ShaderAsset
	shaderNames map[string]AssetId
}

type AssetServerModule struct{}

type ShaderAsset struct {
	Name   string
	Source string
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AssetServer{
		volumes:     make(map[AssetId]*VolumeAsset),
		shaders:     make(map[AssetId]ShaderAsset),
		shaderNames: make(map[string]AssetId),
	})
}

func (server *AssetServer) AddVolume(v *VolumeAsset) AssetId {
	id := makeAssetId()
	server.volumes[id] = v
	return id
}

// LoadVolume reads and validates a raw dataset from disk and registers it.
func (server *AssetServer) LoadVolume(path string, dims VolumeDims, format VolumeFormat) (AssetId, error) {
	v, err := LoadVolumeFile(path, dims, format)
	if err != nil {
		return "", err
	}
	return server.AddVolume(v), nil
}

func (server *AssetServer) Volume(id AssetId) (*VolumeAsset, bool) {
	v, ok := server.volumes[id]
	return v, ok
}

// RegisterShader stores a shader source under a well-known name, replacing
// any earlier registration of the same name.
func (server *AssetServer) RegisterShader(name, source string) AssetId {
	if old, ok := server.shaderNames[name]; ok {
		delete(server.shaders, old)
	}
	id := makeAssetId()
	server.shaders[id] = ShaderAsset{Name: name, Source: source}
	server.shaderNames[name] = id
	return id
}

// LoadShaderFile registers a shader source read from disk.
func (server *AssetServer) LoadShaderFile(name, path string) (AssetId, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", path, err)
	}
	return server.RegisterShader(name, string(data)), nil
}

func (server *AssetServer) ShaderSource(name string) (string, bool) {
	id, ok := server.shaderNames[name]
	if !ok {
		return "", false
	}
	return server.shaders[id].Source, true
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
