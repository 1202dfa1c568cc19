package assets

import (
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BuiltinCube names a generated unit cube, used when no model file is shipped.
const BuiltinCube = "builtin:cube"

// RaylibBackend loads files through raylib. It needs an open window.
type RaylibBackend struct{}

func (RaylibBackend) LoadModel(path string) (rl.Model, rl.BoundingBox, bool) {
	var model rl.Model
	if strings.HasPrefix(path, BuiltinCube) {
		model = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	} else {
		if _, err := os.Stat(path); err != nil {
			return rl.Model{}, rl.BoundingBox{}, false
		}
		model = rl.LoadModel(path)
	}
	if !rl.IsModelValid(model) {
		return rl.Model{}, rl.BoundingBox{}, false
	}
	return model, rl.GetModelBoundingBox(model), true
}

func (RaylibBackend) LoadTexture(path string) (rl.Texture2D, bool) {
	if _, err := os.Stat(path); err != nil {
		return rl.Texture2D{}, false
	}
	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, false
	}
	return tex, true
}

func (RaylibBackend) UnloadModel(m rl.Model) {
	rl.UnloadModel(m)
}

func (RaylibBackend) UnloadTexture(t rl.Texture2D) {
	rl.UnloadTexture(t)
}

// HeadlessBackend serves BuiltinCube without touching the GPU. Every other
// path is unavailable. Tools that simulate scenes without a window use it.
type HeadlessBackend struct{}

func (HeadlessBackend) LoadModel(path string) (rl.Model, rl.BoundingBox, bool) {
	if !strings.HasPrefix(path, BuiltinCube) {
		return rl.Model{}, rl.BoundingBox{}, false
	}
	half := rl.NewVector3(0.5, 0.5, 0.5)
	return rl.Model{MeshCount: 1}, rl.NewBoundingBox(rl.Vector3Negate(half), half), true
}

func (HeadlessBackend) LoadTexture(string) (rl.Texture2D, bool) { return rl.Texture2D{}, false }
func (HeadlessBackend) UnloadModel(rl.Model)                    {}
func (HeadlessBackend) UnloadTexture(rl.Texture2D)              {}
