package world

import (
	"log"
	"os"

	"folio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HighlightColor outlines the hovered prop.
var HighlightColor = rl.NewColor(0xff, 0x99, 0x00, 0xff)

const (
	groundSize   = 60.0
	shaderVSPath = "assets/shaders/lighting.vs"
	shaderFSPath = "assets/shaders/lighting.fs"
)

// RaylibRenderer draws a Frame into the current raylib window.
type RaylibRenderer struct {
	Background rl.Color
	Ambient    [4]float32

	shader    rl.Shader
	hasShader bool
	ground    rl.Model
	hasGround bool

	// Drawn and Culled count meshes in the last Submit.
	Drawn  int
	Culled int
}

// NewRaylibRenderer needs an open window. The lighting shader is optional;
// without it meshes use raylib's default material.
func NewRaylibRenderer() *RaylibRenderer {
	r := &RaylibRenderer{
		Background: rl.NewColor(24, 24, 32, 255),
		Ambient:    [4]float32{0.25, 0.25, 0.3, 1.0},
	}
	if fileExists(shaderVSPath) && fileExists(shaderFSPath) {
		r.shader = rl.LoadShader(shaderVSPath, shaderFSPath)
		r.hasShader = rl.IsShaderValid(r.shader)
	}
	if !r.hasShader {
		log.Printf("Renderer: lighting shader unavailable, drawing unlit")
	}

	r.ground = rl.LoadModelFromMesh(rl.GenMeshPlane(groundSize, groundSize, 1, 1))
	r.ground.Materials.Maps.Color = rl.LightGray
	if r.hasShader {
		r.ground.Materials.Shader = r.shader
	}
	r.hasGround = true
	return r
}

func (r *RaylibRenderer) Submit(f Frame) {
	rl.ClearBackground(r.Background)
	if f.Scene == nil {
		return
	}
	if r.hasShader {
		r.updateShaderUniforms(f)
	}

	aspect := float32(1)
	if f.Viewport.Height > 0 {
		aspect = float32(f.Viewport.Width) / float32(f.Viewport.Height)
	}
	frustum := ExtractFrustum(f.Camera, aspect)

	rl.BeginMode3D(f.Camera)

	if r.hasGround && f.Ground.Enabled {
		size := float32(groundSize)
		if f.Ground.HalfExtent > 0 {
			size = f.Ground.HalfExtent * 2
		}
		rl.DrawModelEx(r.ground, rl.Vector3{Y: f.Ground.Y}, rl.Vector3{Y: 1}, 0,
			rl.Vector3{X: size / groundSize, Y: 1, Z: size / groundSize}, rl.White)
	}

	r.Drawn, r.Culled = 0, 0
	for _, n := range f.Scene.Meshes() {
		if box, ok := n.WorldBounds(); ok && !frustum.ContainsBox(box) {
			r.Culled++
			continue
		}
		r.drawMesh(n)
		r.Drawn++
	}

	if f.Highlight != nil {
		if box, ok := f.Highlight.SubtreeBounds(); ok {
			rl.DrawBoundingBox(box, HighlightColor)
		}
	}

	rl.EndMode3D()
}

func (r *RaylibRenderer) drawMesh(n *engine.Node) {
	mesh := n.Mesh
	model := mesh.Model
	model.Transform = n.WorldMatrix()
	if r.hasShader {
		model.Materials.Shader = r.shader
	}

	tint := mesh.Tint
	if mesh.Lightmap != nil {
		if tex, ok := mesh.Lightmap.Texture(); ok {
			model.Materials.Maps.Texture = tex
			tint = rl.ColorBrightness(tint, clampf((mesh.LightmapIntensity-1)*0.5, 0, 1))
		}
	}
	rl.DrawModelEx(model, rl.Vector3{}, rl.Vector3{Y: 1}, 0, rl.Vector3{X: 1, Y: 1, Z: 1}, tint)
}

func (r *RaylibRenderer) updateShaderUniforms(f Frame) {
	light := engine.LightData{Color: rl.White, Intensity: 1, Direction: rl.Vector3{Y: -1}}
	if lights := f.Scene.Lights(); len(lights) > 0 {
		light = *lights[0].Light
	}
	c := rl.ColorNormalize(light.Color)

	lightDirLoc := rl.GetShaderLocation(r.shader, "lightDir")
	rl.SetShaderValue(r.shader, lightDirLoc, []float32{light.Direction.X, light.Direction.Y, light.Direction.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(r.shader, "lightColor")
	rl.SetShaderValue(r.shader, lightColorLoc, []float32{c.X * light.Intensity, c.Y * light.Intensity, c.Z * light.Intensity, 1}, rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(r.shader, "ambient")
	rl.SetShaderValue(r.shader, ambientLoc, r.Ambient[:], rl.ShaderUniformVec4)

	pos := f.Camera.Position
	viewPosLoc := rl.GetShaderLocation(r.shader, "viewPos")
	rl.SetShaderValue(r.shader, viewPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)
}

// Release frees the renderer's GPU resources. Models handed in through frames
// belong to the loader and are not touched.
func (r *RaylibRenderer) Release() {
	if r.hasGround {
		rl.UnloadModel(r.ground)
		r.hasGround = false
	}
	if r.hasShader {
		rl.UnloadShader(r.shader)
		r.hasShader = false
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
