// Package config loads the scene presets that drive each section.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the host looks for presets, relative to the executable.
const DefaultPath = "assets/scenes.yaml"

// BuiltinCube mirrors assets.BuiltinCube so presets can run without model files.
const BuiltinCube = "builtin:cube"

type File struct {
	Scenes []SceneConfig `yaml:"scenes"`
}

// SceneConfig is one section: its props, camera, input style and storm.
type SceneConfig struct {
	Name        string            `yaml:"name"`
	Title       string            `yaml:"title"`
	Room        string            `yaml:"room"`
	Props       []PropConfig      `yaml:"props"`
	ResetProp   string            `yaml:"resetProp"`
	Camera      CameraConfig      `yaml:"camera"`
	Interaction InteractionConfig `yaml:"interaction"`
	Ground      GroundConfig      `yaml:"ground"`
	Spawner     *SpawnerConfig    `yaml:"spawner"`
	AutoStorm   bool              `yaml:"autoStorm"`
}

type PropConfig struct {
	Name      string    `yaml:"name"`
	Title     string    `yaml:"title"`
	Model     string    `yaml:"model"`
	Position  []float32 `yaml:"position"`
	Rotation  []float32 `yaml:"rotation"`
	Scale     float32   `yaml:"scale"`
	Color     string    `yaml:"color"`
	Draggable bool      `yaml:"draggable"`
	Hoverable bool      `yaml:"hoverable"`
}

type CameraConfig struct {
	Mode        string    `yaml:"mode"` // lookAround | orbit
	Position    []float32 `yaml:"position"`
	BaseYaw     float32   `yaml:"baseYaw"`
	YawRange    float32   `yaml:"yawRange"`
	Pitch       float32   `yaml:"pitch"`
	MinDistance float32   `yaml:"minDistance"`
	MaxDistance float32   `yaml:"maxDistance"`
	AllowDolly  bool      `yaml:"allowDolly"`
	Fovy        float32   `yaml:"fovy"`
	// LookAt, when set, aims the rig at a point on mount instead of at BaseYaw/Pitch.
	LookAt []float32 `yaml:"lookAt"`
}

type InteractionConfig struct {
	Mode              string  `yaml:"mode"` // rotateNode | rotateCamera
	RotateSensitivity float32 `yaml:"rotateSensitivity"`
	Wobble            bool    `yaml:"wobble"`
}

type GroundConfig struct {
	Y          float32 `yaml:"y"`
	HalfExtent float32 `yaml:"halfExtent"`
}

// SpawnerConfig tunes a scene's storm. A nil MaxCubes, CullY or Restitution
// takes the default; an explicit zero is kept.
type SpawnerConfig struct {
	Model             string   `yaml:"model"`
	Texture           string   `yaml:"texture"`
	ModelScale        float32  `yaml:"modelScale"`
	CubeSize          float32  `yaml:"cubeSize"`
	SpawnHeight       float32  `yaml:"spawnHeight"`
	HalfExtent        float32  `yaml:"halfExtent"`
	MaxCubes          *int     `yaml:"maxCubes"`
	InitialCubes      int      `yaml:"initialCubes"`
	BurstStaggerMs    int      `yaml:"burstStaggerMs"`
	SpawnIntervalMs   int      `yaml:"spawnIntervalMs"`
	CullY             *float32 `yaml:"cullY"`
	Mass              float32  `yaml:"mass"`
	Restitution       *float32 `yaml:"restitution"`
	LightmapIntensity float32  `yaml:"lightmapIntensity"`
}

func (s SpawnerConfig) BurstStagger() time.Duration {
	return time.Duration(s.BurstStaggerMs) * time.Millisecond
}

func (s SpawnerConfig) SpawnInterval() time.Duration {
	return time.Duration(s.SpawnIntervalMs) * time.Millisecond
}

// Load reads presets from path. A missing file yields Default(); a malformed
// or invalid one is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config: %s not found, using built-in scenes", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene config YAML: %w", err)
	}
	f.applyDefaults()
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return &f, nil
}

// Find returns the scene with the given name.
func (f *File) Find(name string) (SceneConfig, bool) {
	for _, s := range f.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return SceneConfig{}, false
}

// Titles lists the scene titles in order.
func (f *File) Titles() []string {
	out := make([]string, len(f.Scenes))
	for i, s := range f.Scenes {
		out[i] = s.Title
	}
	return out
}

func (f *File) applyDefaults() {
	for i := range f.Scenes {
		s := &f.Scenes[i]
		if s.Title == "" {
			s.Title = s.Name
		}
		for j := range s.Props {
			p := &s.Props[j]
			if p.Model == "" {
				p.Model = BuiltinCube
			}
			if p.Scale == 0 {
				p.Scale = 1
			}
			if p.Title == "" {
				p.Title = p.Name
			}
		}
		c := &s.Camera
		if c.Mode == "" {
			c.Mode = "orbit"
		}
		if c.Fovy == 0 {
			c.Fovy = 75
		}
		if c.MinDistance == 0 {
			c.MinDistance = 1
		}
		if c.MaxDistance < c.MinDistance {
			c.MaxDistance = c.MinDistance
		}
		if s.Interaction.Mode == "" {
			s.Interaction.Mode = "rotateNode"
		}
		if s.Interaction.RotateSensitivity == 0 {
			s.Interaction.RotateSensitivity = 0.01
		}
		if s.Spawner != nil {
			s.Spawner.applyDefaults()
		}
	}
}

func (s *SpawnerConfig) applyDefaults() {
	if s.Model == "" {
		s.Model = BuiltinCube
	}
	if s.CubeSize == 0 {
		s.CubeSize = 1.5
	}
	if s.ModelScale == 0 {
		s.ModelScale = 1
		if s.Model == BuiltinCube {
			s.ModelScale = s.CubeSize
		}
	}
	if s.SpawnHeight == 0 {
		s.SpawnHeight = 15
	}
	if s.HalfExtent == 0 {
		s.HalfExtent = 5
	}
	if s.MaxCubes == nil {
		s.MaxCubes = ptr(15)
	}
	if s.InitialCubes == 0 {
		s.InitialCubes = 10
	}
	if s.BurstStaggerMs == 0 {
		s.BurstStaggerMs = 100
	}
	if s.SpawnIntervalMs == 0 {
		s.SpawnIntervalMs = 3000
	}
	if s.CullY == nil {
		s.CullY = ptr[float32](-10)
	}
	if s.Mass == 0 {
		s.Mass = 1
	}
	if s.Restitution == nil {
		s.Restitution = ptr[float32](0.7)
	}
	if s.LightmapIntensity == 0 {
		s.LightmapIntensity = 1.5
	}
}

func (f *File) validate() error {
	if len(f.Scenes) == 0 {
		return fmt.Errorf("scenes cannot be empty")
	}
	seen := make(map[string]bool)
	for _, s := range f.Scenes {
		if s.Name == "" {
			return fmt.Errorf("scene name cannot be empty")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scene name %q", s.Name)
		}
		seen[s.Name] = true

		switch s.Camera.Mode {
		case "orbit", "lookAround":
		default:
			return fmt.Errorf("scene %s: unknown camera mode %q", s.Name, s.Camera.Mode)
		}
		switch s.Interaction.Mode {
		case "rotateNode", "rotateCamera":
		default:
			return fmt.Errorf("scene %s: unknown interaction mode %q", s.Name, s.Interaction.Mode)
		}
		if s.Camera.YawRange < 0 {
			return fmt.Errorf("scene %s: yawRange must be >= 0, got %f", s.Name, s.Camera.YawRange)
		}

		props := make(map[string]bool)
		for _, p := range s.Props {
			if p.Name == "" {
				return fmt.Errorf("scene %s: prop name cannot be empty", s.Name)
			}
			props[p.Name] = true
			if _, err := ParseColor(p.Color); err != nil {
				return fmt.Errorf("scene %s: prop %s: %w", s.Name, p.Name, err)
			}
		}
		if s.ResetProp != "" && !props[s.ResetProp] {
			return fmt.Errorf("scene %s: resetProp %q is not a prop", s.Name, s.ResetProp)
		}

		if sp := s.Spawner; sp != nil {
			if *sp.MaxCubes < 0 {
				return fmt.Errorf("scene %s: maxCubes must be >= 0, got %d", s.Name, *sp.MaxCubes)
			}
			if r := *sp.Restitution; r < 0 || r > 1 {
				return fmt.Errorf("scene %s: restitution must be in [0,1], got %f", s.Name, r)
			}
			if sp.SpawnIntervalMs < 0 || sp.BurstStaggerMs < 0 {
				return fmt.Errorf("scene %s: spawn timings must be >= 0", s.Name)
			}
		} else if s.AutoStorm {
			return fmt.Errorf("scene %s: autoStorm needs a spawner", s.Name)
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

// Vec turns a YAML triple into a vector. Missing components are zero.
func Vec(v []float32) rl.Vector3 {
	var out rl.Vector3
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	if len(v) > 2 {
		out.Z = v[2]
	}
	return out
}

// ParseColor reads "#rrggbb". An empty string is white.
func ParseColor(s string) (rl.Color, error) {
	if s == "" {
		return rl.White, nil
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil || len(s) != 7 {
		return rl.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return rl.NewColor(r, g, b, 255), nil
}

// Default returns the four built-in sections.
func Default() *File {
	f := &File{Scenes: []SceneConfig{
		{
			Name:      "hero",
			Title:     "Welcome",
			ResetProp: "monolith",
			Props: []PropConfig{
				{Name: "monolith", Title: "Drag me", Position: []float32{0, 3, 0}, Scale: 2, Color: "#4a6fa5", Draggable: true, Hoverable: true},
			},
			Camera: CameraConfig{
				Mode:        "orbit",
				Position:    []float32{0, 3, 0},
				BaseYaw:     -math.Pi,
				YawRange:    math.Pi / 4,
				Pitch:       1.3,
				MinDistance: 12,
				MaxDistance: 20,
				AllowDolly:  true,
			},
			Ground:  GroundConfig{Y: 1},
			Spawner: &SpawnerConfig{SpawnIntervalMs: 3000},
		},
		{
			Name:  "about",
			Title: "About",
			Props: []PropConfig{
				{Name: "books", Title: "Reading", Position: []float32{-1.5, 1.5, -3}, Scale: 0.6, Color: "#b5651d", Hoverable: true},
				{Name: "laptop", Title: "Work", Position: []float32{0, 1.5, -3}, Scale: 0.6, Color: "#555555", Hoverable: true},
				{Name: "plant", Title: "Hobbies", Position: []float32{1.5, 1.5, -3}, Scale: 0.6, Color: "#2e8b57", Hoverable: true},
			},
			Camera: CameraConfig{
				Mode:     "lookAround",
				Position: []float32{0, 2, 0},
				BaseYaw:  -math.Pi,
				YawRange: math.Pi / 4,
				Pitch:    math.Pi / 2,
				LookAt:   []float32{0, 1.5, -3},
			},
			Interaction: InteractionConfig{Mode: "rotateCamera", Wobble: true},
			Ground:      GroundConfig{Y: 1},
		},
		{
			Name:  "skills",
			Title: "Skills",
			Camera: CameraConfig{
				Mode:        "orbit",
				Position:    []float32{0, 2, 0},
				BaseYaw:     -math.Pi,
				YawRange:    math.Pi / 4,
				Pitch:       1.2,
				MinDistance: 18,
			},
			Ground:    GroundConfig{Y: 1, HalfExtent: 6},
			Spawner:   &SpawnerConfig{SpawnIntervalMs: 5000},
			AutoStorm: true,
		},
		{
			Name:  "catalogue",
			Title: "Catalogue",
			Props: []PropConfig{
				{Name: "crate", Title: "Projects", Position: []float32{0, 2, 0}, Scale: 1.2, Color: "#c8a165", Hoverable: true},
			},
			Camera: CameraConfig{
				Mode:        "orbit",
				Position:    []float32{0, 2, 0},
				BaseYaw:     -math.Pi,
				YawRange:    math.Pi / 4,
				Pitch:       1.2,
				MinDistance: 18,
			},
			Ground:    GroundConfig{Y: 1},
			Spawner:   &SpawnerConfig{SpawnIntervalMs: 3000},
			AutoStorm: true,
		},
	}}
	f.applyDefaults()
	return f
}
