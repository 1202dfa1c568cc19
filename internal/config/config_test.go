package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *File)
	}{
		{
			name: "storm scene with defaults",
			yamlContent: `
scenes:
  - name: skills
    autoStorm: true
    camera:
      mode: orbit
      minDistance: 18
    spawner:
      spawnIntervalMs: 5000
`,
			validate: func(t *testing.T, f *File) {
				s := f.Scenes[0]
				if s.Title != "skills" {
					t.Errorf("expected title to default to name, got %q", s.Title)
				}
				sp := s.Spawner
				if *sp.MaxCubes != 15 || sp.InitialCubes != 10 {
					t.Errorf("expected cap 15 and burst 10, got %d and %d", *sp.MaxCubes, sp.InitialCubes)
				}
				if sp.SpawnInterval() != 5*time.Second {
					t.Errorf("expected 5s interval, got %v", sp.SpawnInterval())
				}
				if sp.BurstStagger() != 100*time.Millisecond {
					t.Errorf("expected 100ms stagger, got %v", sp.BurstStagger())
				}
				if *sp.CullY != -10 || *sp.Restitution != 0.7 || sp.CubeSize != 1.5 {
					t.Errorf("expected cull -10, restitution 0.7, size 1.5, got %f %f %f", *sp.CullY, *sp.Restitution, sp.CubeSize)
				}
				if sp.ModelScale != 1.5 {
					t.Errorf("expected builtin cube scaled to cube size, got %f", sp.ModelScale)
				}
				if s.Camera.Fovy != 75 {
					t.Errorf("expected fovy 75, got %f", s.Camera.Fovy)
				}
			},
		},
		{
			name: "props",
			yamlContent: `
scenes:
  - name: hero
    resetProp: monolith
    props:
      - name: monolith
        position: [0, 3, 0]
        color: "#ff9900"
        draggable: true
`,
			validate: func(t *testing.T, f *File) {
				p := f.Scenes[0].Props[0]
				if Vec(p.Position) != (rl.Vector3{X: 0, Y: 3, Z: 0}) {
					t.Errorf("expected position (0,3,0), got %v", p.Position)
				}
				if p.Model != BuiltinCube || p.Scale != 1 {
					t.Errorf("expected builtin cube at scale 1, got %s %f", p.Model, p.Scale)
				}
				c, _ := ParseColor(p.Color)
				if c != rl.NewColor(255, 153, 0, 255) {
					t.Errorf("expected #ff9900, got %v", c)
				}
			},
		},
		{
			name: "explicit zero spawner knobs",
			yamlContent: `
scenes:
  - name: still
    spawner:
      maxCubes: 0
      cullY: 0
      restitution: 0
`,
			validate: func(t *testing.T, f *File) {
				sp := f.Scenes[0].Spawner
				if *sp.MaxCubes != 0 {
					t.Errorf("expected cap 0 kept, got %d", *sp.MaxCubes)
				}
				if *sp.CullY != 0 {
					t.Errorf("expected cull 0 kept, got %f", *sp.CullY)
				}
				if *sp.Restitution != 0 {
					t.Errorf("expected restitution 0 kept, got %f", *sp.Restitution)
				}
			},
		},
		{
			name: "restitution out of range",
			yamlContent: `
scenes:
  - name: a
    spawner:
      restitution: 1.5
`,
			wantErr:     true,
			errContains: "restitution must be in [0,1]",
		},
		{
			name:        "empty",
			yamlContent: `scenes: []`,
			wantErr:     true,
			errContains: "scenes cannot be empty",
		},
		{
			name: "duplicate names",
			yamlContent: `
scenes:
  - name: a
  - name: a
`,
			wantErr:     true,
			errContains: "duplicate scene name",
		},
		{
			name: "unknown camera mode",
			yamlContent: `
scenes:
  - name: a
    camera:
      mode: fly
`,
			wantErr:     true,
			errContains: "unknown camera mode",
		},
		{
			name: "reset prop missing",
			yamlContent: `
scenes:
  - name: a
    resetProp: ghost
`,
			wantErr:     true,
			errContains: "is not a prop",
		},
		{
			name: "storm without spawner",
			yamlContent: `
scenes:
  - name: a
    autoStorm: true
`,
			wantErr:     true,
			errContains: "autoStorm needs a spawner",
		},
		{
			name: "bad color",
			yamlContent: `
scenes:
  - name: a
    props:
      - name: p
        color: orange
`,
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name:        "malformed yaml",
			yamlContent: "scenes: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, f)
			}
		})
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Scenes) != 4 {
		t.Errorf("expected 4 default scenes, got %d", len(f.Scenes))
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	if err := os.WriteFile(path, []byte("scenes:\n  - name: only\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.Find("only"); !ok {
		t.Error("expected scene only")
	}
	if _, ok := f.Find("hero"); ok {
		t.Error("expected no default scenes mixed in")
	}
}

func TestDefaultIsValid(t *testing.T) {
	f := Default()
	if err := f.validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	titles := f.Titles()
	if len(titles) != 4 || titles[0] != "Welcome" {
		t.Errorf("expected 4 titles starting with Welcome, got %v", titles)
	}
	skills, _ := f.Find("skills")
	if skills.Spawner.SpawnInterval() != 5*time.Second {
		t.Errorf("expected skills storm every 5s, got %v", skills.Spawner.SpawnInterval())
	}
	catalogue, _ := f.Find("catalogue")
	if catalogue.Spawner.SpawnInterval() != 3*time.Second {
		t.Errorf("expected catalogue storm every 3s, got %v", catalogue.Spawner.SpawnInterval())
	}
}

func TestShippedScenesMatchDefaults(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", DefaultPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if len(f.Scenes) != len(def.Scenes) {
		t.Fatalf("expected %d scenes, got %d", len(def.Scenes), len(f.Scenes))
	}
	for i, sc := range f.Scenes {
		want := def.Scenes[i]
		if sc.Name != want.Name || sc.AutoStorm != want.AutoStorm || sc.ResetProp != want.ResetProp {
			t.Errorf("scene %d: expected %s, got %s", i, want.Name, sc.Name)
		}
		if (sc.Spawner == nil) != (want.Spawner == nil) {
			t.Errorf("scene %s: spawner presence differs", sc.Name)
			continue
		}
		if sc.Spawner != nil && sc.Spawner.SpawnInterval() != want.Spawner.SpawnInterval() {
			t.Errorf("scene %s: expected interval %v, got %v", sc.Name, want.Spawner.SpawnInterval(), sc.Spawner.SpawnInterval())
		}
	}
}
