package assets

import (
	"log"
	"path/filepath"
	"strings"

	"folio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Loader is what scenes consume. Model loads complete on a later Poll or never.
type Loader interface {
	LoadModel(path string) *Future[*engine.Node]
	LoadTexture(path string) *Texture
}

// Backend performs the actual GPU-side loading. It must run on the thread that
// owns the GL context, which is why Manager defers it to Poll.
type Backend interface {
	LoadModel(path string) (rl.Model, rl.BoundingBox, bool)
	LoadTexture(path string) (rl.Texture2D, bool)
	UnloadModel(m rl.Model)
	UnloadTexture(t rl.Texture2D)
}

// Texture is a handle returned synchronously and filled when the load completes.
type Texture struct {
	Path  string
	tex   rl.Texture2D
	ready bool
}

// Texture implements engine.TextureRef
func (t *Texture) Texture() (rl.Texture2D, bool) {
	return t.tex, t.ready
}

type loadedModel struct {
	model  rl.Model
	bounds rl.BoundingBox
}

type modelRequest struct {
	path   string
	future *Future[*engine.Node]
}

// DefaultLoadsPerPoll bounds how many uncached files Poll reads per frame.
const DefaultLoadsPerPoll = 4

// Manager caches models and textures by path and resolves requests during Poll.
type Manager struct {
	backend      Backend
	LoadsPerPoll int

	models   map[string]loadedModel
	textures map[string]*Texture
	failed   map[string]bool
	pending  []modelRequest
	texQueue []*Texture
	closed   bool
}

func NewManager(backend Backend) *Manager {
	return &Manager{
		backend:      backend,
		LoadsPerPoll: DefaultLoadsPerPoll,
		models:       make(map[string]loadedModel),
		textures:     make(map[string]*Texture),
		failed:       make(map[string]bool),
	}
}

// LoadModel queues a load. Each resolution hands out a fresh clone of the
// model's node tree so callers may move and parent it freely.
func (m *Manager) LoadModel(path string) *Future[*engine.Node] {
	f := &Future[*engine.Node]{}
	if m.closed || m.failed[path] {
		return f
	}
	m.pending = append(m.pending, modelRequest{path: path, future: f})
	return f
}

func (m *Manager) LoadTexture(path string) *Texture {
	if t, ok := m.textures[path]; ok {
		return t
	}
	t := &Texture{Path: path}
	if m.closed {
		return t
	}
	m.textures[path] = t
	m.texQueue = append(m.texQueue, t)
	return t
}

// Pending returns the number of unresolved model requests.
func (m *Manager) Pending() int {
	return len(m.pending)
}

// Poll resolves queued requests. Cached models resolve without counting against
// LoadsPerPoll. Failed paths are logged once and their futures never resolve.
func (m *Manager) Poll() {
	if m.closed {
		return
	}
	for _, t := range m.texQueue {
		if tex, ok := m.backend.LoadTexture(t.Path); ok {
			t.tex = tex
			t.ready = true
		} else {
			log.Printf("Assets: texture %s unavailable", t.Path)
		}
	}
	m.texQueue = m.texQueue[:0]

	budget := m.LoadsPerPoll
	remaining := m.pending[:0]
	var resolved []modelRequest
	for _, req := range m.pending {
		if m.failed[req.path] {
			req.future.abandon()
			continue
		}
		if _, ok := m.models[req.path]; !ok {
			if budget <= 0 {
				remaining = append(remaining, req)
				continue
			}
			budget--
			model, bounds, ok := m.backend.LoadModel(req.path)
			if !ok {
				log.Printf("Assets: model %s unavailable", req.path)
				m.failed[req.path] = true
				req.future.abandon()
				continue
			}
			m.models[req.path] = loadedModel{model: model, bounds: bounds}
		}
		resolved = append(resolved, req)
	}
	m.pending = remaining

	// Continuations may queue new loads, so resolve after the queue is settled.
	for _, req := range resolved {
		if m.closed {
			return
		}
		req.future.resolve(m.instantiate(req.path))
	}
}

func (m *Manager) instantiate(path string) *engine.Node {
	lm := m.models[path]
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	root := engine.NewGroup(name)
	root.AddChild(engine.NewMesh(name+"_mesh", engine.MeshData{
		Model:             lm.model,
		Tint:              rl.White,
		Bounds:            lm.bounds,
		LightmapIntensity: 1,
	}))
	return root
}

// Unload releases every cached resource and abandons pending requests. The
// manager refuses new work afterwards.
func (m *Manager) Unload() {
	if m.closed {
		return
	}
	m.closed = true
	for _, req := range m.pending {
		req.future.abandon()
	}
	m.pending = nil
	m.texQueue = nil
	for _, lm := range m.models {
		m.backend.UnloadModel(lm.model)
	}
	for _, t := range m.textures {
		if t.ready {
			m.backend.UnloadTexture(t.tex)
			t.ready = false
		}
	}
	m.models = make(map[string]loadedModel)
	m.textures = make(map[string]*Texture)
}
