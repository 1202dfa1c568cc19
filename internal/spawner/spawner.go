package spawner

import (
	"log"
	"math"
	"math/rand"
	"time"

	"folio3d/internal/assets"
	"folio3d/internal/clock"
	"folio3d/internal/engine"
	"folio3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config describes one cube storm. Every scene that rains cubes builds a
// Spawner from its own Config.
type Config struct {
	ModelPath         string
	TexturePath       string
	ModelScale        float32
	CubeSize          float32
	SpawnHeight       float32
	HalfExtent        float32
	MaxCubes          int
	InitialCubes      int
	BurstStagger      time.Duration
	SpawnInterval     time.Duration
	CullY             float32
	Mass              float32
	Restitution       float32
	LightmapIntensity float32
}

func DefaultConfig() Config {
	return Config{
		ModelPath:         assets.BuiltinCube,
		ModelScale:        1.5,
		CubeSize:          1.5,
		SpawnHeight:       15,
		HalfExtent:        5,
		MaxCubes:          15,
		InitialCubes:      10,
		BurstStagger:      100 * time.Millisecond,
		SpawnInterval:     3000 * time.Millisecond,
		CullY:             -10,
		Mass:              1,
		Restitution:       0.7,
		LightmapIntensity: 1.5,
	}
}

// Particle pairs a visual node with its body. They are added, synced and
// removed together.
type Particle struct {
	Node      *engine.Node
	Body      *physics.Body
	SpawnTime time.Duration
}

// Spawner owns the particle pool of one scene.
type Spawner struct {
	cfg      Config
	loader   assets.Loader
	clock    *clock.Scheduler
	physics  *physics.World
	scene    *engine.Scene
	rng      *rand.Rand
	lightmap *assets.Texture

	pool    []*Particle
	pending int
	session uint64
	closed  bool

	burst    []clock.Handle
	interval clock.Handle

	spawned int
	culled  int
	dropped int

	// OnSpawn fires after a particle joins the pool.
	OnSpawn engine.EventWithArg[*Particle]
}

func New(cfg Config, loader assets.Loader, sched *clock.Scheduler, world *physics.World, scene *engine.Scene, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.ModelScale == 0 {
		cfg.ModelScale = 1
	}
	s := &Spawner{
		cfg:     cfg,
		loader:  loader,
		clock:   sched,
		physics: world,
		scene:   scene,
		rng:     rng,
		session: 1,
	}
	if cfg.TexturePath != "" {
		s.lightmap = loader.LoadTexture(cfg.TexturePath)
	}
	return s
}

func (s *Spawner) Config() Config {
	return s.cfg
}

func (s *Spawner) Len() int {
	return len(s.pool)
}

// Pending counts loads that were requested but have not resolved.
func (s *Spawner) Pending() int {
	return s.pending
}

// Particles returns a copy of the pool.
func (s *Spawner) Particles() []*Particle {
	out := make([]*Particle, len(s.pool))
	copy(out, s.pool)
	return out
}

func (s *Spawner) Spawned() int { return s.spawned }
func (s *Spawner) Culled() int  { return s.culled }
func (s *Spawner) Dropped() int { return s.dropped }

// Spawn requests one particle. With rot nil the rotation is random. It reports
// false when the pool, counting loads still in flight, is full; such requests
// are dropped rather than queued.
func (s *Spawner) Spawn(rot *rl.Vector3) bool {
	if s.closed {
		return false
	}
	if len(s.pool)+s.pending >= s.cfg.MaxCubes {
		s.dropped++
		return false
	}

	var rotation rl.Vector3
	if rot != nil {
		rotation = *rot
	} else {
		rotation = s.randomRotation()
	}

	s.pending++
	token := s.session
	s.loader.LoadModel(s.cfg.ModelPath).Then(func(node *engine.Node) {
		if token != s.session {
			return
		}
		s.pending--
		s.admit(node, rotation)
	})
	return true
}

func (s *Spawner) admit(node *engine.Node, rotation rl.Vector3) {
	pos := rl.Vector3{
		X: (s.rng.Float32()*2 - 1) * s.cfg.HalfExtent,
		Y: s.cfg.SpawnHeight,
		Z: (s.rng.Float32()*2 - 1) * s.cfg.HalfExtent,
	}

	body := physics.NewBoxBody(s.cfg.CubeSize, s.cfg.Mass, s.cfg.Restitution)
	body.Position = pos
	body.Rotation = rotation

	node.Transform.Position = pos
	node.Transform.Rotation = rotation
	node.Transform.Scale = rl.Vector3{X: s.cfg.ModelScale, Y: s.cfg.ModelScale, Z: s.cfg.ModelScale}
	node.Walk(func(n *engine.Node) bool {
		if n.Kind == engine.KindMesh && s.lightmap != nil {
			n.Mesh.Lightmap = s.lightmap
			n.Mesh.LightmapIntensity = s.cfg.LightmapIntensity
		}
		return true
	})

	p := &Particle{Node: node, Body: body, SpawnTime: s.clock.Now()}
	s.scene.Add(node)
	s.physics.AddBody(body)
	s.pool = append(s.pool, p)
	s.spawned++
	s.OnSpawn.Invoke(p)
}

func (s *Spawner) randomRotation() rl.Vector3 {
	full := float32(2 * math.Pi)
	return rl.Vector3{
		X: s.rng.Float32() * full,
		Y: s.rng.Float32() * full,
		Z: s.rng.Float32() * full,
	}
}

// SpawnBurst schedules up to count spawns BurstStagger apart, bounded by the
// room left in the pool, then arms the recurring SpawnInterval timer. Timers
// from an earlier burst are cancelled first.
func (s *Spawner) SpawnBurst(count int) {
	if s.closed {
		return
	}
	s.cancelTimers()

	n := min(count, s.cfg.MaxCubes-len(s.pool))
	for i := 0; i < n; i++ {
		h := s.clock.After(time.Duration(i)*s.cfg.BurstStagger, func() {
			s.Spawn(nil)
		})
		s.burst = append(s.burst, h)
	}

	s.interval = s.clock.Every(s.cfg.SpawnInterval, func() {
		if len(s.pool) >= s.cfg.MaxCubes {
			s.clock.Cancel(s.interval)
			return
		}
		s.Spawn(nil)
	})
}

// Storming reports whether the recurring timer is armed.
func (s *Spawner) Storming() bool {
	return s.clock.Active(s.interval)
}

func (s *Spawner) cancelTimers() {
	for _, h := range s.burst {
		s.clock.Cancel(h)
	}
	s.burst = s.burst[:0]
	s.clock.Cancel(s.interval)
	s.interval = clock.Handle{}
}

// Tick copies body poses onto nodes, then removes every particle below CullY.
// A culled particle loses its node and its body in the same call.
func (s *Spawner) Tick(now time.Duration) {
	survivors := s.pool[:0]
	for _, p := range s.pool {
		p.Node.Transform.Position = p.Body.Position
		p.Node.Transform.Rotation = p.Body.Rotation
		if p.Body.Position.Y < s.cfg.CullY {
			s.release(p)
			s.culled++
			continue
		}
		survivors = append(survivors, p)
	}
	for i := len(survivors); i < len(s.pool); i++ {
		s.pool[i] = nil
	}
	s.pool = survivors
}

func (s *Spawner) release(p *Particle) {
	s.scene.Detach(p.Node)
	s.physics.RemoveBody(p.Body)
}

// Clear removes every particle and cancels the storm. Loads already in flight
// are discarded when they resolve.
func (s *Spawner) Clear() {
	s.cancelTimers()
	for _, p := range s.pool {
		s.release(p)
	}
	s.pool = nil
	s.session++
	s.pending = 0
}

// Teardown clears the pool and disables the spawner for good.
func (s *Spawner) Teardown() {
	if s.closed {
		return
	}
	s.Clear()
	s.closed = true
	s.OnSpawn.RemoveAllListeners()
	log.Printf("Spawner: teardown (spawned %d, culled %d, dropped %d)", s.spawned, s.culled, s.dropped)
}
