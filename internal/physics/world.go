// Package physics advances balls under gravity and resolves their
// collisions with the world walls, the terrain lines and each other.
//
// Collisions are resolved greedily, one pair at a time, in the body
// index's traversal order. Later pairs see the state left by earlier ones.
package physics

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
	"github.com/olivierh59500/ramp-sandbox-go/internal/quadtree"
)

// Pointer is the input snapshot the world reads each tick.
type Pointer struct {
	Pos     mgl64.Vec2
	Pressed bool
}

// Input is everything a tick consumes from outside the core.
type Input struct {
	Pointer Pointer
	// SpawnEnabled is false while the pointer paints terrain.
	SpawnEnabled bool
}

// ColorFunc picks the colour of a freshly spawned ball.
type ColorFunc func(rng *rand.Rand) color.RGBA

type World struct {
	cfg    Config
	bodies *quadtree.Tree[*Ball]
	lines  *quadtree.Tree[geom.Line]
	rng    *rand.Rand
	colors ColorFunc
	logger *log.Logger
	ticks  uint64
}

func New(cfg Config, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		cfg:    cfg,
		bodies: quadtree.New[*Ball](cfg.BodyLeafSize, cfg.Width, cfg.Height, logger),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		colors: func(*rand.Rand) color.RGBA { return color.RGBA{0x80, 0x80, 0x80, 0xff} },
		logger: logger,
	}
}

func (w *World) Config() Config { return w.cfg }

// Ticks counts completed steps.
func (w *World) Ticks() uint64 { return w.ticks }

// SetColorFunc replaces the spawn colour source.
func (w *World) SetColorFunc(f ColorFunc) {
	if f != nil {
		w.colors = f
	}
}

// SetTerrain swaps in the line index built by the latest extraction. A nil
// index means no terrain.
func (w *World) SetTerrain(lines *quadtree.Tree[geom.Line]) {
	w.lines = lines
}

// Add indexes an existing ball.
func (w *World) Add(b *Ball) (quadtree.Handle, error) {
	return w.bodies.Add(b)
}

// Spawn creates a ball at pos, clamped into the walls, with a random
// initial velocity.
func (w *World) Spawn(pos mgl64.Vec2) (quadtree.Handle, error) {
	r := w.cfg.BallRadius
	p := mgl64.Vec2{
		geom.Clamp(pos.X(), r, w.cfg.Width-r),
		geom.Clamp(pos.Y(), r, w.cfg.Height-r),
	}
	s := w.cfg.SpawnSpeed
	vel := mgl64.Vec2{
		w.rng.Float64()*2*s - s,
		w.rng.Float64()*2*s - s,
	}
	return w.Add(NewBall(p, vel, r, w.colors(w.rng)))
}

// Remove destroys one ball.
func (w *World) Remove(h quadtree.Handle) error {
	return w.bodies.Remove(h)
}

// Clear destroys every ball.
func (w *World) Clear() {
	for _, h := range w.bodies.Handles() {
		if err := w.bodies.Remove(h); err != nil {
			w.logger.Printf("physics: clearing body %d: %v", h, err)
		}
	}
}

// Destroy releases the world: every ball and the terrain reference.
func (w *World) Destroy() {
	w.Clear()
	w.lines = nil
}

func (w *World) Len() int { return w.bodies.Len() }

// Balls lists live balls in traversal order, for rendering.
func (w *World) Balls() []*Ball {
	out := make([]*Ball, 0, w.bodies.Len())
	w.bodies.ForEach(func(e quadtree.Entry[*Ball]) {
		out = append(out, e.Value)
	})
	return out
}

// Step advances every ball once, then spawns at the pointer when it is
// pressed and spawning is enabled.
func (w *World) Step(in Input) {
	for _, h := range w.bodies.Handles() {
		b, ok := w.bodies.Get(h)
		if !ok {
			continue
		}
		w.stepBall(h, b)
	}
	if in.SpawnEnabled && in.Pointer.Pressed {
		if _, err := w.Spawn(in.Pointer.Pos); err != nil {
			w.logger.Printf("physics: spawn at %v: %v", in.Pointer.Pos, err)
		}
	}
	w.ticks++
}

func (w *World) stepBall(h quadtree.Handle, b *Ball) {
	c := &w.cfg
	b.accelerate(c)

	npos := b.Pos.Add(b.Vel)
	// Neighbours pushed earlier this tick are filed under stale positions.
	neighbours, err := w.bodies.Nearby(h, false)
	if err != nil {
		w.logger.Printf("physics: body %d neighbourhood: %v", h, err)
	}
	for _, e := range neighbours {
		if e.Handle == h {
			continue
		}
		npos = b.collideBody(e.Value, npos, c)
	}

	b.collideWalls(npos, c)

	if w.lines != nil {
		lines, err := w.lines.NearbyPoint(b.Pos)
		if err != nil {
			w.logger.Printf("physics: body %d terrain: %v", h, err)
		}
		for _, e := range lines {
			b.bounceLine(e.Value, c)
			b.pushOut(e.Value)
		}
	}

	b.integrate()

	// A wall overshoot is transient: the body stays filed at the edge and
	// the wall check reflects it back next tick.
	if err := w.bodies.Update(h); err != nil {
		w.logger.Printf("physics: body %d reindex: %v", h, err)
	}
}
