package main

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/ramp-sandbox-go/internal/grid"
	"github.com/olivierh59500/ramp-sandbox-go/internal/marching"
	"github.com/olivierh59500/ramp-sandbox-go/internal/physics"
)

// Input tuning
const (
	BrushRadiusStep = 4.0
	MinBrushRadius  = 4.0
	MaxBrushRadius  = 160.0
	ThresholdStep   = 0.05
)

// Perlin parameters for terrain seeding
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
)

// Sandbox is the game state: the terrain grid, its extracted geometry and
// the world of balls falling over it.
type Sandbox struct {
	settings Settings

	grid    *grid.Grid
	terrain *marching.Extractor
	world   *physics.World
	brush   grid.Brush

	SpawnBalls bool // false: the pointer paints terrain
	Paused     bool
	pointer    physics.Pointer

	rng    *rand.Rand
	logger *log.Logger
}

// NewSandbox creates a sandbox with freshly seeded terrain
func NewSandbox(settings Settings, logger *log.Logger) *Sandbox {
	if logger == nil {
		logger = log.Default()
	}
	s := &Sandbox{
		settings:   settings.normalize(),
		SpawnBalls: true,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     logger,
	}
	s.brush = grid.Brush{Radius: s.settings.BrushRadius, Adding: true}
	s.reset()
	return s
}

func (s *Sandbox) cols() int { return s.settings.Width / int(s.settings.BlockSize) }
func (s *Sandbox) rows() int { return s.settings.Height / int(s.settings.BlockSize) }

// reset regenerates the terrain and replaces the world.
// The grid holds one sample more than the cell count on each axis so the
// extracted cells cover the whole window.
func (s *Sandbox) reset() {
	if s.world != nil {
		s.world.Destroy()
	}

	w, h := float64(s.settings.Width), float64(s.settings.Height)

	s.grid = grid.New(s.cols() + 1)
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, s.rng.Int63())
	s.grid.FillNoise(s.rows()+1, noise, s.settings.NoiseScale)

	s.terrain = marching.New(s.grid, w, h, marching.Options{
		Threshold: s.settings.Threshold,
		BlockSize: s.settings.BlockSize,
		LeafSize:  s.settings.LineLeaf,
	}, s.logger)

	cfg := s.settings.Physics
	cfg.Seed = s.rng.Int63()
	s.world = physics.New(cfg, s.logger)
	s.world.SetColorFunc(ballColor)
	s.world.SetTerrain(s.terrain.Index())
}

// Update is called each tick by Ebitengine
func (s *Sandbox) Update() error {
	s.handleInput()
	s.pointer = s.readPointer()

	if s.Paused {
		return nil
	}
	s.step()
	return nil
}

// step runs one tick against the current pointer snapshot.
func (s *Sandbox) step() {
	if s.pointer.Pressed && !s.SpawnBalls {
		s.paint(s.pointer.Pos)
	}
	s.world.Step(physics.Input{
		Pointer:      s.pointer,
		SpawnEnabled: s.SpawnBalls,
	})
}

// paint applies one brush pass and re-extracts the terrain if it changed.
func (s *Sandbox) paint(pos mgl64.Vec2) {
	if s.brush.Apply(s.grid, pos, s.settings.BlockSize) {
		s.terrain.Extract()
		s.world.SetTerrain(s.terrain.Index())
	}
}

func (s *Sandbox) setThreshold(v float64) {
	v = math.Max(0, math.Min(grid.MaxValue, v))
	s.settings.Threshold = v
	s.terrain.SetThreshold(v)
	s.world.SetTerrain(s.terrain.Index())
}

func (s *Sandbox) setBrushRadius(r float64) {
	r = math.Max(MinBrushRadius, math.Min(MaxBrushRadius, r))
	s.settings.BrushRadius = r
	s.brush.Radius = r
}

// applySettings swaps in loaded settings. A new window size needs a new world.
func (s *Sandbox) applySettings(next Settings) {
	next = next.normalize()
	s.settings = next
	s.brush.Radius = next.BrushRadius
	s.reset()
}

// readPointer returns the pointer snapshot for this tick. The first touch
// counts as a pressed pointer. A pointer outside the window is released at
// (-1, -1).
func (s *Sandbox) readPointer() physics.Pointer {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
		pressed = true
	}
	if x < 0 || y < 0 || x >= s.settings.Width || y >= s.settings.Height {
		return physics.Pointer{Pos: mgl64.Vec2{-1, -1}}
	}
	return physics.Pointer{Pos: mgl64.Vec2{float64(x), float64(y)}, Pressed: pressed}
}

// handleInput processes keyboard input
func (s *Sandbox) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.world.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.SpawnBalls = !s.SpawnBalls
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.brush.Adding = !s.brush.Adding
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.setBrushRadius(s.brush.Radius + BrushRadiusStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.setBrushRadius(s.brush.Radius - BrushRadiusStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		s.setThreshold(s.terrain.Threshold() + ThresholdStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		s.setThreshold(s.terrain.Threshold() - ThresholdStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := saveSettings(settingsFile, s.settings); err != nil {
			s.logger.Printf("save settings: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		next, err := loadSettings(settingsFile)
		if err != nil {
			s.logger.Printf("load settings: %v", err)
		} else {
			s.applySettings(next)
		}
	}
}

func (s *Sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.settings.Width, s.settings.Height
}

// ballColor picks a random bright hue
func ballColor(rng *rand.Rand) color.RGBA {
	r, g, b := hsvToRGB(rng.Float64()*360, 0.7, 0.9)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
