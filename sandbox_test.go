package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/physics"
)

func testSandbox() *Sandbox {
	st := DefaultSettings()
	st.Width, st.Height = 160, 96
	st.LineLeaf = 16
	return NewSandbox(st, log.New(io.Discard, "", 0))
}

func TestNormalizeRoundsToBlocks(t *testing.T) {
	st := DefaultSettings()
	st.Width, st.Height = 970, 650
	st = st.normalize()
	if st.Width != 960 || st.Height != 640 {
		t.Errorf("got %dx%d", st.Width, st.Height)
	}
	if st.Physics.Width != 960 || st.Physics.Height != 640 {
		t.Errorf("physics bounds %vx%v", st.Physics.Width, st.Physics.Height)
	}
}

func TestSettingsSaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sandbox.json")
	st := DefaultSettings()
	st.Threshold = 0.35
	st.Physics.Gravity = 0.5
	if err := saveSettings(file, st); err != nil {
		t.Fatal(err)
	}
	got, err := loadSettings(file)
	if err != nil {
		t.Fatal(err)
	}
	if got.Threshold != 0.35 || got.Physics.Gravity != 0.5 {
		t.Errorf("loaded %+v", got)
	}
	if got.Physics.Width != float64(got.Width) {
		t.Errorf("bounds not derived from the window: %v vs %d", got.Physics.Width, got.Width)
	}
}

func TestLoadMissingSettings(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist, got %v", err)
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{120, 0, 1, 0},
		{240, 0, 0, 1},
		{360, 1, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hsvToRGB(tt.h, 1, 1)
		if math.Abs(r-tt.r) > 1e-9 || math.Abs(g-tt.g) > 1e-9 || math.Abs(b-tt.b) > 1e-9 {
			t.Errorf("h=%v: got %v %v %v", tt.h, r, g, b)
		}
	}
}

func TestNewSandboxCoversWindow(t *testing.T) {
	s := testSandbox()
	if s.grid.Cols() != 11 || s.grid.Rows() != 7 {
		t.Errorf("grid %dx%d", s.grid.Cols(), s.grid.Rows())
	}
	cells := len(s.terrain.Tiles()) + len(s.terrain.Interior())
	if cells > 10*6 {
		t.Errorf("%d cells for a 10x6 window", cells)
	}
	if s.world.Config().Width != 160 {
		t.Errorf("world width %v", s.world.Config().Width)
	}
}

func TestPaintRaisesCells(t *testing.T) {
	s := testSandbox()
	s.grid.ForEach(func(x, y int, _ float64) { s.grid.Set(x, y, 0) })
	s.terrain.Extract()

	s.paint(mgl64.Vec2{80, 48})
	v, _ := s.grid.Get(5, 3)
	if math.Abs(v-0.1) > 1e-9 {
		t.Errorf("centre cell %v", v)
	}

	s.brush.Adding = false
	s.paint(mgl64.Vec2{80, 48})
	if v, _ := s.grid.Get(5, 3); v != 0 {
		t.Errorf("remove pass left %v", v)
	}
}

func TestStepSpawnsOnlyInSpawnMode(t *testing.T) {
	s := testSandbox()
	s.pointer = physics.Pointer{Pos: mgl64.Vec2{40, 40}, Pressed: true}

	s.SpawnBalls = false
	s.step()
	if s.world.Len() != 0 {
		t.Fatal("painting spawned a ball")
	}
	s.SpawnBalls = true
	s.step()
	if s.world.Len() != 1 {
		t.Fatalf("expected 1 ball, got %d", s.world.Len())
	}
}

func TestResetReplacesWorld(t *testing.T) {
	s := testSandbox()
	old := s.world
	old.Spawn(mgl64.Vec2{20, 20})
	s.reset()
	if old.Len() != 0 {
		t.Error("old world still holds balls")
	}
	if s.world == old || s.world.Len() != 0 {
		t.Error("reset must start an empty world")
	}
}

func TestThresholdIsClamped(t *testing.T) {
	s := testSandbox()
	s.setThreshold(1.4)
	if s.terrain.Threshold() != 1 || s.settings.Threshold != 1 {
		t.Errorf("threshold %v", s.terrain.Threshold())
	}
	if len(s.terrain.Lines()) != 0 {
		t.Error("nothing exceeds the maximum value")
	}
}

func TestNormalizeRejectsUnusableValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"sub-pixel block", func(s *Settings) { s.BlockSize = 0.5 }},
		{"negative block", func(s *Settings) { s.BlockSize = -16 }},
		{"NaN block", func(s *Settings) { s.BlockSize = math.NaN() }},
		{"huge block", func(s *Settings) { s.BlockSize = 1e9 }},
		{"zero window", func(s *Settings) { s.Width, s.Height = 0, 0 }},
		{"negative window", func(s *Settings) { s.Width, s.Height = -320, -200 }},
		{"window below one block", func(s *Settings) { s.Width = 10 }},
		{"zero leaf sizes", func(s *Settings) { s.LineLeaf, s.Physics.BodyLeafSize = 0, 0 }},
	}
	for _, tt := range tests {
		st := DefaultSettings()
		tt.modify(&st)
		st = st.normalize()
		b := int(st.BlockSize)
		if b < 1 || float64(b) != st.BlockSize {
			t.Errorf("%s: block size %v", tt.name, st.BlockSize)
			continue
		}
		if st.Width < b || st.Height < b || st.Width%b != 0 || st.Height%b != 0 {
			t.Errorf("%s: window %dx%d for block %d", tt.name, st.Width, st.Height, b)
		}
		if st.LineLeaf <= 0 || st.Physics.BodyLeafSize <= 0 {
			t.Errorf("%s: leaf sizes %v %v", tt.name, st.LineLeaf, st.Physics.BodyLeafSize)
		}
	}
}

func TestLoadSubPixelBlockSize(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sandbox.json")
	if err := os.WriteFile(file, []byte(`{"blockSize": 0.5, "width": 0}`), 0644); err != nil {
		t.Fatal(err)
	}
	st, err := loadSettings(file)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSandbox(st, log.New(io.Discard, "", 0))
	if s.cols() < 1 || s.rows() < 1 {
		t.Fatalf("grid %dx%d", s.cols(), s.rows())
	}
	s.applySettings(st)
	s.step()
}
