package grid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

func TestGetSetClamp(t *testing.T) {
	g := New(4)
	if _, ok := g.Get(1, 1); ok {
		t.Fatal("empty grid must report absent")
	}
	g.Set(1, 1, 2.5)
	if v, ok := g.Get(1, 1); !ok || v != 1 {
		t.Errorf("expected clamp to 1, got %f %v", v, ok)
	}
	g.Set(1, 1, -3)
	if v, _ := g.Get(1, 1); v != 0 {
		t.Errorf("expected clamp to 0, got %f", v)
	}
}

func TestOutOfColumnsIsAbsent(t *testing.T) {
	g := New(3)
	g.Fill(2, rand.New(rand.NewSource(1)))
	if _, ok := g.Get(3, 0); ok {
		t.Error("column beyond cols must be absent, not wrapped")
	}
	if _, ok := g.Get(-1, 0); ok {
		t.Error("negative column must be absent")
	}
	if _, ok := g.Get(0, 2); ok {
		t.Error("row beyond populated region must be absent")
	}
	if g.Rows() != 2 {
		t.Errorf("expected 2 rows, got %d", g.Rows())
	}
}

func TestAddOnlyTouchesPopulatedCells(t *testing.T) {
	g := New(2)
	g.Set(0, 0, 0.95)
	if !g.Add(0, 0, 0.1) {
		t.Fatal("populated cell must accept delta")
	}
	if v, _ := g.Get(0, 0); v != 1 {
		t.Errorf("expected clamp at 1, got %f", v)
	}
	if g.Add(1, 5, 0.1) {
		t.Error("absent cell must not be created")
	}
	if _, ok := g.Get(1, 5); ok {
		t.Error("absent cell was created")
	}
}

func TestIndexToPosAndForEach(t *testing.T) {
	g := New(5)
	if x, y := g.IndexToPos(12); x != 2 || y != 2 {
		t.Errorf("got %d,%d", x, y)
	}
	g.Set(4, 1, 0.5)
	g.Set(0, 0, 0.25)
	var visited [][2]int
	g.ForEach(func(x, y int, v float64) {
		visited = append(visited, [2]int{x, y})
	})
	if len(visited) != 2 || visited[0] != [2]int{0, 0} || visited[1] != [2]int{4, 1} {
		t.Errorf("unexpected order %v", visited)
	}
}

func TestFillNoiseInRange(t *testing.T) {
	g := New(8)
	g.FillNoise(6, perlin.NewPerlin(2, 2, 3, 42), 4)
	count := 0
	g.ForEach(func(x, y int, v float64) {
		count++
		if v < 0 || v > 1 {
			t.Errorf("value %f at %d,%d out of range", v, x, y)
		}
	})
	if count != 48 {
		t.Errorf("expected 48 cells, got %d", count)
	}
}

func TestBrushApply(t *testing.T) {
	g := New(10)
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			g.Set(x, y, 0.5)
		}
	}
	b := Brush{Radius: 16, Adding: true}
	if !b.Apply(g, mgl64.Vec2{80, 80}, 16) {
		t.Fatal("expected a change")
	}
	if v, _ := g.Get(5, 5); !approx(v, 0.6) {
		t.Errorf("center cell expected 0.6, got %f", v)
	}
	// distance exactly one cell is not strictly inside
	if v, _ := g.Get(6, 5); v != 0.5 {
		t.Errorf("edge cell expected untouched, got %f", v)
	}

	b.Adding = false
	b.Apply(g, mgl64.Vec2{80, 80}, 16)
	if v, _ := g.Get(5, 5); !approx(v, 0.5) {
		t.Errorf("expected 0.5 after removing, got %f", v)
	}

	if b.Apply(g, mgl64.Vec2{-500, -500}, 16) {
		t.Error("brush far outside the grid must not report a change")
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
