package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeZero(t *testing.T) {
	n := Normalize(mgl64.Vec2{})
	if n.X() != 0 || n.Y() != 0 {
		t.Errorf("expected zero vector, got %v", n)
	}
	u := Normalize(mgl64.Vec2{3, 4})
	if math.Abs(u.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", u.Len())
	}
}

func TestNormalizeTinyStaysFinite(t *testing.T) {
	for _, v := range []mgl64.Vec2{{5e-324, 0}, {0, -1e-310}, {1e-200, 1e-200}} {
		n := Normalize(v)
		if math.IsNaN(n.X()) || math.IsNaN(n.Y()) || math.IsInf(n.X(), 0) || math.IsInf(n.Y(), 0) {
			t.Errorf("%v: got %v", v, n)
		}
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := mgl64.Vec2{0, 0}
	b := mgl64.Vec2{10, 0}
	tests := []struct {
		name string
		p    mgl64.Vec2
		want mgl64.Vec2
	}{
		{"interior", mgl64.Vec2{4, 3}, mgl64.Vec2{4, 0}},
		{"before start", mgl64.Vec2{-5, 2}, a},
		{"past end", mgl64.Vec2{12, -1}, b},
		{"on segment", mgl64.Vec2{7, 0}, mgl64.Vec2{7, 0}},
	}
	for _, tt := range tests {
		got := ClosestPointOnSegment(tt.p, a, b)
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := ClosestPointOnSegment(mgl64.Vec2{1, 1}, a, a); got != a {
		t.Errorf("degenerate segment: got %v", got)
	}
}

func TestReflect(t *testing.T) {
	v := Reflect(mgl64.Vec2{1, -2}, mgl64.Vec2{0, 1})
	if v != (mgl64.Vec2{1, 2}) {
		t.Errorf("got %v", v)
	}
	if p := ReversePerp(mgl64.Vec2{1, 0}); p != (mgl64.Vec2{0, -1}) {
		t.Errorf("reverse perp got %v", p)
	}
}

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{Min: mgl64.Vec2{0, 0}, Width: 10, Height: 5}
	if !r.Contains(mgl64.Vec2{0, 0}) {
		t.Error("min corner must be inside")
	}
	if r.Contains(mgl64.Vec2{10, 2}) {
		t.Error("max x edge must be outside")
	}
	if r.Contains(mgl64.Vec2{2, 5}) {
		t.Error("max y edge must be outside")
	}
}

func TestLinePosition(t *testing.T) {
	l := Line{From: mgl64.Vec2{0, 0}, To: mgl64.Vec2{4, 2}}
	if l.Position() != (mgl64.Vec2{2, 1}) {
		t.Errorf("got %v", l.Position())
	}
}
