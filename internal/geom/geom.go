// Package geom holds the small amount of 2D geometry shared by the grid,
// the spatial index, the terrain extractor and the physics world.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns the unit vector of v. A zero vector stays zero.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{v.X() / l, v.Y() / l}
}

// Distance between two points.
func Distance(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

// ClosestPointOnSegment returns the point of segment ab nearest to p. When
// the nearest point is an endpoint, the returned value equals that endpoint
// exactly, so callers may compare with ==.
func ClosestPointOnSegment(p, a, b mgl64.Vec2) mgl64.Vec2 {
	delta := b.Sub(a)
	lenSq := delta.LenSqr()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(delta) / lenSq
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a.Add(delta.Mul(t))
}

// ReversePerp rotates v by -90 degrees.
func ReversePerp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.Y(), -v.X()}
}

// Reflect mirrors v about the plane with unit normal n: v - 2(v.n)n.
func Reflect(v, n mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}

// Rect is an axis aligned rectangle anchored at its minimum corner.
type Rect struct {
	Min           mgl64.Vec2
	Width, Height float64
}

// Max returns the corner opposite to Min.
func (r Rect) Max() mgl64.Vec2 {
	return r.Min.Add(mgl64.Vec2{r.Width, r.Height})
}

// Contains reports whether p lies in r. The minimum edges are inclusive and
// the maximum edges exclusive, so sibling rectangles never both claim a point.
func (r Rect) Contains(p mgl64.Vec2) bool {
	max := r.Max()
	return r.Min.X() <= p.X() && p.X() < max.X() &&
		r.Min.Y() <= p.Y() && p.Y() < max.Y()
}

// Line is an immutable terrain edge in world units.
type Line struct {
	From, To mgl64.Vec2
}

// Position is the midpoint of the line. It only decides where the line is
// filed in a spatial index.
func (l Line) Position() mgl64.Vec2 {
	return l.From.Add(l.To).Mul(0.5)
}
