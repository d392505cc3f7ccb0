package physics

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
)

// Ball is a circular body. It owns only its physical state; terrain and
// other balls reach it through the world's indexes.
type Ball struct {
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Radius float64
	Color  color.RGBA
}

func NewBall(pos, vel mgl64.Vec2, radius float64, c color.RGBA) *Ball {
	return &Ball{Pos: pos, Vel: vel, Radius: radius, Color: c}
}

// Position files the ball in the body index.
func (b *Ball) Position() mgl64.Vec2 { return b.Pos }

// accelerate applies gravity, then damps both axes by air friction.
func (b *Ball) accelerate(c *Config) {
	b.Vel[1] += c.Gravity
	b.Vel = b.Vel.Mul(c.AirFriction)
}

func (b *Ball) clampToBounds(c *Config) {
	b.Pos[0] = geom.Clamp(b.Pos[0], b.Radius, c.Width-b.Radius)
	b.Pos[1] = geom.Clamp(b.Pos[1], b.Radius, c.Height-b.Radius)
}

// collideBody resolves an overlap between b's predicted position npos and
// o. Both balls are pushed apart from a midpoint weighted towards the
// smaller one, each gains a bounce along its separation direction, and
// both are clamped into the world. It returns b's reference position for
// the remaining checks of this tick.
func (b *Ball) collideBody(o *Ball, npos mgl64.Vec2, c *Config) mgl64.Vec2 {
	sum := b.Radius + o.Radius
	if geom.Distance(npos, o.Pos) >= sum {
		return npos
	}

	mid := o.Pos.Mul(b.Radius).Add(npos.Mul(o.Radius)).Mul(1 / sum)
	o.Pos = mid.Add(geom.Normalize(o.Pos.Sub(mid)).Mul(o.Radius))
	b.Pos = mid.Add(geom.Normalize(npos.Sub(mid)).Mul(b.Radius))

	force := geom.Normalize(o.Pos.Sub(mid)).Mul(b.Vel.Len() * b.Radius / o.Radius)
	o.Vel = o.Vel.Add(force).Mul(c.BounceCost)
	// uses o's velocity after its own bounce
	force = geom.Normalize(b.Pos.Sub(mid)).Mul(o.Vel.Len() * o.Radius / b.Radius)
	b.Vel = b.Vel.Add(force).Mul(c.BounceCost)

	o.clampToBounds(c)
	b.clampToBounds(c)
	return b.Pos
}

// collideWalls reflects each velocity axis whose predicted coordinate is
// out of bounds. Position is left alone.
func (b *Ball) collideWalls(npos mgl64.Vec2, c *Config) {
	if npos.Y() < b.Radius || npos.Y() >= c.Height-b.Radius {
		b.Vel[1] *= -c.BounceCost
	}
	if npos.X() < b.Radius || npos.X() >= c.Width-b.Radius {
		b.Vel[0] *= -c.BounceCost
	}
}

// bounceLine mirrors the velocity when the predicted position comes
// within one radius of l. Near an endpoint the normal points from the
// endpoint to the predicted position, otherwise it is perpendicular to l.
func (b *Ball) bounceLine(l geom.Line, c *Config) {
	npos := b.Pos.Add(b.Vel)
	closest := geom.ClosestPointOnSegment(npos, l.From, l.To)
	if geom.Distance(closest, npos) >= b.Radius {
		return
	}

	var normal mgl64.Vec2
	switch closest {
	case l.From:
		normal = geom.Normalize(npos.Sub(l.From))
	case l.To:
		normal = geom.Normalize(npos.Sub(l.To))
	default:
		normal = geom.ReversePerp(geom.Normalize(l.To.Sub(l.From)))
	}
	b.Vel = geom.Reflect(b.Vel, normal).Mul(c.SurfaceFriction)
}

// pushOut moves a ball that currently overlaps l to exactly one radius from
// its closest point, towards where the ball is heading.
func (b *Ball) pushOut(l geom.Line) {
	closest := geom.ClosestPointOnSegment(b.Pos, l.From, l.To)
	if geom.Distance(closest, b.Pos) >= b.Radius {
		return
	}
	npos := b.Pos.Add(b.Vel)
	b.Pos = closest.Add(geom.Normalize(npos.Sub(closest)).Mul(b.Radius))
}

func (b *Ball) integrate() {
	b.Pos = b.Pos.Add(b.Vel)
}
