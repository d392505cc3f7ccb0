package grid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
)

// BrushStep is how much one brush pass moves a cell.
const BrushStep = 0.1

// Brush raises or lowers cells around a world position.
type Brush struct {
	Radius float64 // world units
	Adding bool
}

// Apply changes every populated cell whose grid position lies strictly
// within the brush radius of pos. It reports whether any cell changed so the
// caller can re-extract the terrain once for the whole batch.
func (b Brush) Apply(g *Grid, pos mgl64.Vec2, blockSize float64) bool {
	center := CellAt(pos, blockSize)
	radius := b.Radius / blockSize
	delta := BrushStep
	if !b.Adding {
		delta = -delta
	}

	changed := false
	minX := int(math.Floor(center.X() - radius))
	maxX := int(math.Ceil(center.X() + radius))
	minY := int(math.Floor(center.Y() - radius))
	maxY := int(math.Ceil(center.Y() + radius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if geom.Distance(mgl64.Vec2{float64(x), float64(y)}, center) >= radius {
				continue
			}
			if g.Add(x, y, delta) {
				changed = true
			}
		}
	}
	return changed
}
