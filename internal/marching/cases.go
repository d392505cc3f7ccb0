package marching

import "github.com/go-gl/mathgl/mgl64"

// Corner bits of a case index. Cell coordinates grow right and down.
const (
	BottomLeft  = 1 << 0
	BottomRight = 1 << 1
	TopRight    = 1 << 2
	TopLeft     = 1 << 3
)

// Cases maps a case index to the filled part of a unit cell. Vertices sit
// on corners or edge midpoints only, so neighbouring cells agree on every
// shared point. Both saddles (5 and 10) keep the centre filled. Cases 0
// and 15 have no boundary and produce no tile.
var Cases = [16][]mgl64.Vec2{
	0:  nil,
	1:  {{0, 0.5}, {0.5, 1}, {0, 1}},
	2:  {{1, 0.5}, {1, 1}, {0.5, 1}},
	3:  {{0, 0.5}, {1, 0.5}, {1, 1}, {0, 1}},
	4:  {{0.5, 0}, {1, 0}, {1, 0.5}},
	5:  {{0.5, 0}, {1, 0}, {1, 0.5}, {0.5, 1}, {0, 1}, {0, 0.5}},
	6:  {{0.5, 0}, {1, 0}, {1, 1}, {0.5, 1}},
	7:  {{0.5, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0.5}},
	8:  {{0, 0}, {0.5, 0}, {0, 0.5}},
	9:  {{0, 0}, {0.5, 0}, {0.5, 1}, {0, 1}},
	10: {{0, 0}, {0.5, 0}, {1, 0.5}, {1, 1}, {0.5, 1}, {0, 0.5}},
	11: {{0, 0}, {0.5, 0}, {1, 0.5}, {1, 1}, {0, 1}},
	12: {{0, 0}, {1, 0}, {1, 0.5}, {0, 0.5}},
	13: {{0, 0}, {1, 0}, {1, 0.5}, {0.5, 1}, {0, 1}},
	14: {{0, 0}, {1, 0}, {1, 1}, {0.5, 1}, {0, 0.5}},
	15: nil,
}

// CaseIndex thresholds the four corners of a cell.
func CaseIndex(topLeft, topRight, bottomRight, bottomLeft, threshold float64) int {
	c := 0
	if topLeft > threshold {
		c |= TopLeft
	}
	if topRight > threshold {
		c |= TopRight
	}
	if bottomRight > threshold {
		c |= BottomRight
	}
	if bottomLeft > threshold {
		c |= BottomLeft
	}
	return c
}

// onBorder reports whether the unit-cell edge ab runs along the cell's
// border rather than through its inside.
func onBorder(a, b mgl64.Vec2) bool {
	if a.X() == b.X() && (a.X() == 0 || a.X() == 1) {
		return true
	}
	return a.Y() == b.Y() && (a.Y() == 0 || a.Y() == 1)
}
