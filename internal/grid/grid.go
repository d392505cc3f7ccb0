// Package grid stores the scalar terrain field: a sparse map from cell
// index to an intensity in [0, 1].
package grid

import (
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
)

// MaxValue is the upper bound of a cell intensity.
const MaxValue = 1.0

// Grid is keyed by x + y*cols. A missing key marks the edge of the
// populated region; consumers probe for it to find the grid's extent.
type Grid struct {
	cols  int
	cells map[int]float64
}

func New(cols int) *Grid {
	return &Grid{
		cols:  cols,
		cells: make(map[int]float64),
	}
}

// Cols is the column count fixed at construction.
func (g *Grid) Cols() int { return g.cols }

// Rows counts populated rows by probing column 0 until it is absent.
func (g *Grid) Rows() int {
	rows := 0
	for {
		if _, ok := g.Get(0, rows); !ok {
			return rows
		}
		rows++
	}
}

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || x >= g.cols || y < 0 {
		return 0, false
	}
	return x + y*g.cols, true
}

// Get returns the value at (x, y) and whether it is populated.
func (g *Grid) Get(x, y int) (float64, bool) {
	i, ok := g.index(x, y)
	if !ok {
		return 0, false
	}
	v, ok := g.cells[i]
	return v, ok
}

// Set stores value clamped to [0, MaxValue]. Coordinates outside the
// column range are ignored.
func (g *Grid) Set(x, y int, value float64) {
	i, ok := g.index(x, y)
	if !ok {
		return
	}
	g.cells[i] = geom.Clamp(value, 0, MaxValue)
}

// Add changes an existing cell by delta and reports whether the cell is
// populated. Absent cells stay absent so brushing never grows the grid.
func (g *Grid) Add(x, y int, delta float64) bool {
	v, ok := g.Get(x, y)
	if !ok {
		return false
	}
	g.Set(x, y, v+delta)
	return true
}

// IndexToPos converts a cell index back into grid coordinates.
func (g *Grid) IndexToPos(index int) (int, int) {
	return index % g.cols, index / g.cols
}

// ForEach visits every populated cell in index order.
func (g *Grid) ForEach(f func(x, y int, value float64)) {
	keys := make([]int, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		x, y := g.IndexToPos(k)
		f(x, y, g.cells[k])
	}
}

// Fill populates a cols x rows rectangle with uniform random values.
func (g *Grid) Fill(rows int, rng *rand.Rand) {
	for x := 0; x < g.cols; x++ {
		for y := 0; y < rows; y++ {
			g.Set(x, y, rng.Float64()*MaxValue)
		}
	}
}

// FillNoise populates a cols x rows rectangle from Perlin noise sampled
// every scale cells. Noise in [-1, 1] is mapped onto [0, 1].
func (g *Grid) FillNoise(rows int, noise *perlin.Perlin, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	for x := 0; x < g.cols; x++ {
		for y := 0; y < rows; y++ {
			n := noise.Noise2D(float64(x)/scale, float64(y)/scale)
			g.Set(x, y, (n+1)/2)
		}
	}
}

// CellAt returns the grid coordinate of a world position.
func CellAt(pos mgl64.Vec2, blockSize float64) mgl64.Vec2 {
	return pos.Mul(1 / blockSize)
}
