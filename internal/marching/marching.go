// Package marching turns the scalar grid into filled tiles and boundary
// lines using a fixed marching squares table, and keeps a spatial index of
// the lines for the physics world.
package marching

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivierh59500/ramp-sandbox-go/internal/geom"
	"github.com/olivierh59500/ramp-sandbox-go/internal/grid"
	"github.com/olivierh59500/ramp-sandbox-go/internal/quadtree"
)

type Options struct {
	Threshold float64
	BlockSize float64 // world units per grid cell
	LeafSize  float64 // minimum leaf size of the line index
}

func DefaultOptions() Options {
	return Options{
		Threshold: 0.5,
		BlockSize: 16,
		LeafSize:  64,
	}
}

// Tile is the filled part of one grid cell, in world units.
type Tile struct {
	X, Y    int
	Case    int
	Polygon []mgl64.Vec2
	// Contour holds the outline edges that cross the cell's inside; the
	// remaining edges lie on the cell border.
	Contour []geom.Line
}

// Outline returns every edge of the polygon, closing edge included.
func (t Tile) Outline() []geom.Line {
	return outline(t.Polygon)
}

func outline(poly []mgl64.Vec2) []geom.Line {
	if len(poly) < 3 {
		return nil
	}
	lines := make([]geom.Line, len(poly))
	for i := range poly {
		lines[i] = geom.Line{From: poly[i], To: poly[(i+1)%len(poly)]}
	}
	return lines
}

// Extractor owns the result of the last extraction. Every extraction is
// total: tiles, lines and the line index are rebuilt from the grid.
type Extractor struct {
	grid          *grid.Grid
	opts          Options
	width, height float64
	logger        *log.Logger

	tiles    []Tile
	lines    []geom.Line
	interior []geom.Rect
	index    *quadtree.Tree[geom.Line]
}

// New extracts g once. width and height bound the line index and should
// match the physics world.
func New(g *grid.Grid, width, height float64, opts Options, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	e := &Extractor{
		grid:   g,
		opts:   opts,
		width:  width,
		height: height,
		logger: logger,
	}
	e.Extract()
	return e
}

func (e *Extractor) Threshold() float64 { return e.opts.Threshold }

// SetThreshold changes the iso level and re-extracts.
func (e *Extractor) SetThreshold(v float64) {
	e.opts.Threshold = v
	e.Extract()
}

// Tiles is the filled geometry for rendering.
func (e *Extractor) Tiles() []Tile { return e.tiles }

// Lines is the terrain boundary used for collision. It holds only the
// contour edges of each tile, the ones crossing the cell's inside. Outline
// edges lying on a cell border are left out; they would stand as walls
// between a tile and a solid neighbour.
func (e *Extractor) Lines() []geom.Line { return e.lines }

// Interior lists cells whose corners are all above the threshold. They
// have no boundary and exist only for rendering.
func (e *Extractor) Interior() []geom.Rect { return e.interior }

// Index is the line index built by the last extraction.
func (e *Extractor) Index() *quadtree.Tree[geom.Line] { return e.index }

// Extract recomputes everything from the grid. The extent is found by
// probing: a row is processed while rows y and y+1 exist at column 0, and
// a cell while all four of its corners exist.
func (e *Extractor) Extract() {
	e.tiles = nil
	e.lines = nil
	e.interior = nil

	bs := e.opts.BlockSize
	for y := 0; e.present(0, y) && e.present(0, y+1); y++ {
		for x := 0; ; x++ {
			tl, ok1 := e.grid.Get(x, y)
			tr, ok2 := e.grid.Get(x+1, y)
			br, ok3 := e.grid.Get(x+1, y+1)
			bl, ok4 := e.grid.Get(x, y+1)
			if !(ok1 && ok2 && ok3 && ok4) {
				break
			}

			c := CaseIndex(tl, tr, br, bl, e.opts.Threshold)
			if c == TopLeft|TopRight|BottomRight|BottomLeft {
				e.interior = append(e.interior, geom.Rect{
					Min:    mgl64.Vec2{float64(x) * bs, float64(y) * bs},
					Width:  bs,
					Height: bs,
				})
			}
			if len(Cases[c]) == 0 {
				continue
			}
			tile := e.tile(x, y, c)
			e.tiles = append(e.tiles, tile)
			e.lines = append(e.lines, tile.Contour...)
		}
	}

	e.index = quadtree.New[geom.Line](e.opts.LeafSize, e.width, e.height, e.logger)
	for _, l := range e.lines {
		if _, err := e.index.Add(l); err != nil {
			e.logger.Printf("marching: line %v-%v not indexed: %v", l.From, l.To, err)
		}
	}
}

func (e *Extractor) present(x, y int) bool {
	_, ok := e.grid.Get(x, y)
	return ok
}

func (e *Extractor) tile(x, y, c int) Tile {
	unit := Cases[c]
	offset := mgl64.Vec2{float64(x), float64(y)}
	bs := e.opts.BlockSize
	toWorld := func(p mgl64.Vec2) mgl64.Vec2 {
		return p.Add(offset).Mul(bs)
	}

	t := Tile{X: x, Y: y, Case: c, Polygon: make([]mgl64.Vec2, len(unit))}
	for i, p := range unit {
		t.Polygon[i] = toWorld(p)
	}
	for i := range unit {
		a, b := unit[i], unit[(i+1)%len(unit)]
		if onBorder(a, b) {
			continue
		}
		t.Contour = append(t.Contour, geom.Line{From: toWorld(a), To: toWorld(b)})
	}
	return t
}
