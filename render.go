package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{0xf4, 0xf1, 0xea, 0xff}
	terrainColor    = color.RGBA{0x6b, 0x8f, 0x5e, 0xff}
	contourColor    = color.RGBA{0x00, 0x00, 0x00, 0xff}
	brushColor      = color.RGBA{0x00, 0x00, 0x00, 0x33}
)

// tilesPerBatch keeps one DrawTriangles call well under the uint16 index limit.
const tilesPerBatch = 2000

// whiteSubImage is the source texture for solid fills.
var whiteSubImage *ebiten.Image

func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw is called each frame by Ebitengine
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	// Solid cells
	for _, r := range s.terrain.Interior() {
		vector.DrawFilledRect(screen, float32(r.Min.X()), float32(r.Min.Y()),
			float32(r.Width), float32(r.Height), terrainColor, false)
	}

	// Boundary cells
	tiles := s.terrain.Tiles()
	for start := 0; start < len(tiles); start += tilesPerBatch {
		end := min(start+tilesPerBatch, len(tiles))
		var path vector.Path
		for _, t := range tiles[start:end] {
			appendPolygon(&path, t.Polygon)
		}
		fillPath(screen, &path, terrainColor)
	}

	for _, l := range s.terrain.Lines() {
		vector.StrokeLine(screen, float32(l.From.X()), float32(l.From.Y()),
			float32(l.To.X()), float32(l.To.Y()), 1, contourColor, true)
	}

	for _, b := range s.world.Balls() {
		vector.DrawFilledCircle(screen, float32(b.Pos.X()), float32(b.Pos.Y()), float32(b.Radius), b.Color, true)
	}

	if !s.SpawnBalls && s.pointer.Pos.X() >= 0 {
		vector.DrawFilledCircle(screen, float32(s.pointer.Pos.X()), float32(s.pointer.Pos.Y()),
			float32(s.brush.Radius), brushColor, true)
	}

	ebitenutil.DebugPrint(screen, s.hud())
}

func (s *Sandbox) hud() string {
	mode := "spawn"
	if !s.SpawnBalls {
		mode = "paint (remove)"
		if s.brush.Adding {
			mode = "paint (add)"
		}
	}
	status := ""
	if s.Paused {
		status = " [paused]"
	}
	return fmt.Sprintf("TPS %.0f  balls %d  lines %d%s\nmode %s  brush %.0f  threshold %.2f\n"+
		"Tab mode  A add/remove  +/- brush  Up/Down threshold\nEnter new map  Esc clear  Space pause  S/L save/load",
		ebiten.ActualTPS(), s.world.Len(), len(s.terrain.Lines()), status,
		mode, s.brush.Radius, s.terrain.Threshold())
}

func appendPolygon(path *vector.Path, poly []mgl64.Vec2) {
	if len(poly) < 3 {
		return
	}
	path.MoveTo(float32(poly[0].X()), float32(poly[0].Y()))
	for _, p := range poly[1:] {
		path.LineTo(float32(p.X()), float32(p.Y()))
	}
	path.Close()
}

func fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, solidSource(), &ebiten.DrawTrianglesOptions{})
}
