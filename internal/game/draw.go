package game

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, hudFace, op)
}

var playerPalette = []color.RGBA{
	{R: 80, G: 150, B: 255, A: 255},
	{R: 235, G: 80, B: 70, A: 255},
	{R: 90, G: 210, B: 110, A: 255},
	{R: 240, G: 200, B: 70, A: 255},
}

// playerColour returns the colour a player's units and feed lines use.
func playerColour(player int) color.RGBA {
	if player < 0 {
		return color.RGBA{R: 150, G: 150, B: 160, A: 255}
	}
	return playerPalette[player%len(playerPalette)]
}

// Terrain colours by tile id. Odd ids are the base tile of a layer, even ids
// its variant.
var terrainPalette = []color.RGBA{
	{R: 96, G: 140, B: 72, A: 255},
	{R: 104, G: 150, B: 80, A: 255},
	{R: 128, G: 122, B: 84, A: 255},
	{R: 138, G: 130, B: 92, A: 255},
	{R: 132, G: 132, B: 138, A: 255},
	{R: 146, G: 146, B: 152, A: 255},
	{R: 210, G: 214, B: 222, A: 255},
	{R: 224, G: 228, B: 236, A: 255},
}

func terrainColour(tileID int) color.RGBA {
	if tileID <= 0 {
		return terrainPalette[0]
	}
	return terrainPalette[(tileID-1)%len(terrainPalette)]
}

func shadeColour(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(float64(c.R) * f)),
		G: uint8(clamp255(float64(c.G) * f)),
		B: uint8(clamp255(float64(c.B) * f)),
		A: c.A,
	}
}

func mixColour(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: uint8(clamp255(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: uint8(clamp255(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
		A: a.A,
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// drawable is either a tile or a unit in the depth-sorted draw list.
type drawable struct {
	depth float64
	tile  *Tile
	unit  *Unit
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 22, G: 24, B: 32, A: 255})

	m := g.match
	items := make([]drawable, 0, len(m.Tiles())+len(m.unitOrder))
	tiles := m.Tiles()
	for i := range tiles {
		items = append(items, drawable{depth: m.Layout().Project(tiles[i].At, false).Z, tile: &tiles[i]})
	}
	for _, u := range m.Units() {
		items = append(items, drawable{depth: u.Depth(), unit: u})
	}
	// Tiles sort before units on equal depth.
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth < items[j].depth })

	for _, it := range items {
		if it.tile != nil {
			g.drawTile(screen, *it.tile)
		} else {
			g.drawUnit(screen, it.unit)
		}
	}

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
	m.Feed().Draw(screen, g.viewWidth, g.height)
}

// drawQuad fills a quad given in draw space (Y up).
func (g *Game) drawQuad(screen *ebiten.Image, pts [4][2]float64, c color.RGBA) {
	r, gr, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	var vs [4]ebiten.Vertex
	for i, p := range pts {
		sx, sy := g.worldToScreen(p[0], -p[1])
		vs[i] = ebiten.Vertex{
			DstX: float32(sx), DstY: float32(sy),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: b, ColorA: a,
		}
	}
	screen.DrawTriangles(vs[:], []uint16{0, 1, 2, 0, 2, 3}, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawTile(screen *ebiten.Image, t Tile) {
	m := g.match
	w, h := m.Layout().TileSize()
	hw, hh := w/2, h/2
	p := m.Layout().Project(t.At, false)

	top := terrainColour(t.TileID)
	ms := m.MapState()
	if tint, ok := ms.Tint[t.At]; ok {
		top = mixColour(top, tint, 0.55)
	}
	hovered := ms.Hover != nil && *ms.Hover == t.At
	if hovered {
		top = shadeColour(top, 1.25)
	}

	left := [4][2]float64{{p.X - hw, p.Y}, {p.X, p.Y - hh}, {p.X, p.Y - hh - h}, {p.X - hw, p.Y - h}}
	right := [4][2]float64{{p.X + hw, p.Y}, {p.X, p.Y - hh}, {p.X, p.Y - hh - h}, {p.X + hw, p.Y - h}}
	diamond := [4][2]float64{{p.X + hw, p.Y}, {p.X, p.Y + hh}, {p.X - hw, p.Y}, {p.X, p.Y - hh}}

	g.drawQuad(screen, left, shadeColour(top, 0.7))
	g.drawQuad(screen, right, shadeColour(top, 0.55))
	g.drawQuad(screen, diamond, top)

	edge := color.RGBA{R: 0, G: 0, B: 0, A: 70}
	if hovered {
		edge = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	}
	for i := range diamond {
		a, b := diamond[i], diamond[(i+1)%4]
		ax, ay := g.worldToScreen(a[0], -a[1])
		bx, by := g.worldToScreen(b[0], -b[1])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, edge, true)
	}
}

func (g *Game) drawUnit(screen *ebiten.Image, u *Unit) {
	frame := u.Anim.Frame()
	if frame.Empty() {
		return
	}
	w, h := g.match.Layout().TileSize()
	p := IsoTransform(u.X, u.Y, u.Z, w, h, true)
	sx, sy := g.worldToScreen(p.X, -p.Y)

	if cur, ok := g.match.State().CurrentUnit(); ok && cur == u.ID {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(12*g.camZoom), 2, color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(frame.Dx())/2, -float64(frame.Dy())+4)
	op.GeoM.Scale(g.camZoom, g.camZoom)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(playerColour(u.Owner))
	screen.DrawImage(g.sheet.SubImage(frame).(*ebiten.Image), op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	m := g.match
	st := m.State()

	acting := "--"
	if p, ok := st.ActingPlayer(); ok {
		acting = fmt.Sprintf("P%d (%s)", p, st.Participant(p))
	}
	lines := []string{
		fmt.Sprintf("phase  %s", st.Phase()),
		fmt.Sprintf("acting %s", acting),
		fmt.Sprintf("tick   %d  units %d", m.TickCount(), m.Registry().Len()),
		"LMB place/select/move  RMB cancel  SPACE pass",
		"R restart  C copy report  H hud  WASD/wheel camera",
	}
	if g.statusTTL > 0 && g.status != "" {
		lines = append(lines, g.status)
	}

	vector.FillRect(screen, 8, 8, 390, float32(10+len(lines)*16), color.RGBA{R: 10, G: 10, B: 16, A: 200}, false)
	y := 12
	for i, line := range lines {
		c := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if i == 1 {
			if p, ok := st.ActingPlayer(); ok {
				c = playerColour(p)
			}
		}
		drawText(screen, line, 14, y, c)
		y += 16
	}
}
