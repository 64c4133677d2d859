package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 110
	inspPad   = 4
	inspLineH = 13
)

// Inspector tracks the unit under the pointer, or the unit with a pending
// move when nothing is hovered.
type Inspector struct {
	unit *Unit
	buf  *ebiten.Image
}

func (in *Inspector) update(m *Match, hover *Coord) {
	in.unit = nil
	if hover != nil {
		if id, ok := m.Registry().At(*hover); ok {
			in.unit, _ = m.Unit(id)
			return
		}
	}
	if p := m.MapState().Pending; p != nil {
		in.unit, _ = m.Unit(p.Unit)
	}
}

// inspectorLines is the panel text for u.
func inspectorLines(m *Match, u *Unit) []string {
	lines := []string{
		fmt.Sprintf("%s  %s", unitLabel(u), u.Kind),
		fmt.Sprintf("owner  %s (%s)", playerLabel(u.Owner), m.State().Participant(u.Owner)),
		fmt.Sprintf("cell   %s  facing %s", u.Cell, u.Facing),
		fmt.Sprintf("travel %d  speed %.1f", u.TravelDistance, u.TravelSpeed),
	}
	if u.IsAir {
		lines = append(lines, "air unit")
	}
	if u.Path != nil {
		lines = append(lines, fmt.Sprintf("leg    %d/%d  %.0f%%", u.Path.Waypoint+1, len(u.Path.Waypoints)-1, u.Path.Progress*100))
	}
	if cur, ok := m.State().CurrentUnit(); ok && cur == u.ID {
		lines = append(lines, "has the turn")
	}
	return lines
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	u := g.inspector.unit
	if u == nil {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	vector.FillRect(buf, 0, 0, inspBufW, inspBufH, color.RGBA{R: 12, G: 14, B: 20, A: 230}, false)
	vector.FillRect(buf, 0, 0, 3, inspBufH, playerColour(u.Owner), false)
	y := inspPad
	for _, line := range inspectorLines(g.match, u) {
		drawText(buf, line, inspPad+4, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		y += inspLineH
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(inspScale, inspScale)
	op.GeoM.Translate(float64(g.viewWidth-inspBufW*inspScale-8), float64(g.height-inspBufH*inspScale-8))
	screen.DrawImage(buf, op)
}
