package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// facingScreenDir is the on-screen direction of each facing (Y down).
var facingScreenDir = [facingCount][2]float32{
	FacingSE: {1, 0.5},
	FacingNW: {-1, -0.5},
	FacingSW: {-1, 0.5},
	FacingNE: {1, -0.5},
}

// buildUnitSheet draws the unit sprite sheet: one row of walk frames per
// facing, then a row of idle frames. Sprites are greyscale so the renderer can
// tint them with the owner's colour. The layout matches DefaultClips.
func buildUnitSheet() *ebiten.Image {
	cellW := unitFrameW + unitExtrusion
	cellH := unitFrameH + unitExtrusion
	sheet := ebiten.NewImage(cellW*unitWalkFrames, cellH*(int(facingCount)+1))

	body := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	shade := color.RGBA{R: 150, G: 150, B: 150, A: 255}
	nose := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for f := Facing(0); f < facingCount; f++ {
		dir := facingScreenDir[f]
		for i := 0; i < unitWalkFrames; i++ {
			ox := float32(i * cellW)
			oy := float32(int(f) * cellH)
			bob := float32(i%2) * 2
			cx, cy := ox+float32(unitFrameW)/2, oy+float32(unitFrameH)/2+bob

			vector.FillCircle(sheet, cx, cy+6, 9, shade, true)
			vector.FillCircle(sheet, cx, cy, 9, body, true)
			vector.StrokeLine(sheet, cx, cy, cx+dir[0]*10, cy+dir[1]*10, 3, nose, true)
		}
	}
	for i := 0; i < unitIdleFrames; i++ {
		ox := float32(i * cellW)
		oy := float32(int(facingCount) * cellH)
		cx, cy := ox+float32(unitFrameW)/2, oy+float32(unitFrameH)/2
		r := float32(9 + i)
		vector.FillCircle(sheet, cx, cy+6, r, shade, true)
		vector.FillCircle(sheet, cx, cy, r, body, true)
	}
	return sheet
}

// whitePixel is the source image for untextured triangles.
func whitePixel() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
}
