package game

import "image"

// Animation is a looping clip: a list of sprite-sheet frame rectangles shown for
// a fixed duration each.
type Animation struct {
	frameDuration float64 // seconds
	frames        []image.Rectangle
}

// NewAnimation lays out frames on a sprite sheet. Each frame is given as a
// (column, row) cell; extrusion is the gutter between cells.
func NewAnimation(frameSeconds float64, frameW, frameH, extrusionX, extrusionY int, cells [][2]int) *Animation {
	frames := make([]image.Rectangle, len(cells))
	for i, c := range cells {
		x0 := c[0] * (frameW + extrusionX)
		y0 := c[1] * (frameH + extrusionY)
		frames[i] = image.Rect(x0, y0, x0+frameW, y0+frameH)
	}
	return &Animation{frameDuration: frameSeconds, frames: frames}
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Animatable plays one Animation at a time.
type Animatable struct {
	current *Animation
	repeat  bool
	frame   int
	elapsed float64
}

// NewAnimatable starts playing anim from its first frame.
func NewAnimatable(anim *Animation, repeat bool) Animatable {
	return Animatable{current: anim, repeat: repeat}
}

// Play switches clips. Switching to the clip already playing keeps its frame.
func (an *Animatable) Play(anim *Animation) {
	if an.current == anim {
		return
	}
	an.current = anim
	an.frame = 0
	an.elapsed = 0
}

// Playing returns the active clip.
func (an *Animatable) Playing() *Animation { return an.current }

// Tick advances the frame timer by dt seconds.
func (an *Animatable) Tick(dt float64) {
	if an.current == nil || len(an.current.frames) == 0 || an.current.frameDuration <= 0 {
		return
	}
	an.elapsed += dt
	for an.elapsed >= an.current.frameDuration {
		an.elapsed -= an.current.frameDuration
		if an.frame+1 >= len(an.current.frames) {
			if !an.repeat {
				an.elapsed = 0
				return
			}
			an.frame = 0
			continue
		}
		an.frame++
	}
}

// Frame returns the sheet rectangle of the current frame.
func (an *Animatable) Frame() image.Rectangle {
	if an.current == nil || len(an.current.frames) == 0 {
		return image.Rectangle{}
	}
	return an.current.frames[an.frame]
}

// FrameIndex returns the index of the current frame in its clip.
func (an *Animatable) FrameIndex() int { return an.frame }

// ClipSet holds a unit's idle clip and one walk clip per facing.
type ClipSet struct {
	Idle *Animation
	Walk [facingCount]*Animation
}

// Unit sprite sheet layout: one row per facing, idle frames on the last row.
const (
	unitFrameW     = 32
	unitFrameH     = 32
	unitExtrusion  = 1
	unitWalkFrames = 4
	unitIdleFrames = 2
	unitWalkFrameS = 0.12
	unitIdleFrameS = 0.5
)

// DefaultClips builds the clip set matching the procedural unit sheet.
func DefaultClips() ClipSet {
	var cs ClipSet
	for f := Facing(0); f < facingCount; f++ {
		cells := make([][2]int, unitWalkFrames)
		for i := range cells {
			cells[i] = [2]int{i, int(f)}
		}
		cs.Walk[f] = NewAnimation(unitWalkFrameS, unitFrameW, unitFrameH, unitExtrusion, unitExtrusion, cells)
	}
	idle := make([][2]int, unitIdleFrames)
	for i := range idle {
		idle[i] = [2]int{i, int(facingCount)}
	}
	cs.Idle = NewAnimation(unitIdleFrameS, unitFrameW, unitFrameH, unitExtrusion, unitExtrusion, idle)
	return cs
}
