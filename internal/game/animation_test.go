package game

import (
	"image"
	"testing"
)

func TestNewAnimationLaysOutFrames(t *testing.T) {
	a := NewAnimation(0.1, 32, 32, 1, 1, [][2]int{{0, 0}, {1, 0}, {2, 3}})
	if a.Len() != 3 {
		t.Fatalf("Len = %d", a.Len())
	}
	want := []image.Rectangle{
		image.Rect(0, 0, 32, 32),
		image.Rect(33, 0, 65, 32),
		image.Rect(66, 99, 98, 131),
	}
	for i, r := range want {
		if a.frames[i] != r {
			t.Fatalf("frame %d = %v, want %v", i, a.frames[i], r)
		}
	}
}

func TestAnimatableWrapsWhenRepeating(t *testing.T) {
	a := NewAnimation(0.5, 8, 8, 0, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}})
	an := NewAnimatable(a, true)

	an.Tick(0.4)
	if an.FrameIndex() != 0 {
		t.Fatalf("frame = %d before the first frame ends", an.FrameIndex())
	}
	an.Tick(0.2)
	if an.FrameIndex() != 1 {
		t.Fatalf("frame = %d, want 1", an.FrameIndex())
	}
	an.Tick(1.0) // two more frames: 2 then wrap to 0
	if an.FrameIndex() != 0 {
		t.Fatalf("frame = %d, want wrap to 0", an.FrameIndex())
	}
}

func TestAnimatableHoldsLastFrameWithoutRepeat(t *testing.T) {
	a := NewAnimation(0.5, 8, 8, 0, 0, [][2]int{{0, 0}, {1, 0}})
	an := NewAnimatable(a, false)
	an.Tick(5)
	if an.FrameIndex() != 1 {
		t.Fatalf("frame = %d, want to hold on 1", an.FrameIndex())
	}
}

func TestPlaySameClipKeepsFrame(t *testing.T) {
	clips := DefaultClips()
	an := NewAnimatable(clips.Walk[FacingSE], true)
	an.Tick(unitWalkFrameS * 1.5)
	if an.FrameIndex() != 1 {
		t.Fatalf("frame = %d, want 1", an.FrameIndex())
	}
	an.Play(clips.Walk[FacingSE])
	if an.FrameIndex() != 1 {
		t.Fatalf("replaying the same clip reset the frame")
	}
	an.Play(clips.Walk[FacingNW])
	if an.FrameIndex() != 0 || an.Playing() != clips.Walk[FacingNW] {
		t.Fatalf("switching clips should restart at frame 0")
	}
}

func TestDefaultClipsMatchSheetRows(t *testing.T) {
	clips := DefaultClips()
	for f := Facing(0); f < facingCount; f++ {
		an := NewAnimatable(clips.Walk[f], true)
		if got := an.Frame().Min.Y; got != int(f)*(unitFrameH+unitExtrusion) {
			t.Fatalf("facing %v starts at y=%d", f, got)
		}
	}
	idle := NewAnimatable(clips.Idle, true)
	if got := idle.Frame().Min.Y; got != int(facingCount)*(unitFrameH+unitExtrusion) {
		t.Fatalf("idle row at y=%d", got)
	}
	var empty Animatable
	if !empty.Frame().Empty() {
		t.Fatalf("no clip should give an empty frame")
	}
}
