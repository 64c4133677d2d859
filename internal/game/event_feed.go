package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 16
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // e.g. "U1", "--"
	Player  int    // -1 for match-wide lines
	Message string
}

// EventFeed is a ring buffer of match events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, label string, player int, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Player:  player,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel at panelX, newest line at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 14, G: 14, B: 20, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 90, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 20, color.RGBA{R: 24, G: 24, B: 40, A: 255}, false)
	drawText(screen, "EVENTS", panelX+8, 4, color.White)

	entries := f.Recent()
	maxVisible := (panelH - 28) / feedLineHeight
	start := 0
	if len(entries) > maxVisible {
		start = len(entries) - maxVisible
	}

	y := 26
	for _, e := range entries[start:] {
		if e.Player >= 0 {
			vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 7, playerColour(e.Player), false)
		}
		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		drawText(screen, line, panelX+12, y, color.RGBA{R: 210, G: 210, B: 220, A: 255})
		y += feedLineHeight
	}
}
