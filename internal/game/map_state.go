package game

import "image/color"

var (
	tintReachable = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	tintOrigin    = color.RGBA{R: 255, G: 230, B: 120, A: 255}
)

// PendingMove is a unit selected for a move, with the cells it may reach.
type PendingMove struct {
	Unit  UnitID
	From  Coord
	Preds PredecessorMap
}

// MapState is the transient selection state of the board: the tint overlay,
// the pending move and whether a unit is in flight.
type MapState struct {
	Tint    map[Coord]color.RGBA
	Pending *PendingMove
	Moving  bool
	Hover   *Coord
}

func NewMapState() *MapState {
	return &MapState{Tint: make(map[Coord]color.RGBA)}
}

// Clear drops the tint overlay and any pending move. Clearing an empty state
// changes nothing.
func (ms *MapState) Clear() {
	if len(ms.Tint) > 0 {
		ms.Tint = make(map[Coord]color.RGBA)
	}
	ms.Pending = nil
}

// Select computes where u can go this order and tints every free reachable
// cell. The allowance is recomputed from scratch on every selection.
func (ms *MapState) Select(u *Unit, layout *MapLayout, reg *UnitRegistry) {
	preds := Reachable(layout, u.Cell, u.TravelDistance, u.IsAir)
	ms.Tint = make(map[Coord]color.RGBA, len(preds))
	for c := range preds {
		if c == u.Cell {
			ms.Tint[c] = tintOrigin
			continue
		}
		if reg.Occupied(c) {
			continue
		}
		ms.Tint[c] = tintReachable
	}
	ms.Pending = &PendingMove{Unit: u.ID, From: u.Cell, Preds: preds}
}

// Confirm resolves a click on at against the pending move. It returns the path
// to follow when the click names a free reachable cell other than the unit's
// own. The selection is cleared in every case.
func (ms *MapState) Confirm(at Coord, reg *UnitRegistry) ([]Coord, bool) {
	pm := ms.Pending
	ms.Clear()
	if pm == nil || !pm.Preds.Contains(at) {
		return nil, false
	}
	if id, taken := reg.At(at); taken && id != pm.Unit {
		return nil, false
	}
	path, ok := ReconstructPath(pm.Preds, pm.From, at)
	if !ok || len(path) <= 1 {
		return nil, false
	}
	return path, true
}
