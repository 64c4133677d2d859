package game

import "sort"

// UnitID identifies a unit. IDs are handed out in creation order, so comparing
// two IDs compares creation order.
type UnitID int

// UnitTemplate is the stat line a new unit is created from.
type UnitTemplate struct {
	Name           string
	TravelDistance int     // max movement cost per order
	TravelSpeed    float64 // legs per second
	IsAir          bool    // may change layer at a fixed cost
}

// DefaultTemplates is the roster used when the config names none.
func DefaultTemplates() []UnitTemplate {
	return []UnitTemplate{
		{Name: "police", TravelDistance: 4, TravelSpeed: 3.0},
		{Name: "heli", TravelDistance: 5, TravelSpeed: 4.0, IsAir: true},
		{Name: "truck", TravelDistance: 3, TravelSpeed: 2.5},
	}
}

// PathState is the in-flight movement of a unit.
type PathState struct {
	Waypoint  int     // index of the leg's origin in Waypoints
	Progress  float64 // [0,1) along the current leg
	LegActive bool    // false until the first tick of a leg has run
	Waypoints []Coord
}

// Unit is a piece on the board.
type Unit struct {
	ID             UnitID
	Owner          int // player id
	Kind           string
	X, Y, Z        float64 // continuous position; Z is the terrain layer
	Cell           Coord   // discrete board position
	TravelDistance int
	TravelSpeed    float64
	IsAir          bool
	Facing         Facing

	Anim  Animatable
	Clips ClipSet

	Path     *PathState
	Priority *float64 // render depth override while a leg is in flight
}

// Moving reports whether the unit has a path in flight.
func (u *Unit) Moving() bool { return u.Path != nil }

// Depth returns the draw depth: the pinned priority during a leg, otherwise
// the projected depth of the unit's current position.
func (u *Unit) Depth() float64 {
	if u.Priority != nil {
		return *u.Priority
	}
	return u.X + u.Y + u.Z + unitDepthOffset
}

// UnitRegistry maps board cells to the unit standing on them. A cell holds at
// most one unit.
type UnitRegistry struct {
	byCell map[Coord]UnitID
}

func NewUnitRegistry() *UnitRegistry {
	return &UnitRegistry{byCell: make(map[Coord]UnitID)}
}

// At returns the unit on c.
func (r *UnitRegistry) At(c Coord) (UnitID, bool) {
	id, ok := r.byCell[c]
	return id, ok
}

// Occupied reports whether c holds a unit.
func (r *UnitRegistry) Occupied(c Coord) bool {
	_, ok := r.byCell[c]
	return ok
}

// Insert places id on c. It returns false and changes nothing if c is taken.
func (r *UnitRegistry) Insert(c Coord, id UnitID) bool {
	if _, taken := r.byCell[c]; taken {
		return false
	}
	r.byCell[c] = id
	return true
}

// Move relocates the unit on from to to in one step. It returns false and
// changes nothing if from does not hold id or to is held by another unit.
func (r *UnitRegistry) Move(from, to Coord, id UnitID) bool {
	cur, ok := r.byCell[from]
	if !ok || cur != id {
		return false
	}
	if other, taken := r.byCell[to]; taken && other != id {
		return false
	}
	delete(r.byCell, from)
	r.byCell[to] = id
	return true
}

// Remove clears c.
func (r *UnitRegistry) Remove(c Coord) {
	delete(r.byCell, c)
}

// Len returns the number of occupied cells.
func (r *UnitRegistry) Len() int { return len(r.byCell) }

// Cells returns every occupied cell in a stable order.
func (r *UnitRegistry) Cells() []Coord {
	out := make([]Coord, 0, len(r.byCell))
	for c := range r.byCell {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
