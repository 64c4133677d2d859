package game

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// BeginMove hands u a path to follow. Paths shorter than two waypoints are
// ignored.
func BeginMove(u *Unit, path []Coord) bool {
	if len(path) < 2 {
		return false
	}
	wps := make([]Coord, len(path))
	copy(wps, path)
	u.Path = &PathState{Waypoints: wps}
	return true
}

// updateMovement advances every moving unit by one tick.
func (m *Match) updateMovement(dt float64) {
	for _, id := range m.unitOrder {
		u := m.units[id]
		if u.Path == nil {
			continue
		}
		m.advanceUnit(u, dt)
	}
}

// legPriority is the render depth a unit keeps for a whole leg: the deeper of
// its two end cells, so it never slips behind or in front of the wrong tile.
func (m *Match) legPriority(a, b Coord) float64 {
	return math.Max(m.layout.Project(a, true).Z, m.layout.Project(b, true).Z)
}

// advanceUnit moves u along its path by dt seconds. It returns true on the
// tick the unit arrives.
func (m *Match) advanceUnit(u *Unit, dt float64) bool {
	ps := u.Path
	from := ps.Waypoints[ps.Waypoint]
	to := ps.Waypoints[ps.Waypoint+1]

	if !ps.LegActive {
		facing, ok := FacingFor(to.Sub(from))
		if !ok {
			// Reachable only ever links cardinal neighbours.
			panic(fmt.Sprintf("unit %d: non-cardinal leg %s -> %s", u.ID, from, to))
		}
		u.Facing = facing
		u.Anim.Play(u.Clips.Walk[facing])
		p := m.legPriority(from, to)
		u.Priority = &p
		ps.LegActive = true
	}

	ps.Progress += u.TravelSpeed * dt
	if ps.Progress >= 1 {
		ps.Waypoint++
		ps.Progress = 0
		ps.LegActive = false
		u.Priority = nil
		m.matchLog.AddVerbose(m.tick, unitLabel(u), playerLabel(u.Owner), "move", "leg", fmt.Sprintf("%s -> %s", from, to), float64(ps.Waypoint))

		if ps.Waypoint == len(ps.Waypoints)-1 {
			m.arrive(u, ps.Waypoints[ps.Waypoint])
			return true
		}
		m.placeAt(u, ps.Waypoints[ps.Waypoint])
		return false
	}

	t := ps.Progress
	fl, _ := m.layout.Layer(from)
	tl, _ := m.layout.Layer(to)
	u.X = lerp(float64(from.X), float64(to.X), t)
	u.Y = lerp(float64(from.Y), float64(to.Y), t)
	u.Z = lerp(float64(fl), float64(tl), t)
	return false
}

// arrive snaps u onto its destination and hands the turn back.
func (m *Match) arrive(u *Unit, dest Coord) {
	prev := u.Cell
	if !m.registry.Move(prev, dest, u.ID) {
		m.log.Warn("registry refused move",
			zap.Int("unit", int(u.ID)), zap.Stringer("from", prev), zap.Stringer("to", dest))
	}
	m.placeAt(u, dest)
	u.Cell = dest
	u.Path = nil
	u.Priority = nil
	u.Anim.Play(u.Clips.Idle)
	m.mapState.Moving = false

	m.matchLog.Add(m.tick, unitLabel(u), playerLabel(u.Owner), "move", "arrived", dest.String(), float64(Manhattan(prev, dest)))
	m.feed.Add(m.tick, unitLabel(u), u.Owner, fmt.Sprintf("arrived at %s", dest))
	m.queue.Push(TurnEnded{Unit: u.ID})
}

// placeAt sets u's continuous position exactly onto c.
func (m *Match) placeAt(u *Unit, c Coord) {
	l, _ := m.layout.Layer(c)
	u.X, u.Y, u.Z = float64(c.X), float64(c.Y), float64(l)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
