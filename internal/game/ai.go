package game

import (
	"math"
	"sort"
)

// choosePlacement picks where a bot puts its next unit: the free cell deepest
// into the far corner of the board (largest x+y), ties by coordinate order.
func choosePlacement(layout *MapLayout, reg *UnitRegistry) (Coord, bool) {
	cells := layout.Coords()
	sort.SliceStable(cells, func(i, j int) bool {
		di, dj := cells[i].X+cells[i].Y, cells[j].X+cells[j].Y
		if di != dj {
			return di > dj
		}
		return cells[i].Less(cells[j])
	})
	for _, c := range cells {
		if !reg.Occupied(c) {
			return c, true
		}
	}
	return Coord{}, false
}

// chooseMove picks a destination for a bot unit: the free reachable cell
// closest to any unit of another player, preferring shorter paths and then
// coordinate order. It returns false when no cell improves on staying put.
func chooseMove(u *Unit, layout *MapLayout, reg *UnitRegistry, enemies []Coord) ([]Coord, bool) {
	if len(enemies) == 0 {
		return nil, false
	}
	preds := Reachable(layout, u.Cell, u.TravelDistance, u.IsAir)

	nearest := func(c Coord) int {
		best := math.MaxInt
		for _, e := range enemies {
			if d := Manhattan(c, e); d < best {
				best = d
			}
		}
		return best
	}

	type candidate struct {
		at   Coord
		dist int
		path []Coord
	}
	current := nearest(u.Cell)
	var best *candidate
	for c := range preds {
		if c == u.Cell || reg.Occupied(c) {
			continue
		}
		d := nearest(c)
		if d >= current {
			continue
		}
		path, ok := ReconstructPath(preds, u.Cell, c)
		if !ok {
			continue
		}
		cand := candidate{at: c, dist: d, path: path}
		if best == nil || betterCandidate(cand.dist, len(cand.path), cand.at, best.dist, len(best.path), best.at) {
			best = &cand
		}
	}
	if best == nil {
		return nil, false
	}
	return best.path, true
}

func betterCandidate(dist, pathLen int, at Coord, bestDist, bestLen int, bestAt Coord) bool {
	if dist != bestDist {
		return dist < bestDist
	}
	if pathLen != bestLen {
		return pathLen < bestLen
	}
	return at.Less(bestAt)
}
