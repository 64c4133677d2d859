package game

// airLayerCrossCost is what an air unit pays to step between two layers.
// Ground units cannot change layer at all.
const airLayerCrossCost = 3

// PredecessorMap maps every reached cell to the cell it was reached from.
// The origin maps to itself.
type PredecessorMap map[Coord]Coord

// Contains reports whether c was reached.
func (pm PredecessorMap) Contains(c Coord) bool {
	_, ok := pm[c]
	return ok
}

type pathEdge struct {
	from, to Coord
}

// edgeCost returns the cost of stepping from a to b, or false if the step is
// impassable. Both cells must exist in the layout.
func edgeCost(ml *MapLayout, a, b Coord, isAir bool) (int, bool) {
	la, okA := ml.Layer(a)
	lb, okB := ml.Layer(b)
	if !okA || !okB {
		return 0, false
	}
	if la == lb {
		return 1, true
	}
	if isAir {
		return airLayerCrossCost, true
	}
	return 0, false
}

// Reachable returns every cell within distance of origin, each mapped to its
// predecessor on a cheapest path.
//
// Costs are small positive integers, so instead of a priority queue the search
// keeps one bucket of pending edges per cumulative cost (Dial's algorithm) and
// drains the buckets in order. The first time a cell is reached it is settled;
// within a bucket, discovery order breaks ties.
func Reachable(ml *MapLayout, origin Coord, distance int, isAir bool) PredecessorMap {
	preds := make(PredecessorMap)
	if ml == nil || !ml.Has(origin) || distance < 0 {
		return preds
	}

	buckets := make([][]pathEdge, distance+1)
	buckets[0] = append(buckets[0], pathEdge{from: origin, to: origin})

	for cost := 0; cost <= distance; cost++ {
		// Every edge costs at least 1, so nothing is appended to the bucket
		// being drained.
		for _, e := range buckets[cost] {
			if _, seen := preds[e.to]; seen {
				continue
			}
			preds[e.to] = e.from

			for _, d := range cardinals {
				next := e.to.Add(d)
				if _, seen := preds[next]; seen {
					continue
				}
				step, ok := edgeCost(ml, e.to, next, isAir)
				if !ok {
					continue
				}
				nc := cost + step
				if nc > distance {
					continue
				}
				buckets[nc] = append(buckets[nc], pathEdge{from: e.to, to: next})
			}
		}
		buckets[cost] = nil
	}
	return preds
}

// ReconstructPath walks predecessors back from to until from is reached and
// returns the waypoints in travel order, from first. ok is false when to was
// not reached or the chain does not lead back to from.
func ReconstructPath(preds PredecessorMap, from, to Coord) ([]Coord, bool) {
	if _, ok := preds[to]; !ok {
		return nil, false
	}
	var rev []Coord
	cur := to
	for steps := 0; ; steps++ {
		// A well-formed tree never needs more steps than it has entries.
		if steps > len(preds) {
			return nil, false
		}
		rev = append(rev, cur)
		if cur == from {
			break
		}
		prev, ok := preds[cur]
		if !ok || prev == cur {
			return nil, false
		}
		cur = prev
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, true
}
