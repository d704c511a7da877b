package master

import "github.com/afkummer/mdvsp-colgen/instance"

// PathCost recomputes a column's undiscounted cost straight from the
// instance data: the depot's source arc into the first trip, every
// deadhead between consecutive trips, and the sink arc home from the last
// trip. By construction this equals the objective coefficient the backend
// installed at commit time; consumers that only see the {depot, trips}
// cache (TCG's cost-ranked selection, invariant checks) use it instead of
// a backend column-introspection API.
//
// Panics via ErrForbiddenArc if any required arc is absent, which can only
// happen on a corrupted column cache.
func PathCost(inst *instance.Instance, depot int, trips []int) float64 {
	if len(trips) == 0 {
		panic(ErrEmptyColumn)
	}

	cost := inst.SourceCost(depot, trips[0])
	if cost == instance.NoArc {
		panic(ErrForbiddenArc)
	}
	total := float64(cost)

	for i := 1; i < len(trips); i++ {
		cost = inst.DeadheadCost(trips[i-1], trips[i])
		if cost == instance.NoArc {
			panic(ErrForbiddenArc)
		}
		total += float64(cost)
	}

	cost = inst.SinkCost(depot, trips[len(trips)-1])
	if cost == instance.NoArc {
		panic(ErrForbiddenArc)
	}
	return total + float64(cost)
}
