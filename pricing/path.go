package pricing

import "github.com/afkummer/mdvsp-colgen/instance"

// ExtractPaths walks every source-to-sink candidate backward through pred,
// recomputing the path's true dual-adjusted reduced cost as it walks
// (mirroring, in reverse, exactly how Solve's forward relaxation computed
// it) and keeps only the paths whose total reduced cost clears
// NegativeReducedCostThreshold.
//
// pred is indexed by node id: 0..numTrips-1 are trips, SourceNode and
// SinkNode are the depot's virtual endpoints. A node whose pred entry is
// still -1 is unreachable from the source and is skipped. The walk is an
// explicit loop over the single-parent pred chain, not a recursive descent:
// each node has exactly one predecessor, so there is no branching to stack.
func ExtractPaths(b *Base, pred []int) [][]int {
	source := b.SourceNode()

	var seeds []int
	if b.SinglePath() {
		if last := pred[b.SinkNode()]; last != -1 {
			seeds = []int{last}
		}
	} else {
		for i := 0; i < b.Inst.NumTrips(); i++ {
			if b.Inst.SinkCost(b.DepotID(), i) != instance.NoArc && pred[i] != -1 {
				seeds = append(seeds, i)
			}
		}
	}

	var paths [][]int
	for _, last := range seeds {
		if len(paths) >= b.maxPaths {
			break
		}
		cost := float64(b.Inst.SinkCost(b.DepotID(), last)) - b.Duals.TripDual(last)

		rev := []int{last}
		cur := last
		for pred[cur] != source {
			p := pred[cur]
			cost += float64(b.Inst.DeadheadCost(p, cur)) - b.Duals.TripDual(p)
			rev = append(rev, p)
			cur = p
		}
		cost += float64(b.Inst.SourceCost(b.DepotID(), cur)) - b.Duals.DepotCapDual(b.DepotID())

		if cost > NegativeReducedCostThreshold {
			continue
		}

		path := make([]int, len(rev))
		for i, trip := range rev {
			path[len(rev)-1-i] = trip
		}
		paths = append(paths, path)
	}

	return paths
}

// InstallColumns replays every extracted path into sink via the standard
// BeginColumn/AddTrip/CommitColumn protocol and returns how many columns
// were installed. Panics if a path references a forbidden arc, which can
// only happen if pred was built from an inconsistent dual snapshot.
func InstallColumns(depotID int, paths [][]int, sink ColumnSink) int {
	for _, path := range paths {
		sink.BeginColumn(depotID)
		for _, trip := range path {
			if err := sink.AddTrip(trip); err != nil {
				panic(err)
			}
		}
		if err := sink.CommitColumn(); err != nil {
			panic(err)
		}
	}
	return len(paths)
}
