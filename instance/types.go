package instance

// Arc is one entry of an adjacency list: a trip reachable by deadheading
// from some other trip, and the cost of that deadhead move.
type Arc struct {
	To   int // destination trip index
	Cost int // deadhead cost, always != NoArc
}

// Option configures Instance construction.
type Option func(*buildConfig)

type buildConfig struct {
	sortAdjacency bool
}

// WithSortedAdjacency sorts each trip's adjacency list ascending by cost
// at build time (the SORT_DEADHEAD_ARCS env var). Pricing visits cheaper
// deadheads first when this is enabled, which matters only when a label
// expansion cap truncates the scan.
func WithSortedAdjacency(sorted bool) Option {
	return func(c *buildConfig) { c.sortAdjacency = sorted }
}

// Instance is the immutable MDVSP problem data. Build with New; every
// accessor is read-only and safe for concurrent use once construction
// returns.
type Instance struct {
	numDepots int
	numTrips  int
	depotCap  []int

	// matrix is the full (numDepots+numTrips) square cost matrix, raw
	// from the instance file: rows/cols [0,numDepots) are depot nodes,
	// [numDepots, numDepots+numTrips) are trip nodes.
	matrix [][]int

	succAdj [][]Arc
	predAdj [][]Arc
}

// NumDepots returns the number of depots K.
func (inst *Instance) NumDepots() int { return inst.numDepots }

// NumTrips returns the number of timetabled trips T.
func (inst *Instance) NumTrips() int { return inst.numTrips }

// DepotCapacity returns the number of vehicles available at depot k.
func (inst *Instance) DepotCapacity(k int) int { return inst.depotCap[k] }

// SourceCost returns the cost of depot k dispatching a vehicle to cover
// trip i first, or NoArc if that arc is forbidden.
func (inst *Instance) SourceCost(k, trip int) int {
	return inst.matrix[k][inst.numDepots+trip]
}

// SinkCost returns the cost of a vehicle returning to depot k after
// covering trip i last, or NoArc if that arc is forbidden.
func (inst *Instance) SinkCost(k, trip int) int {
	return inst.matrix[inst.numDepots+trip][k]
}

// DeadheadCost returns the cost of deadheading from trip pred straight
// into trip succ, or NoArc if that arc is forbidden.
func (inst *Instance) DeadheadCost(pred, succ int) int {
	return inst.matrix[inst.numDepots+pred][inst.numDepots+succ]
}

// RawCost returns the raw matrix cell for debugging and instance dumping;
// i and j are full (depots+trips) node indices.
func (inst *Instance) RawCost(i, j int) int {
	return inst.matrix[i][j]
}

// SuccAdj returns the trips directly deadhead-reachable from trip i,
// each paired with its cost. The slice is owned by Instance; callers
// must not mutate it.
func (inst *Instance) SuccAdj(i int) []Arc { return inst.succAdj[i] }

// PredAdj returns the trips that can deadhead directly into trip i,
// each paired with its cost. The slice is owned by Instance; callers
// must not mutate it.
func (inst *Instance) PredAdj(i int) []Arc { return inst.predAdj[i] }
