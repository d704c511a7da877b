package pricing

// DualSource is the narrow read-only view of a master.Interface a pricer
// needs: the dual prices of the trip-assignment and depot-capacity rows.
// Any master.Interface backend satisfies this automatically.
type DualSource interface {
	TripDual(i int) float64
	DepotCapDual(k int) float64
}

// ColumnSink is the narrow write-only view of a master.Interface a pricer
// needs to install newly priced-out columns.
type ColumnSink interface {
	BeginColumn(depotID int)
	AddTrip(trip int) error
	CommitColumn() error
}

// Interface is the contract CgEngine and TcgEngine drive each depot's
// pricing subproblem through.
type Interface interface {
	// DepotID returns the depot this pricer solves for.
	DepotID() int

	// Solve resolves the shortest-path DAG against the current duals and
	// returns the sink's shortest distance (equivalently, the best
	// column's reduced cost). Panics with ErrNegativeCycle if the
	// dual-adjusted arc costs form a negative cycle.
	Solve() float64

	// ObjValue returns the shortest distance computed by the last Solve.
	ObjValue() float64

	// GenerateColumns walks every candidate path whose reduced cost
	// clears NegativeReducedCostThreshold and installs it into sink.
	// Returns the number of columns installed.
	GenerateColumns(sink ColumnSink) int

	// SetMaxLabelExpansionsPerNode bounds how many successor arcs a
	// relaxation step may evaluate per node. Implementations that have no
	// notion of label expansion (e.g. the flow-MIP variant) may ignore
	// the cap, but none may exceed it. Non-positive disables the cap.
	SetMaxLabelExpansionsPerNode(max int)
}
