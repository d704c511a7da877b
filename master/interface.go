package master

// Interface is the contract the CG/TCG engines drive the RRMP through.
// A concrete backend (e.g. master/glpkmaster) owns the actual LP matrix;
// Interface never leaks backend-specific types across the seam.
//
// The column-construction protocol (BeginColumn, AddTrip, CommitColumn)
// must be called in that order, once per column: BeginColumn starts
// accumulation, AddTrip appends one trip at a time in path order, and
// CommitColumn closes the path with the sink arc and installs the column.
type Interface interface {
	// Solve re-optimizes the current RRMP and returns its objective.
	// algo is a hint, not a requirement.
	Solve(algo Algo) (float64, error)

	// ObjValue returns the objective of the last Solve.
	ObjValue() float64

	// TripDual returns the dual price of trip i's assignment row.
	TripDual(i int) float64

	// DepotCapDual returns the dual price of depot k's capacity row.
	DepotCapDual(k int) float64

	// BeginColumn starts accumulating a new column based at depot depotID.
	BeginColumn(depotID int)

	// AddTrip appends trip to the column under construction. The first
	// call adds the depot's source arc cost; subsequent calls add the
	// deadhead cost from the previous trip.
	AddTrip(trip int) error

	// CommitColumn closes the column under construction with the sink
	// arc back to its depot and installs it in the RRMP.
	CommitColumn() error

	// NumColumns returns how many real (non-dummy) columns exist. Dummy
	// seed columns are backend-internal and never addressable through
	// the column index space below.
	NumColumns() int

	// ColumnDepot returns the depot a committed column is based at.
	ColumnDepot(col int) int

	// ColumnPath returns the ordered trip sequence of a committed column.
	// The caller must not mutate the returned slice.
	ColumnPath(col int) []int

	// TripsCovered is an alias of ColumnPath, named for TCG's trip-cover
	// bookkeeping use.
	TripsCovered(col int) []int

	// GetValue returns the current primal value of a column.
	GetValue(col int) float64

	// GetLb returns the current lower bound of a column.
	GetLb(col int) float64

	// SetLb raises (or lowers) a column's lower bound.
	SetLb(col int, bound float64)

	// ConvertToBinary switches every real column to integral.
	ConvertToBinary()

	// ConvertToRelaxed switches every real column back to continuous.
	ConvertToRelaxed()

	// SetAssignmentType switches the trip-assignment rows between the
	// relaxed (≥1) and equality (=1) senses.
	SetAssignmentType(sense AssignmentSense)
}
