package glpkmaster

import (
	"fmt"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/master"
)

// Backend is the GLPK-backed master.Interface implementation.
type Backend struct {
	*master.Core

	inst *instance.Instance
	prob *glpk.Prob

	numTrips  int
	numDepots int

	// colID[i] is the GLPK column id of the i-th real column tracked by
	// Core, kept in lock-step with Core's append-only column cache.
	colID []int

	// Scratch buffers for BeginColumn/AddTrip, reused across calls.
	rowBuf []int32
	valBuf []float64

	// lbCache mirrors the lower bound last written by SetLb, since the
	// binding does not expose glp_get_col_lb.
	lbCache []float64

	// integral tracks whether ConvertToBinary is in effect, so Solve
	// knows to follow the simplex run with a branch-and-cut pass.
	integral bool
}

var _ master.Interface = (*Backend)(nil)

// New builds a fresh RRMP for inst: T trip-assignment rows, K depot-capacity
// rows, and one dummy column per trip seeded at master.DummyColumnCost.
func New(inst *instance.Instance) *Backend {
	numTrips := inst.NumTrips()
	numDepots := inst.NumDepots()

	prob := glpk.New()
	prob.SetProbName("mdvsp_master_glpk")
	prob.SetObjDir(glpk.MIN)
	prob.SetObjName("set_partition_cost")

	firstTripRow := prob.AddRows(numTrips)
	for i := 0; i < numTrips; i++ {
		prob.SetRowName(firstTripRow+i, fmt.Sprintf("task_assign#%d", i))
		prob.SetRowBnds(firstTripRow+i, glpk.LO, 1.0, 1.0)
	}

	firstDepotRow := prob.AddRows(numDepots)
	for k := 0; k < numDepots; k++ {
		prob.SetRowName(firstDepotRow+k, fmt.Sprintf("depot_cap#%d", k))
		prob.SetRowBnds(firstDepotRow+k, glpk.UP, 0.0, float64(inst.DepotCapacity(k)))
	}

	firstDummyCol := prob.AddCols(numTrips)
	for i := 0; i < numTrips; i++ {
		col := firstDummyCol + i
		prob.SetColName(col, fmt.Sprintf("dummy#%d", i))
		prob.SetColBnds(col, glpk.LO, 0.0, 0.0)
		prob.SetObjCoef(col, master.DummyColumnCost)
		prob.SetMatCol(col, []int32{0, int32(i + 1)}, []float64{0, 1.0})
	}

	return &Backend{
		Core:      master.NewCore(inst),
		inst:      inst,
		prob:      prob,
		numTrips:  numTrips,
		numDepots: numDepots,
	}
}

// Solve re-optimizes the RRMP. algo is honored as a simplex-method hint.
func (b *Backend) Solve(algo master.Algo) (float64, error) {
	parm := glpk.NewSmcp()
	parm.SetMsgLev(glpk.MSG_OFF)
	if algo == master.AlgoDual {
		parm.SetMeth(glpk.DUALP)
	} else {
		parm.SetMeth(glpk.PRIMAL)
	}
	if err := b.prob.Simplex(parm); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoSolution, err)
	}
	if b.integral {
		iocp := glpk.NewIocp()
		iocp.SetMsgLev(glpk.MSG_OFF)
		if err := b.prob.Intopt(iocp); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoSolution, err)
		}
		return b.prob.MipObjVal(), nil
	}
	return b.prob.ObjVal(), nil
}

// ObjValue returns the objective of the last Solve.
func (b *Backend) ObjValue() float64 {
	if b.integral {
		return b.prob.MipObjVal()
	}
	return b.prob.ObjVal()
}

// TripDual returns the dual price of trip i's assignment row (GLPK rows are
// base-1 indexed; trip rows occupy 1..numTrips).
func (b *Backend) TripDual(i int) float64 {
	return b.prob.RowDual(i + 1)
}

// DepotCapDual returns the dual price of depot k's capacity row (GLPK rows
// are base-1 indexed; depot rows follow the trip rows).
func (b *Backend) DepotCapDual(k int) float64 {
	return b.prob.RowDual(k + b.numTrips + 1)
}

// BeginColumn starts accumulating a new column; the depot capacity row is
// pre-seeded into the scratch buffer since it's common to every trip in the
// path.
func (b *Backend) BeginColumn(depotID int) {
	b.Core.BeginColumn(depotID)
	// Index 0 is the GLPK 1-based "ignored" slot SetMatCol expects.
	b.rowBuf = append(b.rowBuf[:0], 0, int32(depotID+b.numTrips+1))
	b.valBuf = append(b.valBuf[:0], 0, 1.0)
}

// AddTrip appends trip to both the Core cost accumulator and the GLPK
// scratch matrix column.
func (b *Backend) AddTrip(trip int) error {
	if err := b.Core.AddTrip(trip); err != nil {
		return err
	}
	b.rowBuf = append(b.rowBuf, int32(trip+1))
	b.valBuf = append(b.valBuf, 1.0)
	return nil
}

// CommitColumn closes the column under construction and installs it as a
// new GLPK variable with a continuous, non-negative lower bound.
func (b *Backend) CommitColumn() error {
	depot, _, cost, err := b.Core.Commit()
	if err != nil {
		return err
	}

	col := b.prob.AddCols(1)
	b.prob.SetColName(col, fmt.Sprintf("path#%d#%d", depot, len(b.colID)))
	b.prob.SetColKind(col, glpk.CV)
	b.prob.SetColBnds(col, glpk.LO, 0.0, 0.0)
	b.prob.SetObjCoef(col, cost)
	b.prob.SetMatCol(col, b.rowBuf, b.valBuf)

	b.colID = append(b.colID, col)
	b.lbCache = append(b.lbCache, 0)

	return nil
}

// TripsCovered is an alias of ColumnPath, named for TCG's trip-cover
// bookkeeping use.
func (b *Backend) TripsCovered(col int) []int { return b.ColumnPath(col) }

// GetValue returns the current primal value of column col (Core index,
// excluding dummies).
func (b *Backend) GetValue(col int) float64 {
	return b.prob.ColPrim(b.colID[col])
}

// GetLb returns the current lower bound GLPK holds for column col. The
// binding does not expose glp_get_col_lb; we mirror what SetLb last wrote,
// defaulting to 0 for never-fixed columns.
func (b *Backend) GetLb(col int) float64 {
	if col >= len(b.lbCache) {
		return 0
	}
	return b.lbCache[col]
}

// SetLb raises (or lowers) a column's lower bound; used by TCG to fix
// promising fractional columns at 1.0.
func (b *Backend) SetLb(col int, bound float64) {
	for len(b.lbCache) <= col {
		b.lbCache = append(b.lbCache, 0)
	}
	b.lbCache[col] = bound
	b.prob.SetColBnds(b.colID[col], glpk.LO, bound, 0.0)
}

// ConvertToBinary switches every real (non-dummy) column to integral, ahead
// of the final integer solve.
func (b *Backend) ConvertToBinary() {
	for _, id := range b.colID {
		b.prob.SetColKind(id, glpk.IV)
	}
	b.integral = true
}

// ConvertToRelaxed switches every real column back to continuous, e.g. to
// resume column generation after an integer probe.
func (b *Backend) ConvertToRelaxed() {
	for _, id := range b.colID {
		b.prob.SetColKind(id, glpk.CV)
	}
	b.integral = false
}

// SetAssignmentType switches the trip-assignment rows between the relaxed
// set-cover sense (phase R) and the equality set-partition sense (phase E).
func (b *Backend) SetAssignmentType(sense master.AssignmentSense) {
	kind := glpk.LO
	if sense == master.SenseEQ {
		kind = glpk.FX
	}
	for i := 0; i < b.numTrips; i++ {
		b.prob.SetRowBnds(i+1, kind, 1.0, 1.0)
	}
}
