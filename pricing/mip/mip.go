package mip

import (
	"fmt"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/pricing"
)

// Pricer is the flow-MIP pricing.Interface implementation: one binary
// variable per admissible arc, flow conservation at every trip node, and
// an optional cardinality row bounding how many source arcs can be active
// at once.
type Pricer struct {
	*pricing.Base

	prob *glpk.Prob

	// arcCol[i][j] is the GLPK column id of the arc i->j, or -1 if that arc
	// does not exist in the residual DAG. Indices follow Base's node
	// numbering: 0..numTrips-1 are trips, SourceNode/SinkNode are the
	// depot's virtual endpoints.
	arcCol [][]int32

	objVal float64
}

var _ pricing.Interface = (*Pricer)(nil)

// New builds the flow MIP for depotID over inst's admissible arcs. maxPaths
// bounds how many source arcs may be active in a single solve; maxPaths==1
// restricts the model to a single path per solve, and maxPaths<=0 adds no
// cardinality row at all.
func New(inst *instance.Instance, duals pricing.DualSource, depotID int, maxPaths int) *Pricer {
	base := pricing.NewBase(inst, duals, depotID, maxPaths)
	n := base.NumNodes()
	source, sink := base.SourceNode(), base.SinkNode()

	prob := glpk.New()
	prob.SetProbName(fmt.Sprintf("mdvsp_pricing_mip#%d", depotID))
	prob.SetObjDir(glpk.MIN)
	prob.SetObjName("shortest_path")

	arcCol := make([][]int32, n)
	for i := range arcCol {
		arcCol[i] = make([]int32, n)
		for j := range arcCol[i] {
			arcCol[i][j] = -1
		}
	}

	addArc := func(i, j int, name string, cost float64) {
		col := prob.AddCols(1)
		prob.SetColName(col, name)
		prob.SetColKind(col, glpk.BV)
		prob.SetColBnds(col, glpk.DB, 0.0, 1.0)
		prob.SetObjCoef(col, cost)
		arcCol[i][j] = int32(col)
	}

	for i := 0; i < inst.NumTrips(); i++ {
		if cost := inst.SourceCost(depotID, i); cost != instance.NoArc {
			addArc(source, i, fmt.Sprintf("source#%d#%d", depotID, i), float64(cost))
		}
		if cost := inst.SinkCost(depotID, i); cost != instance.NoArc {
			addArc(i, sink, fmt.Sprintf("sink#%d#%d", depotID, i), float64(cost))
		}
		for _, arc := range inst.SuccAdj(i) {
			addArc(i, arc.To, fmt.Sprintf("deadhead#%d#%d", i, arc.To), float64(arc.Cost))
		}
	}

	rowBuf := []int32{0}
	valBuf := []float64{0}

	firstRow := prob.AddRows(inst.NumTrips())
	for i := 0; i < inst.NumTrips(); i++ {
		row := firstRow + i
		prob.SetRowName(row, fmt.Sprintf("flow_conservation#%d", i))
		prob.SetRowBnds(row, glpk.FX, 0.0, 0.0)

		rowBuf, valBuf = rowBuf[:1], valBuf[:1]
		if col := arcCol[source][i]; col != -1 {
			rowBuf = append(rowBuf, col)
			valBuf = append(valBuf, 1.0)
		}
		if col := arcCol[i][sink]; col != -1 {
			rowBuf = append(rowBuf, col)
			valBuf = append(valBuf, -1.0)
		}
		for j := 0; j < inst.NumTrips(); j++ {
			if col := arcCol[i][j]; col != -1 {
				rowBuf = append(rowBuf, col)
				valBuf = append(valBuf, -1.0)
			}
			if col := arcCol[j][i]; col != -1 {
				rowBuf = append(rowBuf, col)
				valBuf = append(valBuf, 1.0)
			}
		}
		prob.SetMatRow(row, rowBuf, valBuf)
	}

	if maxPaths >= 1 {
		rowBuf, valBuf = rowBuf[:1], valBuf[:1]
		for i := 0; i < inst.NumTrips(); i++ {
			if col := arcCol[source][i]; col != -1 {
				rowBuf = append(rowBuf, col)
				valBuf = append(valBuf, 1.0)
			}
		}
		row := prob.AddRows(1)
		prob.SetRowName(row, "max_paths")
		prob.SetRowBnds(row, glpk.UP, 0.0, float64(maxPaths))
		prob.SetMatRow(row, rowBuf, valBuf)
	}

	return &Pricer{
		Base:   base,
		prob:   prob,
		arcCol: arcCol,
	}
}

// Solve refreshes every arc's objective coefficient from the current duals,
// resolves the LP relaxation, and finishes with a branch-and-cut pass.
// Panics with ErrNoSolution if either stage fails, since a feasible
// residual DAG is a precondition of this subproblem.
func (p *Pricer) Solve() float64 {
	source, sink := p.SourceNode(), p.SinkNode()
	depotDual := p.Duals.DepotCapDual(p.DepotID())

	for i := 0; i < p.Inst.NumTrips(); i++ {
		if col := p.arcCol[source][i]; col != -1 {
			cost := float64(p.Inst.SourceCost(p.DepotID(), i)) - depotDual
			p.prob.SetObjCoef(int(col), cost)
		}
		tripDual := p.Duals.TripDual(i)
		if col := p.arcCol[i][sink]; col != -1 {
			cost := float64(p.Inst.SinkCost(p.DepotID(), i)) - tripDual
			p.prob.SetObjCoef(int(col), cost)
		}
		for _, arc := range p.Inst.SuccAdj(i) {
			if col := p.arcCol[i][arc.To]; col != -1 {
				cost := float64(arc.Cost) - tripDual
				p.prob.SetObjCoef(int(col), cost)
			}
		}
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	smcp.SetMeth(glpk.PRIMAL)
	if err := p.prob.Simplex(smcp); err != nil {
		panic(fmt.Errorf("%w: depot %d: %v", ErrNoSolution, p.DepotID(), err))
	}

	iocp := glpk.NewIocp()
	iocp.SetMsgLev(glpk.MSG_OFF)
	if err := p.prob.Intopt(iocp); err != nil {
		panic(fmt.Errorf("%w: depot %d: %v", ErrNoSolution, p.DepotID(), err))
	}

	p.objVal = p.prob.MipObjVal()
	return p.objVal
}

// ObjValue returns the objective computed by the last Solve.
func (p *Pricer) ObjValue() float64 { return p.objVal }

// GenerateColumns walks every active arc out of the source, following
// active arcs downstream with an explicit stack rather than recursion,
// and installs every path whose reduced cost clears
// pricing.NegativeReducedCostThreshold.
func (p *Pricer) GenerateColumns(sink pricing.ColumnSink) int {
	source, sinkNode := p.SourceNode(), p.SinkNode()
	depotDual := p.Duals.DepotCapDual(p.DepotID())

	const activeTol = 0.98

	type frame struct {
		path []int
		cost float64
	}

	var stack []frame
	for i := 0; i < p.Inst.NumTrips(); i++ {
		col := p.arcCol[source][i]
		if col == -1 || p.prob.MipColVal(int(col)) < activeTol {
			continue
		}
		cost := float64(p.Inst.SourceCost(p.DepotID(), i)) - depotDual
		stack = append(stack, frame{path: []int{i}, cost: cost})
	}

	var paths [][]int
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		last := f.path[len(f.path)-1]
		tripDual := p.Duals.TripDual(last)

		if col := p.arcCol[last][sinkNode]; col != -1 && p.prob.MipColVal(int(col)) >= activeTol {
			total := f.cost + (float64(p.Inst.SinkCost(p.DepotID(), last)) - tripDual)
			if total <= pricing.NegativeReducedCostThreshold {
				path := make([]int, len(f.path))
				copy(path, f.path)
				paths = append(paths, path)
			}
		}

		for _, arc := range p.Inst.SuccAdj(last) {
			col := p.arcCol[last][arc.To]
			if col == -1 || p.prob.MipColVal(int(col)) < activeTol {
				continue
			}
			nextPath := make([]int, len(f.path)+1)
			copy(nextPath, f.path)
			nextPath[len(f.path)] = arc.To
			nextCost := f.cost + (float64(arc.Cost) - tripDual)
			stack = append(stack, frame{path: nextPath, cost: nextCost})
		}
	}

	return pricing.InstallColumns(p.DepotID(), paths, sink)
}
