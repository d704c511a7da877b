package mdvsp_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/afkummer/mdvsp-colgen/cgengine"
	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/master"
	"github.com/afkummer/mdvsp-colgen/master/glpkmaster"
	"github.com/afkummer/mdvsp-colgen/pricing"
	"github.com/afkummer/mdvsp-colgen/pricing/spfa"
	"github.com/afkummer/mdvsp-colgen/tcg"
)

// End-to-end runs over tiny literal instances, wiring the GLPK master to
// SPFA pricing exactly the way cmd/mdvsp-colgen does.

func writeInstance(t *testing.T, body string) *instance.Instance {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "inst.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	inst, err := instance.New(path)
	require.NoError(t, err)
	return inst
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type solver struct {
	inst    *instance.Instance
	m       *glpkmaster.Backend
	pricers []pricing.Interface
	cg      *cgengine.Engine
}

func newSolver(t *testing.T, inst *instance.Instance) *solver {
	t.Helper()
	m := glpkmaster.New(inst)
	duals := pricing.NewSnapshot(inst.NumTrips(), inst.NumDepots())
	pricers := make([]pricing.Interface, inst.NumDepots())
	for k := range pricers {
		pricers[k] = spfa.New(inst, duals, k, -1)
	}
	cg := cgengine.New(m, duals, pricers, cgengine.WithLogger(quietLogger()))
	return &solver{inst: inst, m: m, pricers: pricers, cg: cg}
}

// checkCoverAndCapacity asserts the trip-cover and depot-capacity
// invariants over the real columns' primal values. In phase E on a
// feasible instance the dummy columns carry no value, so summing the real
// columns is exact.
func checkCoverAndCapacity(t *testing.T, s *solver, equality bool) {
	t.Helper()

	coverSum := make([]float64, s.inst.NumTrips())
	depotSum := make([]float64, s.inst.NumDepots())
	for c := 0; c < s.m.NumColumns(); c++ {
		v := s.m.GetValue(c)
		depotSum[s.m.ColumnDepot(c)] += v
		for _, trip := range s.m.ColumnPath(c) {
			coverSum[trip] += v
		}
	}
	for i, sum := range coverSum {
		require.GreaterOrEqual(t, sum, 1-1e-6, "trip %d under-covered", i)
		if equality {
			require.LessOrEqual(t, sum, 1+1e-6, "trip %d over-covered", i)
		}
	}
	for k, sum := range depotSum {
		require.LessOrEqual(t, sum, float64(s.inst.DepotCapacity(k))+1e-6, "depot %d over capacity", k)
	}
}

func TestSolve_TrivialOneDepotOneTrip(t *testing.T) {
	inst := writeInstance(t, "1 1\n1\n-1 5\n7 -1\n")
	s := newSolver(t, inst)

	res, err := s.cg.Run()
	require.NoError(t, err)

	require.InDelta(t, 12.0, res.FinalObj, 1e-6)
	require.Equal(t, 1, s.m.NumColumns())
	require.Equal(t, 0, s.m.ColumnDepot(0))
	require.Equal(t, []int{0}, s.m.ColumnPath(0))
	require.InDelta(t, 12.0, master.PathCost(inst, 0, s.m.ColumnPath(0)), 1e-9)
	// The dummy column is driven out.
	require.Less(t, res.FinalObj, master.DummyColumnCost)
}

func TestSolve_TwoDisconnectedDepots(t *testing.T) {
	// Depot 0 only reaches trip 0 (source 3, sink 4); depot 1 only
	// reaches trip 1 (source 2, sink 5). No deadheads.
	inst := writeInstance(t, "2 2\n1 1\n"+
		"-1 -1 3 -1\n"+
		"-1 -1 -1 2\n"+
		"4 -1 -1 -1\n"+
		"-1 5 -1 -1\n")
	s := newSolver(t, inst)

	res, err := s.cg.Run()
	require.NoError(t, err)

	require.InDelta(t, 14.0, res.FinalObj, 1e-6)
	require.Equal(t, 2, s.m.NumColumns())
	depots := []int{s.m.ColumnDepot(0), s.m.ColumnDepot(1)}
	require.ElementsMatch(t, []int{0, 1}, depots)
	checkCoverAndCapacity(t, s, true)

	// No depot still prices out a negative-reduced-cost path.
	for _, p := range s.pricers {
		require.GreaterOrEqual(t, p.ObjValue(), -1e-4)
	}

	// Round-trip: a fresh master re-fed the exported columns reaches the
	// same objective.
	dir := t.TempDir()
	colsPath := filepath.Join(dir, "cols.txt")
	require.NoError(t, master.ExportColumns(s.m, colsPath))

	fresh := glpkmaster.New(inst)
	n, err := master.ImportColumns(fresh, colsPath)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	obj, err := fresh.Solve(master.AlgoDual)
	require.NoError(t, err)
	require.InDelta(t, res.FinalObj, obj, 1e-6)
}

func TestSolve_PrefersChainedDeadhead(t *testing.T) {
	// Two trips, all source/sink arcs cost 1, deadhead 0->1 cost 1.
	// Covering both trips with one chained vehicle costs 3; two separate
	// vehicles cost 4.
	inst := writeInstance(t, "1 2\n2\n"+
		"-1 1 1\n"+
		"1 -1 1\n"+
		"1 -1 -1\n")
	s := newSolver(t, inst)

	res, err := s.cg.Run()
	require.NoError(t, err)

	require.InDelta(t, 3.0, res.FinalObj, 1e-6)
	checkCoverAndCapacity(t, s, true)

	// The chained column is in the pool and active.
	found := false
	for c := 0; c < s.m.NumColumns(); c++ {
		if len(s.m.ColumnPath(c)) == 2 && s.m.GetValue(c) > 1-1e-6 {
			found = true
		}
	}
	require.True(t, found)
}

func TestSolve_CapacityBindingKeepsDummies(t *testing.T) {
	// Three trips, one vehicle, no deadheads: only one trip can be
	// covered for real, the other two stay on their dummy columns.
	inst := writeInstance(t, "1 3\n1\n"+
		"-1 1 1 1\n"+
		"1 -1 -1 -1\n"+
		"1 -1 -1 -1\n"+
		"1 -1 -1 -1\n")
	s := newSolver(t, inst)

	res, err := s.cg.Run()
	require.NoError(t, err)

	require.Greater(t, res.FinalObj, 2*master.DummyColumnCost)
}

func TestSolve_TcgReachesIntegerCover(t *testing.T) {
	inst := writeInstance(t, "1 2\n2\n"+
		"-1 1 1\n"+
		"1 -1 1\n"+
		"1 -1 -1\n")
	s := newSolver(t, inst)

	_, err := s.cg.Run()
	require.NoError(t, err)

	heur := tcg.New(inst, s.m, s.cg, tcg.WithLogger(quietLogger()))
	res, err := heur.Run()
	require.NoError(t, err)

	require.True(t, res.AllCovered)
	require.Equal(t, 2, res.CoveredTrips)
	require.InDelta(t, 3.0, res.BinaryObj, 1e-6)
}
