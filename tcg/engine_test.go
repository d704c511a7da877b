package tcg_test

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
	"github.com/afkummer/mdvsp-colgen/pricing"
	"github.com/afkummer/mdvsp-colgen/tcg"
)

// newStarInstance builds 1 depot, 3 trips, no deadheads: source costs
// 1/3/5, sink costs all 1, so the single-trip columns cost 2, 4 and 6.
func newStarInstance(t *testing.T) *instance.Instance {
	t.Helper()
	body := "1 3\n3\n" +
		"-1 1 3 5\n" +
		"1 -1 -1 -1\n" +
		"1 -1 -1 -1\n" +
		"1 -1 -1 -1\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "inst.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	inst, err := instance.New(path)
	require.NoError(t, err)
	return inst
}

type lbChange struct {
	col   int
	bound float64
}

// fakeMaster holds a preset column pool with scripted primal values and
// records every lower-bound change, which is all the TCG engine observes.
type fakeMaster struct {
	depots []int
	paths  [][]int
	values []float64
	lbs    []float64

	obj    float64
	solves int
	lbLog  []lbChange
}

func newFakeMaster(obj float64) *fakeMaster { return &fakeMaster{obj: obj} }

func (m *fakeMaster) addColumn(depot int, path []int, value float64) {
	m.depots = append(m.depots, depot)
	m.paths = append(m.paths, path)
	m.values = append(m.values, value)
	m.lbs = append(m.lbs, 0)
}

func (m *fakeMaster) Solve(master.Algo) (float64, error) {
	m.solves++
	return m.obj, nil
}

func (m *fakeMaster) ObjValue() float64        { return m.obj }
func (m *fakeMaster) TripDual(int) float64     { return 0 }
func (m *fakeMaster) DepotCapDual(int) float64 { return 0 }
func (m *fakeMaster) BeginColumn(int)          {}
func (m *fakeMaster) AddTrip(int) error        { return nil }
func (m *fakeMaster) CommitColumn() error      { return nil }
func (m *fakeMaster) NumColumns() int          { return len(m.paths) }
func (m *fakeMaster) ColumnDepot(c int) int    { return m.depots[c] }
func (m *fakeMaster) ColumnPath(c int) []int   { return m.paths[c] }
func (m *fakeMaster) TripsCovered(c int) []int { return m.paths[c] }
func (m *fakeMaster) GetValue(c int) float64   { return m.values[c] }
func (m *fakeMaster) GetLb(c int) float64      { return m.lbs[c] }
func (m *fakeMaster) SetLb(c int, bound float64) {
	m.lbs[c] = bound
	m.lbLog = append(m.lbLog, lbChange{col: c, bound: bound})
}
func (m *fakeMaster) ConvertToBinary()                       {}
func (m *fakeMaster) ConvertToRelaxed()                      {}
func (m *fakeMaster) SetAssignmentType(master.AssignmentSense) {}

// donePricer prices out nothing, so every inner CG round settles after a
// single iteration.
type donePricer struct{ depot int }

func (p *donePricer) DepotID() int                            { return p.depot }
func (p *donePricer) Solve() float64                          { return 0 }
func (p *donePricer) ObjValue() float64                       { return 0 }
func (p *donePricer) GenerateColumns(pricing.ColumnSink) int  { return 0 }
func (p *donePricer) SetMaxLabelExpansionsPerNode(int)        {}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newEngine(t *testing.T, m *fakeMaster, opts ...tcg.Option) *tcg.Engine {
	t.Helper()
	inst := newStarInstance(t)
	cg := cgengine.New(m, pricing.NewSnapshot(0, 0), []pricing.Interface{&donePricer{}},
		cgengine.WithLogger(quietLogger()))
	opts = append([]tcg.Option{tcg.WithLogger(quietLogger())}, opts...)
	return tcg.New(inst, m, cg, opts...)
}

func fixedCols(log []lbChange) []int {
	var cols []int
	for _, c := range log {
		if c.bound == 1 {
			cols = append(cols, c.col)
		}
	}
	return cols
}

func TestRun_SimpleFixesByLargestValue(t *testing.T) {
	m := newFakeMaster(42)
	m.addColumn(0, []int{0}, 0.6)
	m.addColumn(0, []int{1}, 0.9)
	m.addColumn(0, []int{2}, 0.3)

	eng := newEngine(t, m)
	res, err := eng.Run()
	require.NoError(t, err)

	require.Equal(t, []int{1, 0, 2}, fixedCols(m.lbLog))
	require.Equal(t, 3, res.FixedColumns)
	require.Equal(t, 3, res.CoveredTrips)
	require.True(t, res.AllCovered)
	require.Equal(t, 42.0, res.BinaryObj)
	require.Equal(t, 42.0, res.RelaxedObj)
}

func TestRun_GraspAlphaZeroIsGreedyByCost(t *testing.T) {
	m := newFakeMaster(42)
	// Equal values so only cost can decide; alpha=0 shrinks the RCL to
	// the single cheapest candidate (columns cost 2, 4, 6 in order).
	m.addColumn(0, []int{0}, 0.5)
	m.addColumn(0, []int{1}, 0.5)
	m.addColumn(0, []int{2}, 0.5)

	for _, seed := range []int64{0, 1, 99} {
		m.lbLog = nil
		for c := range m.lbs {
			m.lbs[c] = 0
		}

		eng := newEngine(t, m,
			tcg.WithVarSelection(tcg.SelectGrasp),
			tcg.WithGraspStrategy(tcg.GraspDirect),
			tcg.WithGraspAlpha(0),
			tcg.WithSeed(seed),
		)
		res, err := eng.Run()
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 2}, fixedCols(m.lbLog), "seed %d", seed)
		require.True(t, res.AllCovered)
	}
}

func TestRun_StopsWhenNoFixableCandidate(t *testing.T) {
	m := newFakeMaster(42)
	m.addColumn(0, []int{0, 1}, 0.9)
	// Overlaps trip 1 with the column above, so it can never be fixed
	// once that one is.
	m.addColumn(0, []int{1, 2}, 0.8)
	// Zero primal value: never a candidate at all.
	m.addColumn(0, []int{2}, 0)

	eng := newEngine(t, m)
	res, err := eng.Run()
	require.NoError(t, err)

	require.Equal(t, []int{0}, fixedCols(m.lbLog))
	require.Equal(t, 1, res.FixedColumns)
	require.Equal(t, 2, res.CoveredTrips)
	require.False(t, res.AllCovered)
}

func TestRun_GraspEvalProbesOnlyPromisingCandidates(t *testing.T) {
	m := newFakeMaster(42)
	m.addColumn(0, []int{0}, 0.5)
	// Below the probe cutoff: skipped while a probed candidate exists.
	m.addColumn(0, []int{1}, 0.1)
	m.addColumn(0, []int{2}, 0.15)

	eng := newEngine(t, m,
		tcg.WithVarSelection(tcg.SelectGrasp),
		tcg.WithGraspStrategy(tcg.GraspEval),
	)
	res, err := eng.Run()
	require.NoError(t, err)
	require.True(t, res.AllCovered)

	// Outer 1: only col 0 clears the cutoff, so only it is probed
	// (lb 1, then back to 0) and then fixed. Outer 2: col 1 is probed
	// despite its low value because the kept list would otherwise be
	// empty; col 2 is skipped. Outer 3: col 2 alone.
	want := []lbChange{
		{0, 1}, {0, 0}, {0, 1},
		{1, 1}, {1, 0}, {1, 1},
		{2, 1}, {2, 0}, {2, 1},
	}
	require.Equal(t, want, m.lbLog)
}

func TestRun_InterruptSkipsFixingButFinalizes(t *testing.T) {
	m := newFakeMaster(42)
	m.addColumn(0, []int{0}, 0.9)

	eng := newEngine(t, m, tcg.WithInterrupt(&stickyInterrupt{}))
	res, err := eng.Run()
	require.NoError(t, err)

	require.Empty(t, fixedCols(m.lbLog))
	require.Zero(t, res.FixedColumns)
	require.False(t, res.AllCovered)
	// Finalization still ran its binary and relaxed solves.
	require.Equal(t, 2, m.solves)
	require.Equal(t, 42.0, res.BinaryObj)
}

type stickyInterrupt struct{}

func (stickyInterrupt) Interrupted() bool { return true }
func (stickyInterrupt) Clear()            {}

func TestParseVarSelection(t *testing.T) {
	v, err := tcg.ParseVarSelection("simple")
	require.NoError(t, err)
	require.Equal(t, tcg.SelectSimple, v)

	v, err = tcg.ParseVarSelection("grasp")
	require.NoError(t, err)
	require.Equal(t, tcg.SelectGrasp, v)

	_, err = tcg.ParseVarSelection("tabu")
	require.ErrorIs(t, err, tcg.ErrUnknownVarSelection)
}

func TestParseGraspStrategy(t *testing.T) {
	s, err := tcg.ParseGraspStrategy("direct")
	require.NoError(t, err)
	require.Equal(t, tcg.GraspDirect, s)

	s, err = tcg.ParseGraspStrategy("eval")
	require.NoError(t, err)
	require.Equal(t, tcg.GraspEval, s)

	_, err = tcg.ParseGraspStrategy("probe")
	require.ErrorIs(t, err, tcg.ErrUnknownGraspStrategy)
}
