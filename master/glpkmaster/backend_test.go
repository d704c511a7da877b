package glpkmaster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/master"
	"github.com/afkummer/mdvsp-colgen/master/glpkmaster"
)

func newChainInstance(t *testing.T) *instance.Instance {
	t.Helper()
	// 1 depot (capacity 3), 3 trips chained 0->1->2, each arc cost 1.
	body := "1 3\n3\n" +
		"-1 1 1 1\n" +
		"1 -1 1 -1\n" +
		"1 -1 -1 1\n" +
		"1 -1 -1 -1\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "inst.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	inst, err := instance.New(path)
	require.NoError(t, err)
	return inst
}

func TestBackend_DummyOnlySolveIsExpensive(t *testing.T) {
	inst := newChainInstance(t)
	b := glpkmaster.New(inst)

	obj, err := b.Solve(master.AlgoDual)
	require.NoError(t, err)
	require.Equal(t, float64(3*master.DummyColumnCost), obj)
}

func TestBackend_RealColumnBeatsDummies(t *testing.T) {
	inst := newChainInstance(t)
	b := glpkmaster.New(inst)

	b.BeginColumn(0)
	require.NoError(t, b.AddTrip(0))
	require.NoError(t, b.AddTrip(1))
	require.NoError(t, b.AddTrip(2))
	require.NoError(t, b.CommitColumn())

	obj, err := b.Solve(master.AlgoPrimal)
	require.NoError(t, err)
	require.Equal(t, float64(4), obj)
	require.InDelta(t, 1.0, b.GetValue(0), 1e-6)
}

func TestBackend_SetAssignmentTypeSwitchesSense(t *testing.T) {
	inst := newChainInstance(t)
	b := glpkmaster.New(inst)

	b.BeginColumn(0)
	require.NoError(t, b.AddTrip(0))
	require.NoError(t, b.CommitColumn())

	b.SetAssignmentType(master.SenseEQ)
	_, err := b.Solve(master.AlgoPrimal)
	require.NoError(t, err)
	// Trip 1 and 2 are still only covered by dummies under the equality
	// sense, so the objective must still carry their dummy cost.
	require.GreaterOrEqual(t, b.ObjValue(), float64(2*master.DummyColumnCost))
}

func TestBackend_SetLbFixesColumn(t *testing.T) {
	inst := newChainInstance(t)
	b := glpkmaster.New(inst)

	b.BeginColumn(0)
	require.NoError(t, b.AddTrip(0))
	require.NoError(t, b.AddTrip(1))
	require.NoError(t, b.AddTrip(2))
	require.NoError(t, b.CommitColumn())

	b.SetLb(0, 1.0)
	require.Equal(t, 1.0, b.GetLb(0))

	obj, err := b.Solve(master.AlgoPrimal)
	require.NoError(t, err)
	require.Equal(t, float64(4), obj)
}
