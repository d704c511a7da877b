package master_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/master"
)

func newTestInstance(t *testing.T) *instance.Instance {
	t.Helper()
	// 1 depot, 3 trips, a deadhead chain 0->1->2.
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

func TestCore_CommitAccumulatesCost(t *testing.T) {
	inst := newTestInstance(t)
	c := master.NewCore(inst)

	c.BeginColumn(0)
	require.NoError(t, c.AddTrip(0))
	require.NoError(t, c.AddTrip(1))
	require.NoError(t, c.AddTrip(2))

	depot, path, cost, err := c.Commit()
	require.NoError(t, err)
	require.Equal(t, 0, depot)
	require.Equal(t, []int{0, 1, 2}, path)
	// source(0,0)=1 + deadhead(0,1)=1 + deadhead(1,2)=1 + sink(0,2)=1 = 4
	require.Equal(t, float64(4), cost)

	require.Equal(t, 1, c.NumColumns())
	require.Equal(t, 0, c.ColumnDepot(0))
	require.Equal(t, []int{0, 1, 2}, c.ColumnPath(0))
}

func TestCore_AddTripWithoutBeginColumn(t *testing.T) {
	inst := newTestInstance(t)
	c := master.NewCore(inst)
	err := c.AddTrip(0)
	require.ErrorIs(t, err, master.ErrNoActiveColumn)
}

func TestCore_CommitEmptyColumn(t *testing.T) {
	inst := newTestInstance(t)
	c := master.NewCore(inst)
	c.BeginColumn(0)
	_, _, _, err := c.Commit()
	require.ErrorIs(t, err, master.ErrEmptyColumn)
}

func TestCore_ForbiddenArc(t *testing.T) {
	inst := newTestInstance(t)
	c := master.NewCore(inst)
	c.BeginColumn(0)
	require.NoError(t, c.AddTrip(2))
	// deadhead(2,1) is absent (-1) in the matrix above.
	err := c.AddTrip(1)
	require.ErrorIs(t, err, master.ErrForbiddenArc)
}
