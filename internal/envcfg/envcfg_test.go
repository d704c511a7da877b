package envcfg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkummer/mdvsp-colgen/internal/envcfg"
	"github.com/afkummer/mdvsp-colgen/tcg"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := envcfg.Load()
	require.NoError(t, err)

	require.Zero(t, cfg.MaxLabelExpansions)
	require.Zero(t, cfg.MaxLabelExpansionsTcg)
	require.False(t, cfg.SortDeadheadArcs)
	require.Equal(t, tcg.DefaultMaxSubIterations, cfg.TcgMaxSubIterations)
	require.Equal(t, tcg.SelectSimple, cfg.TcgVarSel)
	require.Equal(t, tcg.GraspDirect, cfg.TcgGraspStrategy)
	require.Equal(t, tcg.DefaultGraspAlpha, cfg.TcgGraspAlpha)
}

func TestLoad_ReadsEveryVariable(t *testing.T) {
	t.Setenv(envcfg.EnvMaxLabelExpansions, "5")
	t.Setenv(envcfg.EnvMaxLabelExpansionsTcg, "3")
	t.Setenv(envcfg.EnvSortDeadheadArcs, "1")
	t.Setenv(envcfg.EnvTcgMaxSubIterations, "7")
	t.Setenv(envcfg.EnvTcgVarSel, "grasp")
	t.Setenv(envcfg.EnvTcgGraspStrategy, "eval")
	t.Setenv(envcfg.EnvTcgGraspAlpha, "0.5")

	cfg, err := envcfg.Load()
	require.NoError(t, err)

	require.Equal(t, 5, cfg.MaxLabelExpansions)
	require.Equal(t, 3, cfg.MaxLabelExpansionsTcg)
	require.True(t, cfg.SortDeadheadArcs)
	require.Equal(t, 7, cfg.TcgMaxSubIterations)
	require.Equal(t, tcg.SelectGrasp, cfg.TcgVarSel)
	require.Equal(t, tcg.GraspEval, cfg.TcgGraspStrategy)
	require.Equal(t, 0.5, cfg.TcgGraspAlpha)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []struct{ name, value string }{
		{envcfg.EnvMaxLabelExpansions, "0"},
		{envcfg.EnvMaxLabelExpansions, "-3"},
		{envcfg.EnvMaxLabelExpansions, "many"},
		{envcfg.EnvMaxLabelExpansionsTcg, "0"},
		{envcfg.EnvSortDeadheadArcs, "yes"},
		{envcfg.EnvTcgMaxSubIterations, "-1"},
		{envcfg.EnvTcgVarSel, "tabu"},
		{envcfg.EnvTcgGraspStrategy, "probe"},
		{envcfg.EnvTcgGraspAlpha, "1.5"},
		{envcfg.EnvTcgGraspAlpha, "-0.1"},
		{envcfg.EnvTcgGraspAlpha, "lots"},
	}
	for _, tc := range cases {
		t.Run(tc.name+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.name, tc.value)
			_, err := envcfg.Load()
			require.ErrorIs(t, err, envcfg.ErrBadValue)
		})
	}
}
