// Package envcfg reads the recognized environment options into a typed
// Config, validating every value before the solver starts. An invalid
// value is a configuration error: Load returns it and the caller aborts
// before the main loop, never mid-run.
package envcfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/afkummer/mdvsp-colgen/tcg"
)

// Environment variable names.
const (
	// EnvMaxLabelExpansions caps succAdj scans per node during CG
	// pricing. Unset means unbounded.
	EnvMaxLabelExpansions = "MAX_LABEL_EXPANSIONS"
	// EnvMaxLabelExpansionsTcg is the same cap for the TCG phase.
	EnvMaxLabelExpansionsTcg = "MAX_LABEL_EXPANSIONS_TCG"
	// EnvSortDeadheadArcs sorts the adjacency caches by ascending cost
	// at build time when set to 1.
	EnvSortDeadheadArcs = "SORT_DEADHEAD_ARCS"
	// EnvTcgMaxSubIterations caps each inner CG round within TCG.
	EnvTcgMaxSubIterations = "TCG_MAX_SUB_ITERATIONS"
	// EnvTcgVarSel selects the TCG fixing policy: simple or grasp.
	EnvTcgVarSel = "TCG_VAR_SEL"
	// EnvTcgGraspStrategy selects the GRASP costing: direct or eval.
	EnvTcgGraspStrategy = "TCG_GRASP_STRATEGY"
	// EnvTcgGraspAlpha is the GRASP restricted-candidate-list fraction.
	EnvTcgGraspAlpha = "TCG_GRASP_ALPHA"
)

// ErrBadValue indicates an environment variable holds a value the solver
// cannot accept.
var ErrBadValue = errors.New("envcfg: bad environment value")

// Config is the validated snapshot of every recognized environment
// option.
type Config struct {
	// MaxLabelExpansions caps per-node arc scans during CG pricing;
	// 0 means unbounded.
	MaxLabelExpansions int
	// MaxLabelExpansionsTcg is the same cap for the TCG phase; 0 means
	// unbounded.
	MaxLabelExpansionsTcg int
	// SortDeadheadArcs sorts the adjacency caches ascending by cost.
	SortDeadheadArcs bool
	// TcgMaxSubIterations caps each inner CG round within TCG.
	TcgMaxSubIterations int
	// TcgVarSel is the TCG fixing policy.
	TcgVarSel tcg.VarSelection
	// TcgGraspStrategy is the GRASP candidate-costing strategy.
	TcgGraspStrategy tcg.GraspStrategy
	// TcgGraspAlpha is the GRASP restricted-candidate-list fraction.
	TcgGraspAlpha float64
}

// Load reads and validates every recognized environment variable,
// falling back to the documented defaults where a variable is unset.
func Load() (Config, error) {
	cfg := Config{
		TcgMaxSubIterations: tcg.DefaultMaxSubIterations,
		TcgVarSel:           tcg.SelectSimple,
		TcgGraspStrategy:    tcg.GraspDirect,
		TcgGraspAlpha:       tcg.DefaultGraspAlpha,
	}

	var err error
	if cfg.MaxLabelExpansions, err = positiveInt(EnvMaxLabelExpansions, 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxLabelExpansionsTcg, err = positiveInt(EnvMaxLabelExpansionsTcg, 0); err != nil {
		return Config{}, err
	}

	if raw, ok := os.LookupEnv(EnvSortDeadheadArcs); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: not an integer", ErrBadValue, EnvSortDeadheadArcs, raw)
		}
		cfg.SortDeadheadArcs = v != 0
	}

	if cfg.TcgMaxSubIterations, err = positiveInt(EnvTcgMaxSubIterations, tcg.DefaultMaxSubIterations); err != nil {
		return Config{}, err
	}

	if raw, ok := os.LookupEnv(EnvTcgVarSel); ok {
		if cfg.TcgVarSel, err = tcg.ParseVarSelection(raw); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrBadValue, EnvTcgVarSel, raw, err)
		}
	}

	if raw, ok := os.LookupEnv(EnvTcgGraspStrategy); ok {
		if cfg.TcgGraspStrategy, err = tcg.ParseGraspStrategy(raw); err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrBadValue, EnvTcgGraspStrategy, raw, err)
		}
	}

	if raw, ok := os.LookupEnv(EnvTcgGraspAlpha); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: not a number", ErrBadValue, EnvTcgGraspAlpha, raw)
		}
		if v < 0 || v > 1 {
			return Config{}, fmt.Errorf("%w: %s=%v: %v", ErrBadValue, EnvTcgGraspAlpha, v, tcg.ErrAlphaOutOfRange)
		}
		cfg.TcgGraspAlpha = v
	}

	return cfg, nil
}

// positiveInt reads name as a strictly positive integer, or returns def
// when unset.
func positiveInt(name string, def int) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: not an integer", ErrBadValue, name, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s=%d: must be positive", ErrBadValue, name, v)
	}
	return v, nil
}
