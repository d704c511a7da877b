package tcg

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/afkummer/mdvsp-colgen/cgengine"
	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/master"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes progress rows to l instead of the logrus standard
// logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithVarSelection picks the fixing policy. Default: SelectSimple.
func WithVarSelection(v VarSelection) Option {
	return func(e *Engine) { e.sel = v }
}

// WithGraspStrategy picks how Grasp costs candidates. Default:
// GraspDirect.
func WithGraspStrategy(s GraspStrategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithGraspAlpha sets the restricted-candidate-list fraction in [0, 1].
// alpha=0 shrinks the list to the single cheapest candidate (greedy);
// alpha=1 admits every candidate (uniform random). Default: 0.2.
func WithGraspAlpha(alpha float64) Option {
	return func(e *Engine) { e.alpha = alpha }
}

// WithEvalValueCutoff sets the primal value above which GraspEval always
// probes a candidate; a candidate at or below it is probed only while no
// other candidate has been probed yet, because each probe costs a full
// master re-solve. Default: 0.2.
func WithEvalValueCutoff(cutoff float64) Option {
	return func(e *Engine) { e.evalCutoff = cutoff }
}

// WithMaxSubIterations caps the CG iterations of each inner round.
// Default: 20.
func WithMaxSubIterations(n int) Option {
	return func(e *Engine) { e.maxSubIter = n }
}

// WithMaxLabelExpansionsPerNode sets the per-node expansion cap the
// pricers run under for the whole truncated phase (the
// MAX_LABEL_EXPANSIONS_TCG knob). Non-positive leaves the pricers'
// current cap untouched.
func WithMaxLabelExpansionsPerNode(max int) Option {
	return func(e *Engine) { e.maxLabelExpansions = max }
}

// WithSeed fixes the GRASP random stream. seed==0 selects the stable
// default seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rngFromSeed(seed) }
}

// WithInterrupt installs the cooperative interrupt flag polled between
// outer iterations. The default never interrupts.
func WithInterrupt(f cgengine.Interrupt) Option {
	return func(e *Engine) { e.interrupt = f }
}

// Engine is the truncated-column-generation driver. It consumes the same
// master and pricers the CG engine just converged with, via the CG engine
// itself: every inner round is a plain cgengine.Iterate.
type Engine struct {
	inst   *instance.Instance
	master master.Interface
	cg     *cgengine.Engine

	log                *logrus.Logger
	sel                VarSelection
	strategy           GraspStrategy
	alpha              float64
	evalCutoff         float64
	maxSubIter         int
	maxLabelExpansions int
	rng                *rand.Rand
	interrupt          cgengine.Interrupt

	tripCovers []bool
	coverCount int
}

// candidate is one fixable column observed during collection.
type candidate struct {
	col   int
	value float64
	cost  float64
}

// Result summarizes a full Run.
type Result struct {
	// FixedColumns counts the columns whose lower bound was raised to 1.
	FixedColumns int
	// CoveredTrips counts trips covered by fixed columns at exit.
	CoveredTrips int
	// AllCovered reports whether every trip ended up covered.
	AllCovered bool
	// BinaryObj is the master objective with every real column integral.
	BinaryObj float64
	// RelaxedObj is the master objective after relaxing the columns back.
	RelaxedObj float64
}

// New builds a TCG engine over the instance, the master, and the CG
// engine that already drove the relaxation to convergence.
func New(inst *instance.Instance, m master.Interface, cg *cgengine.Engine, opts ...Option) *Engine {
	e := &Engine{
		inst:       inst,
		master:     m,
		cg:         cg,
		log:        logrus.StandardLogger(),
		sel:        SelectSimple,
		strategy:   GraspDirect,
		alpha:      DefaultGraspAlpha,
		evalCutoff: DefaultEvalValueCutoff,
		maxSubIter: DefaultMaxSubIterations,
		rng:        rngFromSeed(0),
		interrupt:  nopInterrupt{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tripCovers = make([]bool, inst.NumTrips())
	return e
}

type nopInterrupt struct{}

func (nopInterrupt) Interrupted() bool { return false }
func (nopInterrupt) Clear()            {}

// Run executes outer iterations until every trip is covered, no candidate
// remains, or an interrupt arrives, then finalizes: one integral solve
// and one relaxed solve over the fixed columns.
func (e *Engine) Run() (Result, error) {
	if e.maxLabelExpansions > 0 {
		e.cg.SetMaxLabelExpansionsPerNode(e.maxLabelExpansions)
	}

	res := Result{}
	for outer := 0; e.coverCount < e.inst.NumTrips(); outer++ {
		if e.interrupt.Interrupted() {
			e.log.Info("interrupt received, stopping truncated column generation")
			break
		}

		rmpObj, err := e.innerRound()
		if err != nil {
			return res, err
		}

		cands := e.collectCandidates()
		if len(cands) == 0 {
			e.log.WithFields(logrus.Fields{
				"outer":   outer,
				"covered": e.coverCount,
				"trips":   e.inst.NumTrips(),
			}).Info("no fixable candidate remains")
			break
		}

		chosen, err := e.selectCandidate(cands)
		if err != nil {
			return res, err
		}
		e.fix(chosen)
		res.FixedColumns++

		e.log.WithFields(logrus.Fields{
			"outer":   outer,
			"rmpObj":  rmpObj,
			"cands":   len(cands),
			"col":     chosen.col,
			"value":   chosen.value,
			"covered": e.coverCount,
			"trips":   e.inst.NumTrips(),
		}).Info("fixed column")
	}

	res.CoveredTrips = e.coverCount
	res.AllCovered = e.coverCount == e.inst.NumTrips()

	// Finalization runs regardless of how the loop exited; further
	// interrupts are ignored here.
	e.master.ConvertToBinary()
	binObj, err := e.master.Solve(master.AlgoPrimal)
	if err != nil {
		return res, err
	}
	res.BinaryObj = binObj

	e.master.ConvertToRelaxed()
	relObj, err := e.master.Solve(master.AlgoPrimal)
	if err != nil {
		return res, err
	}
	res.RelaxedObj = relObj

	e.log.WithFields(logrus.Fields{
		"binaryObj":  binObj,
		"relaxedObj": relObj,
		"fixed":      res.FixedColumns,
		"covered":    res.CoveredTrips,
	}).Info("truncated column generation finished")

	return res, nil
}

// innerRound runs a short CG burst: up to maxSubIter iterations, stopping
// early once the dummy columns leave the basis (the master objective
// drops below the dummy cost) or no depot prices out a new column.
func (e *Engine) innerRound() (float64, error) {
	var last cgengine.IterStats
	for sub := 0; sub < e.maxSubIter; sub++ {
		stats, err := e.cg.Iterate(master.AlgoPrimal)
		if err != nil {
			return 0, err
		}
		last = stats
		e.log.WithFields(logrus.Fields{
			"sub":     sub,
			"rmpObj":  stats.RmpObj,
			"newCols": stats.NewColumns,
		}).Debug("inner iteration")
		if stats.RmpObj < master.DummyColumnCost || stats.NewColumns == 0 {
			break
		}
	}
	return last.RmpObj, nil
}

// collectCandidates scans every real column for the fixable ones: not yet
// fixed, fractional-nonzero primal value, and no trip already covered by
// a fixed column.
func (e *Engine) collectCandidates() []candidate {
	var cands []candidate
	for c := 0; c < e.master.NumColumns(); c++ {
		if e.master.GetLb(c) >= 0.5 {
			continue
		}
		value := e.master.GetValue(c)
		if value <= master.NonzeroValueThreshold {
			continue
		}
		if !e.fixFeasible(c) {
			continue
		}
		cands = append(cands, candidate{col: c, value: value})
	}
	return cands
}

// fixFeasible reports whether none of the column's trips is covered yet.
func (e *Engine) fixFeasible(col int) bool {
	for _, trip := range e.master.TripsCovered(col) {
		if e.tripCovers[trip] {
			return false
		}
	}
	return true
}

// selectCandidate applies the configured policy over a non-empty
// candidate list.
func (e *Engine) selectCandidate(cands []candidate) (candidate, error) {
	if e.sel == SelectSimple {
		best := cands[0]
		for _, c := range cands[1:] {
			if c.value > best.value {
				best = c
			}
		}
		return best, nil
	}
	return e.selectGrasp(cands)
}

// selectGrasp costs the candidates under the configured strategy, ranks
// them ascending, and draws uniformly from the restricted candidate list
// of the cheapest max(1, ⌊len·alpha⌋) entries.
func (e *Engine) selectGrasp(cands []candidate) (candidate, error) {
	switch e.strategy {
	case GraspDirect:
		for i := range cands {
			c := &cands[i]
			c.cost = master.PathCost(e.inst, e.master.ColumnDepot(c.col), e.master.ColumnPath(c.col))
		}
	case GraspEval:
		probed, err := e.probeCandidates(cands)
		if err != nil {
			return candidate{}, err
		}
		cands = probed
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].cost < cands[j].cost })

	rcl := int(float64(len(cands)) * e.alpha)
	if rcl < 1 {
		rcl = 1
	}
	return cands[e.rng.Intn(rcl)], nil
}

// probeCandidates costs each candidate by the master objective observed
// with its lower bound provisionally raised to 1. Probes are expensive
// (a full re-solve each), so candidates whose primal value does not clear
// evalCutoff are skipped, except the first, so the result is never
// empty.
func (e *Engine) probeCandidates(cands []candidate) ([]candidate, error) {
	var kept []candidate
	for _, c := range cands {
		if c.value <= e.evalCutoff && len(kept) > 0 {
			continue
		}
		e.master.SetLb(c.col, 1)
		obj, err := e.master.Solve(master.AlgoPrimal)
		e.master.SetLb(c.col, 0)
		if err != nil {
			return nil, err
		}
		c.cost = obj
		kept = append(kept, c)
	}
	return kept, nil
}

// fix raises the chosen column's lower bound to 1 and marks its trips
// covered. A trip found already covered means fixFeasible was violated,
// which is a bug with no recovery strategy.
func (e *Engine) fix(c candidate) {
	e.master.SetLb(c.col, 1)
	for _, trip := range e.master.TripsCovered(c.col) {
		if e.tripCovers[trip] {
			panic(fmt.Errorf("%w: trip %d, column %d", ErrTripDoubleCovered, trip, c.col))
		}
		e.tripCovers[trip] = true
		e.coverCount++
	}
}
