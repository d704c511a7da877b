package cgengine

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/afkummer/mdvsp-colgen/master"
	"github.com/afkummer/mdvsp-colgen/pricing"
)

// Interrupt is the cooperative cancellation surface the engine polls at
// iteration boundaries. internal/sigint.Flag satisfies it; tests inject
// their own.
type Interrupt interface {
	Interrupted() bool
	Clear()
}

type nopInterrupt struct{}

func (nopInterrupt) Interrupted() bool { return false }
func (nopInterrupt) Clear()            {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the per-iteration progress rows to l instead of the
// logrus standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWorkers bounds how many pricing subproblems solve concurrently.
// n == 1 serializes the fan-out entirely, which some LP-backed pricers
// require because their engine is not thread-safe during construction of
// internal structures. Non-positive means one worker per depot.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithInterrupt installs the cooperative interrupt flag the engine polls
// at iteration boundaries. The default never interrupts.
func WithInterrupt(f Interrupt) Option {
	return func(e *Engine) { e.interrupt = f }
}

// Engine is the column-generation driver. Build with New, run with Run;
// TcgEngine reuses the same Engine for its inner CG rounds via Iterate.
type Engine struct {
	master  master.Interface
	duals   *pricing.Snapshot
	pricers []pricing.Interface

	log       *logrus.Logger
	workers   int
	interrupt Interrupt
}

// IterStats is what one CG iteration observed.
type IterStats struct {
	// RmpObj is the restricted master's optimal objective this iteration.
	RmpObj float64
	// LowerBound is the Lagrangean dual bound RmpObj plus the sum of
	// every depot's pricing objective.
	LowerBound float64
	// NewColumns counts the columns harvested into the master.
	NewColumns int
}

// Result summarizes a full Run.
type Result struct {
	// RelaxedObj is the master objective when phase R converged, or NaN
	// if phase R was cut short by an interrupt.
	RelaxedObj float64
	// FinalObj is the master objective after the final solve.
	FinalObj float64
	// Iterations counts CG iterations across both phases.
	Iterations int
	// ColumnsGenerated counts every column harvested across both phases.
	ColumnsGenerated int
}

// New builds an engine over m and one pricer per depot. duals must be the
// same Snapshot every pricer was built to read: Iterate refreshes it from
// m right before each fan-out, which is the only moment pricing state and
// master state are allowed to meet.
func New(m master.Interface, duals *pricing.Snapshot, pricers []pricing.Interface, opts ...Option) *Engine {
	e := &Engine{
		master:    m,
		duals:     duals,
		pricers:   pricers,
		log:       logrus.StandardLogger(),
		interrupt: nopInterrupt{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetMaxLabelExpansionsPerNode forwards the per-node expansion cap to
// every pricer. TcgEngine calls this once when it takes over, since the
// truncated phase runs under its own cap.
func (e *Engine) SetMaxLabelExpansionsPerNode(max int) {
	for _, p := range e.pricers {
		p.SetMaxLabelExpansionsPerNode(max)
	}
}

// Iterate runs exactly one CG iteration: master solve, dual snapshot,
// parallel pricing fan-out, sequential column harvest in depot order.
func (e *Engine) Iterate(algo master.Algo) (IterStats, error) {
	rmpObj, err := e.master.Solve(algo)
	if err != nil {
		return IterStats{}, err
	}
	e.duals.Refresh(e.master)

	g := new(errgroup.Group)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for _, p := range e.pricers {
		g.Go(func() error {
			p.Solve()
			return nil
		})
	}
	// Workers only return nil; Wait is just the barrier before harvesting.
	_ = g.Wait()

	stats := IterStats{RmpObj: rmpObj, LowerBound: rmpObj}
	for _, p := range e.pricers {
		stats.LowerBound += p.ObjValue()
		if p.ObjValue() <= pricing.NegativeObjectiveThreshold {
			stats.NewColumns += p.GenerateColumns(e.master)
		}
	}
	return stats, nil
}

// Run executes the full two-phase loop until both phases converge or a
// second interrupt arrives, then re-solves the master one last time.
func (e *Engine) Run() (Result, error) {
	phase := PhaseRelaxed
	e.master.SetAssignmentType(master.SenseGE)

	res := Result{RelaxedObj: math.NaN()}
	for iter := 0; ; iter++ {
		algo := master.AlgoPrimal
		if iter == 0 {
			algo = master.AlgoDual
		}
		stats, err := e.Iterate(algo)
		if err != nil {
			return res, err
		}
		res.Iterations++
		res.ColumnsGenerated += stats.NewColumns

		gap := 0.0
		if stats.RmpObj != 0 {
			gap = (stats.RmpObj - stats.LowerBound) / stats.RmpObj
		}
		e.log.WithFields(logrus.Fields{
			"phase":   phase.String(),
			"iter":    iter,
			"rmpObj":  stats.RmpObj,
			"lb":      stats.LowerBound,
			"gap":     gap,
			"newCols": stats.NewColumns,
		}).Info("column generation")

		if stats.NewColumns == 0 {
			if phase == PhaseRelaxed {
				res.RelaxedObj = stats.RmpObj
				phase = PhaseEquality
				e.master.SetAssignmentType(master.SenseEQ)
			} else {
				break
			}
		}

		if e.interrupt.Interrupted() {
			if phase == PhaseRelaxed {
				e.log.Info("interrupt received, tightening assignment rows early")
				phase = PhaseEquality
				e.master.SetAssignmentType(master.SenseEQ)
				e.interrupt.Clear()
			} else {
				e.log.Info("interrupt received, stopping column generation")
				break
			}
		}
	}

	final, err := e.master.Solve(master.AlgoPrimal)
	if err != nil {
		return res, err
	}
	res.FinalObj = final
	return res, nil
}
