// Package master defines the Restricted Relaxed Master Problem (RRMP)
// contract shared by every LP backend, plus the backend-agnostic column
// bookkeeping every backend embeds.
//
// Interface is the seam: CgEngine and TcgEngine only ever talk to a
// master.Interface, never to a concrete backend. Core is the bookkeeping
// every backend needs regardless of which LP engine sits behind it: the
// running path cost during BeginColumn/AddTrip/CommitColumn, and a parallel
// {depot, trips} cache kept independent of the backend's own column
// storage, used by export, by TcgEngine's trip-cover queries, and by any
// future reduced-model writer.
//
// ExportColumns and ImportColumns are free functions over Interface rather
// than backend methods: import replays the exact BeginColumn/AddTrip/
// CommitColumn sequence, so any backend gets a working import for free and
// the two stay in lock-step by construction.
package master

import "errors"

// AssignmentSense selects the RRMP's trip-assignment row type.
type AssignmentSense int

const (
	// SenseGE is the relaxed set-cover sense ("≥ 1"), used in phase R.
	SenseGE AssignmentSense = iota
	// SenseEQ is the set-partition sense ("= 1"), used in phase E.
	SenseEQ
)

// Algo hints which simplex variant Solve should prefer.
type Algo int

const (
	// AlgoDual prefers dual simplex, the right choice for the very first
	// solve of a fresh RRMP.
	AlgoDual Algo = iota
	// AlgoPrimal prefers primal simplex, the right choice for every
	// re-solve after columns have been added (monotone column insertion).
	AlgoPrimal
)

// DummyColumnCost is the objective coefficient of the seed dummy column
// installed once per trip so the RRMP is always feasible.
const DummyColumnCost = 1e7

// NonzeroValueThreshold is the cutoff above which a column's primal value
// counts as fractional-nonzero, e.g. when TCG collects fixing candidates.
const NonzeroValueThreshold = 1e-6

// Sentinel errors returned by the column-construction protocol and by
// import/export.
var (
	// ErrNoActiveColumn indicates AddTrip or CommitColumn was called
	// without a prior BeginColumn.
	ErrNoActiveColumn = errors.New("master: no active column (call BeginColumn first)")

	// ErrEmptyColumn indicates CommitColumn was called before any trip
	// was added to the column under construction.
	ErrEmptyColumn = errors.New("master: commitColumn called with no trips added")

	// ErrForbiddenArc indicates AddTrip or CommitColumn tried to use an
	// arc whose cost is instance.NoArc.
	ErrForbiddenArc = errors.New("master: column references a forbidden arc")

	// ErrOpenFile indicates an export/import file could not be opened.
	ErrOpenFile = errors.New("master: could not open file")

	// ErrBadColumnFile indicates a column file is malformed.
	ErrBadColumnFile = errors.New("master: malformed column file")
)
