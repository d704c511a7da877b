// Package instance defines the immutable MDVSP problem data: depot count,
// trip count, depot capacities, and the (depots+trips)×(depots+trips) cost
// matrix the rest of the solver queries in its hot loops.
//
// The cost matrix uses the sentinel NoArc to mean "arc absent". Instance
// never propagates that sentinel into arithmetic; callers must check
// against NoArc before using a cost. Two adjacency caches (SuccAdj/PredAdj)
// are built once at construction time so pricing can scan a trip's
// deadhead neighbors without touching the raw matrix.
//
// Instance is immutable after New returns: it is safe to share a single
// *Instance read-only across the goroutines that run one pricing
// subproblem per depot.
package instance

import "errors"

// NoArc is the sentinel cost meaning "this arc does not exist".
const NoArc = -1

// Sentinel errors returned by New while parsing the instance file.
var (
	// ErrOpenFile indicates the instance file could not be opened.
	ErrOpenFile = errors.New("instance: could not open file")

	// ErrBadHeader indicates the depot/trip count line is malformed.
	ErrBadHeader = errors.New("instance: malformed header line")

	// ErrBadCapacity indicates the depot capacity line is malformed or short.
	ErrBadCapacity = errors.New("instance: malformed depot capacity line")

	// ErrBadMatrix indicates the cost matrix is malformed, short, or ragged.
	ErrBadMatrix = errors.New("instance: malformed cost matrix")

	// ErrNonPositiveSize indicates numDepots or numTrips was not positive.
	ErrNonPositiveSize = errors.New("instance: numDepots and numTrips must be positive")
)
