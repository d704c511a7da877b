// Package mip prices a depot's column-generation subproblem as a flow MIP
// instead of a label-correcting shortest path: one binary arc variable per
// admissible (source->trip), (trip->trip), (trip->sink) arc, a flow
// conservation row per trip node, and an optional cardinality row capping
// how many source arcs may be active at once (maxPaths). It sits behind
// pricing.Interface as a drop-in alternative to pricing/spfa and
// pricing/bellman,
// typically slower but exact on the residual arc set and with precise
// control over how many paths a single solve can emit.
//
// The arc-variable matrix only ever holds admissible arcs (an arc whose cost
// is instance.NoArc is never modeled), so a depot with few feasible source/sink arcs builds a
// correspondingly small MIP.
package mip

import "errors"

// ErrNoSolution is returned by Solve when GLPK's relaxation or branch-and-cut
// pass fails to reach an optimal/feasible solution.
var ErrNoSolution = errors.New("mip: pricing MIP did not reach an optimal solution")
