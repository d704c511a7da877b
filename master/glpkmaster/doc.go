// Package glpkmaster is a master.Interface backend over GNU GLPK, driven
// through the cgo bindings in github.com/lukpank/go-glpk/glpk.
//
// The RRMP layout mirrors the column-generation literature directly: T
// trip-assignment rows (bounded GLP_LO 1..1 in phase R, GLP_FX 1..1 in
// phase E) followed by K depot-capacity rows (bounded GLP_UP 0..capacity).
// The model is seeded with one dummy column per trip at master.DummyColumnCost
// so the RRMP is always feasible, and real path columns are appended one at a
// time through the embedded master.Core bookkeeping.
package glpkmaster

import "errors"

// ErrNoSolution is returned by Solve when GLPK reports the simplex run
// (or the branch-and-cut pass, once ConvertToBinary is in effect) did not
// reach an optimal solution.
var ErrNoSolution = errors.New("glpkmaster: GLPK did not reach an optimal solution")
