// Package pricing defines the per-depot pricing subproblem contract shared
// by every shortest-path variant (pricing/spfa, pricing/bellman) and the
// optional flow-MIP variant (pricing/mip).
//
// Every node in the pricing DAG is either a trip (0..numTrips-1), the
// depot's source node, or its sink node; source and sink are modeled as
// numTrips and numTrips+1 so a single []float64/[]int slice indexed by node
// id covers the whole graph without a separate depot dimension.
//
// A pricer never calls back into a concrete master.Interface: it only sees
// a DualSource, the narrow slice of duals it actually needs. That keeps
// pricing/* importable without a circular dependency on master or any LP
// backend.
package pricing

import "errors"

// NegativeReducedCostThreshold is the cutoff a candidate path's reduced
// cost must clear (be at or below) to be installed as a new column. A small
// negative slack avoids reinserting paths whose reduced cost is numerically
// indistinguishable from zero.
const NegativeReducedCostThreshold = -0.001

// NegativeObjectiveThreshold is the cutoff a pricer's objective (its best
// path's reduced cost) must clear for the CG loop to harvest columns from
// that depot. The relaxation is optimal once every depot's objective sits
// above this threshold. Individual paths are then filtered by the tighter
// NegativeReducedCostThreshold, so a triggering depot may still contribute
// zero columns when its best path is only marginally negative.
const NegativeObjectiveThreshold = -1e-4

// ErrNegativeCycle indicates the pricing DAG's relaxation never converged,
// which can only happen if the dual-adjusted arc costs formed a negative
// cycle. This is a data-structure invariant violation with no recovery
// strategy, so pricers panic rather than return it as an error.
var ErrNegativeCycle = errors.New("pricing: negative cycle detected in dual-adjusted DAG")
