package pricing

import (
	"math"

	"github.com/afkummer/mdvsp-colgen/instance"
)

// Base holds the state every pricing variant needs regardless of which
// shortest-path algorithm drives it: the instance, the depot it prices for,
// the duals it prices against, and the node-id conventions of the DAG.
//
// Source and sink are modeled as numTrips and numTrips+1 respectively, so
// NumNodes/SourceNode/SinkNode stay consistent across every variant embedding
// Base.
type Base struct {
	Inst  *instance.Instance
	Duals DualSource

	depotID  int
	maxPaths int

	maxLabelExpansions int
}

// NewBase builds the shared pricing state for depotID. maxPaths <= 0 means
// "generate every negative-reduced-cost path found" (the CG phase's mode);
// maxPaths == 1 restricts generation to the single best path ending at the
// sink.
func NewBase(inst *instance.Instance, duals DualSource, depotID int, maxPaths int) *Base {
	if maxPaths <= 0 {
		maxPaths = math.MaxInt32
	}
	return &Base{
		Inst:               inst,
		Duals:              duals,
		depotID:            depotID,
		maxPaths:           maxPaths,
		maxLabelExpansions: math.MaxInt32,
	}
}

// DepotID returns the depot this pricer solves for.
func (b *Base) DepotID() int { return b.depotID }

// SinglePath reports whether this pricer is restricted to generating only
// the single best path.
func (b *Base) SinglePath() bool { return b.maxPaths == 1 }

// NumNodes returns the DAG's node count: one per trip, plus source and sink.
func (b *Base) NumNodes() int { return b.Inst.NumTrips() + 2 }

// SourceNode is the depot's virtual source node id.
func (b *Base) SourceNode() int { return b.NumNodes() - 2 }

// SinkNode is the depot's virtual sink node id.
func (b *Base) SinkNode() int { return b.NumNodes() - 1 }

// MaxLabelExpansions returns the per-node cap on successor arcs relaxed.
func (b *Base) MaxLabelExpansions() int { return b.maxLabelExpansions }

// SetMaxLabelExpansionsPerNode bounds how many successor arcs a relaxation
// step evaluates per node, trading solution quality for speed on dense
// graphs. A non-positive value disables the cap (restores unbounded
// expansion). The cap never applies to source/sink arcs.
func (b *Base) SetMaxLabelExpansionsPerNode(max int) {
	if max <= 0 {
		b.maxLabelExpansions = math.MaxInt32
		return
	}
	b.maxLabelExpansions = max
}
