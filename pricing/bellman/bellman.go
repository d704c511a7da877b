// Package bellman prices a depot's column-generation subproblem with a
// full O(nodes * arcs) Bellman-Ford sweep. It exists as a reference
// implementation to validate pricing/spfa against: slower, but its
// termination argument (no sweep changed any distance) is easier to trust
// than SPFA's FIFO requeue logic.
package bellman

import (
	"math"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/pricing"
)

// Pricer is the Bellman-Ford-backed pricing.Interface implementation.
type Pricer struct {
	*pricing.Base

	dist []float64
	pred []int
}

var _ pricing.Interface = (*Pricer)(nil)

// New builds a Bellman-Ford pricer for depotID. maxPaths <= 0 generates
// every negative-reduced-cost path found; maxPaths == 1 restricts
// generation to the single best path.
func New(inst *instance.Instance, duals pricing.DualSource, depotID int, maxPaths int) *Pricer {
	base := pricing.NewBase(inst, duals, depotID, maxPaths)
	return &Pricer{
		Base: base,
		dist: make([]float64, base.NumNodes()),
		pred: make([]int, base.NumNodes()),
	}
}

// Solve resolves the shortest-path DAG against the current duals with a
// full relaxation sweep repeated up to NumNodes times. Panics with
// pricing.ErrNegativeCycle if a sweep after the (NumNodes)-th still found
// an improving arc.
func (p *Pricer) Solve() float64 {
	sink := p.SinkNode()
	n := p.NumNodes()

	for i := range p.dist {
		p.dist[i] = math.Inf(1)
		p.pred[i] = -1
	}

	depotDual := p.Duals.DepotCapDual(p.DepotID())
	for i := 0; i < p.Inst.NumTrips(); i++ {
		if cost := p.Inst.SourceCost(p.DepotID(), i); cost != instance.NoArc {
			p.dist[i] = float64(cost) - depotDual
			p.pred[i] = p.SourceNode()
		}
	}

	relax := func() bool {
		changed := false
		for i := 0; i < p.Inst.NumTrips(); i++ {
			tripDual := p.Duals.TripDual(i)
			remaining := p.MaxLabelExpansions()

			for _, arc := range p.Inst.SuccAdj(i) {
				length := float64(arc.Cost) - tripDual
				if p.dist[i]+length < p.dist[arc.To] {
					p.dist[arc.To] = p.dist[i] + length
					p.pred[arc.To] = i
					changed = true
				}
				remaining--
				if remaining == 0 {
					break
				}
			}

			if cost := p.Inst.SinkCost(p.DepotID(), i); cost != instance.NoArc {
				length := float64(cost) - tripDual
				if p.dist[i]+length < p.dist[sink] {
					p.dist[sink] = p.dist[i] + length
					p.pred[sink] = i
					changed = true
				}
			}
		}
		return changed
	}

	for rep := 0; rep < n; rep++ {
		if !relax() {
			break
		}
	}
	if relax() {
		panic(pricing.ErrNegativeCycle)
	}

	return p.dist[sink]
}

// ObjValue returns the shortest distance computed by the last Solve.
func (p *Pricer) ObjValue() float64 { return p.dist[p.SinkNode()] }

// GenerateColumns extracts and installs every negative-reduced-cost path
// found by the last Solve.
func (p *Pricer) GenerateColumns(sink pricing.ColumnSink) int {
	paths := pricing.ExtractPaths(p.Base, p.pred)
	return pricing.InstallColumns(p.DepotID(), paths, sink)
}
