// Package spfa prices a depot's column-generation subproblem with the
// Shortest Path Faster Algorithm: a FIFO-queue variant of Bellman-Ford that
// only re-relaxes nodes whose distance actually improved, with an explicit
// negative-cycle guard since the dual-adjusted DAG is not guaranteed
// acyclic between iterations.
package spfa

import (
	"math"

	"github.com/afkummer/mdvsp-colgen/instance"
	"github.com/afkummer/mdvsp-colgen/pricing"
)

// Pricer is the SPFA-backed pricing.Interface implementation.
type Pricer struct {
	*pricing.Base

	dist []float64
	pred []int
}

var _ pricing.Interface = (*Pricer)(nil)

// New builds an SPFA pricer for depotID. maxPaths <= 0 generates every
// negative-reduced-cost path found; maxPaths == 1 restricts generation to
// the single best path.
func New(inst *instance.Instance, duals pricing.DualSource, depotID int, maxPaths int) *Pricer {
	base := pricing.NewBase(inst, duals, depotID, maxPaths)
	return &Pricer{
		Base: base,
		dist: make([]float64, base.NumNodes()),
		pred: make([]int, base.NumNodes()),
	}
}

// Solve resolves the shortest-path DAG against the current duals. Panics
// with pricing.ErrNegativeCycle if a node is enqueued more times than the
// graph has nodes, the standard SPFA negative-cycle signature.
func (p *Pricer) Solve() float64 {
	source, sink := p.SourceNode(), p.SinkNode()
	n := p.NumNodes()

	for i := range p.dist {
		p.dist[i] = math.Inf(1)
		p.pred[i] = -1
	}

	enqueueCount := make([]int, n)
	inQueue := make([]bool, n)
	queue := make([]int, 0, n)
	qhead := 0

	push := func(v int) {
		queue = append(queue, v)
		inQueue[v] = true
		enqueueCount[v]++
		if enqueueCount[v] > n {
			panic(pricing.ErrNegativeCycle)
		}
	}

	depotDual := p.Duals.DepotCapDual(p.DepotID())
	for i := 0; i < p.Inst.NumTrips(); i++ {
		if cost := p.Inst.SourceCost(p.DepotID(), i); cost != instance.NoArc {
			p.dist[i] = float64(cost) - depotDual
			p.pred[i] = source
			push(i)
		}
	}

	for qhead < len(queue) {
		v := queue[qhead]
		qhead++
		inQueue[v] = false

		tripDual := p.Duals.TripDual(v)
		remaining := p.MaxLabelExpansions()

		for _, arc := range p.Inst.SuccAdj(v) {
			to := arc.To
			length := float64(arc.Cost) - tripDual
			if p.dist[v]+length < p.dist[to] {
				p.dist[to] = p.dist[v] + length
				p.pred[to] = v
				if !inQueue[to] {
					push(to)
				}
			}
			remaining--
			if remaining == 0 {
				break
			}
		}

		if cost := p.Inst.SinkCost(p.DepotID(), v); cost != instance.NoArc {
			length := float64(cost) - tripDual
			if p.dist[v]+length < p.dist[sink] {
				p.dist[sink] = p.dist[v] + length
				p.pred[sink] = v
			}
		}
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
