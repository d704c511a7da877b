package instance

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// New reads an MDVSP instance from the whitespace-separated text format:
//
//	K T
//	cap_0 cap_1 ... cap_{K-1}
//	M[0][0] M[0][1] ... M[0][K+T-1]
//	...
//	M[K+T-1][0] ...    M[K+T-1][K+T-1]
//
// Rows/columns 0..K-1 address depot nodes, K..K+T-1 address trip nodes.
// A cell value of NoArc means the corresponding arc is absent.
func New(path string, opts ...Option) (*Instance, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	sc.Split(bufio.ScanWords)

	nextInt := func() (int, bool) {
		if !sc.Scan() {
			return 0, false
		}
		var v int
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return 0, false
		}
		return v, true
	}

	numDepots, ok1 := nextInt()
	numTrips, ok2 := nextInt()
	if !ok1 || !ok2 {
		return nil, ErrBadHeader
	}
	if numDepots <= 0 || numTrips <= 0 {
		return nil, ErrNonPositiveSize
	}

	depotCap := make([]int, numDepots)
	for k := range depotCap {
		v, ok := nextInt()
		if !ok {
			return nil, ErrBadCapacity
		}
		depotCap[k] = v
	}

	size := numDepots + numTrips
	matrix := make([][]int, size)
	for i := range matrix {
		row := make([]int, size)
		for j := range row {
			v, ok := nextInt()
			if !ok {
				return nil, ErrBadMatrix
			}
			row[j] = v
		}
		matrix[i] = row
	}

	inst := &Instance{
		numDepots: numDepots,
		numTrips:  numTrips,
		depotCap:  depotCap,
		matrix:    matrix,
	}
	inst.buildAdjacency(cfg.sortAdjacency)

	return inst, nil
}

// buildAdjacency constructs succAdj/predAdj once from the deadhead portion
// of the matrix, optionally sorted ascending by cost.
func (inst *Instance) buildAdjacency(sortAsc bool) {
	inst.succAdj = make([][]Arc, inst.numTrips)
	inst.predAdj = make([][]Arc, inst.numTrips)

	for i := 0; i < inst.numTrips; i++ {
		for j := 0; j < inst.numTrips; j++ {
			if i == j {
				continue
			}
			if cost := inst.DeadheadCost(i, j); cost != NoArc {
				inst.succAdj[i] = append(inst.succAdj[i], Arc{To: j, Cost: cost})
				inst.predAdj[j] = append(inst.predAdj[j], Arc{To: i, Cost: cost})
			}
		}
	}

	if !sortAsc {
		return
	}
	for i := range inst.succAdj {
		adj := inst.succAdj[i]
		sort.Slice(adj, func(a, b int) bool { return adj[a].Cost < adj[b].Cost })
	}
	for i := range inst.predAdj {
		adj := inst.predAdj[i]
		sort.Slice(adj, func(a, b int) bool { return adj[a].Cost < adj[b].Cost })
	}
}
