package master

import "github.com/afkummer/mdvsp-colgen/instance"

// Core is the backend-agnostic column bookkeeping every MasterBackend
// embeds. It accumulates a column's undiscounted cost across BeginColumn/
// AddTrip/CommitColumn and keeps a {depot, trips} cache parallel to
// whatever the LP backend stores internally.
//
// Core does not talk to any LP engine. A backend embeds Core, calls
// Core.BeginColumn/AddTrip/Commit to get cost accumulation and validation
// for free, and uses the returned path/cost to build its own LP column.
type Core struct {
	inst *instance.Instance

	// Column under construction.
	building       bool
	newcolDepot    int
	newcolCost     float64
	newcolLastTrip int
	newcolPath     []int

	// Parallel cache, one entry per committed column (dummy columns are
	// not represented here; only real, path-constructed columns).
	colDepot []int
	colTrips [][]int
}

// NewCore builds an empty column cache over inst.
func NewCore(inst *instance.Instance) *Core {
	return &Core{inst: inst}
}

// BeginColumn starts accumulating a new column based at depotID.
func (c *Core) BeginColumn(depotID int) {
	c.building = true
	c.newcolDepot = depotID
	c.newcolCost = 0
	c.newcolLastTrip = -1
	c.newcolPath = c.newcolPath[:0]
}

// AddTrip appends trip to the column under construction, accumulating its
// source (first trip) or deadhead (subsequent trips) cost. Returns
// ErrNoActiveColumn if BeginColumn was not called, ErrForbiddenArc if the
// required arc is instance.NoArc.
func (c *Core) AddTrip(trip int) error {
	if !c.building {
		return ErrNoActiveColumn
	}
	if c.newcolLastTrip == -1 {
		cost := c.inst.SourceCost(c.newcolDepot, trip)
		if cost == instance.NoArc {
			return ErrForbiddenArc
		}
		c.newcolCost += float64(cost)
	} else {
		cost := c.inst.DeadheadCost(c.newcolLastTrip, trip)
		if cost == instance.NoArc {
			return ErrForbiddenArc
		}
		c.newcolCost += float64(cost)
	}
	c.newcolPath = append(c.newcolPath, trip)
	c.newcolLastTrip = trip

	return nil
}

// Commit closes the column under construction with the sink arc back to
// its depot, appends it to the cache, and returns the finished
// (depot, path, totalCost) triple for the backend to install in its LP.
func (c *Core) Commit() (depot int, path []int, cost float64, err error) {
	if !c.building {
		return 0, nil, 0, ErrNoActiveColumn
	}
	if c.newcolLastTrip == -1 {
		return 0, nil, 0, ErrEmptyColumn
	}
	sink := c.inst.SinkCost(c.newcolDepot, c.newcolLastTrip)
	if sink == instance.NoArc {
		return 0, nil, 0, ErrForbiddenArc
	}
	c.newcolCost += float64(sink)
	c.building = false

	path = make([]int, len(c.newcolPath))
	copy(path, c.newcolPath)
	c.colDepot = append(c.colDepot, c.newcolDepot)
	c.colTrips = append(c.colTrips, path)

	return c.newcolDepot, path, c.newcolCost, nil
}

// NumColumns returns the number of real (non-dummy) columns committed so
// far.
func (c *Core) NumColumns() int { return len(c.colDepot) }

// ColumnDepot returns the depot of the i-th committed real column.
func (c *Core) ColumnDepot(i int) int { return c.colDepot[i] }

// ColumnPath returns the trip sequence of the i-th committed real column.
// The caller must not mutate the returned slice.
func (c *Core) ColumnPath(i int) []int { return c.colTrips[i] }
