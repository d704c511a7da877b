package pricing

// Snapshot is a point-in-time copy of a master's duals. The CG engine
// refreshes it once after every master solve, before the pricing fan-out,
// so the parallel pricers never touch the LP backend concurrently; they
// read a plain, frozen []float64 instead.
type Snapshot struct {
	trip  []float64
	depot []float64
}

var _ DualSource = (*Snapshot)(nil)

// NewSnapshot allocates a zero-valued snapshot for numTrips trip rows and
// numDepots depot-capacity rows.
func NewSnapshot(numTrips, numDepots int) *Snapshot {
	return &Snapshot{
		trip:  make([]float64, numTrips),
		depot: make([]float64, numDepots),
	}
}

// Refresh overwrites the snapshot with src's current duals. Must not be
// called while a pricing fan-out is in flight.
func (s *Snapshot) Refresh(src DualSource) {
	for i := range s.trip {
		s.trip[i] = src.TripDual(i)
	}
	for k := range s.depot {
		s.depot[k] = src.DepotCapDual(k)
	}
}

// TripDual returns the snapshotted dual of trip i's assignment row.
func (s *Snapshot) TripDual(i int) float64 { return s.trip[i] }

// DepotCapDual returns the snapshotted dual of depot k's capacity row.
func (s *Snapshot) DepotCapDual(k int) float64 { return s.depot[k] }
