package master

import (
	"bufio"
	"fmt"
	"os"
)

// ExportColumns writes every real column currently held by m to path:
// a column-count header, then per column a "<depot> <trip_count>" line
// followed by one trip index per line. Dummy columns are never exported;
// they are reseeded by the backend itself on load.
func ExportColumns(m Interface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, m.NumColumns())
	for i := 0; i < m.NumColumns(); i++ {
		trips := m.ColumnPath(i)
		fmt.Fprintf(w, "%d %d\n", m.ColumnDepot(i), len(trips))
		for _, trip := range trips {
			fmt.Fprintln(w, trip)
		}
	}

	return nil
}

// ImportColumns reads columns previously written by ExportColumns and
// replays the exact BeginColumn/AddTrip/CommitColumn protocol against m, so
// any backend gets a correct import without reimplementing the format.
// Columns already present in m are left untouched: import always appends,
// never resets m's existing column set.
func ImportColumns(m Interface, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	nextInt := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("%w: %s: %v", ErrBadColumnFile, path, err)
			}
			return 0, fmt.Errorf("%w: %s: unexpected end of file", ErrBadColumnFile, path)
		}
		var v int
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return 0, fmt.Errorf("%w: %s: bad integer %q", ErrBadColumnFile, path, sc.Text())
		}
		return v, nil
	}

	count, err := nextInt()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("%w: %s: negative column count %d", ErrBadColumnFile, path, count)
	}

	for n := 0; n < count; n++ {
		depot, err := nextInt()
		if err != nil {
			return n, err
		}
		tripCount, err := nextInt()
		if err != nil {
			return n, err
		}
		if tripCount <= 0 {
			return n, fmt.Errorf("%w: %s: column %d has trip count %d", ErrBadColumnFile, path, n, tripCount)
		}

		m.BeginColumn(depot)
		for t := 0; t < tripCount; t++ {
			trip, err := nextInt()
			if err != nil {
				return n, err
			}
			if err := m.AddTrip(trip); err != nil {
				return n, fmt.Errorf("%w: %s: column %d: %v", ErrBadColumnFile, path, n, err)
			}
		}
		if err := m.CommitColumn(); err != nil {
			return n, fmt.Errorf("%w: %s: column %d: %v", ErrBadColumnFile, path, n, err)
		}
	}

	return count, nil
}
