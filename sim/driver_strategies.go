package sim

import "sort"

// fifoQueue serves requests in arrival order.
type fifoQueue struct {
	pending []int64
}

func (q *fifoQueue) admit(sector int64) { q.pending = append(q.pending, sector) }
func (q *fifoQueue) len() int           { return len(q.pending) }

func (q *fifoQueue) next(_ *Driver) (int64, bool) {
	if len(q.pending) == 0 {
		return 0, false
	}
	s := q.pending[0]
	q.pending = q.pending[1:]
	return s, true
}

// lookQueue serves requests elevator-style over a single queue.
type lookQueue struct {
	pending []int64
}

func (q *lookQueue) admit(sector int64) { q.pending = append(q.pending, sector) }
func (q *lookQueue) len() int           { return len(q.pending) }

func (q *lookQueue) next(d *Driver) (int64, bool) {
	if len(q.pending) == 0 {
		return 0, false
	}
	idx, ok := lookScan(q.pending, d.geometry, &d.direction)
	if !ok {
		// Unreachable for a non-empty queue; serve the sorted head so the
		// device always makes progress.
		idx = 0
	}
	var s int64
	s, q.pending = removeAt(q.pending, idx)
	return s, true
}

// nstepQueue batches admissions into generations of at most maxLen requests.
// Only the oldest generation is ever scanned, so a generation is drained
// completely before any later arrival is served.
type nstepQueue struct {
	maxLen      int
	generations [][]int64
	total       int
}

func (q *nstepQueue) admit(sector int64) {
	last := len(q.generations) - 1
	if last < 0 || len(q.generations[last]) >= q.maxLen {
		q.generations = append(q.generations, make([]int64, 0, q.maxLen))
		last++
	}
	q.generations[last] = append(q.generations[last], sector)
	q.total++
}

func (q *nstepQueue) len() int { return q.total }

func (q *nstepQueue) next(d *Driver) (int64, bool) {
	for len(q.generations) > 0 {
		gen := q.generations[0]
		if len(gen) == 0 {
			q.generations = q.generations[1:]
			continue
		}
		idx, ok := lookScan(gen, d.geometry, &d.direction)
		if !ok {
			// Exhausted in both directions: retire it and move on.
			q.total -= len(gen)
			q.generations = q.generations[1:]
			continue
		}
		var s int64
		s, gen = removeAt(gen, idx)
		q.total--
		if len(gen) == 0 {
			q.generations = q.generations[1:]
		} else {
			q.generations[0] = gen
		}
		return s, true
	}
	return 0, false
}

// lookScan sorts pending by sector in place and returns the index of the
// request the elevator serves next. Moving forward it takes the lowest sector
// on or beyond the head's track; moving backward, the highest sector on or
// before it. If the current direction has nothing, the direction flips and
// the scan repeats once.
func lookScan(pending []int64, g *Geometry, dir *Direction) (int, bool) {
	sort.SliceStable(pending, func(i, j int) bool { return pending[i] < pending[j] })
	head := g.CurrentTrack()
	for attempt := 0; attempt < 2; attempt++ {
		if idx, ok := scanFrom(pending, g, head, *dir); ok {
			return idx, true
		}
		*dir = dir.Reverse()
	}
	return 0, false
}

func scanFrom(sorted []int64, g *Geometry, head int64, dir Direction) (int, bool) {
	if dir == Forward {
		for i, s := range sorted {
			if g.Track(s) >= head {
				return i, true
			}
		}
		return 0, false
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if g.Track(sorted[i]) <= head {
			return i, true
		}
	}
	return 0, false
}

func removeAt(s []int64, i int) (int64, []int64) {
	v := s[i]
	return v, append(s[:i], s[i+1:]...)
}
