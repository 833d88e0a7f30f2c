package sim

import "container/heap"

// Interrupt marks the completion of an in-flight disk operation.
type Interrupt struct {
	Time   int64 // clock at which the operation completes
	Sector int64
	seq    uint64
}

// InterruptHeap implements a priority queue of pending interrupts with
// deterministic ordering: time → scheduling order.
type InterruptHeap struct {
	items   []Interrupt
	nextSeq uint64
}

// NewInterruptHeap creates an empty interrupt heap
func NewInterruptHeap() *InterruptHeap {
	h := &InterruptHeap{
		items: make([]Interrupt, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *InterruptHeap) Len() int {
	return len(h.items)
}

// Less implements heap.Interface with deterministic ordering
func (h *InterruptHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.seq < b.seq
}

// Swap implements heap.Interface
func (h *InterruptHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// Push implements heap.Interface
func (h *InterruptHeap) Push(x interface{}) {
	h.items = append(h.items, x.(Interrupt))
}

// Pop implements heap.Interface
func (h *InterruptHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[0 : n-1]
	return item
}

// Schedule adds an interrupt firing at time for sector.
func (h *InterruptHeap) Schedule(time, sector int64) {
	heap.Push(h, Interrupt{Time: time, Sector: sector, seq: h.nextSeq})
	h.nextSeq++
}

// PopNext removes and returns the earliest interrupt.
func (h *InterruptHeap) PopNext() (Interrupt, bool) {
	if h.Len() == 0 {
		return Interrupt{}, false
	}
	return heap.Pop(h).(Interrupt), true
}

// Peek returns the earliest interrupt without removing it.
func (h *InterruptHeap) Peek() (Interrupt, bool) {
	if h.Len() == 0 {
		return Interrupt{}, false
	}
	return h.items[0], true
}

// Due reports whether the earliest interrupt has been reached at now.
func (h *InterruptHeap) Due(now int64) bool {
	next, ok := h.Peek()
	return ok && next.Time <= now
}
