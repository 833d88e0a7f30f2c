// Implements the ReadyQueue, which holds processes waiting to be dispatched,
// and the BlockedTable, which holds processes waiting on a disk operation.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue represents a FIFO queue of processes waiting to be dispatched.
// Dispatch order is arrival order; there are no priorities.
type ReadyQueue struct {
	queue []*Process // FIFO queue of processes
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	rq.queue = append(rq.queue, p)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(val.Name)
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}

// BlockedTable maps a sector to the processes waiting for its disk operation,
// in blocking order. A process sits in exactly one bucket while blocked.
type BlockedTable struct {
	buckets map[int64][]*Process
	count   int
}

// NewBlockedTable creates an empty table.
func NewBlockedTable() *BlockedTable {
	return &BlockedTable{buckets: make(map[int64][]*Process)}
}

// Block appends p to sector's bucket.
func (bt *BlockedTable) Block(sector int64, p *Process) {
	if p == nil {
		panic("Block: p must not be nil")
	}
	bt.buckets[sector] = append(bt.buckets[sector], p)
	bt.count++
}

// Wake removes and returns every process blocked on sector, in blocking order.
// Returns nil when nothing waits on sector.
func (bt *BlockedTable) Wake(sector int64) []*Process {
	woken, ok := bt.buckets[sector]
	if !ok {
		return nil
	}
	delete(bt.buckets, sector)
	bt.count -= len(woken)
	return woken
}

// Waiting returns the processes blocked on sector without removing them.
func (bt *BlockedTable) Waiting(sector int64) []*Process {
	return bt.buckets[sector]
}

// Len returns the number of blocked processes across all buckets.
func (bt *BlockedTable) Len() int {
	return bt.count
}

func (bt *BlockedTable) String() string {
	return fmt.Sprintf("BlockedTable{%d processes on %d sectors}", bt.count, len(bt.buckets))
}
