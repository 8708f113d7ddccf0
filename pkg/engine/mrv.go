package engine

import "container/heap"

// mrvQueue is the minimum-remaining-values priority queue over unsolved
// cells, keyed by charDist.Total() (smaller joint mass sorts first, so
// the tightest cell is always on top). Ties are broken by insertion
// order, via a monotonic sequence number assigned at push time, so the
// queue's iteration is deterministic given a fixed commit/undo history.
type mrvQueue struct {
	items []*Cell
	seq   int64
}

func newMRVQueue() *mrvQueue {
	q := &mrvQueue{}
	heap.Init(q)
	return q
}

func (q *mrvQueue) Len() int { return len(q.items) }

func (q *mrvQueue) Less(i, j int) bool {
	ki, kj := q.items[i].charDist.Total(), q.items[j].charDist.Total()
	if ki != kj {
		return ki < kj
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *mrvQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].heapIndex = i
	q.items[j].heapIndex = j
}

func (q *mrvQueue) Push(x interface{}) {
	c := x.(*Cell)
	c.heapIndex = len(q.items)
	q.items = append(q.items, c)
}

func (q *mrvQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.heapIndex = -1
	q.items = old[:n-1]
	return c
}

// push inserts c into the queue, assigning it the next sequence number.
func (q *mrvQueue) push(c *Cell) {
	q.seq++
	c.seq = q.seq
	heap.Push(q, c)
}

// remove removes c from the queue. c must currently be queued.
func (q *mrvQueue) remove(c *Cell) {
	heap.Remove(q, c.heapIndex)
}

// fix notifies the queue that c's key changed in place.
func (q *mrvQueue) fix(c *Cell) {
	heap.Fix(q, c.heapIndex)
}

// peek returns the top of the queue without removing it.
func (q *mrvQueue) peek() (*Cell, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

func (q *mrvQueue) contains(c *Cell) bool {
	return c.heapIndex >= 0
}
