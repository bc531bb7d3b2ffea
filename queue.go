package cantx

import (
	"errors"
)

// ErrRejected indicates an insert into a full queue where the new frame
// does not strictly outrank the lowest-priority occupant. The queue is left
// unchanged, and the caller retains the frame: it may retry after the next
// successful removal, drop it, or escalate.
var ErrRejected = errors.New(`cantx: frame rejected: queue full of equal or higher priority frames`)

// Queue is a fixed-capacity transmit scheduler with grouping disabled:
// every frame is its own singleton, so an eviction removes exactly one
// frame, never a cascade. Instances must be initialized using the
// [NewQueue] factory.
//
// Queue performs no internal locking; callers sharing one across execution
// contexts must serialize every method call (see [Pump]). All operations
// complete in time bounded by the capacity, without blocking or I/O.
type Queue[M any] struct {
	heap txHeap[M]
}

// NewQueue initializes a new Queue with the given fixed capacity, which is
// never resized, and sorting mode. A panic will occur if capacity is not
// positive.
func NewQueue[M any](capacity int, sortOn SortOn) *Queue[M] {
	return &Queue[M]{heap: newTxHeap[M](capacity, sortOn)}
}

// Insert schedules a frame, attaching marker, which is opaque to the queue
// and returned verbatim by [Queue.Remove]. It returns the number of frames
// evicted to admit this one (at most 1, given grouping is disabled), or
// [ErrRejected] if the queue is full of frames it does not strictly
// outrank.
func (x *Queue[M]) Insert(frame Frame, marker M) (int, error) {
	evicted, ok := x.heap.push(frame, marker, x.heap.nextTag())
	if !ok {
		return 0, ErrRejected
	}
	return evicted, nil
}

// Remove returns the next frame in priority order, with its marker, or
// false if the queue is empty. Frames with equal identifiers drain in
// insertion order.
func (x *Queue[M]) Remove() (Frame, M, bool) {
	return x.heap.pop()
}

// Clear discards all pending frames.
func (x *Queue[M]) Clear() {
	x.heap.clear()
}

// Len returns the number of pending frames.
func (x *Queue[M]) Len() int {
	return x.heap.length
}

// Cap returns the fixed capacity.
func (x *Queue[M]) Cap() int {
	return len(x.heap.slots)
}
