package cantx

import (
	"errors"
)

// ErrGroupSize indicates a group larger than the queue's capacity, which
// could never be admitted whole, see [GroupQueue.InsertGroup].
var ErrGroupSize = errors.New(`cantx: group exceeds queue capacity`)

// GroupEntry is one part of a multi-part message, see
// [GroupQueue.InsertGroup].
type GroupEntry[M any] struct {
	Frame  Frame
	Marker M
}

// GroupQueue is a fixed-capacity transmit scheduler supporting multi-part
// messages. Single insertions behave exactly as on [Queue], each under a
// fresh group tag; [GroupQueue.InsertGroup] schedules a whole group under
// one shared tag, and evicting any member evicts every member, so a
// lower-priority multi-part message is never left half-evicted. Instances
// must be initialized using the [NewGroupQueue] factory.
//
// Like [Queue], a GroupQueue performs no internal locking.
type GroupQueue[M any] struct {
	heap txHeap[M]
}

// NewGroupQueue initializes a new GroupQueue with the given fixed capacity
// and sorting mode. A panic will occur if capacity is not positive.
func NewGroupQueue[M any](capacity int, sortOn SortOn) *GroupQueue[M] {
	return &GroupQueue[M]{heap: newTxHeap[M](capacity, sortOn)}
}

// Insert schedules a single frame under a fresh group tag, see
// [Queue.Insert]. Note that the count of evicted frames may exceed 1, if
// admission evicts a member of a multi-part group.
func (x *GroupQueue[M]) Insert(frame Frame, marker M) (int, error) {
	evicted, ok := x.heap.push(frame, marker, x.heap.nextTag())
	if !ok {
		return 0, ErrRejected
	}
	return evicted, nil
}

// InsertGroup atomically schedules all entries as one multi-part message,
// in input order, returning the total number of frames evicted to admit
// them. Empty input is a no-op. If free capacity is insufficient, the group
// is admitted only if its first (highest-priority) entry strictly outranks
// the best of the occupants that would have to go; on rejection
// ([ErrRejected], or [ErrGroupSize] for groups larger than the capacity)
// the queue is left unchanged - no partial eviction, no partial insertion.
func (x *GroupQueue[M]) InsertGroup(entries []GroupEntry[M]) (int, error) {
	if len(entries) > x.Cap() {
		return 0, ErrGroupSize
	}
	evicted, ok := x.heap.pushGroup(entries)
	if !ok {
		return 0, ErrRejected
	}
	return evicted, nil
}

// Remove returns the next frame in priority order, with its marker, or
// false if the queue is empty. Members of one group drain in their
// [GroupQueue.InsertGroup] input order.
func (x *GroupQueue[M]) Remove() (Frame, M, bool) {
	return x.heap.pop()
}

// Clear discards all pending frames.
func (x *GroupQueue[M]) Clear() {
	x.heap.clear()
}

// Len returns the number of pending frames.
func (x *GroupQueue[M]) Len() int {
	return x.heap.length
}

// Cap returns the fixed capacity.
func (x *GroupQueue[M]) Cap() int {
	return len(x.heap.slots)
}
