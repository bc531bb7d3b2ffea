package cantx

import (
	"golang.org/x/exp/slices"
)

// SortOn selects when a queue re-establishes priority order over its slot
// array, trading insert latency for remove latency. Sorting is the
// mechanism, not an invariant: between operations the array may be in any
// order.
type SortOn int

const (
	// SortOnInsert re-sorts after every successful insertion, making
	// removal O(1) amortized via the resumable scan position. Prefer this
	// when removals dominate.
	SortOnInsert SortOn = iota

	// SortOnRemove defers sorting to each removal, keeping insertion at a
	// single slot write in the non-full case. Prefer this when insertions
	// dominate, or when removals may outnumber insertions (the scan
	// position is reset on every sort, so this mode never fails closed).
	SortOnRemove
)

type slot[M any] struct {
	frame  Frame
	marker M
	group  uint32
	seq    int16
	filled bool
}

// compareSeq orders wrapping insertion sequence numbers via modular
// subtraction, correct while fewer than 1<<15 insertions are outstanding
// between the compared values.
func compareSeq(a, b int16) int {
	switch d := int16(a - b); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// compareSlots orders holes strictly after any filled slot, so sorting
// compacts occupants to the head; filled slots order by (arbitration id,
// insertion sequence), lexicographic.
func compareSlots[M any](a, b *slot[M]) int {
	if !a.filled || !b.filled {
		switch {
		case a.filled:
			return -1
		case b.filled:
			return 1
		}
		return 0
	}
	if c := a.frame.Compare(&b.frame); c != 0 {
		return c
	}
	return compareSeq(a.seq, b.seq)
}

// txHeap is the fixed-capacity priority container shared by [Queue] and
// [GroupQueue]: a slot array allocated once at construction and never
// resized, plus bookkeeping. It is not a heap tree - the array is re-sorted
// on demand, acceptable because capacities are small and bounded.
type txHeap[M any] struct {
	slots  []slot[M]
	length int
	// hint is the resumable scan position for pop, reset by every sort
	hint   int
	sortOn SortOn
	// seq wraps; tag never repeats within any realistic container lifetime
	seq int16
	tag uint32
}

func newTxHeap[M any](capacity int, sortOn SortOn) txHeap[M] {
	if capacity <= 0 {
		panic(`cantx: capacity must be positive`)
	}
	return txHeap[M]{slots: make([]slot[M], capacity), sortOn: sortOn}
}

// nextTag allocates a unique group tag. Ungrouped insertions each receive
// their own tag, guaranteeing they are never evicted as part of a cascade.
func (x *txHeap[M]) nextTag() uint32 {
	x.tag++
	return x.tag
}

func (x *txHeap[M]) sort() {
	slices.SortFunc(x.slots, func(a, b slot[M]) int { return compareSlots(&a, &b) })
	x.hint = 0
}

// push schedules a frame. Below capacity it fills any hole. At capacity it
// compares against the lowest-priority occupant: if the new frame does not
// strictly outrank it, push rejects without mutating the container
// (re-sorting aside, which is not observable state); otherwise it
// overwrites that occupant and cascade-clears every slot sharing the
// occupant's group tag, returning the total number of frames evicted.
func (x *txHeap[M]) push(frame Frame, marker M, group uint32) (evicted int, ok bool) {
	if x.length < len(x.slots) {
		for i := range x.slots {
			if !x.slots[i].filled {
				x.slots[i] = slot[M]{frame: frame, marker: marker, group: group, seq: x.seq, filled: true}
				break
			}
		}
		x.length++
	} else {
		x.sort()
		tail := &x.slots[len(x.slots)-1]
		if frame.Compare(&tail.frame) >= 0 {
			return 0, false
		}
		victim := tail.group
		*tail = slot[M]{frame: frame, marker: marker, group: group, seq: x.seq, filled: true}
		evicted = 1
		for i := range x.slots[:len(x.slots)-1] {
			if s := &x.slots[i]; s.filled && s.group == victim {
				*s = slot[M]{}
				evicted++
				x.length--
			}
		}
	}
	x.seq++
	if x.sortOn == SortOnInsert {
		x.sort()
	}
	return evicted, true
}

// pushGroup schedules every entry under one freshly allocated group tag, in
// input order (ascending sequence). When free capacity is insufficient, the
// whole operation is admitted or rejected on a single comparison, against
// the occupant heading the contiguous tail region as large as the group;
// admission evicts the complete group of every occupant in that region
// (cascades may extend beyond it), so no group is ever left half-evicted,
// and rejection mutates nothing.
func (x *txHeap[M]) pushGroup(entries []GroupEntry[M]) (evicted int, ok bool) {
	if len(entries) == 0 {
		return 0, true
	}
	if len(entries) > len(x.slots) {
		return 0, false
	}

	if free := len(x.slots) - x.length; free < len(entries) {
		x.sort()

		// holes sort to the tail, so with free < len(entries) the head of
		// the region is always an occupant, the highest-priority victim
		region := len(x.slots) - len(entries)
		if entries[0].Frame.Compare(&x.slots[region].frame) >= 0 {
			return 0, false
		}

		for i := region; i < len(x.slots); i++ {
			if !x.slots[i].filled {
				continue // hole, or already cleared as part of a cascade
			}
			victim := x.slots[i].group
			for j := range x.slots {
				if s := &x.slots[j]; s.filled && s.group == victim {
					*s = slot[M]{}
					evicted++
					x.length--
				}
			}
		}
	}

	tag := x.nextTag()
	hole := 0
	for i := range entries {
		for x.slots[hole].filled {
			hole++
		}
		x.slots[hole] = slot[M]{frame: entries[i].Frame, marker: entries[i].Marker, group: tag, seq: x.seq, filled: true}
		x.seq++
	}
	x.length += len(entries)

	if x.sortOn == SortOnInsert {
		x.sort()
	}
	return evicted, true
}

// pop removes the next frame in priority order, returning false on an empty
// container. The scan resumes from the position left by the last sort; in
// [SortOnInsert] mode, a workload that removes more often than it inserts
// can run the scan off the end, in which case pop fails closed rather than
// wrapping.
func (x *txHeap[M]) pop() (frame Frame, marker M, ok bool) {
	if x.length == 0 {
		return frame, marker, false
	}
	if x.sortOn == SortOnRemove {
		x.sort()
	}
	for x.hint < len(x.slots) {
		s := &x.slots[x.hint]
		x.hint++
		if s.filled {
			frame, marker = s.frame, s.marker
			*s = slot[M]{}
			x.length--
			return frame, marker, true
		}
	}
	return frame, marker, false
}

func (x *txHeap[M]) clear() {
	for i := range x.slots {
		x.slots[i] = slot[M]{}
	}
	x.length = 0
	x.hint = 0
}
