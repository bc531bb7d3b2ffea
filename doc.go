// Package cantx implements a fixed-capacity transmit scheduler for CAN bus
// frames, deciding which of a bounded set of pending frames wins bus
// arbitration next, and which frames to discard when the set is full and a
// higher-priority frame arrives.
//
// The storage model targets embedded-style usage: a single slot array sized
// at construction, with tombstone "holes" instead of allocation, re-sorted
// on demand (see [SortOn]) rather than maintained as a heap tree. Frames
// that share an arbitration [ID] drain in insertion order, via a wrapping
// signed sequence counter.
//
// Two scheduler flavors are provided. [Queue] treats every frame as its own
// singleton: an eviction removes exactly one frame. [GroupQueue]
// additionally supports multi-part messages, via [GroupQueue.InsertGroup]:
// all parts share one opaque group tag, and evicting any part evicts every
// part, so a lower-priority multi-part message is never left half-evicted.
//
// Neither scheduler performs internal locking; if shared across goroutines
// (or, say, an interrupt-style callback), the caller must serialize access.
// [Pump] is the reference consumer, draining a queue onto a [Bus] under its
// own mutex.
package cantx
