package cantx

import (
	"errors"
)

// MaxPayload is the frame payload capacity, in bytes (the CAN FD MTU).
const MaxPayload = 64

// ErrPayloadSize indicates a payload longer than [MaxPayload], see
// [NewFrame].
var ErrPayloadSize = errors.New(`cantx: payload exceeds frame capacity`)

// Frame is a fixed-capacity payload keyed by an arbitration [ID]. It is a
// value type: constructed once, copied by value thereafter, with no shared
// ownership. Ordering delegates entirely to the identifier; payload bytes
// never participate in comparison.
type Frame struct {
	id   ID
	data [MaxPayload]byte
	len  uint8
}

// NewFrame copies data into a new frame, or returns [ErrPayloadSize] if it
// is longer than [MaxPayload]. Bytes beyond the used length are never
// observable via [Frame.Data].
func NewFrame(id ID, data []byte) (Frame, error) {
	var f Frame
	if len(data) > MaxPayload {
		return f, ErrPayloadSize
	}
	f.id = id
	f.len = uint8(copy(f.data[:], data))
	return f, nil
}

// MustFrame is like [NewFrame], but panics on invalid input.
func MustFrame(id ID, data []byte) Frame {
	f, err := NewFrame(id, data)
	if err != nil {
		panic(`cantx: must frame: payload exceeds frame capacity`)
	}
	return f
}

// ID returns the arbitration identifier.
func (x *Frame) ID() ID {
	return x.id
}

// Data returns the used portion of the payload. The result aliases the
// receiver's storage, and must not be retained beyond its lifetime.
func (x *Frame) Data() []byte {
	return x.data[:x.len:x.len]
}

// Len returns the used payload length, in bytes.
func (x *Frame) Len() int {
	return int(x.len)
}

// Compare orders frames by arbitration dominance of their identifiers, see
// [ID.Compare].
func (x *Frame) Compare(other *Frame) int {
	return x.id.Compare(other.id)
}
