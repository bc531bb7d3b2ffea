package cantx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire format for persisting frames: a 4-byte big-endian header word (bit
// 31 is the extended-identifier flag, bits 30 and 29 are reserved as zero,
// bits 28..0 hold the identifier), a 1-byte used payload length, then
// exactly that many payload bytes. Only the used portion of the payload is
// persisted.

// ErrCodec indicates a malformed frame encoding, see
// [Frame.UnmarshalBinary]. Decode errors wrap it.
var ErrCodec = errors.New(`cantx: malformed frame encoding`)

const (
	codecHeaderLen    = 5
	codecFlagExtended = uint32(1) << 31
	codecReservedMask = uint32(3) << 29
)

// AppendBinary appends the wire encoding of the frame, implementing
// [encoding.BinaryAppender].
func (x *Frame) AppendBinary(b []byte) ([]byte, error) {
	header := x.id.value
	if x.id.extended {
		header |= codecFlagExtended
	}
	b = binary.BigEndian.AppendUint32(b, header)
	b = append(b, x.len)
	return append(b, x.Data()...), nil
}

// MarshalBinary encodes the frame to its wire format, implementing
// [encoding.BinaryMarshaler].
func (x *Frame) MarshalBinary() ([]byte, error) {
	return x.AppendBinary(make([]byte, 0, codecHeaderLen+int(x.len)))
}

// UnmarshalBinary decodes a frame from its wire format, implementing
// [encoding.BinaryUnmarshaler]. It validates identifier range, reserved
// header bits, payload length, and rejects trailing bytes; all failures
// wrap [ErrCodec], and leave the receiver unchanged.
func (x *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < codecHeaderLen {
		return fmt.Errorf(`%w: truncated header (%d bytes)`, ErrCodec, len(data))
	}
	header := binary.BigEndian.Uint32(data)
	if header&codecReservedMask != 0 {
		return fmt.Errorf(`%w: reserved header bits set`, ErrCodec)
	}

	var (
		id  ID
		err error
	)
	if header&codecFlagExtended != 0 {
		id, err = NewExtendedID(header &^ codecFlagExtended)
	} else {
		value := header
		if value > uint32(MaxStandardID) {
			return fmt.Errorf(`%w: %v`, ErrCodec, ErrIDRange)
		}
		id, err = NewStandardID(uint16(value))
	}
	if err != nil {
		return fmt.Errorf(`%w: %v`, ErrCodec, err)
	}

	length := int(data[4])
	if length > MaxPayload {
		return fmt.Errorf(`%w: %v`, ErrCodec, ErrPayloadSize)
	}
	payload := data[codecHeaderLen:]
	if len(payload) != length {
		return fmt.Errorf(`%w: payload length %d, header declares %d`, ErrCodec, len(payload), length)
	}

	f, err := NewFrame(id, payload)
	if err != nil {
		return fmt.Errorf(`%w: %v`, ErrCodec, err)
	}
	*x = f
	return nil
}
