package cantx

import (
	"errors"
)

const (
	// StandardIDBits is the width of a standard arbitration identifier.
	StandardIDBits = 11
	// ExtendedIDBits is the width of an extended arbitration identifier.
	ExtendedIDBits = 29

	// MaxStandardID is the largest valid standard identifier (0x7FF).
	MaxStandardID uint16 = 1<<StandardIDBits - 1
	// MaxExtendedID is the largest valid extended identifier (0x1FFFFFFF).
	MaxExtendedID uint32 = 1<<ExtendedIDBits - 1
)

// ErrIDRange indicates an identifier value with bits set above the
// significant width, see [NewStandardID] and [NewExtendedID].
var ErrIDRange = errors.New(`cantx: identifier out of range`)

// ID models a CAN bus arbitration identifier, in either the standard
// (11-bit) or extended (29-bit) address space. The zero value is the
// standard identifier 0, the highest-priority identifier possible.
//
// The comparison methods implement bus arbitration dominance: "less than"
// means "wins arbitration, transmitted first". Identifiers of the same kind
// compare by numeric value. Every standard identifier wins against every
// extended identifier, regardless of numeric value, modeling the dominant
// IDE bit of the physical arbitration field.
type ID struct {
	value    uint32
	extended bool
}

// NewStandardID returns the standard identifier with the given value,
// or [ErrIDRange] if any bit above the low [StandardIDBits] bits is set.
func NewStandardID(value uint16) (ID, error) {
	if value > MaxStandardID {
		return ID{}, ErrIDRange
	}
	return ID{value: uint32(value)}, nil
}

// NewExtendedID returns the extended identifier with the given value,
// or [ErrIDRange] if any bit above the low [ExtendedIDBits] bits is set.
func NewExtendedID(value uint32) (ID, error) {
	if value > MaxExtendedID {
		return ID{}, ErrIDRange
	}
	return ID{value: value, extended: true}, nil
}

// MustStandardID is like [NewStandardID], but panics on invalid input.
func MustStandardID(value uint16) ID {
	id, err := NewStandardID(value)
	if err != nil {
		panic(`cantx: must standard id: value out of range`)
	}
	return id
}

// MustExtendedID is like [NewExtendedID], but panics on invalid input.
func MustExtendedID(value uint32) ID {
	id, err := NewExtendedID(value)
	if err != nil {
		panic(`cantx: must extended id: value out of range`)
	}
	return id
}

// Raw returns the identifier bits, 11 significant bits for standard
// identifiers, 29 for extended.
func (x ID) Raw() uint32 {
	return x.value
}

// IsExtended reports whether the identifier is in the extended (29-bit)
// address space.
func (x ID) IsExtended() bool {
	return x.extended
}

// Compare orders identifiers by arbitration dominance, returning a negative
// value if x wins arbitration against other, 0 if they are equal, and a
// positive value otherwise.
func (x ID) Compare(other ID) int {
	if x.extended != other.extended {
		// the dominant IDE bit: a standard identifier wins against any
		// extended identifier, independent of value
		if x.extended {
			return 1
		}
		return -1
	}
	switch {
	case x.value < other.value:
		return -1
	case x.value > other.value:
		return 1
	}
	return 0
}

// Less reports whether x wins arbitration against other.
func (x ID) Less(other ID) bool {
	return x.Compare(other) < 0
}
