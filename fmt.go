package cantx

// Diagnostic rendering, for logs and test failures only - none of it
// participates in scheduling.

const hexDigits = `0123456789ABCDEF`

// appendHex appends exactly width upper-case hex digits of value.
func appendHex(b []byte, value uint32, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		b = append(b, hexDigits[value>>(uint(i)*4)&0xF])
	}
	return b
}

// AppendString is the append variant of [ID.String].
func (x ID) AppendString(b []byte) []byte {
	if x.extended {
		return appendHex(b, x.value, 8)
	}
	return appendHex(b, x.value, 3)
}

// String renders the identifier as upper-case hex: 3 digits for standard
// identifiers, 8 for extended (the candump convention).
func (x ID) String() string {
	return string(x.AppendString(nil))
}

// AppendString is the append variant of [Frame.String].
func (x *Frame) AppendString(b []byte) []byte {
	b = append(b, `Frame(`...)
	b = x.id.AppendString(b)
	b = append(b, `, `...)
	b = appendDecimal(b, int(x.len))
	b = append(b, `, `...)
	for i, v := range x.Data() {
		if i != 0 {
			b = append(b, ' ')
		}
		b = append(b, hexDigits[v>>4], hexDigits[v&0xF])
	}
	return append(b, ')')
}

// String renders the frame as its hex identifier, used payload length, and
// space-joined hex payload bytes, e.g. `Frame(123, 3, 01 02 03)`.
func (x *Frame) String() string {
	return string(x.AppendString(nil))
}

// appendDecimal appends the base-10 representation of a small non-negative
// value.
func appendDecimal(b []byte, value int) []byte {
	if value >= 10 {
		b = appendDecimal(b, value/10)
	}
	return append(b, byte('0'+value%10))
}
