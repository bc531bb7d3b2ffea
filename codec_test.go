package cantx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_binaryRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"standard", MustFrame(MustStandardID(0x123), []byte{1, 2, 3})},
		{"standard empty", MustFrame(MustStandardID(0), nil)},
		{"extended", MustFrame(MustExtendedID(0x1FFFFFFF), []byte{0xDE, 0xAD, 0xBE, 0xEF})},
		{"extended full payload", MustFrame(MustExtendedID(0x42), bytes.Repeat([]byte{7}, MaxPayload))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.frame.MarshalBinary()
			require.NoError(t, err)
			assert.Len(t, b, codecHeaderLen+tt.frame.Len())

			var got Frame
			require.NoError(t, got.UnmarshalBinary(b))
			assert.Equal(t, tt.frame.ID(), got.ID())
			assert.Equal(t, tt.frame.Data(), got.Data())
		})
	}
}

func TestFrame_appendBinary(t *testing.T) {
	f := MustFrame(MustStandardID(0x123), []byte{0xAA})
	b, err := f.AppendBinary([]byte{0xFF})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00, 0x01, 0x23, 1, 0xAA}, b)
}

func TestFrame_encodingLayout(t *testing.T) {
	f := MustFrame(MustExtendedID(0x1ABCDEF0), []byte{9})
	b, err := f.MarshalBinary()
	require.NoError(t, err)
	// bit 31 flags the extended address space
	assert.Equal(t, []byte{0x9A, 0xBC, 0xDE, 0xF0, 1, 9}, b)
}

func TestFrame_unmarshalBinaryErrors(t *testing.T) {
	validFrame := MustFrame(MustStandardID(1), []byte{1, 2})
	valid, err := validFrame.MarshalBinary()
	require.NoError(t, err)

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated header", valid[:4]},
		{"truncated payload", valid[:len(valid)-1]},
		{"trailing bytes", append(append([]byte(nil), valid...), 0)},
		{"reserved bit 30", mutate(func(b []byte) []byte { b[0] |= 0x40; return b })},
		{"reserved bit 29", mutate(func(b []byte) []byte { b[0] |= 0x20; return b })},
		{"standard id out of range", mutate(func(b []byte) []byte { b[2] |= 0x08; return b })},
		{"length exceeds capacity", func() []byte {
			b := []byte{0, 0, 0, 1, MaxPayload + 1}
			return append(b, make([]byte, MaxPayload+1)...)
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Frame
			err := f.UnmarshalBinary(tt.data)
			require.ErrorIs(t, err, ErrCodec)
			// the receiver is left unchanged
			assert.Equal(t, Frame{}, f)
		})
	}
}
