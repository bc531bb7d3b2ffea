package cantx

import (
	"errors"
	"testing"
)

func TestNewStandardID_range(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
		ok    bool
	}{
		{"zero", 0, true},
		{"typical", 123, true},
		{"max", 0x7FF, true},
		{"bit 11 set", 0x800, false},
		{"all bits", 0xFFFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewStandardID(tt.value)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewStandardID(%#x) error = %v", tt.value, err)
				}
				if id.Raw() != uint32(tt.value) {
					t.Errorf("Raw() = %#x, want %#x", id.Raw(), tt.value)
				}
				if id.IsExtended() {
					t.Error("IsExtended() = true, want false")
				}
			} else if !errors.Is(err, ErrIDRange) {
				t.Errorf("NewStandardID(%#x) error = %v, want ErrIDRange", tt.value, err)
			}
		})
	}
}

func TestNewExtendedID_range(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		ok    bool
	}{
		{"zero", 0, true},
		{"typical", 123, true},
		{"max", 0x1FFFFFFF, true},
		{"bit 29 set", 0x20000000, false},
		{"all bits", 0xFFFFFFFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewExtendedID(tt.value)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewExtendedID(%#x) error = %v", tt.value, err)
				}
				if id.Raw() != tt.value {
					t.Errorf("Raw() = %#x, want %#x", id.Raw(), tt.value)
				}
				if !id.IsExtended() {
					t.Error("IsExtended() = false, want true")
				}
			} else if !errors.Is(err, ErrIDRange) {
				t.Errorf("NewExtendedID(%#x) error = %v, want ErrIDRange", tt.value, err)
			}
		})
	}
}

func TestID_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want int
	}{
		{"standard by value", MustStandardID(0), MustStandardID(7), -1},
		{"standard by value inverse", MustStandardID(7), MustStandardID(0), 1},
		{"standard equal", MustStandardID(7), MustStandardID(7), 0},
		{"extended by value", MustExtendedID(0), MustExtendedID(7), -1},
		{"extended equal", MustExtendedID(7), MustExtendedID(7), 0},
		// the dominant IDE bit: standard wins regardless of value
		{"standard dominates equal value", MustStandardID(0), MustExtendedID(0), -1},
		{"standard dominates larger extended", MustStandardID(0x7FF), MustExtendedID(0), -1},
		{"standard dominates distant extended", MustStandardID(7), MustExtendedID(0x1FFFFFFF), -1},
		{"extended loses to standard", MustExtendedID(0), MustStandardID(0x7FF), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if got := tt.a.Less(tt.b); got != (tt.want < 0) {
				t.Errorf("Less = %v, want %v", got, tt.want < 0)
			}
			// antisymmetry
			if got := tt.b.Compare(tt.a); got != -tt.want {
				t.Errorf("reverse Compare = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestMustStandardID_panics(t *testing.T) {
	assertPanics(t, func() { MustStandardID(0x800) }, "expected panic for out of range standard id")
	assertPanics(t, func() { MustExtendedID(0x20000000) }, "expected panic for out of range extended id")
}

func assertPanics(t *testing.T, f func(), msg string) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s", msg)
		}
	}()
	f()
}
