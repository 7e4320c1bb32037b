package asm

import "testing"

// decodeField reads a signed value back out of the 12-bit displacement field.
func decodeField(field uint16) int32 {
	if field >= 0x800 {
		return int32(field) - 0x1000
	}
	return int32(field)
}

func TestTwosComplement12(t *testing.T) {
	tests := []struct {
		disp int32
		want uint16
	}{
		{-1, 0xFFF},
		{-2, 0xFFE},
		{-6, 0xFFA},
		{-2048, 0x800},
	}
	for _, tc := range tests {
		if got := twosComplement12(tc.disp); got != tc.want {
			t.Errorf("twosComplement12(%d) = %03X, want %03X", tc.disp, got, tc.want)
		}
	}
}

func TestTwosComplement12RoundTrip(t *testing.T) {
	for d := int32(-2048); d < 0; d++ {
		if got := decodeField(twosComplement12(d)); got != d {
			t.Fatalf("twosComplement12(%d) decoded to %d", d, got)
		}
	}
}

func TestDisplacementPCRelativeRange(t *testing.T) {
	a := New()
	next := uint32(5000)

	for d := int32(-2048); d <= 2047; d++ {
		field, flag, err := a.displacement(uint32(int32(next)+d), next)
		if err != nil {
			t.Fatalf("displacement(%d) error = %v", d, err)
		}
		if flag != flagP {
			t.Fatalf("displacement(%d) chose flag %d, want p", d, flag)
		}
		if got := decodeField(field); got != d {
			t.Fatalf("displacement(%d) round-tripped to %d", d, got)
		}
	}
}

func TestDisplacementBaseRelative(t *testing.T) {
	a := New()
	a.base = 0x2000

	field, flag, err := a.displacement(0x2800, 0x100)
	if err != nil {
		t.Fatalf("displacement() error = %v", err)
	}
	if flag != flagB || field != 0x800 {
		t.Errorf("displacement() = %03X with flag %d, want 800 with b", field, flag)
	}

	// Base-relative displacements are unsigned: a target below the base is
	// unencodable.
	if _, _, err := a.displacement(0x1FFF, 0x100); err == nil {
		t.Error("target below base accepted")
	}

	// And they still only have 12 bits.
	if _, _, err := a.displacement(0x3001, 0x100); err == nil {
		t.Error("displacement beyond 12 bits accepted")
	}
}
