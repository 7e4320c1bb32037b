package asm

import "fmt"

// Signed range of the 12-bit program-counter-relative displacement field.
const (
	dispMin = -2048
	dispMax = 2047
)

// displacement selects the encoding for a format 3 target address: program-
// counter-relative when the offset from the next instruction fits the signed
// 12-bit field, base-relative otherwise. next is the address of the
// following instruction. Returns the packed field and the b or p flag bit.
func (a *Assembler) displacement(target, next uint32) (uint16, byte, error) {
	disp := int32(target) - int32(next)
	if disp >= dispMin && disp <= dispMax {
		if disp < 0 {
			return twosComplement12(disp), flagP, nil
		}
		return uint16(disp), flagP, nil
	}

	// Base-relative displacements are unsigned.
	rel := int32(target) - int32(a.base)
	if rel < 0 || rel > 0xFFF {
		return 0, 0, fmt.Errorf("target %05X out of range of base %05X", target, a.base)
	}
	return uint16(rel), flagB, nil
}

// twosComplement12 encodes a negative displacement in the 12-bit field:
// invert the 12 bits of the magnitude and add one.
func twosComplement12(disp int32) uint16 {
	return uint16((1<<12 + disp) & 0xFFF)
}
