package asm

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Flag nibble bits shared by formats 3 and 4.
const (
	flagX byte = 8
	flagB byte = 4
	flagP byte = 2
	flagE byte = 1
)

// pass2 encodes every record in program order and concatenates the payloads
// into the object stream. The symbol table is complete and read-only here.
// A record that fails to encode is reported and contributes no bytes; the
// pass always finishes over the whole file.
func (a *Assembler) pass2(records []Record) []byte {
	var object []byte

	for i := range records {
		rec := &records[i]
		if rec.Comment {
			continue
		}
		rec.Bytes = a.encodeRecord(rec)
		object = append(object, rec.Bytes...)
	}

	return object
}

func (a *Assembler) encodeRecord(rec *Record) []byte {
	switch rec.Operation {
	case "START", "END":
		return nil

	case "RESB", "RESW":
		// Reserved storage is zero fill. Bad counts were reported in pass 1.
		n, _ := strconv.ParseUint(rec.Operand, 10, 32)
		if rec.Operation == "RESW" {
			n *= 3
		}
		return make([]byte, n)

	case "BYTE":
		return a.encodeByte(rec)

	case "WORD":
		n, err := strconv.ParseUint(rec.Operand, 10, 32)
		if err != nil {
			a.reportf("malformed WORD operand %q on line %d", rec.Operand, rec.Line)
			return nil
		}
		return []byte{byte(n >> 16), byte(n >> 8), byte(n)}

	case "BASE":
		addr, ok := a.symbols[rec.Operand]
		if !ok {
			a.reportf("unresolved label %q in BASE on line %d", rec.Operand, rec.Line)
			return nil
		}
		a.base = addr
		return nil
	}

	inst, ok := instructions[strings.TrimPrefix(rec.Operation, "+")]
	if !ok {
		// already reported by pass 1
		return nil
	}

	if strings.HasPrefix(rec.Operation, "+") {
		return a.encodeFormat4(rec, inst)
	}
	switch inst.Format {
	case format1:
		return []byte{inst.Opcode}
	case format2:
		return a.encodeFormat2(rec, inst)
	default:
		return a.encodeFormat3(rec, inst)
	}
}

// encodeByte emits a BYTE directive's literal bytes.
func (a *Assembler) encodeByte(rec *Record) []byte {
	body, kind, ok := byteLiteral(rec.Operand)
	if !ok {
		// already reported by pass 1
		return nil
	}

	switch kind {
	case byteChar:
		return []byte(body)
	case byteHex:
		out, err := hex.DecodeString(body)
		if err != nil {
			a.reportf("malformed hex literal %q on line %d", rec.Operand, rec.Line)
			return nil
		}
		return out
	default:
		n, _ := strconv.ParseUint(body, 10, 32) // byteLiteral validated the digits
		if n > 0xFF {
			a.reportf("BYTE value %d does not fit one byte on line %d", n, rec.Line)
			return nil
		}
		return []byte{byte(n)}
	}
}

// encodeFormat2 packs the opcode byte and one register/value byte.
func (a *Assembler) encodeFormat2(rec *Record, inst instruction) []byte {
	if r1, r2, ok := strings.Cut(rec.Operand, ","); ok {
		c1, ok1 := registers[r1]
		c2, ok2 := registers[r2]
		if ok1 && ok2 {
			return []byte{inst.Opcode, c1<<4 | c2}
		}
		// SHIFTL/SHIFTR take a register and a shift count; the hardware
		// counts shifts from zero.
		if ok1 && (rec.Operation == "SHIFTL" || rec.Operation == "SHIFTR") {
			n, err := strconv.ParseUint(r2, 10, 8)
			if err != nil || n < 1 || n > 16 {
				a.reportf("invalid shift count %q on line %d", r2, rec.Line)
				return nil
			}
			return []byte{inst.Opcode, c1<<4 | byte(n-1)}
		}
		a.reportf("cannot resolve registers %q on line %d", rec.Operand, rec.Line)
		return nil
	}

	if c, ok := registers[rec.Operand]; ok {
		return []byte{inst.Opcode, c << 4}
	}

	n, err := strconv.ParseUint(rec.Operand, 10, 8)
	if err != nil || n > 15 {
		a.reportf("cannot resolve register %q on line %d", rec.Operand, rec.Line)
		return nil
	}
	return []byte{inst.Opcode, byte(n) << 4}
}

// encodeFormat3 emits the opcode byte with the n,i mode bits, the x/b/p flag
// nibble, and a 12-bit displacement chosen by the displacement resolver.
func (a *Assembler) encodeFormat3(rec *Record, inst instruction) []byte {
	if rec.Operation == "RSUB" {
		// RSUB ignores its operand and always uses simple addressing with a
		// zero address field.
		return []byte{inst.Opcode + 3, 0, 0}
	}

	op := parseOperand(rec.Operand)
	var flags byte
	if op.indexed {
		flags |= flagX
	}

	var field uint16
	if target, ok := a.symbols[op.expr]; ok {
		disp, rel, err := a.displacement(target, rec.Address+3)
		if err != nil {
			a.reportf("%s on line %d", err, rec.Line)
			return nil
		}
		field = disp
		flags |= rel
	} else if op.mode == modeImmediate {
		// An immediate constant goes into the field directly, with neither
		// b nor p set.
		n, err := strconv.ParseUint(op.expr, 10, 32)
		if err != nil {
			a.reportf("unresolved label %q on line %d", op.expr, rec.Line)
			return nil
		}
		if n > 0xFFF {
			a.reportf("immediate %d does not fit 12 bits on line %d", n, rec.Line)
			return nil
		}
		field = uint16(n)
	} else {
		a.reportf("unresolved label %q on line %d", op.expr, rec.Line)
		return nil
	}

	return []byte{
		inst.Opcode + op.mode.niBits(),
		flags<<4 | byte(field>>8)&0x0F,
		byte(field),
	}
}

// encodeFormat4 emits the extended form: e bit set and a 20-bit address
// field holding the full resolved address.
func (a *Assembler) encodeFormat4(rec *Record, inst instruction) []byte {
	if strings.TrimPrefix(rec.Operation, "+") == "RSUB" {
		return []byte{inst.Opcode + 3, flagE << 4, 0, 0}
	}

	op := parseOperand(rec.Operand)
	flags := flagE
	if op.indexed {
		flags |= flagX
	}

	var addr uint32
	if target, ok := a.symbols[op.expr]; ok {
		addr = target
	} else if op.mode == modeImmediate {
		n, err := strconv.ParseUint(op.expr, 10, 32)
		if err != nil {
			a.reportf("unresolved label %q on line %d", op.expr, rec.Line)
			return nil
		}
		addr = uint32(n)
	} else {
		a.reportf("unresolved label %q on line %d", op.expr, rec.Line)
		return nil
	}

	addr &= 0xFFFFF
	return []byte{
		inst.Opcode + op.mode.niBits(),
		flags<<4 | byte(addr>>16),
		byte(addr >> 8),
		byte(addr),
	}
}
