package asm

import (
	"strconv"
	"strings"
)

// pass1 splits every line, assigns each record its byte offset from the
// running location counter, and fills the symbol table. Pass 2 must not run
// until this has completed over the whole file: forward references are the
// norm in assembly source.
func (a *Assembler) pass1(lines []string) []Record {
	records := make([]Record, 0, len(lines))

	for i, raw := range lines {
		rec := splitLine(raw, i+1)

		switch {
		case rec.Comment || rec.Operation == "BASE":
			// occupies no space and takes no address

		case rec.Operation == "START":
			// The record keeps the counter's value before the set, so a
			// label on the START line resolves to the pre-program offset.
			rec.Address = a.locctr
			rec.Addressed = true
			start, err := strconv.ParseUint(rec.Operand, 16, 32)
			if err != nil {
				a.reportf("invalid START address %q on line %d", rec.Operand, rec.Line)
			} else {
				a.locctr = uint32(start)
				a.start = uint32(start)
			}

		default:
			rec.Address = a.locctr
			rec.Addressed = true
			a.locctr += a.recordLength(&rec)
		}

		if rec.Addressed && rec.Label != "" {
			if _, exists := a.symbols[rec.Label]; exists {
				a.reportf("duplicate label %q on line %d", rec.Label, rec.Line)
			} else {
				a.symbols[rec.Label] = rec.Address
			}
		}

		records = append(records, rec)
	}

	return records
}

// recordLength is the number of bytes pass 1 reserves for a record. Pass 2
// must emit exactly this many bytes for the record or fail it outright.
func (a *Assembler) recordLength(rec *Record) uint32 {
	if ext, ok := strings.CutPrefix(rec.Operation, "+"); ok {
		if _, found := instructions[ext]; !found {
			a.reportf("unresolved mnemonic %q on line %d", rec.Operation, rec.Line)
		}
		return 4
	}

	switch rec.Operation {
	case "END":
		// END emits nothing, so it must not advance the counter.
		return 0
	case "WORD":
		return 3
	case "RESW":
		return 3 * a.reservation(rec)
	case "RESB":
		return a.reservation(rec)
	case "BYTE":
		body, kind, ok := byteLiteral(rec.Operand)
		if !ok {
			a.reportf("malformed BYTE literal %q on line %d", rec.Operand, rec.Line)
			return 0
		}
		switch kind {
		case byteChar:
			return uint32(len(body))
		case byteHex:
			return uint32(len(body) / 2)
		}
		return 1
	}

	if inst, ok := instructions[rec.Operation]; ok {
		switch inst.Format {
		case format1:
			return 1
		case format2:
			return 2
		}
		return 3
	}

	// Unknown mnemonics are reported in this pass, not deferred to pass 2.
	// Sized at 3 anyway so the rest of the file still gets offsets.
	a.reportf("unresolved mnemonic %q on line %d", rec.Operation, rec.Line)
	return 3
}

// reservation parses a RESB/RESW count.
func (a *Assembler) reservation(rec *Record) uint32 {
	n, err := strconv.ParseUint(rec.Operand, 10, 32)
	if err != nil {
		a.reportf("invalid reservation count %q on line %d", rec.Operand, rec.Line)
		return 0
	}
	return uint32(n)
}
