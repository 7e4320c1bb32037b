package asm

import (
	"strconv"
	"strings"
)

// commentMarker begins a full-line comment in the label column.
const commentMarker = '.'

// Record is one source line carried through both passes, in program order.
// Address is set exactly once by pass 1, Bytes exactly once by pass 2.
type Record struct {
	Line      int
	Label     string
	Operation string
	Operand   string
	Comment   bool
	Address   uint32
	Addressed bool
	Bytes     []byte
}

// splitLine decomposes a raw source line into label, operation and operand
// columns. Tabs count as separators, a line starting with whitespace has no
// label, and anything past the third column is a trailing comment. Blank
// lines and lines whose label column starts with the comment marker are
// comment records.
func splitLine(raw string, lineNo int) Record {
	rec := Record{Line: lineNo}

	line := strings.ReplaceAll(strings.TrimSuffix(raw, "\r"), "\t", " ")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		rec.Comment = true
		return rec
	}

	if line[0] != ' ' {
		rec.Label = fields[0]
		fields = fields[1:]
	}
	if rec.Label != "" && rec.Label[0] == commentMarker {
		// The field is the comment marker, not a real label.
		rec.Label = ""
		rec.Comment = true
		return rec
	}

	if len(fields) > 0 {
		rec.Operation = fields[0]
	}
	if len(fields) > 1 {
		rec.Operand = fields[1]
	}
	return rec
}

// addrMode is the addressing-mode family selected by an operand's leading
// character.
type addrMode int

const (
	modeSimple addrMode = iota
	modeImmediate
	modeIndirect
)

// niBits is the n,i contribution each mode adds to the opcode byte.
func (m addrMode) niBits() byte {
	switch m {
	case modeImmediate:
		return 1
	case modeIndirect:
		return 2
	default:
		return 3
	}
}

// operand is a decoded instruction operand: addressing-mode family, indexed
// flag, and the remaining expression text.
type operand struct {
	mode    addrMode
	indexed bool
	expr    string
}

// parseOperand classifies an operand once so later stages never re-inspect
// the raw text.
func parseOperand(raw string) operand {
	op := operand{mode: modeSimple, expr: raw}
	switch {
	case strings.HasPrefix(op.expr, "#"):
		op.mode = modeImmediate
		op.expr = op.expr[1:]
	case strings.HasPrefix(op.expr, "@"):
		op.mode = modeIndirect
		op.expr = op.expr[1:]
	}
	if strings.HasSuffix(op.expr, ",X") {
		op.indexed = true
		op.expr = strings.TrimSuffix(op.expr, ",X")
	}
	return op
}

type byteKind int

const (
	byteNumeric byteKind = iota
	byteChar
	byteHex
)

// byteLiteral classifies a BYTE operand: C'...' character, X'...' hex, or a
// bare decimal literal. body is the text between the quotes.
func byteLiteral(op string) (body string, kind byteKind, ok bool) {
	if len(op) >= 3 && op[1] == '\'' && op[len(op)-1] == '\'' {
		switch op[0] {
		case 'C':
			return op[2 : len(op)-1], byteChar, true
		case 'X':
			return op[2 : len(op)-1], byteHex, true
		}
	}
	if _, err := strconv.ParseUint(op, 10, 32); err != nil {
		return "", byteNumeric, false
	}
	return op, byteNumeric, true
}
