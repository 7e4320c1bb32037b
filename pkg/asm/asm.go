package asm

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Assembler carries the state of one assembly run: the location counter and
// symbol table built by pass 1 and the base register value set by the BASE
// directive during pass 2.
type Assembler struct {
	symbols map[string]uint32
	locctr  uint32
	start   uint32
	base    uint32
	errs    []error
}

func New() *Assembler {
	return &Assembler{symbols: make(map[string]uint32)}
}

// Result is the outcome of one run. Records keep program order; Object is
// the concatenation of every record payload that encoded successfully. A run
// with a non-empty Errs is a failed run even though Object holds the
// best-effort remainder: a failed record leaves a hole in the image.
type Result struct {
	Records []Record
	Symbols map[string]uint32
	Object  []byte
	Start   uint32
	Errs    []error
}

// Assemble runs both passes over source with a fresh Assembler.
func Assemble(source string) (*Result, error) {
	return New().Assemble(source)
}

// Assemble translates source into its object image. Pass 1 completes over
// every line before pass 2 starts, so labels may be used before they are
// declared. Failures are local to one record: both passes finish over the
// whole file, and the returned error joins every record failure.
func (a *Assembler) Assemble(source string) (*Result, error) {
	lines := strings.Split(source, "\n")

	records := a.pass1(lines)
	object := a.pass2(records)

	res := &Result{
		Records: records,
		Symbols: a.symbols,
		Object:  object,
		Start:   a.start,
		Errs:    a.errs,
	}
	return res, errors.Join(a.errs...)
}

// reportf records a per-record failure without stopping the pass.
func (a *Assembler) reportf(format string, args ...any) {
	a.errs = append(a.errs, fmt.Errorf(format, args...))
}

// WriteSymbols prints the symbol table built by pass 1, ordered by address.
func (r *Result) WriteSymbols(w io.Writer) {
	names := make([]string, 0, len(r.Symbols))
	for name := range r.Symbols {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Symbols[names[i]] != r.Symbols[names[j]] {
			return r.Symbols[names[i]] < r.Symbols[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Fprintln(w, "Symbol Table:")
	for _, name := range names {
		fmt.Fprintf(w, "%s  :  %05X\n", name, r.Symbols[name])
	}
}

// WriteListing prints one line per record: resolved address, label,
// operation, operand and encoded bytes. Reservation directives show their
// count instead of the zero fill.
func (r *Result) WriteListing(w io.Writer) {
	for _, rec := range r.Records {
		if rec.Comment {
			continue
		}
		addr := "     "
		if rec.Addressed {
			addr = fmt.Sprintf("%05X", rec.Address)
		}
		code := fmt.Sprintf("%X", rec.Bytes)
		if rec.Operation == "RESB" || rec.Operation == "RESW" {
			code = rec.Operand
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", addr, rec.Label, rec.Operation, rec.Operand, code)
	}
}

// ObjectFileName derives the object image path from the source path by
// replacing its extension with .exe.
func ObjectFileName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".exe"
}
