package asm

// Instruction formats of the target ISA. Format 4 is the extended form of
// format 3, selected per use by a '+' prefix on the mnemonic, so the catalog
// carries three tags.
type instrFormat int

const (
	format1 instrFormat = iota + 1
	format2
	format3
)

type instruction struct {
	Opcode byte
	Format instrFormat
}

// instructions maps every mnemonic of the target ISA to its opcode value and
// format family. Consulted once per record.
var instructions = map[string]instruction{
	"ADD":    {0x18, format3},
	"ADDF":   {0x58, format3},
	"ADDR":   {0x90, format2},
	"AND":    {0x40, format3},
	"CLEAR":  {0xB4, format2},
	"COMP":   {0x28, format3},
	"COMPF":  {0x88, format3},
	"COMPR":  {0xA0, format2},
	"DIV":    {0x24, format3},
	"DIVF":   {0x64, format3},
	"DIVR":   {0x9C, format2},
	"FIX":    {0xC4, format1},
	"FLOAT":  {0xC0, format1},
	"HIO":    {0xF4, format1},
	"J":      {0x3C, format3},
	"JEQ":    {0x30, format3},
	"JGT":    {0x34, format3},
	"JLT":    {0x38, format3},
	"JSUB":   {0x48, format3},
	"LDA":    {0x00, format3},
	"LDB":    {0x68, format3},
	"LDCH":   {0x50, format3},
	"LDF":    {0x70, format3},
	"LDL":    {0x08, format3},
	"LDS":    {0x6C, format3},
	"LDT":    {0x74, format3},
	"LDX":    {0x04, format3},
	"LPS":    {0xD0, format3},
	"MUL":    {0x20, format3},
	"MULF":   {0x60, format3},
	"MULR":   {0x98, format2},
	"NORM":   {0xC8, format1},
	"OR":     {0x44, format3},
	"RD":     {0xD8, format3},
	"RMO":    {0xAC, format2},
	"RSUB":   {0x4C, format3},
	"SHIFTL": {0xA4, format2},
	"SHIFTR": {0xA8, format2},
	"SIO":    {0xF0, format1},
	"SSK":    {0xEC, format3},
	"STA":    {0x0C, format3},
	"STB":    {0x78, format3},
	"STCH":   {0x54, format3},
	"STF":    {0x80, format3},
	"STI":    {0xD4, format3},
	"STL":    {0x14, format3},
	"STS":    {0x7C, format3},
	"STSW":   {0xE8, format3},
	"STT":    {0x84, format3},
	"STX":    {0x10, format3},
	"SUB":    {0x1C, format3},
	"SUBF":   {0x5C, format3},
	"SUBR":   {0x94, format2},
	"SVC":    {0xB0, format2},
	"TD":     {0xE0, format3},
	"TIO":    {0xF8, format1},
	"TIX":    {0x2C, format3},
	"TIXR":   {0xB8, format2},
	"WD":     {0xDC, format3},
}

// registers maps register names to their 4-bit codes.
var registers = map[string]byte{
	"A":  0,
	"X":  1,
	"L":  2,
	"B":  3,
	"S":  4,
	"T":  5,
	"F":  6,
	"PC": 8,
	"SW": 9,
}
