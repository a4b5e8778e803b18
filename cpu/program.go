package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated word.
type Opcode struct {
	LineNo    int
	Address   uint16
	Words     []string
	Code      Code
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode assembled at addr, or nil.
func (prog *Program) Debug(addr uint16) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Address == addr {
			op = &prog.Opcodes[n]
		}
	}

	return
}

// Records returns the memory image of the program.
func (prog *Program) Records() (records []Record) {
	for addr, code := range prog.Codes() {
		records = append(records, Record{Address: addr, Word: uint16(code)})
	}

	return
}

func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}
