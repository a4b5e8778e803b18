package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/sim16/internal"
)

// Cell is a touched memory or stack word.
type Cell struct {
	Address uint16 // Byte address for memory, SP value for the stack.
	Value   uint16
}

// Report is a snapshot of the architectural state.
type Report struct {
	Register [REGISTER_COUNT]uint16
	Pc       uint16
	Ir       uint16
	Sp       uint16
	Flags    Flags
	Halted   bool
	Ticks    int
	Faults   int

	Memory []Cell // Touched memory cells, by ascending address.
	Stack  []Cell // Touched stack cells, by ascending address.
}

// Snapshot captures the current state.
// Cell lists are empty when touch tracking is disabled.
func (cpu *Cpu) Snapshot() (rep *Report) {
	rep = &Report{
		Register: cpu.Register,
		Pc:       cpu.Pc,
		Ir:       cpu.Ir,
		Sp:       cpu.Stack.Sp,
		Flags:    cpu.Flags,
		Halted:   cpu.Halted,
		Ticks:    cpu.Ticks,
		Faults:   cpu.Faults,
	}

	if touched := cpu.Memory.Touched; touched != nil {
		for n, ok := range touched {
			if ok {
				rep.Memory = append(rep.Memory, Cell{Address: uint16(n * 2), Value: cpu.Memory.Data[n]})
			}
		}
	}

	if touched := cpu.Stack.Touched; touched != nil {
		for n := len(touched) - 1; n >= 0; n-- {
			if touched[n] {
				rep.Stack = append(rep.Stack, Cell{Address: StackAddress(n), Value: cpu.Stack.Data[n]})
			}
		}
	}

	return
}

// Cells returns all touched cells, memory first.
func (rep *Report) Cells() iter.Seq[Cell] {
	return internal.IterSeqConcat(slices.Values(rep.Memory), slices.Values(rep.Stack))
}
