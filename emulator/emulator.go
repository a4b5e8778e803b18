// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"

	"github.com/ezrec/sim16/cpu"
)

// Emulator state. CPU + program listing + report output.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Output io.Writer // Destination of state reports.

	image []cpu.Record
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Output:  io.Discard,
	}

	emu.Cpu.Report = emu.nopReport

	return
}

// nopReport writes the state report requested by a NOP instruction.
func (emu *Emulator) nopReport(rep *cpu.Report) {
	err := WriteReport(emu.Output, rep)
	if err != nil {
		emu.Cpu.Log.WithError(err).Warn(f("emulator: report"))
	}
}

// Load resets the emulator and loads a memory image without a listing.
func (emu *Emulator) Load(records []cpu.Record) (err error) {
	emu.Program = &cpu.Program{}
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(records)
	if err != nil {
		emu.image = nil
		return
	}

	emu.image = records

	return
}

// Image returns the records of the loaded memory image.
func (emu *Emulator) Image() []cpu.Record {
	return emu.image
}

// LoadImage parses and loads a memory image.
func (emu *Emulator) LoadImage(input io.Reader) (err error) {
	ip := &cpu.ImageParser{Verbose: emu.Verbose}
	records, err := ip.Parse(input)
	if err != nil {
		return
	}

	return emu.Load(records)
}

// LoadProgram resets the emulator and loads an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	err = emu.Load(prog.Records())
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Assemble parses and loads an assembly language program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	return emu.LoadProgram(prog)
}

// Code returns the instruction word the next tick fetches.
func (emu *Emulator) Code() cpu.Code {
	if emu.Cpu.Pc >= cpu.MEMORY_LIMIT {
		return cpu.CODE_HALT
	}

	return cpu.Code(emu.Cpu.Memory.Data[emu.Cpu.Pc/2])
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, LineNo: lineno, Err: err}
		}
	}()

	return emu.Cpu.Tick()
}

// Dump writes the current state report to the output.
func (emu *Emulator) Dump() (err error) {
	return WriteReport(emu.Output, emu.Cpu.Snapshot())
}

// Run ticks the emulator until it halts, then writes the final state.
// A fatal error also writes the state, then returns the error.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			err = errors.Join(err, emu.Dump())
			return
		}
	}

	return emu.Dump()
}
