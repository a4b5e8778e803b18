package emulator

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ezrec/sim16/translate"
)

// Monitor single-steps an emulator under control of a command stream.
//
//	<enter>, s   execute one instruction
//	c            continue to halt
//	r            print the state report
//	q            quit without running further
//
// The end of the command stream continues to halt.
type Monitor struct {
	*Emulator

	In     io.Reader // Command input.
	Out    io.Writer // Trace and report output.
	Prompt bool      // If set, prompts for each command.
}

// where prints the location and disassembly of the next instruction.
func (mon *Monitor) where() (err error) {
	emu := mon.Emulator
	_, err = translate.Fprint(mon.Out, "%04x: %04x %-20v line %d\n",
		emu.Cpu.Pc, uint16(emu.Code()), emu.Code(), emu.LineNo())
	return
}

// Run executes commands until the emulator halts or fails, or a quit
// command is read. On halt or failure the final state is written to the
// emulator output; quitting writes nothing.
func (mon *Monitor) Run() (err error) {
	emu := mon.Emulator
	scanner := bufio.NewScanner(mon.In)

	for !emu.Halted {
		err = mon.where()
		if err != nil {
			return
		}

		if mon.Prompt {
			_, err = io.WriteString(mon.Out, "> ")
			if err != nil {
				return
			}
		}

		command := "c"
		if scanner.Scan() {
			command = strings.TrimSpace(scanner.Text())
		}

		switch strings.ToLower(command) {
		case "", "s", "step":
			_, err = emu.Tick()
			if err != nil {
				err = errors.Join(err, emu.Dump())
				return
			}
		case "c", "continue":
			return emu.Run()
		case "r", "report":
			err = WriteReport(mon.Out, emu.Cpu.Snapshot())
			if err != nil {
				return
			}
		case "q", "quit":
			return
		default:
			_, err = translate.Fprint(mon.Out, "commands: <enter> step, c continue, r report, q quit\n")
			if err != nil {
				return
			}
		}
	}

	return emu.Dump()
}
