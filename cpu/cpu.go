package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	REGISTER_COUNT = 8 // General purpose registers r0-r7.
)

// Cpu is the architectural state of the machine and its execution cycle.
type Cpu struct {
	Verbose bool               // Set to log every executed instruction.
	Log     logrus.FieldLogger // Destination of traces and recoverable faults.

	Register [REGISTER_COUNT]uint16 // Register bank.
	Pc       uint16                 // Program counter, a byte address.
	Ir       uint16                 // Most recently fetched non-halt instruction.
	Flags    Flags                  // Condition flags.
	Memory   Memory                 // Program and data memory.
	Stack    Stack                  // Stack simulation, owns SP.
	Halted   bool                   // Set when execution has stopped.

	Ticks  int // Instructions executed since reset.
	Faults int // Recoverable faults since reset.

	// Report, if set, receives a state snapshot on every NOP.
	Report func(report *Report)
}

// NewCpu creates a reset CPU that tracks touched memory and stack cells.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Log: logrus.StandardLogger(),
	}
	cpu.Memory.Touched = &[MEMORY_WORDS]bool{}
	cpu.Stack.Touched = &[STACK_DEPTH]bool{}

	cpu.Reset()

	return
}

// Reset the CPU state.
// - Fills memory with the halt word.
// - Clears the registers, flags and stack.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Ir = 0
	cpu.Flags = Flags{}
	cpu.Memory.Reset()
	cpu.Stack.Reset()
	cpu.Halted = false
	cpu.Ticks = 0
	cpu.Faults = 0
}

// Load resets the CPU and loads a memory image.
func (cpu *Cpu) Load(records []Record) (err error) {
	cpu.Reset()

	err = cpu.Memory.Load(records)
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.Log.WithField("records", len(records)).Info(f("cpu: loaded"))
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X\n", fmt.Sprintf("r%d", n), val)
	}
	text += fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %04X %v\n", "ir", cpu.Ir, Code(cpu.Ir))
	text += fmt.Sprintf("% 5s: %04X\n", "sp", cpu.Stack.Sp)
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)

	return
}

// Tick performs a single step of the execution cycle.
//
// A halt word at PC executes a final HALT; a PC past the end of memory
// stops without one. Otherwise the word at PC is fetched into IR,
// executed, and PC advances by 2. A fatal error leaves PC at the
// failing instruction.
func (cpu *Cpu) Tick() (done bool, err error) {
	if cpu.Halted {
		done = true
		return
	}

	if cpu.Pc >= MEMORY_LIMIT {
		if cpu.Verbose {
			cpu.Log.WithField("pc", fmt.Sprintf("%04x", cpu.Pc)).Info(f("cpu: pc out of range"))
		}
		cpu.Halted = true
		done = true
		return
	}

	code := Code(cpu.Memory.Data[cpu.Pc/2])
	if code == CODE_HALT {
		err = cpu.Execute(code)
		done = true
		return
	}

	cpu.Ir = uint16(code)
	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Pc += 2
	cpu.Ticks++

	return
}

// Run ticks the CPU until it halts or fails.
func (cpu *Cpu) Run() (err error) {
	for done := false; !done; {
		done, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// fault records a recoverable fault; execution continues.
func (cpu *Cpu) fault(err error, fields logrus.Fields) {
	cpu.Faults++
	fields["pc"] = fmt.Sprintf("%04x", cpu.Pc)
	fields["ir"] = fmt.Sprintf("%04x", cpu.Ir)
	cpu.Log.WithFields(fields).WithError(err).Warn(f("cpu: fault"))
}

// alu stores the result of op into rd and replaces the flags.
func (cpu *Cpu) alu(op CodeOp, rd int, a, b uint16) {
	result := Alu(op, a, b)
	cpu.Register[rd] = result
	cpu.Flags = ComputeFlags(result, a, b, op)
}

// jumpTaken evaluates a jump condition against the flags.
func (cpu *Cpu) jumpTaken(cond CodeJump) (taken bool) {
	fl := cpu.Flags
	switch cond {
	case JUMP_ALWAYS:
		taken = true
	case JUMP_EQ:
		taken = fl.Zero && !fl.Sign
	case JUMP_LT:
		taken = fl.Sign && !fl.Zero
	case JUMP_GT:
		taken = !fl.Zero && !fl.Sign
	}
	return
}

// Execute executes a single instruction word at the current PC.
// It does not advance PC; taken jumps leave PC two bytes short of
// their target.
//
// The only errors returned are unknown instruction errors, which are
// fatal to the program.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), ErrInstructionUnknown, err)
		}
	}()

	if cpu.Verbose {
		cpu.Log.WithFields(logrus.Fields{
			"pc": fmt.Sprintf("%04x", cpu.Pc),
			"ir": fmt.Sprintf("%04x", uint16(code)),
		}).Info(code.String())
	}

	reg := &cpu.Register
	rd, rm, rn := code.Rd(), code.Rm(), code.Rn()
	imm := code.Immediate()

	switch op := code.Op(); op {
	case OP_CTRL:
		if imm {
			if cpu.jumpTaken(CodeJump(code.Selector())) {
				cpu.Pc = BranchTarget(code, cpu.Pc)
			}
			return
		}
		switch CodeCtrl(code.Selector()) {
		case CTRL_NOP:
			if code != CODE_NOP {
				err = errors.Join(ErrOpcodeCtrl, ErrOpcodeSelector)
				return
			}
			if cpu.Report != nil {
				cpu.Report(cpu.Snapshot())
			}
		case CTRL_PUSH:
			perr := cpu.Stack.Push(reg[rn])
			if perr != nil {
				cpu.fault(perr, logrus.Fields{"sp": fmt.Sprintf("%04x", cpu.Stack.Sp)})
			}
		case CTRL_POP:
			value, perr := cpu.Stack.Pop()
			if perr != nil {
				cpu.fault(perr, logrus.Fields{"sp": fmt.Sprintf("%04x", cpu.Stack.Sp)})
			}
			reg[rd] = value
		case CTRL_CMP:
			a, b := reg[rm], reg[rn]
			cpu.Flags = ComputeFlags(Alu(OP_SUB, a, b), a, b, OP_SUB)
		}
	case OP_MOV:
		if imm {
			reg[rd] = code.Imm8()
		} else {
			reg[rd] = reg[rm]
		}
	case OP_STR:
		addr, value := reg[rm], reg[rn]
		if imm {
			addr, value = reg[rd], code.Imm8()
		}
		werr := cpu.Memory.Write(addr, value)
		if werr != nil {
			cpu.fault(werr, logrus.Fields{"addr": fmt.Sprintf("%04x", addr)})
		}
	case OP_LDR:
		if imm {
			err = ErrOpcodeImmediate
			return
		}
		addr := reg[rm]
		value, rerr := cpu.Memory.Read(addr)
		if rerr != nil {
			cpu.fault(rerr, logrus.Fields{"addr": fmt.Sprintf("%04x", addr)})
			return
		}
		reg[rd] = value
	case OP_ADD, OP_SUB, OP_MUL, OP_AND, OP_ORR, OP_EOR:
		if imm {
			err = ErrOpcodeImmediate
			return
		}
		cpu.alu(op, rd, reg[rm], reg[rn])
	case OP_NOT, OP_ROR, OP_ROL:
		if imm {
			err = ErrOpcodeImmediate
			return
		}
		cpu.alu(op, rd, reg[rm], 0)
	case OP_SHR, OP_SHL:
		amount := uint16(1)
		if imm {
			amount = code.Imm3()
		}
		cpu.alu(op, rd, reg[rm], amount)
	case OP_HALT:
		if code != CODE_HALT {
			err = ErrOpcodeReserved
			return
		}
		if cpu.Verbose {
			cpu.Log.WithField("pc", fmt.Sprintf("%04x", cpu.Pc)).Info(f("cpu: halt"))
		}
		cpu.Halted = true
	default:
		err = ErrOpcodeReserved
	}

	return
}
