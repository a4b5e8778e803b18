package cpu

import (
	"errors"

	"github.com/ezrec/sim16/translate"
)

var f = translate.From

var (
	// Load errors
	ErrLoadEmpty    = errors.New(f("no records to load"))
	ErrAddressRange = errors.New(f("address out of range"))
	ErrAddressAlign = errors.New(f("address misaligned"))

	// Cpu errors
	ErrStackEmpty         = errors.New(f("stack underflow"))
	ErrStackFull          = errors.New(f("stack overflow"))
	ErrInstructionUnknown = errors.New(f("unknown instruction"))

	// Instruction decode errors
	ErrOpcodeCtrl      = errors.New(f("ctrl"))
	ErrOpcodeImmediate = errors.New(f("immediate form"))
	ErrOpcodeSelector  = errors.New(f("selector"))
	ErrOpcodeReserved  = errors.New(f("reserved"))

	// Image and assembler errors
	ErrRecordSyntax       = errors.New(f("record syntax"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrWordSyntax         = errors.New(f(".word syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrMemoryInvalid      = errors.New(f("memory operand invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrTargetRange        = errors.New(f("jump target out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddress reports a memory address rejected by the loader or by a
// LOAD/STORE instruction.
type ErrAddress struct {
	Address uint16
	Err     error
}

func (err ErrAddress) Error() string {
	return f("address 0x%04x %v", err.Address, err.Err)
}

func (err ErrAddress) Unwrap() error {
	return err.Err
}

// ErrOpcode identifies the instruction word that failed to decode.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
