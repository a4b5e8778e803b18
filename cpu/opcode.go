package cpu

import (
	"fmt"
)

// CodeOp is the 4-bit opcode in bits 15-12 of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp,CodeJump,CodeCtrl -output=opcode_string.go
const (
	OP_CTRL = CodeOp(0x0) // ctrl
	OP_MOV  = CodeOp(0x1) // mov
	OP_STR  = CodeOp(0x2) // str
	OP_LDR  = CodeOp(0x3) // ldr
	OP_ADD  = CodeOp(0x4) // add
	OP_SUB  = CodeOp(0x5) // sub
	OP_MUL  = CodeOp(0x6) // mul
	OP_AND  = CodeOp(0x7) // and
	OP_ORR  = CodeOp(0x8) // orr
	OP_NOT  = CodeOp(0x9) // not
	OP_EOR  = CodeOp(0xa) // eor
	OP_SHR  = CodeOp(0xb) // shr
	OP_SHL  = CodeOp(0xc) // shl
	OP_ROR  = CodeOp(0xd) // ror
	OP_ROL  = CodeOp(0xe) // rol
	OP_HALT = CodeOp(0xf) // halt
)

// CodeJump is the selector of an immediate control-transfer word.
type CodeJump int

const (
	JUMP_ALWAYS = CodeJump(0) // jmp
	JUMP_EQ     = CodeJump(1) // jeq
	JUMP_LT     = CodeJump(2) // jlt
	JUMP_GT     = CodeJump(3) // jgt
)

// CodeCtrl is the selector of a register control word.
type CodeCtrl int

const (
	CTRL_NOP  = CodeCtrl(0) // nop
	CTRL_PUSH = CodeCtrl(1) // push
	CTRL_POP  = CodeCtrl(2) // pop
	CTRL_CMP  = CodeCtrl(3) // cmp
)

const (
	CODE_NOP  = Code(0x0000) // No-op, also requests a state report.
	CODE_HALT = Code(0xffff) // Halt sentinel and memory fill value.

	CODE_IMMEDIATE = Code(1 << 11) // Immediate form flag.

	DISPLACEMENT_MIN = -256 // Smallest jump displacement, in bytes.
	DISPLACEMENT_MAX = 255  // Largest jump displacement, in bytes.
)

// Code is a single 16-bit instruction word.
//
//	15-12 opcode
//	11    immediate flag
//	10-8  rd
//	7-5   rm
//	4-2   rn
//
// Immediate control words pack a 9-bit displacement in bits 10-2, and
// both control forms carry their selector in bits 1-0.
type Code uint16

// Op returns the opcode.
func (code Code) Op() CodeOp {
	return CodeOp((code >> 12) & 0xf)
}

// Immediate returns true if the immediate flag is set.
func (code Code) Immediate() bool {
	return (code & CODE_IMMEDIATE) != 0
}

// Rd returns the destination register field.
func (code Code) Rd() int {
	return int((code >> 8) & 0x7)
}

// Rm returns the first source register field.
func (code Code) Rm() int {
	return int((code >> 5) & 0x7)
}

// Rn returns the second source register field.
func (code Code) Rn() int {
	return int((code >> 2) & 0x7)
}

// Selector returns the 2-bit control selector.
func (code Code) Selector() int {
	return int(code & 0x3)
}

// Imm8 returns the zero-extended 8-bit immediate.
func (code Code) Imm8() uint16 {
	return uint16(code & 0xff)
}

// Imm3 returns the 3-bit shift amount.
func (code Code) Imm3() uint16 {
	return uint16(code & 0x7)
}

// Displacement returns the sign-extended 9-bit jump displacement.
func (code Code) Displacement() int {
	disp := int((code >> 2) & 0x1ff)
	if disp&0x100 != 0 {
		disp -= 0x200
	}
	return disp
}

// BranchTarget returns the PC a taken control transfer at pc must leave
// behind. The execution cycle adds 2 after every instruction, so the
// returned value is two bytes short of pc+displacement; a displacement
// of 0 executes the same instruction again.
func BranchTarget(code Code, pc uint16) uint16 {
	return pc + uint16(code.Displacement()) - 2
}

func makeCode(op CodeOp, imm bool, rd, rm, rn int) Code {
	code := Code(op&0xf) << 12
	if imm {
		code |= CODE_IMMEDIATE
	}
	code |= Code(rd&0x7) << 8
	code |= Code(rm&0x7) << 5
	code |= Code(rn&0x7) << 2
	return code
}

// MakeCodeMov creates a register move: rd := rm.
func MakeCodeMov(rd, rm int) Code {
	return makeCode(OP_MOV, false, rd, rm, 0)
}

// MakeCodeMovImm creates an immediate move: rd := imm.
func MakeCodeMovImm(rd int, imm uint8) Code {
	return makeCode(OP_MOV, true, rd, 0, 0) | Code(imm)
}

// MakeCodeStore creates a register store: memory[rm] := rn.
func MakeCodeStore(rm, rn int) Code {
	return makeCode(OP_STR, false, 0, rm, rn)
}

// MakeCodeStoreImm creates an immediate store: memory[rd] := imm.
func MakeCodeStoreImm(rd int, imm uint8) Code {
	return makeCode(OP_STR, true, rd, 0, 0) | Code(imm)
}

// MakeCodeLoad creates a load: rd := memory[rm].
func MakeCodeLoad(rd, rm int) Code {
	return makeCode(OP_LDR, false, rd, rm, 0)
}

// MakeCodeAlu creates a three register ALU operation: rd := rm op rn.
func MakeCodeAlu(op CodeOp, rd, rm, rn int) Code {
	return makeCode(op, false, rd, rm, rn)
}

// MakeCodeNot creates a complement: rd := ^rm.
func MakeCodeNot(rd, rm int) Code {
	return makeCode(OP_NOT, false, rd, rm, 0)
}

// MakeCodeShift creates a single bit shift of rm into rd.
func MakeCodeShift(op CodeOp, rd, rm int) Code {
	return makeCode(op, false, rd, rm, 0)
}

// MakeCodeShiftImm creates a shift of rm into rd by 0-7 bits.
func MakeCodeShiftImm(op CodeOp, rd, rm int, amount uint8) Code {
	return makeCode(op, true, rd, rm, 0) | Code(amount&0x7)
}

// MakeCodeRotate creates a single bit rotate of rm into rd.
func MakeCodeRotate(op CodeOp, rd, rm int) Code {
	return makeCode(op, false, rd, rm, 0)
}

// MakeCodeJump creates a control transfer with a byte displacement.
func MakeCodeJump(cond CodeJump, disp int) Code {
	return makeCode(OP_CTRL, true, 0, 0, 0) | (Code(disp&0x1ff) << 2) | Code(cond&0x3)
}

// MakeCodePush creates a push of rn.
func MakeCodePush(rn int) Code {
	return makeCode(OP_CTRL, false, 0, 0, rn) | Code(CTRL_PUSH)
}

// MakeCodePop creates a pop into rd.
func MakeCodePop(rd int) Code {
	return makeCode(OP_CTRL, false, rd, 0, 0) | Code(CTRL_POP)
}

// MakeCodeCmp creates a compare of rm against rn.
func MakeCodeCmp(rm, rn int) Code {
	return makeCode(OP_CTRL, false, 0, rm, rn) | Code(CTRL_CMP)
}

// String returns the assembly language representation of this instruction.
// Words that do not decode are shown as a data word.
func (code Code) String() (out string) {
	word := fmt.Sprintf(".word 0x%04x", uint16(code))

	op := code.Op()
	rd, rm, rn := code.Rd(), code.Rm(), code.Rn()

	switch op {
	case OP_CTRL:
		if code.Immediate() {
			return fmt.Sprintf("%v #%d", CodeJump(code.Selector()), code.Displacement())
		}
		switch CodeCtrl(code.Selector()) {
		case CTRL_NOP:
			if code == CODE_NOP {
				return CTRL_NOP.String()
			}
		case CTRL_PUSH:
			return fmt.Sprintf("%v r%d", CTRL_PUSH, rn)
		case CTRL_POP:
			return fmt.Sprintf("%v r%d", CTRL_POP, rd)
		case CTRL_CMP:
			return fmt.Sprintf("%v r%d, r%d", CTRL_CMP, rm, rn)
		}
	case OP_MOV:
		if code.Immediate() {
			return fmt.Sprintf("%v r%d, #0x%02x", op, rd, code.Imm8())
		}
		return fmt.Sprintf("%v r%d, r%d", op, rd, rm)
	case OP_STR:
		if code.Immediate() {
			return fmt.Sprintf("%v [r%d], #0x%02x", op, rd, code.Imm8())
		}
		return fmt.Sprintf("%v [r%d], r%d", op, rm, rn)
	case OP_LDR:
		if !code.Immediate() {
			return fmt.Sprintf("%v r%d, [r%d]", op, rd, rm)
		}
	case OP_ADD, OP_SUB, OP_MUL, OP_AND, OP_ORR, OP_EOR:
		if !code.Immediate() {
			return fmt.Sprintf("%v r%d, r%d, r%d", op, rd, rm, rn)
		}
	case OP_NOT, OP_ROR, OP_ROL:
		if !code.Immediate() {
			return fmt.Sprintf("%v r%d, r%d", op, rd, rm)
		}
	case OP_SHR, OP_SHL:
		if code.Immediate() {
			return fmt.Sprintf("%v r%d, r%d, #%d", op, rd, rm, code.Imm3())
		}
		return fmt.Sprintf("%v r%d, r%d", op, rd, rm)
	case OP_HALT:
		if code == CODE_HALT {
			return op.String()
		}
	}

	return word
}
