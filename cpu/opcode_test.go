package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Fields(t *testing.T) {
	assert := assert.New(t)

	code := Code(0b0100_1_101_011_110_01)
	assert.Equal(OP_ADD, code.Op())
	assert.True(code.Immediate())
	assert.Equal(5, code.Rd())
	assert.Equal(3, code.Rm())
	assert.Equal(6, code.Rn())
	assert.Equal(1, code.Selector())
	assert.Equal(uint16(0x79), code.Imm8())
	assert.Equal(uint16(0x1), code.Imm3())
}

func TestCode_Make(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		word uint16
	}){
		{"mov_imm", MakeCodeMovImm(2, 0x03), 0x1a03},
		{"mov", MakeCodeMov(1, 2), 0x1140},
		{"str", MakeCodeStore(1, 2), 0x2028},
		{"str_imm", MakeCodeStoreImm(3, 0x7f), 0x2b7f},
		{"ldr", MakeCodeLoad(4, 5), 0x34a0},
		{"add", MakeCodeAlu(OP_ADD, 2, 1, 0), 0x4220},
		{"sub", MakeCodeAlu(OP_SUB, 7, 7, 7), 0x57fc},
		{"not", MakeCodeNot(1, 1), 0x9120},
		{"shr", MakeCodeShift(OP_SHR, 0, 1), 0xb020},
		{"shl_imm", MakeCodeShiftImm(OP_SHL, 0, 1, 5), 0xc825},
		{"ror", MakeCodeRotate(OP_ROR, 1, 2), 0xd140},
		{"push", MakeCodePush(3), 0x000d},
		{"pop", MakeCodePop(3), 0x0302},
		{"cmp", MakeCodeCmp(1, 2), 0x002b},
		{"jmp_0", MakeCodeJump(JUMP_ALWAYS, 0), 0x0800},
		{"jeq_fwd", MakeCodeJump(JUMP_EQ, 4), 0x0811},
		{"jgt_back", MakeCodeJump(JUMP_GT, -2), 0x0ffb},
	}

	for _, entry := range table {
		assert.Equal(entry.word, uint16(entry.code), entry.name)
	}
}

func TestCode_Displacement(t *testing.T) {
	assert := assert.New(t)

	for disp := DISPLACEMENT_MIN; disp <= DISPLACEMENT_MAX; disp++ {
		for cond := JUMP_ALWAYS; cond <= JUMP_GT; cond++ {
			code := MakeCodeJump(cond, disp)
			assert.Equal(OP_CTRL, code.Op())
			assert.True(code.Immediate())
			assert.Equal(int(cond), code.Selector())
			assert.Equal(disp, code.Displacement())
		}
	}
}

func TestBranchTarget(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		pc     uint16
		disp   int
		target uint16 // PC after the cycle's +2
	}){
		{"self_at_zero", 0, 0, 0},
		{"self", 0x100, 0, 0x100},
		{"next", 0x100, 2, 0x102},
		{"forward_max", 0x100, DISPLACEMENT_MAX, 0x1ff},
		{"backward", 0x100, -4, 0xfc},
		{"backward_min", 0x100, DISPLACEMENT_MIN, 0x0},
		{"backward_wrap", 0x2, -4, 0xfffe},
	}

	for _, entry := range table {
		code := MakeCodeJump(JUMP_ALWAYS, entry.disp)
		assert.Equal(entry.target, BranchTarget(code, entry.pc)+2, entry.name)
	}

	// Jump to self at zero leaves PC two bytes before zero.
	assert.Equal(uint16(0xfffe), BranchTarget(MakeCodeJump(JUMP_ALWAYS, 0), 0))

	for pc := uint16(0); pc < MEMORY_LIMIT; pc += 2 {
		for disp := DISPLACEMENT_MIN; disp <= DISPLACEMENT_MAX; disp += 2 {
			code := MakeCodeJump(JUMP_EQ, disp)
			assert.Equal(uint16(int(pc)+disp), BranchTarget(code, pc)+2)
		}
	}
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{CODE_NOP, "nop"},
		{CODE_HALT, "halt"},
		{MakeCodeMovImm(2, 3), "mov r2, #0x03"},
		{MakeCodeMov(1, 2), "mov r1, r2"},
		{MakeCodeStore(1, 2), "str [r1], r2"},
		{MakeCodeStoreImm(3, 0x7f), "str [r3], #0x7f"},
		{MakeCodeLoad(4, 5), "ldr r4, [r5]"},
		{MakeCodeAlu(OP_EOR, 1, 2, 3), "eor r1, r2, r3"},
		{MakeCodeNot(1, 2), "not r1, r2"},
		{MakeCodeShift(OP_SHL, 1, 2), "shl r1, r2"},
		{MakeCodeShiftImm(OP_SHR, 1, 2, 7), "shr r1, r2, #7"},
		{MakeCodeRotate(OP_ROL, 1, 2), "rol r1, r2"},
		{MakeCodePush(5), "push r5"},
		{MakeCodePop(6), "pop r6"},
		{MakeCodeCmp(1, 2), "cmp r1, r2"},
		{MakeCodeJump(JUMP_LT, -8), "jlt #-8"},
		{Code(0x0004), ".word 0x0004"},
		{Code(0x3800), ".word 0x3800"},
		{Code(0x4800), ".word 0x4800"},
		{Code(0xf000), ".word 0xf000"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}

func TestCodeOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ctrl", OP_CTRL.String())
	assert.Equal("eor", OP_EOR.String())
	assert.Equal("halt", OP_HALT.String())
	assert.Equal("CodeOp(16)", CodeOp(16).String())
	assert.Equal("jgt", JUMP_GT.String())
	assert.Equal("push", CTRL_PUSH.String())
}
