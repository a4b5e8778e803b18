// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Assembler is a single pass assembler for the 16-bit machine, with a
// final link of jump labels.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label map[string]uint16 // Map of jump labels to addresses.
	expander

	pc uint16 // Address of the next generated word.
}

// aluMap maps three register ALU opcode names.
var aluMap = map[string]CodeOp{
	"add": OP_ADD,
	"sub": OP_SUB,
	"mul": OP_MUL,
	"and": OP_AND,
	"orr": OP_ORR,
	"or":  OP_ORR,
	"eor": OP_EOR,
	"xor": OP_EOR,
}

// unaryMap maps two register opcode names.
var unaryMap = map[string]CodeOp{
	"not": OP_NOT,
	"ror": OP_ROR,
	"rol": OP_ROL,
}

// shiftMap maps shift opcode names.
var shiftMap = map[string]CodeOp{
	"shr": OP_SHR,
	"shl": OP_SHL,
}

// jumpMap maps jump opcode names.
var jumpMap = map[string]CodeJump{
	"jmp": JUMP_ALWAYS,
	"jeq": JUMP_EQ,
	"jlt": JUMP_LT,
	"jgt": JUMP_GT,
}

// register returns the register index of a word, resolving equates.
func (asm *Assembler) register(word string) (reg int, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	word = strings.ToLower(word)
	if len(word) != 2 || word[0] != 'r' || word[1] < '0' || word[1] > '7' {
		err = ErrRegisterInvalid
		return
	}

	reg = int(word[1] - '0')
	return
}

// memory returns the register index of a [rX] memory operand.
func (asm *Assembler) memory(word string) (reg int, err error) {
	if len(word) < 3 || word[0] != '[' || word[len(word)-1] != ']' {
		err = ErrMemoryInvalid
		return
	}

	return asm.register(word[1 : len(word)-1])
}

// isImmediate returns true if a word is a #value operand.
func isImmediate(word string) bool {
	return strings.HasPrefix(word, "#")
}

// immediate returns the value of a #value operand within [min, max].
func (asm *Assembler) immediate(word string, min, max int64) (value int64, err error) {
	if !isImmediate(word) {
		err = ErrImmediateRange
		return
	}

	value, err = asm.valueOf(word[1:])
	if err != nil {
		return
	}

	if value < min || value > max {
		err = ErrImmediateRange
		return
	}

	return
}

// registers decodes a list of register operands.
func (asm *Assembler) registers(words []string) (regs []int, err error) {
	for _, word := range words {
		var reg int
		reg, err = asm.register(word)
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}
	return
}

// operands checks the operand count of an instruction.
func operands(words []string, min, max int) (err error) {
	switch {
	case len(words)-1 < min:
		err = ErrOpcodeMissing
	case len(words)-1 > max:
		err = ErrOpcodeExtraArgs
	}
	return
}

// splitWords splits a line on spaces and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint16, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.pc = 0
	asm.base = 10
	asm.reset(map[string]string{"LINENO": "0", "PC": "0"})

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithField("line", lineno).Info(line)
		}

		text := stripComment(line, ";")
		if len(text) == 0 {
			continue
		}

		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
		asm.Equate["PC"] = fmt.Sprintf("%#x", asm.pc)

		text, err = asm.expand(text)
		if err != nil {
			return
		}

		err = asm.parseWords(splitWords(text), lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		disp := int(target) - int(op.Address)
		if disp < DISPLACEMENT_MIN || disp > DISPLACEMENT_MAX {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrTargetRange
			return
		}
		op.Code = MakeCodeJump(CodeJump(op.Code.Selector()), disp)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.pc
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	var code Code
	var label string

	mnemonic := strings.ToLower(words[0])

	switch mnemonic {
	case ".equ":
		err = asm.define(words)
		return
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr int64
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if addr < 0 || addr > 0xffff {
			err = ErrOrgSyntax
			return
		}
		asm.pc = uint16(addr)
		return
	case ".word":
		if len(words) != 2 {
			err = ErrWordSyntax
			return
		}
		var value int64
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < -0x8000 || value > 0xffff {
			err = ErrImmediateRange
			return
		}
		code = Code(uint16(value))
	case "nop", "halt":
		err = operands(words, 0, 0)
		if err != nil {
			return
		}
		code = CODE_NOP
		if mnemonic == "halt" {
			code = CODE_HALT
		}
	case "mov":
		err = operands(words, 2, 2)
		if err != nil {
			return
		}
		var rd int
		rd, err = asm.register(words[1])
		if err != nil {
			return
		}
		if isImmediate(words[2]) {
			var imm int64
			imm, err = asm.immediate(words[2], 0, 0xff)
			if err != nil {
				return
			}
			code = MakeCodeMovImm(rd, uint8(imm))
		} else {
			var rm int
			rm, err = asm.register(words[2])
			if err != nil {
				return
			}
			code = MakeCodeMov(rd, rm)
		}
	case "str":
		err = operands(words, 2, 2)
		if err != nil {
			return
		}
		var ra int
		ra, err = asm.memory(words[1])
		if err != nil {
			return
		}
		if isImmediate(words[2]) {
			var imm int64
			imm, err = asm.immediate(words[2], 0, 0xff)
			if err != nil {
				return
			}
			code = MakeCodeStoreImm(ra, uint8(imm))
		} else {
			var rn int
			rn, err = asm.register(words[2])
			if err != nil {
				return
			}
			code = MakeCodeStore(ra, rn)
		}
	case "ldr":
		err = operands(words, 2, 2)
		if err != nil {
			return
		}
		var rd, rm int
		rd, err = asm.register(words[1])
		if err != nil {
			return
		}
		rm, err = asm.memory(words[2])
		if err != nil {
			return
		}
		code = MakeCodeLoad(rd, rm)
	case "push", "pop":
		err = operands(words, 1, 1)
		if err != nil {
			return
		}
		var reg int
		reg, err = asm.register(words[1])
		if err != nil {
			return
		}
		code = MakeCodePush(reg)
		if mnemonic == "pop" {
			code = MakeCodePop(reg)
		}
	case "cmp":
		err = operands(words, 2, 2)
		if err != nil {
			return
		}
		var regs []int
		regs, err = asm.registers(words[1:])
		if err != nil {
			return
		}
		code = MakeCodeCmp(regs[0], regs[1])
	default:
		switch {
		case aluMap[mnemonic] != OP_CTRL:
			err = operands(words, 3, 3)
			if err != nil {
				return
			}
			var regs []int
			regs, err = asm.registers(words[1:])
			if err != nil {
				return
			}
			code = MakeCodeAlu(aluMap[mnemonic], regs[0], regs[1], regs[2])
		case unaryMap[mnemonic] != OP_CTRL:
			err = operands(words, 2, 2)
			if err != nil {
				return
			}
			var regs []int
			regs, err = asm.registers(words[1:])
			if err != nil {
				return
			}
			op := unaryMap[mnemonic]
			if op == OP_NOT {
				code = MakeCodeNot(regs[0], regs[1])
			} else {
				code = MakeCodeRotate(op, regs[0], regs[1])
			}
		case shiftMap[mnemonic] != OP_CTRL:
			err = operands(words, 2, 3)
			if err != nil {
				return
			}
			var regs []int
			regs, err = asm.registers(words[1:3])
			if err != nil {
				return
			}
			op := shiftMap[mnemonic]
			if len(words) == 4 {
				var amount int64
				amount, err = asm.immediate(words[3], 0, 7)
				if err != nil {
					return
				}
				code = MakeCodeShiftImm(op, regs[0], regs[1], uint8(amount))
			} else {
				code = MakeCodeShift(op, regs[0], regs[1])
			}
		default:
			cond, ok := jumpMap[mnemonic]
			if !ok {
				err = ErrInstructionInvalid
				return
			}
			err = operands(words, 1, 1)
			if err != nil {
				return
			}
			if isImmediate(words[1]) {
				var disp int64
				disp, err = asm.immediate(words[1], DISPLACEMENT_MIN, DISPLACEMENT_MAX)
				if err != nil {
					return
				}
				code = MakeCodeJump(cond, int(disp))
			} else {
				code = MakeCodeJump(cond, 0)
				label = words[1]
			}
		}
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:    lineno,
		Address:   asm.pc,
		Words:     words,
		Code:      code,
		LinkLabel: label,
	})
	asm.pc += 2

	return
}
