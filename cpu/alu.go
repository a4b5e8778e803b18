package cpu

import (
	"math/bits"
)

// Flags are the condition outputs of the ALU.
type Flags struct {
	Zero     bool
	Sign     bool
	Carry    bool
	Overflow bool
}

// String returns the flags as "ZSCV", with '-' for each clear flag.
func (fl Flags) String() string {
	out := []byte("----")
	for n, set := range []bool{fl.Zero, fl.Sign, fl.Carry, fl.Overflow} {
		if set {
			out[n] = "ZSCV"[n]
		}
	}
	return string(out)
}

func sign(value uint16) bool {
	return (value & 0x8000) != 0
}

// ComputeFlags derives the flags of an operation from its result and operands.
//
//   - add: Carry on unsigned overflow, Overflow on signed overflow.
//   - sub: Carry when a >= b (no borrow), Overflow on signed overflow.
//   - mul: Carry and Overflow both set when the product exceeds 16 bits.
//   - all others: Carry and Overflow clear.
func ComputeFlags(result, a, b uint16, op CodeOp) (fl Flags) {
	fl.Zero = result == 0
	fl.Sign = sign(result)

	switch op {
	case OP_ADD:
		fl.Carry = uint32(a)+uint32(b) > 0xffff
		fl.Overflow = sign(a) == sign(b) && sign(result) != sign(a)
	case OP_SUB:
		fl.Carry = a >= b
		fl.Overflow = sign(a) != sign(b) && sign(result) != sign(a)
	case OP_MUL:
		wide := uint32(a)*uint32(b) > 0xffff
		fl.Carry = wide
		fl.Overflow = wide
	}

	return
}

// Alu returns the result of op applied to a and b.
// For shifts b is the shift amount; NOT and rotates ignore b.
func Alu(op CodeOp, a, b uint16) (result uint16) {
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a - b
	case OP_MUL:
		result = a * b
	case OP_AND:
		result = a & b
	case OP_ORR:
		result = a | b
	case OP_NOT:
		result = ^a
	case OP_EOR:
		result = a ^ b
	case OP_SHR:
		result = a >> b
	case OP_SHL:
		result = a << b
	case OP_ROR:
		result = bits.RotateLeft16(a, -1)
	case OP_ROL:
		result = bits.RotateLeft16(a, 1)
	}

	return
}
