// Package cpu implements the 16-bit register machine and its assembler.
//
// The machine has eight 16-bit general-purpose registers (r0-r7), a
// program counter (PC), an instruction register (IR), 1024 words of
// memory addressed by even byte addresses below 2048, a 256-word stack
// growing down from 0x8200 (SP), and four condition flags (Zero, Sign,
// Carry, Overflow).
//
// Execution starts at PC 0 and runs until the PC reaches a halt word
// (0xffff), which is also the fill value of unloaded memory, or leaves
// the memory range.
//
// The image parser reads `ADDR: WORD` records, and the assembler
// translates mnemonics into the same records. Both support `.equ`
// constants and `$(...)` compile-time expressions.
package cpu
