package emulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/sim16/cpu"
)

// WriteReport renders a state report as text.
//
// Touched memory and stack cells are listed as image records.
func WriteReport(w io.Writer, rep *cpu.Report) (err error) {
	var text strings.Builder

	for n, val := range rep.Register {
		fmt.Fprintf(&text, "% 6s: %04X\n", fmt.Sprintf("r%d", n), val)
	}
	fmt.Fprintf(&text, "% 6s: %04X\n", "pc", rep.Pc)
	fmt.Fprintf(&text, "% 6s: %04X %v\n", "ir", rep.Ir, cpu.Code(rep.Ir))
	fmt.Fprintf(&text, "% 6s: %04X\n", "sp", rep.Sp)
	fmt.Fprintf(&text, "% 6s: %v\n", "flags", rep.Flags)
	fmt.Fprintf(&text, "% 6s: %v\n", "halted", rep.Halted)
	text.WriteString(f("ticks %d, faults %d\n", rep.Ticks, rep.Faults))

	text.WriteString(f("memory:\n"))
	for _, cell := range rep.Memory {
		fmt.Fprintf(&text, "%04x: %04x\n", cell.Address, cell.Value)
	}

	text.WriteString(f("stack:\n"))
	for _, cell := range rep.Stack {
		fmt.Fprintf(&text, "%04x: %04x\n", cell.Address, cell.Value)
	}

	_, err = io.WriteString(w, text.String())

	return
}
