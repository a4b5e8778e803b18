package emulator

import (
	"github.com/ezrec/sim16/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint16 // PC of the failing instruction.
	LineNo  int    // Source line, or 0 if the program has no listing.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%04x %v", err.Address, err.Err)
	}
	return f("line %d pc 0x%04x %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
