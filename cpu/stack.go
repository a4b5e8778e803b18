package cpu

const (
	STACK_DEPTH = 256    // Maximum stack depth, in words.
	STACK_BASE  = 0x8200 // SP of the empty stack.
)

// Stack is a fixed depth stack growing down from STACK_BASE.
// The top of the stack is Data[Depth()-1].
type Stack struct {
	Sp      uint16
	Data    [STACK_DEPTH]uint16
	Touched *[STACK_DEPTH]bool // Cells written since reset. Nil to disable.
}

// Depth returns the number of words on the stack.
func (s *Stack) Depth() int {
	return (STACK_BASE - int(s.Sp)) / 2
}

func (s *Stack) Empty() bool {
	return s.Sp >= STACK_BASE
}

func (s *Stack) Full() bool {
	return s.Depth() >= STACK_DEPTH
}

// Push decrements SP, then writes value at the new top.
func (s *Stack) Push(value uint16) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}

	s.Sp -= 2
	index := s.Depth() - 1
	s.Data[index] = value
	if s.Touched != nil {
		s.Touched[index] = true
	}

	return
}

// Pop reads the top value, then increments SP.
func (s *Stack) Pop() (value uint16, err error) {
	value, err = s.Peek()
	if err != nil {
		return
	}

	s.Sp += 2
	return
}

func (s *Stack) Peek() (value uint16, err error) {
	if s.Empty() {
		err = ErrStackEmpty
		return
	}

	value = s.Data[s.Depth()-1]
	return
}

// Reset empties and zeros the stack.
func (s *Stack) Reset() {
	s.Sp = STACK_BASE
	clear(s.Data[:])
	if s.Touched != nil {
		clear(s.Touched[:])
	}
}

// StackAddress returns the SP value at which index is the top of the stack.
func StackAddress(index int) uint16 {
	return uint16(STACK_BASE - 2*(index+1))
}
