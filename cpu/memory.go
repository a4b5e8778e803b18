package cpu

const (
	MEMORY_WORDS = 1024             // Words of memory.
	MEMORY_LIMIT = MEMORY_WORDS * 2 // First invalid byte address.
)

// Record is a single address/word pair of a memory image.
type Record struct {
	Address uint16 // Even byte address.
	Word    uint16 // Word stored at the address.
}

// Memory is the word-addressed program and data store.
type Memory struct {
	Data    [MEMORY_WORDS]uint16
	Touched *[MEMORY_WORDS]bool // Cells written since reset. Nil to disable.
}

// CheckAddress returns an ErrAddress if addr is odd or out of range.
func CheckAddress(addr uint16) (err error) {
	switch {
	case addr >= MEMORY_LIMIT:
		err = ErrAddress{Address: addr, Err: ErrAddressRange}
	case addr&1 != 0:
		err = ErrAddress{Address: addr, Err: ErrAddressAlign}
	}
	return
}

// Reset fills memory with the halt word and clears the touched map.
func (mem *Memory) Reset() {
	for n := range mem.Data {
		mem.Data[n] = uint16(CODE_HALT)
	}
	if mem.Touched != nil {
		clear(mem.Touched[:])
	}
}

// Load resets memory and stores every record.
// The first invalid record fails the whole load, leaving memory unchanged.
func (mem *Memory) Load(records []Record) (err error) {
	if len(records) == 0 {
		err = ErrLoadEmpty
		return
	}

	for _, rec := range records {
		err = CheckAddress(rec.Address)
		if err != nil {
			return
		}
	}

	mem.Reset()
	for _, rec := range records {
		mem.store(rec.Address, rec.Word)
	}

	return
}

// Read returns the word at a byte address.
func (mem *Memory) Read(addr uint16) (value uint16, err error) {
	err = CheckAddress(addr)
	if err != nil {
		return
	}

	value = mem.Data[addr/2]
	return
}

// Write stores a word at a byte address.
func (mem *Memory) Write(addr uint16, value uint16) (err error) {
	err = CheckAddress(addr)
	if err != nil {
		return
	}

	mem.store(addr, value)
	return
}

func (mem *Memory) store(addr uint16, value uint16) {
	mem.Data[addr/2] = value
	if mem.Touched != nil {
		mem.Touched[addr/2] = true
	}
}
