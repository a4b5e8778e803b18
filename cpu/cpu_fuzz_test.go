package cpu

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Every instruction word either executes or fails as an unknown instruction.
func TestCpu_AllWords(t *testing.T) {
	assert := assert.New(t)

	logger := logrus.New()
	logger.Out = io.Discard

	cpu := NewCpu()
	cpu.Log = logger

	for word := range 0x10000 {
		cpu.Reset()
		cpu.Pc = 0x100
		for n := range cpu.Register {
			cpu.Register[n] = uint16(n * 0x1111)
		}

		code := Code(word)
		err := cpu.Execute(code)
		if err != nil {
			assert.ErrorIs(err, ErrInstructionUnknown, "%04x", word)
			assert.Equal(uint16(0x100), cpu.Pc, "%04x", word)
			continue
		}

		// Valid words disassemble to a mnemonic.
		assert.NotContains(code.String(), ".word", "%04x", word)
	}
}

func FuzzCpu_Run(f *testing.F) {
	f.Add([]byte{0x1a, 0x03, 0x19, 0x02, 0x42, 0x44})
	f.Add([]byte{0x08, 0x00})
	f.Add([]byte{0x00, 0x0d, 0x03, 0x02, 0x00, 0x00})

	logger := logrus.New()
	logger.Out = io.Discard

	f.Fuzz(func(t *testing.T, data []byte) {
		var records []Record
		for n := 0; n+1 < len(data) && n < MEMORY_LIMIT; n += 2 {
			records = append(records, Record{
				Address: uint16(n),
				Word:    uint16(data[n])<<8 | uint16(data[n+1]),
			})
		}
		if len(records) == 0 {
			return
		}

		cpu := NewCpu()
		cpu.Log = logger
		if err := cpu.Load(records); err != nil {
			t.Fatal(err)
		}

		for range 1000 {
			done, err := cpu.Tick()
			if err != nil {
				assert.ErrorIs(t, err, ErrInstructionUnknown)
				return
			}
			if done {
				return
			}
		}
	})
}
