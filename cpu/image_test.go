package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageParser_Parse(t *testing.T) {
	assert := assert.New(t)

	text := `
; a comment
0000: 1a03
0002: 1902   # another comment
  0004 :4220
.equ START 0010
START: $(0x1000 | 0x0800 | 2 << 8 | 7)
0x0012: 0b1111111111111111
`

	records, err := ParseImage(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal([]Record{
		{0x0000, 0x1a03},
		{0x0002, 0x1902},
		{0x0004, 0x4220},
		{0x0010, 0x1a07},
		{0x0012, 0xffff},
	}, records)
}

func TestImageParser_Predefine(t *testing.T) {
	assert := assert.New(t)

	ip := &ImageParser{}
	ip.Predefine("BASE", "0100")

	records, err := ip.Parse(strings.NewReader("BASE: ffff\n$(BASE + 2): 0\n"))
	assert.NoError(err)
	assert.Equal([]Record{{0x100, 0xffff}, {0x102, 0}}, records)

	// Predefines survive a second parse; file equates do not.
	records, err = ip.Parse(strings.NewReader(".equ X 2\nX: BASE\n"))
	assert.NoError(err)
	assert.Equal([]Record{{0x2, 0x100}}, records)

	records, err = ip.Parse(strings.NewReader(".equ X 4\nX: BASE\n"))
	assert.NoError(err)
	assert.Equal([]Record{{0x4, 0x100}}, records)
}

func TestImageParser_Empty(t *testing.T) {
	assert := assert.New(t)

	records, err := ParseImage(strings.NewReader("; nothing here\n\n"))
	assert.NoError(err)
	assert.Empty(records)

	cpu := NewCpu()
	assert.ErrorIs(cpu.Load(records), ErrLoadEmpty)
}

func TestImageParser_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"no_colon", "0000: 0\n0002 1a03\n", 2, ErrRecordSyntax},
		{"equ_syntax", ".equ X\n", 1, ErrEquateSyntax},
		{"equ_duplicate", ".equ X 1\n.equ X 2\n", 2, ErrEquateDuplicate},
	}

	for _, entry := range table {
		_, err := ParseImage(strings.NewReader(entry.text))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestImageParser_BadNumbers(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{
		"zz: 0000",
		"0000: 10000",
		"0000: -1",
		"0000:",
	} {
		_, err := ParseImage(strings.NewReader(text))
		var number ErrParseNumber
		assert.True(errors.As(err, &number), text)
	}

	_, err := ParseImage(strings.NewReader("0000: $(1 +)"))
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))
	assert.Equal(ErrParseExpression("1 +"), expr)
}

func TestImageParser_AddressesNotChecked(t *testing.T) {
	assert := assert.New(t)

	records, err := ParseImage(strings.NewReader("0801: 1234\n"))
	require.NoError(t, err)

	cpu := NewCpu()
	err = cpu.Load(records)
	assert.ErrorIs(err, ErrAddressRange)
}

func TestWriteImage(t *testing.T) {
	assert := assert.New(t)

	records := []Record{{0x0000, 0x1a03}, {0x0002, 0xffff}, {0x07fe, 0x0000}}

	var buf bytes.Buffer
	assert.NoError(WriteImage(&buf, records))
	assert.Equal("0000: 1a03\n0002: ffff\n07fe: 0000\n", buf.String())

	parsed, err := ParseImage(&buf)
	assert.NoError(err)
	assert.Equal(records, parsed)
}
