package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ImageParser reads the memory image text format.
//
//	; comment
//	.equ START 0010
//	0000: 1a03
//	START: $(0x1000 | 0x0800 | 2 << 8 | 7)
//
// Unprefixed numbers are hexadecimal.
type ImageParser struct {
	Verbose bool // If set, verbosely logs each record.
	expander
}

// ParseImage parses an image with a default ImageParser.
func ParseImage(input io.Reader) (records []Record, err error) {
	ip := &ImageParser{}
	return ip.Parse(input)
}

// word16 returns the value of a word that must fit in 16 bits.
func (ip *ImageParser) word16(word string) (value uint16, err error) {
	v, err := ip.valueOf(strings.TrimSpace(word))
	if err != nil {
		return
	}
	if v < 0 || v > 0xffff {
		err = ErrParseNumber(word)
		return
	}
	value = uint16(v)
	return
}

// Parse parses an input stream into image records.
// Addresses are not range checked here; see Memory.Load.
func (ip *ImageParser) Parse(input io.Reader) (records []Record, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ip.base = 16
	ip.reset(nil)

	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text := stripComment(line, ";#")
		if len(text) == 0 {
			continue
		}

		text, err = ip.expand(text)
		if err != nil {
			return
		}

		if strings.HasPrefix(text, ".equ") {
			err = ip.define(strings.Fields(text))
			if err != nil {
				return
			}
			continue
		}

		addr, word, ok := strings.Cut(text, ":")
		if !ok {
			err = ErrRecordSyntax
			return
		}

		var rec Record
		rec.Address, err = ip.word16(addr)
		if err != nil {
			return
		}
		rec.Word, err = ip.word16(word)
		if err != nil {
			return
		}

		if ip.Verbose {
			logrus.WithField("line", lineno).Infof("image: %04x: %04x", rec.Address, rec.Word)
		}

		records = append(records, rec)
	}

	err = scanner.Err()

	return
}

// WriteImage writes records in the image text format.
func WriteImage(w io.Writer, records []Record) (err error) {
	for _, rec := range records {
		_, err = fmt.Fprintf(w, "%04x: %04x\n", rec.Address, rec.Word)
		if err != nil {
			return
		}
	}

	return
}
