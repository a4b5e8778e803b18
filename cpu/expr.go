package cpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// expander resolves equates and $(...) expressions in source text.
type expander struct {
	Equate map[string]string // Map of equates.
	base   int               // Base of unprefixed numbers.

	predefine map[string]string
}

// Predefine defines an equate that is present at the start of every parse.
func (ex *expander) Predefine(equ string, value string) {
	if ex.predefine == nil {
		ex.predefine = map[string]string{equ: value}
	} else {
		ex.predefine[equ] = value
	}
}

// reset restores the equates to the system and predefined set.
func (ex *expander) reset(system map[string]string) {
	ex.Equate = make(map[string]string, len(system)+len(ex.predefine))
	for attr, val := range system {
		ex.Equate[attr] = val
	}
	for attr, val := range ex.predefine {
		ex.Equate[attr] = val
	}
}

// define adds a new equate.
func (ex *expander) define(words []string) (err error) {
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	_, ok := ex.Equate[words[1]]
	if ok {
		err = ErrEquateDuplicate
		return
	}
	ex.Equate[words[1]] = words[2]
	return
}

// valueOf returns the value of a number or integer equate.
func (ex *expander) valueOf(word string) (value int64, err error) {
	equate, ok := ex.Equate[word]
	if ok {
		word = equate
	}

	digits := strings.TrimPrefix(word, "-")
	base := ex.base
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXbBoO", rune(digits[1])) {
		base = 0
	}

	value, err = strconv.ParseInt(word, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// eval does compile-time $(...) evaluations with the integer equates in scope.
func (ex *expander) eval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ex.Equate {
		var v int64
		v, err = ex.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces every $(...) in line with its value as a hex literal.
func (ex *expander) expand(line string) (out string, err error) {
	out = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ex.eval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%#x", value)
	})
	return
}

// stripComment removes everything from the first comment marker.
func stripComment(line string, markers string) string {
	if n := strings.IndexAny(line, markers); n >= 0 {
		line = line[:n]
	}
	return strings.TrimSpace(line)
}
