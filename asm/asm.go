/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

// Package asm implements a two-pass Z80 assembler: pass 1 lays out
// statements and collects labels, pass 2 encodes with the symbol
// table resolved. The output is a flat image plus the label table,
// address maps and a human-readable listing.
package asm

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Result is a finished assembly.
type Result struct {
	// Image is the byte image from address zero up to the high-water
	// mark of the program.
	Image []byte

	// Labels maps every label and EQU symbol to its value.
	Labels map[string]uint16

	// LineMap maps a statement's start address to its 1-based source
	// line, for breakpoints and source highlighting while stepping.
	LineMap map[uint16]int

	// LineAddr maps a source line to the address of its first
	// statement.
	LineAddr map[int]uint16

	// Listing is the per-line diagnostic dump:
	// "addr | bytes | line | source".
	Listing string
}

// Assembler holds the state of one Assemble call.
type Assembler struct {
	symbols map[string]int64
	strict  bool

	image     [0x10000]byte
	highWater int
}

// Assemble runs both passes over the source and returns the image and
// its metadata. The first error aborts assembly; no image is produced.
func Assemble(source string) (*Result, error) {
	a := &Assembler{symbols: make(map[string]int64)}
	lines := strings.Split(source, "\n")

	var stmts []*statement
	for i, line := range lines {
		ss, err := a.parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, ss...)
	}

	res := &Result{
		Labels:   make(map[string]uint16),
		LineMap:  make(map[uint16]int),
		LineAddr: make(map[int]uint16),
	}

	if err := a.pass1(stmts, res); err != nil {
		return nil, err
	}
	a.strict = true
	if err := a.pass2(stmts, res, lines); err != nil {
		return nil, err
	}

	for name, v := range a.symbols {
		res.Labels[name] = uint16(v)
	}
	res.Image = a.image[:a.highWater]
	return res, nil
}

// AssembleFile reads source through the given filesystem and
// assembles it.
func AssembleFile(fs afero.Fs, path string) (*Result, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Assemble(string(src))
}

func (a *Assembler) lookup(name string) (int64, bool) {
	v, ok := a.symbols[name]
	if !ok && !a.strict {
		// Pass 1 resolves unknown symbols to zero; their values never
		// change an instruction's length.
		return 0, true
	}
	return v, ok
}

func (a *Assembler) define(name string, v int64) {
	a.symbols[strings.ToUpper(name)] = v
}

// pass1 assigns every statement its address, collects labels and
// computes instruction lengths with tolerant symbol resolution.
func (a *Assembler) pass1(stmts []*statement, res *Result) error {
	addr := 0
	for _, st := range stmts {
		st.addr = uint16(addr)

		if st.label != "" && st.mnemonic != "EQU" {
			a.define(st.label, int64(addr))
		}
		if st.mnemonic == "" {
			continue
		}

		n, err := a.statementSize(st)
		if err != nil {
			return err
		}
		if st.mnemonic == "ORG" {
			v, err := a.evalOperand(&st.operands[0], st, true)
			if err != nil {
				return err
			}
			addr = int(v)
			continue
		}
		if n > 0 {
			if _, ok := res.LineAddr[st.line]; !ok {
				res.LineAddr[st.line] = st.addr
			}
			res.LineMap[st.addr] = st.line
		}
		addr += n
	}
	return nil
}

// statementSize computes the encoded length of a statement during
// pass 1.
func (a *Assembler) statementSize(st *statement) (int, error) {
	switch st.mnemonic {
	case "ORG", "EQU":
		if len(st.operands) != 1 {
			return 0, a.invalid(st)
		}
		if st.mnemonic == "EQU" {
			v, err := a.evalOperand(&st.operands[0], st, true)
			if err != nil {
				return 0, err
			}
			a.define(st.label, int64(v))
		}
		return 0, nil
	case "DB":
		n := 0
		for i := range st.operands {
			if st.operands[i].kind == opString {
				n += len(st.operands[i].str)
			} else {
				n++
			}
		}
		return n, nil
	case "DW":
		return 2 * len(st.operands), nil
	case "DS":
		if len(st.operands) != 1 {
			return 0, a.invalid(st)
		}
		v, err := a.evalOperand(&st.operands[0], st, true)
		return int(v), err
	}
	bs, err := a.encodeInstr(st, true)
	if err != nil {
		return 0, err
	}
	return len(bs), nil
}

// pass2 re-walks the statements with strict resolution, writes bytes
// at the recorded addresses and builds the listing.
func (a *Assembler) pass2(stmts []*statement, res *Result, lines []string) error {
	var listing strings.Builder

	for _, st := range stmts {
		bs, err := a.statementBytes(st)
		if err != nil {
			return err
		}
		if bs != nil {
			a.write(int(st.addr), bs)
		}
		if st.mnemonic == "" && st.label == "" {
			continue
		}

		src := st.raw
		if st.line-1 < len(lines) {
			src = strings.TrimSpace(lines[st.line-1])
		}
		fmt.Fprintf(&listing, "%04X | %-12s | %3d | %s\n",
			st.addr, hexBytes(bs), st.line, src)
	}

	res.Listing = listing.String()
	return nil
}

// statementBytes encodes one statement strictly. Directives that emit
// nothing return nil.
func (a *Assembler) statementBytes(st *statement) ([]byte, error) {
	switch st.mnemonic {
	case "":
		return nil, nil
	case "ORG":
		return nil, nil
	case "EQU":
		v, err := a.evalOperand(&st.operands[0], st, false)
		if err != nil {
			return nil, err
		}
		a.define(st.label, int64(v))
		return nil, nil
	case "DB":
		var bs []byte
		for i := range st.operands {
			o := &st.operands[i]
			if o.kind == opString {
				bs = append(bs, o.str...)
				continue
			}
			v, err := a.evalOperand(o, st, false)
			if err != nil {
				return nil, err
			}
			bs = append(bs, byte(v))
		}
		return bs, nil
	case "DW":
		var bs []byte
		for i := range st.operands {
			v, err := a.evalOperand(&st.operands[i], st, false)
			if err != nil {
				return nil, err
			}
			bs = append(bs, byte(v), byte(v>>8))
		}
		return bs, nil
	case "DS":
		v, err := a.evalOperand(&st.operands[0], st, false)
		if err != nil {
			return nil, err
		}
		return make([]byte, v), nil
	}
	return a.encodeInstr(st, false)
}

func (a *Assembler) write(addr int, bs []byte) {
	for i, b := range bs {
		a.image[(addr+i)&0xFFFF] = b
	}
	if end := addr + len(bs); end > a.highWater {
		if end > len(a.image) {
			end = len(a.image)
		}
		a.highWater = end
	}
}

func hexBytes(bs []byte) string {
	var sb strings.Builder
	for i, b := range bs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
