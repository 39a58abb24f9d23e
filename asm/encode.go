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

package asm

// mnemonics is the full instruction and directive surface. Membership
// decides whether a colon fragment is a statement or a label.
var mnemonics = map[string]bool{}

func init() {
	for _, m := range []string{
		"LD", "PUSH", "POP", "EX", "EXX",
		"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP",
		"INC", "DEC", "NEG", "DAA", "CPL", "SCF", "CCF",
		"RLCA", "RRCA", "RLA", "RRA",
		"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SRL",
		"BIT", "SET", "RES", "RRD", "RLD",
		"JP", "JR", "DJNZ", "CALL", "RET", "RETI", "RETN", "RST",
		"IN", "OUT", "IM", "EI", "DI", "HALT", "NOP",
		"LDI", "LDIR", "LDD", "LDDR", "CPI", "CPIR", "CPD", "CPDR",
		"INI", "INIR", "IND", "INDR", "OUTI", "OTIR", "OUTD", "OTDR",
		"ORG", "EQU", "DB", "DW", "DS",
	} {
		mnemonics[m] = true
	}
}

var noOperand = map[string][]byte{
	"NOP": {0x00}, "HALT": {0x76}, "DI": {0xF3}, "EI": {0xFB},
	"EXX": {0xD9}, "DAA": {0x27}, "CPL": {0x2F}, "SCF": {0x37}, "CCF": {0x3F},
	"RLCA": {0x07}, "RRCA": {0x0F}, "RLA": {0x17}, "RRA": {0x1F},
	"NEG": {0xED, 0x44}, "RETI": {0xED, 0x4D}, "RETN": {0xED, 0x45},
	"RRD": {0xED, 0x67}, "RLD": {0xED, 0x6F},
	"LDI": {0xED, 0xA0}, "LDIR": {0xED, 0xB0}, "LDD": {0xED, 0xA8}, "LDDR": {0xED, 0xB8},
	"CPI": {0xED, 0xA1}, "CPIR": {0xED, 0xB1}, "CPD": {0xED, 0xA9}, "CPDR": {0xED, 0xB9},
	"INI": {0xED, 0xA2}, "INIR": {0xED, 0xB2}, "IND": {0xED, 0xAA}, "INDR": {0xED, 0xBA},
	"OUTI": {0xED, 0xA3}, "OTIR": {0xED, 0xB3}, "OUTD": {0xED, 0xAB}, "OTDR": {0xED, 0xBB},
}

var aluSelect = map[string]byte{
	"ADD": 0, "ADC": 1, "SUB": 2, "SBC": 3,
	"AND": 4, "XOR": 5, "OR": 6, "CP": 7,
}

var shiftSelect = map[string]byte{
	"RLC": 0, "RRC": 1, "RL": 2, "RR": 3,
	"SLA": 4, "SRA": 5, "SRL": 7,
}

// evalByte resolves an expression to its low byte. In tolerant mode
// (pass 1) unresolved symbols read as zero; symbol values never
// change an instruction's length.
func (a *Assembler) evalByte(e *expr, st *statement, tolerant bool) (byte, error) {
	v, err := a.evalWord(e, st, tolerant)
	return byte(v), err
}

func (a *Assembler) evalWord(e *expr, st *statement, tolerant bool) (uint16, error) {
	v, ok, missing := e.eval(a.lookup)
	if !ok {
		if tolerant {
			return 0, nil
		}
		return 0, &UndefinedLabelError{Name: missing, Line: st.line}
	}
	return uint16(v), nil
}

// evalOperand evaluates an operand in a pure expression position,
// where identifiers shadowed by register names mean the symbol.
func (a *Assembler) evalOperand(o *operand, st *statement, tolerant bool) (uint16, error) {
	e, ok := o.asExpr()
	if !ok {
		return 0, a.invalid(st)
	}
	return a.evalWord(e, st, tolerant)
}

func (o *operand) pairIndex() (byte, byte, bool) {
	if o.kind != opReg16 {
		return 0, 0, false
	}
	switch o.reg {
	case regBC:
		return 0, 0, true
	case regDE:
		return 1, 0, true
	case regHL:
		return 2, 0, true
	case regIX:
		return 2, 0xDD, true
	case regIY:
		return 2, 0xFD, true
	case regSP:
		return 3, 0, true
	}
	return 0, 0, false
}

func (o *operand) indexed() (byte, bool) {
	switch o.kind {
	case opIndIX:
		return 0xDD, true
	case opIndIY:
		return 0xFD, true
	}
	return 0, false
}

func (a *Assembler) invalid(st *statement) error {
	return &InvalidOperandsError{Mnemonic: st.mnemonic, Operands: st.raw, Line: st.line}
}

// encodeInstr produces the byte encoding of one instruction at its
// recorded address. Pass 1 calls it in tolerant mode for lengths;
// pass 2 calls it strict and keeps the bytes.
func (a *Assembler) encodeInstr(st *statement, tolerant bool) ([]byte, error) {
	if bs, ok := noOperand[st.mnemonic]; ok {
		if len(st.operands) != 0 {
			return nil, a.invalid(st)
		}
		return bs, nil
	}

	switch st.mnemonic {
	case "LD":
		return a.encodeLD(st, tolerant)
	case "ADD", "ADC", "SBC":
		if len(st.operands) == 2 && st.operands[0].kind == opReg16 {
			return a.encodeArith16(st)
		}
		return a.encodeALU8(st, tolerant)
	case "SUB", "AND", "XOR", "OR", "CP":
		return a.encodeALU8(st, tolerant)
	case "INC", "DEC":
		return a.encodeIncDec(st, tolerant)
	case "PUSH", "POP":
		return a.encodePushPop(st)
	case "EX":
		return a.encodeEX(st)
	case "JP":
		return a.encodeJP(st, tolerant)
	case "JR":
		return a.encodeJR(st, tolerant, 0x18, 0x20)
	case "DJNZ":
		return a.encodeJR(st, tolerant, 0x10, 0)
	case "CALL":
		return a.encodeCallRet(st, tolerant, 0xCD, 0xC4)
	case "RET":
		if len(st.operands) == 0 {
			return []byte{0xC9}, nil
		}
		if cc, ok := st.operands[0].asCond(); ok && len(st.operands) == 1 {
			return []byte{0xC0 | cc<<3}, nil
		}
		return nil, a.invalid(st)
	case "RST":
		if len(st.operands) != 1 {
			return nil, a.invalid(st)
		}
		t, err := a.evalOperand(&st.operands[0], st, tolerant)
		if err != nil {
			return nil, err
		}
		if t&^0x38 != 0 {
			return nil, a.invalid(st)
		}
		return []byte{0xC7 | byte(t)}, nil
	case "RLC", "RRC", "RL", "RR", "SLA", "SRA", "SRL":
		return a.encodeShift(st, tolerant)
	case "BIT", "SET", "RES":
		return a.encodeBit(st, tolerant)
	case "IN":
		return a.encodeIN(st, tolerant)
	case "OUT":
		return a.encodeOUT(st, tolerant)
	case "IM":
		if len(st.operands) != 1 {
			return nil, a.invalid(st)
		}
		m, err := a.evalOperand(&st.operands[0], st, tolerant)
		if err != nil {
			return nil, err
		}
		switch m {
		case 0:
			return []byte{0xED, 0x46}, nil
		case 1:
			return []byte{0xED, 0x56}, nil
		case 2:
			return []byte{0xED, 0x5E}, nil
		}
		return nil, a.invalid(st)
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeLD(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 2 {
		return nil, a.invalid(st)
	}
	dst, src := &st.operands[0], &st.operands[1]

	// Interrupt vector and refresh register moves.
	if dst.isReg(regI) && src.isReg(regA) {
		return []byte{0xED, 0x47}, nil
	}
	if dst.isReg(regR) && src.isReg(regA) {
		return []byte{0xED, 0x4F}, nil
	}
	if dst.isReg(regA) && src.isReg(regI) {
		return []byte{0xED, 0x57}, nil
	}
	if dst.isReg(regA) && src.isReg(regR) {
		return []byte{0xED, 0x5F}, nil
	}

	// Accumulator through register-pair pointers.
	if dst.isReg(regA) && src.kind == opIndReg {
		switch src.reg {
		case regBC:
			return []byte{0x0A}, nil
		case regDE:
			return []byte{0x1A}, nil
		}
	}
	if src.isReg(regA) && dst.kind == opIndReg {
		switch dst.reg {
		case regBC:
			return []byte{0x02}, nil
		case regDE:
			return []byte{0x12}, nil
		}
	}

	// Direct-address forms.
	if dst.kind == opInd {
		nn, err := a.evalWord(&dst.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		lo, hi := byte(nn), byte(nn>>8)
		if src.isReg(regA) {
			return []byte{0x32, lo, hi}, nil
		}
		if src.kind == opReg16 {
			switch src.reg {
			case regHL:
				return []byte{0x22, lo, hi}, nil
			case regIX:
				return []byte{0xDD, 0x22, lo, hi}, nil
			case regIY:
				return []byte{0xFD, 0x22, lo, hi}, nil
			case regBC:
				return []byte{0xED, 0x43, lo, hi}, nil
			case regDE:
				return []byte{0xED, 0x53, lo, hi}, nil
			case regSP:
				return []byte{0xED, 0x73, lo, hi}, nil
			}
		}
		return nil, a.invalid(st)
	}
	if src.kind == opInd {
		nn, err := a.evalWord(&src.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		lo, hi := byte(nn), byte(nn>>8)
		if dst.isReg(regA) {
			return []byte{0x3A, lo, hi}, nil
		}
		if dst.kind == opReg16 {
			switch dst.reg {
			case regHL:
				return []byte{0x2A, lo, hi}, nil
			case regIX:
				return []byte{0xDD, 0x2A, lo, hi}, nil
			case regIY:
				return []byte{0xFD, 0x2A, lo, hi}, nil
			case regBC:
				return []byte{0xED, 0x4B, lo, hi}, nil
			case regDE:
				return []byte{0xED, 0x5B, lo, hi}, nil
			case regSP:
				return []byte{0xED, 0x7B, lo, hi}, nil
			}
		}
		return nil, a.invalid(st)
	}

	// Stack pointer from HL/IX/IY.
	if dst.isReg(regSP) && src.kind == opReg16 {
		switch src.reg {
		case regHL:
			return []byte{0xF9}, nil
		case regIX:
			return []byte{0xDD, 0xF9}, nil
		case regIY:
			return []byte{0xFD, 0xF9}, nil
		}
	}

	// 16-bit immediate loads.
	if dst.kind == opReg16 && src.kind == opImm {
		rp, pfx, ok := dst.pairIndex()
		if !ok {
			return nil, a.invalid(st)
		}
		nn, err := a.evalWord(&src.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		bs := []byte{0x01 | rp<<4, byte(nn), byte(nn >> 8)}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}

	// Indexed memory.
	if pfx, ok := dst.indexed(); ok {
		d, err := a.evalByte(&dst.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		if r, rpfx, ok := src.reg8Index(); ok && rpfx == 0 && r != byte(regIndHL) {
			return []byte{pfx, 0x70 | r, d}, nil
		}
		if src.kind == opImm {
			n, err := a.evalByte(&src.expr, st, tolerant)
			if err != nil {
				return nil, err
			}
			return []byte{pfx, 0x36, d, n}, nil
		}
		return nil, a.invalid(st)
	}
	if pfx, ok := src.indexed(); ok {
		d, err := a.evalByte(&src.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		if r, rpfx, ok := dst.reg8Index(); ok && rpfx == 0 && r != byte(regIndHL) {
			return []byte{pfx, 0x46 | r<<3, d}, nil
		}
		return nil, a.invalid(st)
	}

	// 8-bit immediate loads.
	if src.kind == opImm {
		r, pfx, ok := dst.reg8Index()
		if !ok {
			return nil, a.invalid(st)
		}
		n, err := a.evalByte(&src.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		bs := []byte{0x06 | r<<3, n}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}

	// Register to register.
	rd, pd, okd := dst.reg8Index()
	rs, ps, oks := src.reg8Index()
	if okd && oks {
		if rd == byte(regIndHL) && rs == byte(regIndHL) {
			return nil, a.invalid(st)
		}
		if pd != 0 && ps != 0 && pd != ps {
			return nil, a.invalid(st)
		}
		pfx := pd | ps
		// An index half cannot pair with plain H or L.
		if pfx != 0 {
			if pd == 0 && (rd == byte(regH) || rd == byte(regL)) {
				return nil, a.invalid(st)
			}
			if ps == 0 && (rs == byte(regH) || rs == byte(regL)) {
				return nil, a.invalid(st)
			}
		}
		bs := []byte{0x40 | rd<<3 | rs}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}
	return nil, a.invalid(st)
}

// encodeALU8 handles the accumulator arithmetic group in both the
// one-operand form (SUB B) and the A-first form (SUB A,B).
func (a *Assembler) encodeALU8(st *statement, tolerant bool) ([]byte, error) {
	sel := aluSelect[st.mnemonic]
	ops := st.operands
	if len(ops) == 2 && ops[0].isReg(regA) {
		ops = ops[1:]
	}
	if len(ops) != 1 {
		return nil, a.invalid(st)
	}
	o := &ops[0]

	if pfx, ok := o.indexed(); ok {
		d, err := a.evalByte(&o.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{pfx, 0x86 | sel<<3, d}, nil
	}
	if r, pfx, ok := o.reg8Index(); ok {
		bs := []byte{0x80 | sel<<3 | r}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}
	if o.kind == opImm {
		n, err := a.evalByte(&o.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{0xC6 | sel<<3, n}, nil
	}
	return nil, a.invalid(st)
}

// encodeArith16 handles ADD HL,rp and the ED-prefixed ADC/SBC HL,rp,
// plus ADD IX,rp / ADD IY,rp.
func (a *Assembler) encodeArith16(st *statement) ([]byte, error) {
	dst, src := &st.operands[0], &st.operands[1]
	rp, spfx, ok := src.pairIndex()
	if !ok {
		return nil, a.invalid(st)
	}

	switch st.mnemonic {
	case "ADD":
		_, dpfx, ok := dst.pairIndex()
		if !ok || dst.reg == regBC || dst.reg == regDE || dst.reg == regSP {
			return nil, a.invalid(st)
		}
		// The HL slot of the source follows the destination's index
		// register: ADD IX,IX is fine, ADD IX,HL is not.
		if src.reg == regHL || src.reg == regIX || src.reg == regIY {
			if spfx != dpfx {
				return nil, a.invalid(st)
			}
		}
		bs := []byte{0x09 | rp<<4}
		if dpfx != 0 {
			bs = append([]byte{dpfx}, bs...)
		}
		return bs, nil
	case "ADC", "SBC":
		if !dst.isReg(regHL) || spfx != 0 {
			return nil, a.invalid(st)
		}
		op := byte(0x4A)
		if st.mnemonic == "SBC" {
			op = 0x42
		}
		return []byte{0xED, op | rp<<4}, nil
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeIncDec(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 1 {
		return nil, a.invalid(st)
	}
	o := &st.operands[0]
	dec := st.mnemonic == "DEC"

	if pfx, ok := o.indexed(); ok {
		d, err := a.evalByte(&o.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		op := byte(0x34)
		if dec {
			op = 0x35
		}
		return []byte{pfx, op, d}, nil
	}
	if o.kind == opReg16 {
		rp, pfx, ok := o.pairIndex()
		if !ok {
			return nil, a.invalid(st)
		}
		op := byte(0x03)
		if dec {
			op = 0x0B
		}
		bs := []byte{op | rp<<4}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}
	if r, pfx, ok := o.reg8Index(); ok {
		op := byte(0x04)
		if dec {
			op = 0x05
		}
		bs := []byte{op | r<<3}
		if pfx != 0 {
			bs = append([]byte{pfx}, bs...)
		}
		return bs, nil
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodePushPop(st *statement) ([]byte, error) {
	if len(st.operands) != 1 || st.operands[0].kind != opReg16 {
		return nil, a.invalid(st)
	}
	op := byte(0xC5)
	if st.mnemonic == "POP" {
		op = 0xC1
	}
	switch st.operands[0].reg {
	case regBC:
		return []byte{op}, nil
	case regDE:
		return []byte{op | 1<<4}, nil
	case regHL:
		return []byte{op | 2<<4}, nil
	case regAF:
		return []byte{op | 3<<4}, nil
	case regIX:
		return []byte{0xDD, op | 2<<4}, nil
	case regIY:
		return []byte{0xFD, op | 2<<4}, nil
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeEX(st *statement) ([]byte, error) {
	if len(st.operands) != 2 {
		return nil, a.invalid(st)
	}
	dst, src := &st.operands[0], &st.operands[1]
	switch {
	case dst.isReg(regAF) && src.isReg(regAFShadow):
		return []byte{0x08}, nil
	case dst.isReg(regDE) && src.isReg(regHL):
		return []byte{0xEB}, nil
	case dst.isIndReg(regSP):
		switch src.reg {
		case regHL:
			return []byte{0xE3}, nil
		case regIX:
			return []byte{0xDD, 0xE3}, nil
		case regIY:
			return []byte{0xFD, 0xE3}, nil
		}
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeJP(st *statement, tolerant bool) ([]byte, error) {
	switch len(st.operands) {
	case 1:
		o := &st.operands[0]
		if o.isIndReg(regHL) {
			return []byte{0xE9}, nil
		}
		if pfx, ok := o.indexed(); ok {
			if d, err := a.evalWord(&o.expr, st, true); err != nil || d != 0 {
				return nil, a.invalid(st)
			}
			return []byte{pfx, 0xE9}, nil
		}
		if e, ok := o.asExpr(); ok {
			nn, err := a.evalWord(e, st, tolerant)
			if err != nil {
				return nil, err
			}
			return []byte{0xC3, byte(nn), byte(nn >> 8)}, nil
		}
	case 2:
		cc, ok := st.operands[0].asCond()
		e, okT := st.operands[1].asExpr()
		if !ok || !okT {
			return nil, a.invalid(st)
		}
		nn, err := a.evalWord(e, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{0xC2 | cc<<3, byte(nn), byte(nn >> 8)}, nil
	}
	return nil, a.invalid(st)
}

// encodeJR covers JR, JR cc and DJNZ. The offset is relative to the
// byte following the two-byte instruction and must fit a signed byte.
func (a *Assembler) encodeJR(st *statement, tolerant bool, plain, withCond byte) ([]byte, error) {
	var (
		op   = plain
		texp *expr
	)
	switch len(st.operands) {
	case 1:
		e, ok := st.operands[0].asExpr()
		if !ok {
			return nil, a.invalid(st)
		}
		texp = e
	case 2:
		cc, ok := st.operands[0].asCond()
		e, okT := st.operands[1].asExpr()
		if withCond == 0 || !ok || cc > 3 || !okT {
			return nil, a.invalid(st)
		}
		op = withCond | cc<<3
		texp = e
	default:
		return nil, a.invalid(st)
	}

	target, err := a.evalWord(texp, st, tolerant)
	if err != nil {
		return nil, err
	}
	if tolerant {
		return []byte{op, 0}, nil
	}
	offset := int(target) - (int(st.addr) + 2)
	if offset < -128 || offset > 127 {
		return nil, &OutOfRangeRelativeError{Offset: offset, Line: st.line}
	}
	return []byte{op, byte(int8(offset))}, nil
}

func (a *Assembler) encodeCallRet(st *statement, tolerant bool, plain, withCond byte) ([]byte, error) {
	var (
		op   = plain
		texp *expr
	)
	switch len(st.operands) {
	case 1:
		e, ok := st.operands[0].asExpr()
		if !ok {
			return nil, a.invalid(st)
		}
		texp = e
	case 2:
		cc, ok := st.operands[0].asCond()
		e, okT := st.operands[1].asExpr()
		if !ok || !okT {
			return nil, a.invalid(st)
		}
		op = withCond | cc<<3
		texp = e
	default:
		return nil, a.invalid(st)
	}
	nn, err := a.evalWord(texp, st, tolerant)
	if err != nil {
		return nil, err
	}
	return []byte{op, byte(nn), byte(nn >> 8)}, nil
}

func (a *Assembler) encodeShift(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 1 {
		return nil, a.invalid(st)
	}
	sel := shiftSelect[st.mnemonic]
	o := &st.operands[0]

	if pfx, ok := o.indexed(); ok {
		d, err := a.evalByte(&o.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{pfx, 0xCB, d, sel<<3 | byte(regIndHL)}, nil
	}
	if r, rpfx, ok := o.reg8Index(); ok && rpfx == 0 {
		return []byte{0xCB, sel<<3 | r}, nil
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeBit(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 2 || st.operands[0].kind != opImm {
		return nil, a.invalid(st)
	}
	b, err := a.evalWord(&st.operands[0].expr, st, tolerant)
	if err != nil {
		return nil, err
	}
	if b > 7 {
		return nil, a.invalid(st)
	}
	var base byte
	switch st.mnemonic {
	case "BIT":
		base = 0x40
	case "RES":
		base = 0x80
	default:
		base = 0xC0
	}
	o := &st.operands[1]

	if pfx, ok := o.indexed(); ok {
		d, err := a.evalByte(&o.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{pfx, 0xCB, d, base | byte(b)<<3 | byte(regIndHL)}, nil
	}
	if r, rpfx, ok := o.reg8Index(); ok && rpfx == 0 {
		return []byte{0xCB, base | byte(b)<<3 | r}, nil
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeIN(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 2 {
		return nil, a.invalid(st)
	}
	dst, src := &st.operands[0], &st.operands[1]

	if dst.isReg(regA) && src.kind == opInd {
		n, err := a.evalByte(&src.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{0xDB, n}, nil
	}
	if src.isIndReg(regC) {
		if r, pfx, ok := dst.reg8Index(); ok && pfx == 0 && r != byte(regIndHL) {
			return []byte{0xED, 0x40 | r<<3}, nil
		}
	}
	return nil, a.invalid(st)
}

func (a *Assembler) encodeOUT(st *statement, tolerant bool) ([]byte, error) {
	if len(st.operands) != 2 {
		return nil, a.invalid(st)
	}
	dst, src := &st.operands[0], &st.operands[1]

	if dst.kind == opInd && src.isReg(regA) {
		n, err := a.evalByte(&dst.expr, st, tolerant)
		if err != nil {
			return nil, err
		}
		return []byte{0xD3, n}, nil
	}
	if dst.isIndReg(regC) {
		if r, pfx, ok := src.reg8Index(); ok && pfx == 0 && r != byte(regIndHL) {
			return []byte{0xED, 0x41 | r<<3}, nil
		}
	}
	return nil, a.invalid(st)
}
