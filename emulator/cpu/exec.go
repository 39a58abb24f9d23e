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

package cpu

import "fmt"

// execute dispatches one main-page opcode. The index prefix, if any,
// has already been absorbed.
func (p *CPU) execute(op byte) error {
	// The two regular quadrants first: LD r,r' and the ALU group
	// decode algorithmically.
	if op != 0x76 && op&0xC0 == 0x40 { // LD r,r'
		dst, src := (op>>3)&7, op&7
		hp := dst != 6 && src != 6
		p.setReg8(dst, hp, p.getReg8(src, hp))
		return nil
	}
	if op&0xC0 == 0x80 { // ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r
		p.aluOp((op>>3)&7, p.getReg8(op&7, true))
		return nil
	}

	switch op {
	case 0x00: // NOP

	case 0x01, 0x11, 0x21, 0x31: // LD rp,nn
		p.setPair16(op>>4, p.fetchWord())

	case 0x02: // LD (BC),A
		p.writeByte(p.BC(), p.A)
	case 0x12: // LD (DE),A
		p.writeByte(p.DE(), p.A)
	case 0x22: // LD (nn),HL
		p.writeWord(p.fetchWord(), p.indexReg())
	case 0x32: // LD (nn),A
		p.writeByte(p.fetchWord(), p.A)

	case 0x0A: // LD A,(BC)
		p.A = p.readByte(p.BC())
	case 0x1A: // LD A,(DE)
		p.A = p.readByte(p.DE())
	case 0x2A: // LD HL,(nn)
		p.setIndexReg(p.readWord(p.fetchWord()))
	case 0x3A: // LD A,(nn)
		p.A = p.readByte(p.fetchWord())

	case 0x03, 0x13, 0x23, 0x33: // INC rp
		idx := op >> 4
		p.setPair16(idx, p.getPair16(idx)+1)
	case 0x0B, 0x1B, 0x2B, 0x3B: // DEC rp
		idx := op >> 4
		p.setPair16(idx, p.getPair16(idx)-1)

	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x3C: // INC r
		idx := (op >> 3) & 7
		p.setReg8(idx, true, p.inc8(p.getReg8(idx, true)))
	case 0x34: // INC (HL)
		addr := p.addrHL()
		p.writeByte(addr, p.inc8(p.readByte(addr)))

	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x3D: // DEC r
		idx := (op >> 3) & 7
		p.setReg8(idx, true, p.dec8(p.getReg8(idx, true)))
	case 0x35: // DEC (HL)
		addr := p.addrHL()
		p.writeByte(addr, p.dec8(p.readByte(addr)))

	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x3E: // LD r,n
		p.setReg8((op>>3)&7, true, p.fetchByte())
	case 0x36: // LD (HL),n
		// The displacement byte precedes the immediate.
		addr := p.addrHL()
		p.writeByte(addr, p.fetchByte())

	case 0x07:
		p.rlca()
	case 0x0F:
		p.rrca()
	case 0x17:
		p.rla()
	case 0x1F:
		p.rra()

	case 0x08: // EX AF,AF'
		p.ExAF()
	case 0xD9: // EXX
		p.Exx()
	case 0xEB: // EX DE,HL (not affected by index prefix)
		d, h := p.DE(), p.HL()
		p.SetDE(h)
		p.SetHL(d)
	case 0xE3: // EX (SP),HL
		tmp := p.readWord(p.SP)
		p.writeWord(p.SP, p.indexReg())
		p.setIndexReg(tmp)

	case 0x09, 0x19, 0x29, 0x39: // ADD HL,rp
		p.setIndexReg(p.add16(p.indexReg(), p.getPair16(op>>4)))

	case 0x10: // DJNZ e
		e := int8(p.fetchByte())
		p.B--
		if p.B != 0 {
			p.PC += uint16(int16(e))
		}
	case 0x18: // JR e
		e := int8(p.fetchByte())
		p.PC += uint16(int16(e))
	case 0x20, 0x28, 0x30, 0x38: // JR cc,e
		e := int8(p.fetchByte())
		if p.condition((op >> 3) & 3) {
			p.PC += uint16(int16(e))
		}

	case 0x27:
		p.daa()
	case 0x2F: // CPL
		p.A = ^p.A
		p.F |= FlagH | FlagN
	case 0x37: // SCF
		p.F = p.F&(FlagS|FlagZ|FlagP) | FlagC
	case 0x3F: // CCF
		f := p.F & (FlagS | FlagZ | FlagP)
		if p.GetFlag(FlagC) {
			f |= FlagH
		} else {
			f |= FlagC
		}
		p.F = f

	case 0x76: // HALT
		p.halted.Store(true)

	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8: // RET cc
		if p.condition((op >> 3) & 7) {
			pc, err := p.pop16()
			if err != nil {
				return err
			}
			p.PC = pc
		}
	case 0xC9: // RET
		pc, err := p.pop16()
		if err != nil {
			return err
		}
		p.PC = pc

	case 0xC1, 0xD1, 0xE1: // POP rp
		v, err := p.pop16()
		if err != nil {
			return err
		}
		p.setPair16((op>>4)&3, v)
	case 0xF1: // POP AF
		v, err := p.pop16()
		if err != nil {
			return err
		}
		p.SetAF(v)

	case 0xC5, 0xD5, 0xE5: // PUSH rp
		if err := p.push16(p.getPair16((op >> 4) & 3)); err != nil {
			return err
		}
	case 0xF5: // PUSH AF
		if err := p.push16(p.AF()); err != nil {
			return err
		}

	case 0xC3: // JP nn
		p.PC = p.fetchWord()
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA: // JP cc,nn
		nn := p.fetchWord()
		if p.condition((op >> 3) & 7) {
			p.PC = nn
		}
	case 0xE9: // JP (HL)
		p.PC = p.indexReg()

	case 0xCD: // CALL nn
		nn := p.fetchWord()
		if err := p.push16(p.PC); err != nil {
			return err
		}
		p.PC = nn
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC: // CALL cc,nn
		nn := p.fetchWord()
		if p.condition((op >> 3) & 7) {
			if err := p.push16(p.PC); err != nil {
				return err
			}
			p.PC = nn
		}

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST t
		if err := p.push16(p.PC); err != nil {
			return err
		}
		p.PC = uint16(op & 0x38)

	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE: // ALU A,n
		p.aluOp((op>>3)&7, p.fetchByte())

	case 0xD3: // OUT (n),A
		p.bus.Out(p.fetchByte(), p.A)
	case 0xDB: // IN A,(n)
		p.A = p.bus.In(p.fetchByte())

	case 0xF9: // LD SP,HL
		p.SP = p.indexReg()

	case 0xF3: // DI
		p.iff1, p.iff2 = false, false
	case 0xFB: // EI, effective immediately in this simulator
		p.iff1, p.iff2 = true, true

	case 0xCB:
		return p.executeCB()
	case 0xED:
		return p.executeED()

	default:
		return p.fault(fmt.Errorf("%w: 0x%02X at 0x%04X", ErrUnknownOpcode, op, p.PC-1))
	}
	return nil
}
