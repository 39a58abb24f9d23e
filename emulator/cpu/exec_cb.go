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

import "log"

// executeCB handles the bit/shift/rotate page. Under an index prefix
// the byte order is DD CB d sub: the displacement comes before the
// sub-opcode, and every operation targets (IX+d)/(IY+d).
func (p *CPU) executeCB() error {
	if p.prefix != prefixNone {
		d := int8(p.fetchByte())
		sub := p.fetchByte()
		base := p.IX
		if p.prefix == prefixIY {
			base = p.IY
		}
		p.cbOnAddr(sub, base+uint16(int16(d)))
		return nil
	}

	sub := p.fetchOpcode()
	if sub&7 == 6 {
		p.cbOnAddr(sub, p.HL())
		return nil
	}

	idx := sub & 7
	switch sub >> 6 {
	case 0: // rotate/shift
		if res, ok := p.shiftRotate(sub>>3, p.getReg8(idx, false)); ok {
			p.setReg8(idx, false, res)
		} else {
			log.Printf("unsupported CB sub-opcode: 0x%02X", sub)
		}
	case 1: // BIT b,r
		p.bitTest(sub, p.getReg8(idx, false))
	case 2: // RES b,r
		p.setReg8(idx, false, p.getReg8(idx, false)&^bitMask(sub))
	default: // SET b,r
		p.setReg8(idx, false, p.getReg8(idx, false)|bitMask(sub))
	}
	return nil
}

func (p *CPU) cbOnAddr(sub byte, addr uint16) {
	v := p.readByte(addr)
	switch sub >> 6 {
	case 0:
		if res, ok := p.shiftRotate(sub>>3, v); ok {
			p.writeByte(addr, res)
		} else {
			log.Printf("unsupported CB sub-opcode: 0x%02X", sub)
		}
	case 1:
		p.bitTest(sub, v)
	case 2:
		p.writeByte(addr, v&^bitMask(sub))
	default:
		p.writeByte(addr, v|bitMask(sub))
	}
}

func bitMask(sub byte) byte {
	return 1 << ((sub >> 3) & 7)
}

// bitTest implements BIT b,v: Z is the complement of the tested bit,
// H set, N clear, S and P/V left as they were.
func (p *CPU) bitTest(sub, v byte) {
	f := p.F & (FlagS | FlagP | FlagC)
	if v&bitMask(sub) == 0 {
		f |= FlagZ
	}
	p.F = f | FlagH
}
