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

// pairED resolves the rp field of an ED opcode. The ED page never
// honors an index prefix, so HL is always plain HL here.
func (p *CPU) pairED(idx byte) uint16 {
	switch idx & 3 {
	case 0:
		return p.BC()
	case 1:
		return p.DE()
	case 2:
		return p.HL()
	default:
		return p.SP
	}
}

func (p *CPU) setPairED(idx byte, v uint16) {
	switch idx & 3 {
	case 0:
		p.SetBC(v)
	case 1:
		p.SetDE(v)
	case 2:
		p.SetHL(v)
	default:
		p.SP = v
	}
}

// executeED handles the extended page: 16-bit carry arithmetic, the
// register-indexed IN/OUT forms, block transfers, and interrupt
// plumbing. Unknown sub-opcodes are logged and skipped rather than
// faulting.
func (p *CPU) executeED() error {
	sub := p.fetchOpcode()

	switch sub {
	case 0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x78: // IN r,(C)
		v := p.bus.In(p.C)
		p.setReg8((sub>>3)&7, false, v)
		p.F = p.F&FlagC | p.flagsSZ(v) | parityTable[v]
	case 0x70: // IN (C), flags only
		v := p.bus.In(p.C)
		p.F = p.F&FlagC | p.flagsSZ(v) | parityTable[v]

	case 0x41, 0x49, 0x51, 0x59, 0x61, 0x69, 0x79: // OUT (C),r
		p.bus.Out(p.C, p.getReg8((sub>>3)&7, false))
	case 0x71: // OUT (C),0
		p.bus.Out(p.C, 0)

	case 0x42, 0x52, 0x62, 0x72: // SBC HL,rp
		p.SetHL(p.sbc16(p.HL(), p.pairED(sub>>4)))
	case 0x4A, 0x5A, 0x6A, 0x7A: // ADC HL,rp
		p.SetHL(p.adc16(p.HL(), p.pairED(sub>>4)))

	case 0x43, 0x53, 0x63, 0x73: // LD (nn),rp
		p.writeWord(p.fetchWord(), p.pairED(sub>>4))
	case 0x4B, 0x5B, 0x6B, 0x7B: // LD rp,(nn)
		p.setPairED(sub>>4, p.readWord(p.fetchWord()))

	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C: // NEG
		v := p.A
		p.A = 0
		p.sub8(v, false, true)

	case 0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D: // RETN
		pc, err := p.pop16()
		if err != nil {
			return err
		}
		p.PC = pc
		p.iff1 = p.iff2
	case 0x4D: // RETI
		pc, err := p.pop16()
		if err != nil {
			return err
		}
		p.PC = pc

	case 0x46, 0x4E, 0x66, 0x6E: // IM 0
		p.im = 0
	case 0x56, 0x76: // IM 1
		p.im = 1
	case 0x5E, 0x7E: // IM 2
		p.im = 2

	case 0x47: // LD I,A
		p.I = p.A
	case 0x4F: // LD R,A
		p.R = p.A
	case 0x57: // LD A,I
		p.A = p.I
		p.flagsIR()
	case 0x5F: // LD A,R
		p.A = p.R
		p.flagsIR()

	case 0x67: // RRD
		addr := p.HL()
		v := p.readByte(addr)
		p.writeByte(addr, p.A<<4|v>>4)
		p.A = p.A&0xF0 | v&0x0F
		p.F = p.F&FlagC | p.flagsSZ(p.A) | parityTable[p.A]
	case 0x6F: // RLD
		addr := p.HL()
		v := p.readByte(addr)
		p.writeByte(addr, v<<4|p.A&0x0F)
		p.A = p.A&0xF0 | v>>4
		p.F = p.F&FlagC | p.flagsSZ(p.A) | parityTable[p.A]

	case 0xA0: // LDI
		p.blockLD(1)
	case 0xA8: // LDD
		p.blockLD(-1)
	case 0xB0: // LDIR
		for {
			p.blockLD(1)
			if p.BC() == 0 {
				break
			}
		}
	case 0xB8: // LDDR
		for {
			p.blockLD(-1)
			if p.BC() == 0 {
				break
			}
		}

	case 0xA1: // CPI
		p.blockCP(1)
	case 0xA9: // CPD
		p.blockCP(-1)
	case 0xB1: // CPIR
		for {
			p.blockCP(1)
			if p.BC() == 0 || p.GetFlag(FlagZ) {
				break
			}
		}
	case 0xB9: // CPDR
		for {
			p.blockCP(-1)
			if p.BC() == 0 || p.GetFlag(FlagZ) {
				break
			}
		}

	case 0xA2: // INI
		p.blockIN(1)
	case 0xAA: // IND
		p.blockIN(-1)
	case 0xB2: // INIR
		for {
			p.blockIN(1)
			if p.B == 0 {
				break
			}
		}
	case 0xBA: // INDR
		for {
			p.blockIN(-1)
			if p.B == 0 {
				break
			}
		}

	case 0xA3: // OUTI
		p.blockOUT(1)
	case 0xAB: // OUTD
		p.blockOUT(-1)
	case 0xB3: // OTIR
		for {
			p.blockOUT(1)
			if p.B == 0 {
				break
			}
		}
	case 0xBB: // OTDR
		for {
			p.blockOUT(-1)
			if p.B == 0 {
				break
			}
		}

	default:
		log.Printf("unsupported ED sub-opcode: 0x%02X", sub)
	}
	return nil
}

// flagsIR sets the flags of LD A,I and LD A,R: S and Z from the
// loaded value, H and N clear, P/V mirrors IFF2.
func (p *CPU) flagsIR() {
	f := p.F&FlagC | p.flagsSZ(p.A)
	if p.iff2 {
		f |= FlagV
	}
	p.F = f
}

// blockLD is one LDI/LDD iteration: move a byte (HL)→(DE), step the
// pointers, decrement BC. P/V is set while BC is nonzero, H and N
// clear, S, Z and C untouched.
func (p *CPU) blockLD(dir int16) {
	p.writeByte(p.DE(), p.readByte(p.HL()))
	p.SetHL(p.HL() + uint16(dir))
	p.SetDE(p.DE() + uint16(dir))
	p.SetBC(p.BC() - 1)

	f := p.F & (FlagS | FlagZ | FlagC)
	if p.BC() != 0 {
		f |= FlagV
	}
	p.F = f
}

// blockCP is one CPI/CPD iteration: compare A with (HL), step HL,
// decrement BC. S, Z and H come from the comparison, C is untouched,
// P/V is set while BC is nonzero.
func (p *CPU) blockCP(dir int16) {
	v := p.readByte(p.HL())
	diff := p.A - v

	f := p.F&FlagC | p.flagsSZ(diff) | FlagN
	if (p.A^v^diff)&0x10 != 0 {
		f |= FlagH
	}

	p.SetHL(p.HL() + uint16(dir))
	p.SetBC(p.BC() - 1)
	if p.BC() != 0 {
		f |= FlagV
	}
	p.F = f
}

// blockIN is one INI/IND iteration: port C into (HL), step HL,
// decrement the B counter.
func (p *CPU) blockIN(dir int16) {
	p.writeByte(p.HL(), p.bus.In(p.C))
	p.SetHL(p.HL() + uint16(dir))
	p.B--
	p.blockIOFlags()
}

// blockOUT is one OUTI/OUTD iteration: (HL) to port C, step HL,
// decrement the B counter.
func (p *CPU) blockOUT(dir int16) {
	v := p.readByte(p.HL())
	p.B--
	p.bus.Out(p.C, v)
	p.SetHL(p.HL() + uint16(dir))
	p.blockIOFlags()
}

func (p *CPU) blockIOFlags() {
	f := p.F&FlagC | FlagN
	if p.B == 0 {
		f |= FlagZ
	}
	f |= p.B & FlagS
	p.F = f
}
