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

import (
	"testing"

	"github.com/andreas-jonsson/virtualz80/emulator/memory"
	"github.com/stretchr/testify/assert"
)

func TestLDI(t *testing.T) {
	p, ram, _ := testCPU(0xED, 0xA0)
	ram.WriteByte(0x4000, 0xAA)
	p.SetHL(0x4000)
	p.SetDE(0x5000)
	p.SetBC(2)

	step(t, p, 1)
	assert.Equal(t, byte(0xAA), ram.ReadByte(0x5000))
	assert.Equal(t, uint16(0x4001), p.HL())
	assert.Equal(t, uint16(0x5001), p.DE())
	assert.Equal(t, uint16(1), p.BC())
	assert.True(t, p.GetFlag(FlagV), "P/V set while BC nonzero")
}

func TestLDIRCopiesExactlyN(t *testing.T) {
	p, ram, _ := testCPU(0xED, 0xB0)
	src := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	ram.Load(0x4000, src)
	ram.WriteByte(0x4004, 0xEE) // must not be copied
	p.SetHL(0x4000)
	p.SetDE(0x5000)
	p.SetBC(4)

	step(t, p, 1)
	for i, b := range src {
		assert.Equal(t, b, ram.ReadByte(0x5000+memory.Pointer(i)))
	}
	assert.Equal(t, byte(0), ram.ReadByte(0x5004))
	assert.Equal(t, uint16(0), p.BC())
	assert.False(t, p.GetFlag(FlagV), "P/V clear when BC reaches zero")
	assert.Equal(t, uint16(0x0002), p.PC, "repeat form is atomic in one step")
}

func TestLDDR(t *testing.T) {
	p, ram, _ := testCPU(0xED, 0xB8)
	ram.Load(0x4000, []byte{1, 2, 3})
	p.SetHL(0x4002)
	p.SetDE(0x5002)
	p.SetBC(3)

	step(t, p, 1)
	assert.Equal(t, byte(1), ram.ReadByte(0x5000))
	assert.Equal(t, byte(2), ram.ReadByte(0x5001))
	assert.Equal(t, byte(3), ram.ReadByte(0x5002))
	assert.Equal(t, uint16(0), p.BC())
}

func TestCPIRFindsMatch(t *testing.T) {
	p, ram, _ := testCPU(0xED, 0xB1)
	ram.Load(0x4000, []byte{0x10, 0x20, 0x30, 0x40})
	p.A = 0x30
	p.SetHL(0x4000)
	p.SetBC(4)

	step(t, p, 1)
	assert.True(t, p.GetFlag(FlagZ), "match sets Z")
	assert.Equal(t, uint16(0x4003), p.HL(), "HL stops past the match")
	assert.Equal(t, uint16(1), p.BC())
}

func TestCPIRExhaustsWithoutMatch(t *testing.T) {
	p, ram, _ := testCPU(0xED, 0xB1)
	ram.Load(0x4000, []byte{0x10, 0x20})
	p.A = 0x99
	p.SetHL(0x4000)
	p.SetBC(2)

	step(t, p, 1)
	assert.False(t, p.GetFlag(FlagZ))
	assert.Equal(t, uint16(0), p.BC())
	assert.False(t, p.GetFlag(FlagV))
}

func TestINIRReadsPort(t *testing.T) {
	p, ram, b := testCPU(0xED, 0xB2)
	var n byte
	b.RegisterIn(0x42, func() byte {
		n++
		return n
	})
	p.B = 3
	p.C = 0x42
	p.SetHL(0x4000)

	step(t, p, 1)
	assert.Equal(t, byte(1), ram.ReadByte(0x4000))
	assert.Equal(t, byte(2), ram.ReadByte(0x4001))
	assert.Equal(t, byte(3), ram.ReadByte(0x4002))
	assert.Equal(t, byte(0), p.B)
	assert.True(t, p.GetFlag(FlagZ))
}

func TestOTIRWritesPort(t *testing.T) {
	p, ram, b := testCPU(0xED, 0xB3)
	var got []byte
	b.RegisterOut(0x17, func(data byte) {
		got = append(got, data)
	})
	ram.Load(0x4000, []byte{0x0A, 0x0B})
	p.B = 2
	p.C = 0x17
	p.SetHL(0x4000)

	step(t, p, 1)
	assert.Equal(t, []byte{0x0A, 0x0B}, got)
	assert.Equal(t, byte(0), p.B)
	assert.Equal(t, uint16(0x4002), p.HL())
}
