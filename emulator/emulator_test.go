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

package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreas-jonsson/virtualz80/asm"
	"github.com/andreas-jonsson/virtualz80/emulator/cpu"
	"github.com/andreas-jonsson/virtualz80/emulator/memory"
)

// portRecorder captures the last byte written to each output port.
type portRecorder struct {
	last map[byte]byte
}

func runProgram(t *testing.T, source string) (*Machine, *portRecorder) {
	t.Helper()

	res, err := asm.Assemble(source)
	require.NoError(t, err)

	m := New()
	rec := &portRecorder{last: make(map[byte]byte)}
	for port := 0; port < 0x100; port++ {
		p := byte(port)
		m.Bus.RegisterOut(p, func(data byte) {
			rec.last[p] = data
		})
	}

	m.LoadProgram(res)
	require.NoError(t, m.Run(0, nil))
	require.True(t, m.CPU.Halted())
	return m, rec
}

func TestScenarioAddAndOut(t *testing.T) {
	m, rec := runProgram(t, "LD A, 10 : ADD A, 20 : OUT (0x17), A : HALT")

	assert.Equal(t, byte(30), rec.last[0x17])
	assert.Equal(t, byte(30), m.CPU.A)
	assert.False(t, m.CPU.GetFlag(cpu.FlagC))
}

func TestScenarioAddOverflow(t *testing.T) {
	m, rec := runProgram(t, "LD A, 0xFF : ADD A, 0x01 : OUT (0x00), A : HALT")

	assert.Equal(t, byte(0), rec.last[0x00])
	assert.True(t, m.CPU.GetFlag(cpu.FlagZ))
	assert.True(t, m.CPU.GetFlag(cpu.FlagC))
	assert.True(t, m.CPU.GetFlag(cpu.FlagH))
}

func TestScenarioDJNZ(t *testing.T) {
	_, rec := runProgram(t, "LD B, 3 : LD A, 0 :L: INC A : DJNZ L : OUT (0x17), A : HALT")
	assert.Equal(t, byte(3), rec.last[0x17])
}

func TestScenarioStoreLoadHL(t *testing.T) {
	m, _ := runProgram(t, "LD HL, 0x1234 : LD (0x8000), HL : LD HL, 0 : LD HL, (0x8000) : HALT")

	assert.Equal(t, byte(0x12), m.CPU.H)
	assert.Equal(t, byte(0x34), m.CPU.L)
	assert.Equal(t, byte(0x34), m.RAM.ReadByte(0x8000))
	assert.Equal(t, byte(0x12), m.RAM.ReadByte(0x8001))
}

func TestScenarioRLCA(t *testing.T) {
	m, rec := runProgram(t, "LD A, 0x80 : RLCA : OUT (0x17), A : HALT")

	assert.Equal(t, byte(0x01), rec.last[0x17])
	assert.True(t, m.CPU.GetFlag(cpu.FlagC))
}

func TestScenarioLDIR(t *testing.T) {
	m, _ := runProgram(t, strings.Join([]string{
		"    LD HL, src",
		"    LD DE, dst",
		"    LD BC, 4",
		"    LDIR",
		"    HALT",
		"src: DB 0xAA, 0xBB, 0xCC, 0xDD",
		"dst: DS 4",
	}, "\n"))

	dst := m.CPU.DE() - 4
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	for i, b := range want {
		assert.Equal(t, b, m.RAM.ReadByte(memory.Pointer(dst)+memory.Pointer(i)))
	}
	assert.Equal(t, uint16(0), m.CPU.BC())
	assert.False(t, m.CPU.GetFlag(cpu.FlagV))
}

func TestFaultSurfacesAndPreservesState(t *testing.T) {
	res, err := asm.Assemble("LD SP, 1 : LD A, 0x77 : PUSH AF")
	require.NoError(t, err)

	m := New()
	m.LoadProgram(res)
	err = m.Run(0, nil)
	require.ErrorIs(t, err, cpu.ErrStackOverflow)
	assert.True(t, m.CPU.Halted())
	assert.Equal(t, byte(0x77), m.CPU.A, "registers stay inspectable after a fault")
}

func TestUnmappedPortsAreHarmless(t *testing.T) {
	res, err := asm.Assemble("IN A, (0x99) : OUT (0x99), A : HALT")
	require.NoError(t, err)

	m := New()
	m.LoadProgram(res)
	require.NoError(t, m.Run(0, nil))
	assert.Equal(t, byte(0xFF), m.CPU.A, "unmapped input reads 0xFF")
}

func TestLineMapTracksPC(t *testing.T) {
	res, err := asm.Assemble("LD A, 1\nLD B, 2\nHALT")
	require.NoError(t, err)

	m := New()
	m.LoadProgram(res)
	assert.Equal(t, 1, m.LineMap[0])
	assert.Equal(t, 3, m.LineMap[4])
}
