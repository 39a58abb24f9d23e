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

package dasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreas-jonsson/virtualz80/asm"
)

func decodeBytes(bs ...byte) Instruction {
	return Decode(func(a uint16) byte {
		if int(a) < len(bs) {
			return bs[a]
		}
		return 0
	}, 0)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		bytes []byte
		text  string
	}{
		{[]byte{0x00}, "NOP"},
		{[]byte{0x76}, "HALT"},
		{[]byte{0x3E, 0x0A}, "LD A, 0x0A"},
		{[]byte{0x78}, "LD A, B"},
		{[]byte{0x77}, "LD (HL), A"},
		{[]byte{0x21, 0x34, 0x12}, "LD HL, 0x1234"},
		{[]byte{0xDD, 0x21, 0x00, 0x80}, "LD IX, 0x8000"},
		{[]byte{0x22, 0x00, 0x80}, "LD (0x8000), HL"},
		{[]byte{0xED, 0x5B, 0x00, 0x80}, "LD DE, (0x8000)"},
		{[]byte{0xDD, 0x36, 0x01, 0x42}, "LD (IX+1), 0x42"},
		{[]byte{0xFD, 0x4E, 0xFE}, "LD C, (IY-2)"},
		{[]byte{0xDD, 0x7C}, "LD A, IXH"},
		{[]byte{0x86}, "ADD A, (HL)"},
		{[]byte{0xC6, 0x14}, "ADD A, 0x14"},
		{[]byte{0x90}, "SUB B"},
		{[]byte{0xED, 0x5A}, "ADC HL, DE"},
		{[]byte{0xED, 0x42}, "SBC HL, BC"},
		{[]byte{0x09}, "ADD HL, BC"},
		{[]byte{0xDD, 0x19}, "ADD IX, DE"},
		{[]byte{0x3C}, "INC A"},
		{[]byte{0xDD, 0x34, 0x02}, "INC (IX+2)"},
		{[]byte{0xC5}, "PUSH BC"},
		{[]byte{0xF5}, "PUSH AF"},
		{[]byte{0xDD, 0xE5}, "PUSH IX"},
		{[]byte{0x08}, "EX AF, AF'"},
		{[]byte{0xE3}, "EX (SP), HL"},
		{[]byte{0xC3, 0x34, 0x12}, "JP 0x1234"},
		{[]byte{0xDA, 0x34, 0x12}, "JP C, 0x1234"},
		{[]byte{0xE9}, "JP (HL)"},
		{[]byte{0xDD, 0xE9}, "JP (IX)"},
		{[]byte{0x18, 0x03}, "JR 0x0005"},
		{[]byte{0x20, 0xFE}, "JR NZ, 0x0000"},
		{[]byte{0x10, 0xFD}, "DJNZ 0xFFFF"},
		{[]byte{0xCD, 0x34, 0x12}, "CALL 0x1234"},
		{[]byte{0xC9}, "RET"},
		{[]byte{0xC8}, "RET Z"},
		{[]byte{0xFF}, "RST 0x38"},
		{[]byte{0xDB, 0x40}, "IN A, (0x40)"},
		{[]byte{0xED, 0x40}, "IN B, (C)"},
		{[]byte{0xD3, 0x17}, "OUT (0x17), A"},
		{[]byte{0xED, 0x59}, "OUT (C), E"},
		{[]byte{0xCB, 0x00}, "RLC B"},
		{[]byte{0xCB, 0x7F}, "BIT 7, A"},
		{[]byte{0xDD, 0xCB, 0x05, 0xC6}, "SET 0, (IX+5)"},
		{[]byte{0xFD, 0xCB, 0x02, 0x26}, "SLA (IY+2)"},
		{[]byte{0xED, 0xB0}, "LDIR"},
		{[]byte{0xED, 0x44}, "NEG"},
		{[]byte{0xED, 0x56}, "IM 1"},
		{[]byte{0xFB}, "EI"},
		// Undecodable bytes fall back to data.
		{[]byte{0xED, 0xFF}, "DB 0xED"},
		{[]byte{0xDD, 0x00}, "DB 0xDD"},
	}

	for _, tc := range tests {
		ins := decodeBytes(tc.bytes...)
		assert.Equal(t, tc.text, ins.Text, "% X", tc.bytes)
	}
}

func TestDecodeLength(t *testing.T) {
	ins := decodeBytes(0xDD, 0xCB, 0x05, 0xC6)
	assert.Len(t, ins.Bytes, 4)

	ins = decodeBytes(0xED, 0xFF)
	assert.Len(t, ins.Bytes, 1, "bad ED pair consumes one byte")
}

var samplePrograms = []string{
	"LD A, 10 : ADD A, 20 : OUT (0x17), A : HALT",

	"LD B, 3 : LD A, 0 :L: INC A : DJNZ L : OUT (0x17), A : HALT",

	strings.Join([]string{
		"    LD HL, src",
		"    LD DE, dst",
		"    LD BC, 4",
		"    LDIR",
		"    HALT",
		"src: DB 0xAA, 0xBB, 0xCC, 0xDD",
		"dst: DS 4",
	}, "\n"),

	strings.Join([]string{
		"    LD IX, table",
		"    LD B, 8",
		"loop:",
		"    LD A, (IX+0)",
		"    OUT (0x00), A",
		"    INC IX",
		"    DJNZ loop",
		"    HALT",
		"table: DB 1, 2, 4, 8, 16, 32, 64, 128",
	}, "\n"),

	strings.Join([]string{
		"    IM 1",
		"    EI",
		"wait:",
		"    HALT",
		"    JR wait",
		"    ORG 0x38",
		"    IN A, (0x40)",
		"    OUT (0x00), A",
		"    EI",
		"    RETI",
	}, "\n"),
}

// Assembling a program, disassembling the image and assembling again
// must reproduce the image byte for byte.
func TestRoundTrip(t *testing.T) {
	for i, src := range samplePrograms {
		res, err := asm.Assemble(src)
		require.NoError(t, err, "program %d", i)

		text := Image(res.Image, 0)
		res2, err := asm.Assemble(text)
		require.NoError(t, err, "program %d re-assembly:\n%s", i, text)
		assert.Equal(t, res.Image, res2.Image, "program %d:\n%s", i, text)
	}
}
