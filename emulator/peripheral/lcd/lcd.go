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

package lcd

import (
	"sync"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// The character LCD listens on two ports: commands and data. It
// implements the HD44780 subset the sample programs rely on.
const (
	CmdPort  = 0x20
	DataPort = 0x21

	CmdClear     = 0x01
	CmdShiftLeft = 0x18
	CmdSetDDRAM  = 0x80

	Cols = 16
	Rows = 2

	// DDRAM address of the second row, as on the real controller.
	row1Addr = 0x40
)

// Device is the 2x16 character LCD.
type Device struct {
	mu     sync.Mutex
	ddram  [0x80]byte
	cursor byte
}

func (m *Device) Install(b *bus.Bus) error {
	b.RegisterOut(CmdPort, m.command)
	b.RegisterOut(DataPort, m.data)
	return nil
}

func (m *Device) Name() string {
	return "Character LCD"
}

func (m *Device) Reset() {
	m.mu.Lock()
	m.clear()
	m.mu.Unlock()
}

func (m *Device) clear() {
	for i := range m.ddram {
		m.ddram[i] = ' '
	}
	m.cursor = 0
}

func (m *Device) command(data byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case data&CmdSetDDRAM != 0:
		m.cursor = data & 0x7F
	case data == CmdClear:
		m.clear()
	case data == CmdShiftLeft:
		// Display shift is approximated by scrolling both rows one
		// cell to the left.
		for row := 0; row < Rows; row++ {
			base := row * row1Addr
			copy(m.ddram[base:base+Cols-1], m.ddram[base+1:base+Cols])
			m.ddram[base+Cols-1] = ' '
		}
	}
}

func (m *Device) data(ch byte) {
	m.mu.Lock()
	m.ddram[m.cursor&0x7F] = ch
	m.cursor = (m.cursor + 1) & 0x7F
	m.mu.Unlock()
}

// Line renders one display row as text.
func (m *Device) Line(row int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := (row & 1) * row1Addr
	line := make([]byte, Cols)
	for i := range line {
		ch := m.ddram[base+i]
		if ch < 0x20 || ch > 0x7E {
			ch = ' '
		}
		line[i] = ch
	}
	return string(line)
}
