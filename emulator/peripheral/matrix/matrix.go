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

package matrix

import (
	"sync"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// The 16x16 dot matrix occupies 32 ports: row r columns 0-7 at
// BasePort+2r, columns 8-15 at BasePort+2r+1.
const (
	BasePort = 0x80
	Rows     = 16
)

// Device is the dot-matrix display.
type Device struct {
	mu   sync.Mutex
	rows [Rows]uint16
}

func (m *Device) Install(b *bus.Bus) error {
	for r := 0; r < Rows; r++ {
		row := r
		b.RegisterOut(byte(BasePort+2*r), func(data byte) {
			m.mu.Lock()
			m.rows[row] = m.rows[row]&0xFF00 | uint16(data)
			m.mu.Unlock()
		})
		b.RegisterOut(byte(BasePort+2*r+1), func(data byte) {
			m.mu.Lock()
			m.rows[row] = m.rows[row]&0x00FF | uint16(data)<<8
			m.mu.Unlock()
		})
	}
	return nil
}

func (m *Device) Name() string {
	return "Dot Matrix"
}

func (m *Device) Reset() {
	m.mu.Lock()
	m.rows = [Rows]uint16{}
	m.mu.Unlock()
}

// Row returns one row's 16-bit column mask, bit 0 leftmost.
func (m *Device) Row(r int) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[r&(Rows-1)]
}
