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

package sevenseg

import (
	"sync"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// BasePort is digit 0; the display occupies eight consecutive ports.
// A digit byte carries segments a through g in bits 0-6 and the
// decimal point in bit 7.
const (
	BasePort  = 0x10
	NumDigits = 8
)

// Digits maps the hexadecimal digits to their segment patterns.
var Digits = [16]byte{
	0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07,
	0x7F, 0x6F, 0x77, 0x7C, 0x39, 0x5E, 0x79, 0x71,
}

// Device is the eight-digit 7-segment display.
type Device struct {
	mu     sync.Mutex
	digits [NumDigits]byte
}

func (m *Device) Install(b *bus.Bus) error {
	for i := 0; i < NumDigits; i++ {
		idx := i
		b.RegisterOut(byte(BasePort+i), func(data byte) {
			m.mu.Lock()
			m.digits[idx] = data
			m.mu.Unlock()
		})
	}
	return nil
}

func (m *Device) Name() string {
	return "7-Segment Display"
}

func (m *Device) Reset() {
	m.mu.Lock()
	m.digits = [NumDigits]byte{}
	m.mu.Unlock()
}

// Digit returns the segment latch of one digit.
func (m *Device) Digit(i int) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digits[i&(NumDigits-1)]
}
