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

package keypad

import (
	"sync"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// Port reads the oldest pending key code 0-15, or NoKey when the
// queue is empty. Reading consumes the key.
const (
	Port  = 0x40
	NoKey = 0xFF
)

// Device is the 16-key hex keypad. Key presses arrive from the host
// UI thread; each press latches an interrupt so programs can sleep in
// HALT between keys.
type Device struct {
	mu    sync.Mutex
	queue []byte
	bus   *bus.Bus
}

func (m *Device) Install(b *bus.Bus) error {
	m.bus = b
	b.RegisterIn(Port, m.read)
	return nil
}

func (m *Device) Name() string {
	return "Hex Keypad"
}

func (m *Device) Reset() {
	m.mu.Lock()
	m.queue = nil
	m.mu.Unlock()
}

func (m *Device) read() byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return NoKey
	}
	k := m.queue[0]
	m.queue = m.queue[1:]
	return k
}

// Press enqueues a key code and raises an interrupt. Codes above 15
// are ignored.
func (m *Device) Press(key byte) {
	if key > 15 {
		return
	}
	m.mu.Lock()
	m.queue = append(m.queue, key)
	m.mu.Unlock()
	m.bus.TriggerInterrupt()
}
