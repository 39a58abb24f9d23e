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

package buttons

import (
	"sync/atomic"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// Port reads the push-button mask, one bit per button, set while
// held.
const Port = 0x60

// Device is the push-button bank. A press raises an interrupt;
// release does not.
type Device struct {
	mask uint32
	bus  *bus.Bus
}

func (m *Device) Install(b *bus.Bus) error {
	m.bus = b
	b.RegisterIn(Port, func() byte {
		return byte(atomic.LoadUint32(&m.mask))
	})
	return nil
}

func (m *Device) Name() string {
	return "Push Buttons"
}

func (m *Device) Reset() {
	atomic.StoreUint32(&m.mask, 0)
}

// Press sets a button bit and raises an interrupt.
func (m *Device) Press(i int) {
	for {
		old := atomic.LoadUint32(&m.mask)
		if atomic.CompareAndSwapUint32(&m.mask, old, old|1<<(i&7)) {
			break
		}
	}
	m.bus.TriggerInterrupt()
}

// Release clears a button bit.
func (m *Device) Release(i int) {
	for {
		old := atomic.LoadUint32(&m.mask)
		if atomic.CompareAndSwapUint32(&m.mask, old, old&^(1<<(i&7))) {
			break
		}
	}
}
