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

package led

import (
	"sync/atomic"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// Port drives the LED row: bit 0 is LED0 up to bit 7 for LED7.
const Port = 0x00

// Device is the row of eight LEDs.
type Device struct {
	mask uint32
}

func (m *Device) Install(b *bus.Bus) error {
	b.RegisterOut(Port, func(data byte) {
		atomic.StoreUint32(&m.mask, uint32(data))
	})
	return nil
}

func (m *Device) Name() string {
	return "LED Row"
}

func (m *Device) Reset() {
	atomic.StoreUint32(&m.mask, 0)
}

// Mask is the current LED state, readable from the render loop.
func (m *Device) Mask() byte {
	return byte(atomic.LoadUint32(&m.mask))
}
