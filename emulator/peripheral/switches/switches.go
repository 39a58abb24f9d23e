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

package switches

import (
	"sync"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// Each DIP switch has its own port; bit 0 carries the on/off state.
const (
	BasePort    = 0x50
	NumSwitches = 8
)

// Device is the DIP switch bank.
type Device struct {
	mu    sync.Mutex
	state [NumSwitches]bool
}

func (m *Device) Install(b *bus.Bus) error {
	for i := 0; i < NumSwitches; i++ {
		idx := i
		b.RegisterIn(byte(BasePort+i), func() byte {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.state[idx] {
				return 1
			}
			return 0
		})
	}
	return nil
}

func (m *Device) Name() string {
	return "DIP Switches"
}

func (m *Device) Reset() {
	// Switches are physical state; a CPU reset does not move them.
}

// Toggle flips one switch from the host UI.
func (m *Device) Toggle(i int) {
	m.mu.Lock()
	m.state[i&(NumSwitches-1)] = !m.state[i&(NumSwitches-1)]
	m.mu.Unlock()
}

func (m *Device) Get(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state[i&(NumSwitches-1)]
}
