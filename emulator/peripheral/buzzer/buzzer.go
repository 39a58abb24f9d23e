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

package buzzer

import (
	"math"
	"sync/atomic"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// Port takes a tone code; zero silences the buzzer. Codes count
// semitones up from A2 (110 Hz).
const Port = 0x30

// Device is the piezo buzzer. The tone latch is always available;
// audible output needs the sdl build tag.
type Device struct {
	tone uint32
}

func (m *Device) Install(b *bus.Bus) error {
	b.RegisterOut(Port, func(data byte) {
		atomic.StoreUint32(&m.tone, uint32(data))
	})
	return m.installAudio()
}

func (m *Device) Name() string {
	return "Buzzer"
}

func (m *Device) Reset() {
	atomic.StoreUint32(&m.tone, 0)
}

// Tone is the current tone code; zero is silence.
func (m *Device) Tone() byte {
	return byte(atomic.LoadUint32(&m.tone))
}

// Frequency converts the current tone code to Hz, or 0 when silent.
func (m *Device) Frequency() float64 {
	t := m.Tone()
	if t == 0 {
		return 0
	}
	return 110 * math.Pow(2, float64(t-1)/12)
}
