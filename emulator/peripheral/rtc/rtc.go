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

package rtc

import (
	"time"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

// The real-time clock exposes wall time on three read ports.
const (
	SecondsPort = 0xC0
	MinutesPort = 0xC1
	HoursPort   = 0xC2
)

// Device is the real-time clock. Now is the clock source and may be
// replaced in tests; nil means time.Now.
type Device struct {
	Now func() time.Time
}

func (m *Device) Install(b *bus.Bus) error {
	b.RegisterIn(SecondsPort, func() byte { return byte(m.now().Second()) })
	b.RegisterIn(MinutesPort, func() byte { return byte(m.now().Minute()) })
	b.RegisterIn(HoursPort, func() byte { return byte(m.now().Hour()) })
	return nil
}

func (m *Device) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Device) Name() string {
	return "Real-Time Clock"
}

func (m *Device) Reset() {
}
