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

package bus

import "log"

// InputFunc produces the byte an IN instruction reads from a port.
type InputFunc func() byte

// OutputFunc consumes the byte an OUT instruction writes to a port.
type OutputFunc func(data byte)

// InterruptLine is the CPU-side latch a peripheral pulls to request
// a maskable interrupt. Implementations must be callable from any
// goroutine at any instant relative to the CPU step.
type InterruptLine interface {
	Interrupt()
}

// Bus dispatches the 256-port I/O address space. Port handlers are
// registered at machine setup and run synchronously inside the IN or
// OUT instruction that addresses them. Handlers must return promptly
// and must not call back into the CPU, though they may trigger the
// interrupt line.
type Bus struct {
	in  [0x100]InputFunc
	out [0x100]OutputFunc
	irq InterruptLine
}

// Connect attaches the CPU's interrupt latch.
func (b *Bus) Connect(irq InterruptLine) {
	b.irq = irq
}

func (b *Bus) RegisterIn(port byte, fn InputFunc) {
	b.in[port] = fn
}

func (b *Bus) RegisterOut(port byte, fn OutputFunc) {
	b.out[port] = fn
}

// In services an IN instruction. An unmapped port floats high.
func (b *Bus) In(port byte) byte {
	if fn := b.in[port]; fn != nil {
		return fn()
	}
	log.Printf("reading unmapped IO port: 0x%02X", port)
	return 0xFF
}

// Out services an OUT instruction. Writes to unmapped ports are
// discarded.
func (b *Bus) Out(port byte, data byte) {
	if fn := b.out[port]; fn != nil {
		fn(data)
		return
	}
	log.Printf("writing unmapped IO port: 0x%02X", port)
}

// TriggerInterrupt latches a maskable interrupt request into the CPU.
// The latch is set unconditionally so requests raised while interrupts
// are disabled fire the moment IFF1 is set again.
func (b *Bus) TriggerInterrupt() {
	if b.irq != nil {
		b.irq.Interrupt()
	}
}
