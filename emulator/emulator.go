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

// Package emulator wires memory, bus, CPU and peripherals into a
// runnable machine.
package emulator

import (
	"log"
	"runtime"
	"time"

	"github.com/andreas-jonsson/virtualz80/asm"
	"github.com/andreas-jonsson/virtualz80/emulator/bus"
	"github.com/andreas-jonsson/virtualz80/emulator/cpu"
	"github.com/andreas-jonsson/virtualz80/emulator/memory"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral"
)

// Machine is a complete board: 64K RAM, the I/O bus, the CPU and the
// installed peripherals.
type Machine struct {
	CPU *cpu.CPU
	RAM *memory.RAM
	Bus *bus.Bus

	// LineMap is the PC-to-source-line map of the loaded program,
	// empty until LoadProgram.
	LineMap map[uint16]int

	peripherals []peripheral.Peripheral
}

// New builds a machine and installs the given peripherals.
func New(peripherals ...peripheral.Peripheral) *Machine {
	m := &Machine{
		RAM:         &memory.RAM{},
		Bus:         &bus.Bus{},
		peripherals: peripherals,
	}
	m.CPU = cpu.New(m.RAM, m.Bus)

	for _, d := range peripherals {
		if err := d.Install(m.Bus); err != nil {
			log.Print("Failed to install peripheral: ", err)
		}
	}
	return m
}

// Reset clears memory, the CPU and every peripheral.
func (m *Machine) Reset() {
	m.RAM.Reset()
	m.CPU.Reset()
	for _, d := range m.peripherals {
		d.Reset()
	}
}

// LoadImage places a raw byte image at base.
func (m *Machine) LoadImage(base uint16, image []byte) {
	m.RAM.Load(memory.Pointer(base), image)
}

// LoadProgram resets the machine and loads an assembled program at
// address zero, the reset vector.
func (m *Machine) LoadProgram(res *asm.Result) {
	m.Reset()
	m.LoadImage(0, res.Image)
	m.LineMap = res.LineMap
}

// Close shuts down peripherals holding host resources.
func (m *Machine) Close() {
	for _, d := range m.peripherals {
		if cd, ok := d.(peripheral.PeripheralCloser); ok {
			if err := cd.Close(); err != nil {
				log.Print("Failed to close peripheral: ", err)
			}
		}
	}
}

// RunInteractive steps the CPU until a fault or until stop returns
// true. A halted CPU idles instead of exiting, so peripheral
// interrupts can wake it back up.
func (m *Machine) RunInteractive(limitMIPS float64, stop func() bool) error {
	var pace int64
	if limitMIPS > 0 {
		pace = int64(1000000000 / (1000000 * limitMIPS))
	}

	var steps int64
	t := time.Now().UnixNano()

	for stop == nil || !stop() {
		if m.CPU.Halted() {
			time.Sleep(time.Millisecond)
			t = time.Now().UnixNano()
			steps = 0
			continue
		}
		if err := m.CPU.Step(); err != nil {
			return err
		}
		steps++

		if pace > 0 {
			for time.Now().UnixNano()-t < pace*steps {
				runtime.Gosched()
			}
		}
	}
	return nil
}

// Run steps the CPU until it halts, faults, or stop returns true.
// A positive limitMIPS paces execution; zero runs flat out. The CPU
// stays inspectable after return.
func (m *Machine) Run(limitMIPS float64, stop func() bool) error {
	var pace int64
	if limitMIPS > 0 {
		pace = int64(1000000000 / (1000000 * limitMIPS))
	}

	var steps int64
	t := time.Now().UnixNano()

	for stop == nil || !stop() {
		if m.CPU.Halted() {
			return nil
		}
		if err := m.CPU.Step(); err != nil {
			return err
		}
		steps++

		if pace > 0 {
			for time.Now().UnixNano()-t < pace*steps {
				runtime.Gosched()
			}
		}
	}
	return nil
}
