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

// Package platform renders the trainer board in a terminal and feeds
// host keys to the input peripherals.
package platform

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell"

	"github.com/andreas-jonsson/virtualz80/dasm"
	"github.com/andreas-jonsson/virtualz80/emulator"
	"github.com/andreas-jonsson/virtualz80/emulator/memory"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/buttons"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/buzzer"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/keypad"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/lcd"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/led"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/matrix"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/sevenseg"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/switches"
)

// Board bundles the machine with the devices the panel renders and
// drives.
type Board struct {
	Machine *emulator.Machine

	LEDs     *led.Device
	Display  *sevenseg.Device
	LCD      *lcd.Device
	Matrix   *matrix.Device
	Keypad   *keypad.Device
	Switches *switches.Device
	Buttons  *buttons.Device
	Buzzer   *buzzer.Device

	LimitMIPS float64
}

// Start runs the machine in the background and the panel in the
// foreground until the user quits or the CPU faults.
func Start(b *Board) error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	var (
		quit    int32
		runErr  error
		errDone = make(chan struct{})
	)
	go func() {
		defer close(errDone)
		runErr = b.Machine.RunInteractive(b.LimitMIPS, func() bool {
			return atomic.LoadInt32(&quit) != 0
		})
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for atomic.LoadInt32(&quit) == 0 {
		select {
		case ev := <-events:
			if !b.handleEvent(ev) {
				atomic.StoreInt32(&quit, 1)
			}
		case <-ticker.C:
			b.render(screen)
		case <-errDone:
			// Keep the panel up while the program is halted; only a
			// fault ends the session.
			if runErr != nil {
				atomic.StoreInt32(&quit, 1)
			}
		}
	}

	<-errDone
	if runErr != nil {
		log.Print(runErr)
	}
	return runErr
}

// handleEvent maps host keys onto the board: hex keys feed the
// keypad, F1-F8 toggle DIP switches, Tab pulses button 0, Ctrl-R
// resets, Escape or Ctrl-C quits.
func (b *Board) handleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlR:
		b.Machine.Reset()
		return true
	case tcell.KeyTab:
		if b.Buttons != nil {
			b.Buttons.Press(0)
			go func() {
				time.Sleep(100 * time.Millisecond)
				b.Buttons.Release(0)
			}()
		}
		return true
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4,
		tcell.KeyF5, tcell.KeyF6, tcell.KeyF7, tcell.KeyF8:
		if b.Switches != nil {
			b.Switches.Toggle(int(key.Key() - tcell.KeyF1))
		}
		return true
	}

	if b.Keypad != nil {
		r := key.Rune()
		switch {
		case r >= '0' && r <= '9':
			b.Keypad.Press(byte(r - '0'))
		case r >= 'a' && r <= 'f':
			b.Keypad.Press(byte(r-'a') + 10)
		case r >= 'A' && r <= 'F':
			b.Keypad.Press(byte(r-'A') + 10)
		}
	}
	return true
}

var (
	styleDefault = tcell.StyleDefault
	styleLit     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLCD     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

func (b *Board) render(s tcell.Screen) {
	s.Clear()
	row := 0

	if b.LEDs != nil {
		mask := b.LEDs.Mask()
		print(s, 0, row, styleDefault, "LED ")
		for i := 7; i >= 0; i-- {
			st, ch := styleDim, '○'
			if mask&(1<<i) != 0 {
				st, ch = styleLit, '●'
			}
			s.SetContent(4+(7-i)*2, row, ch, nil, st)
		}
		row += 2
	}

	if b.Display != nil {
		print(s, 0, row, styleDefault, "7SEG")
		for i := 0; i < sevenseg.NumDigits; i++ {
			print(s, 5+i*3, row, styleLit, segChar(b.Display.Digit(i)))
		}
		row += 2
	}

	if b.LCD != nil {
		print(s, 0, row, styleDefault, "LCD  ["+b.LCD.Line(0)+"]")
		print(s, 0, row+1, styleDefault, "     ["+b.LCD.Line(1)+"]")
		print(s, 5+1, row, styleLCD, b.LCD.Line(0))
		print(s, 5+1, row+1, styleLCD, b.LCD.Line(1))
		row += 3
	}

	if b.Matrix != nil {
		for r := 0; r < matrix.Rows; r++ {
			bits := b.Matrix.Row(r)
			for c := 0; c < 16; c++ {
				st, ch := styleDim, '·'
				if bits&(1<<c) != 0 {
					st, ch = styleLit, '█'
				}
				s.SetContent(c*2, row+r, ch, nil, st)
			}
		}
		row += matrix.Rows + 1
	}

	if b.Switches != nil {
		print(s, 0, row, styleDefault, "DIP ")
		for i := 0; i < switches.NumSwitches; i++ {
			ch := "↓"
			st := styleDim
			if b.Switches.Get(i) {
				ch = "↑"
				st = styleLit
			}
			print(s, 4+i*2, row, st, ch)
		}
		row += 2
	}

	if b.Buzzer != nil {
		if tone := b.Buzzer.Tone(); tone != 0 {
			print(s, 0, row, styleLit, fmt.Sprintf("TONE %d (%.0f Hz)", tone, b.Buzzer.Frequency()))
		} else {
			print(s, 0, row, styleDim, "TONE off")
		}
		row += 2
	}

	b.renderCPU(s, &row)
	print(s, 0, row+1, styleDim, "0-F keypad  F1-F8 dip  Tab button  ^R reset  Esc quit")
	s.Show()
}

func (b *Board) renderCPU(s tcell.Screen, row *int) {
	r := b.Machine.CPU.Registers
	print(s, 0, *row, styleDefault, fmt.Sprintf(
		"A=%02X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X",
		r.A, r.BC(), r.DE(), r.HL(), r.IX, r.IY, r.SP, r.PC))
	*row++

	flags := ""
	for i, name := range []string{"S", "Z", "-", "H", "-", "P", "N", "C"} {
		if r.F&(0x80>>i) != 0 {
			flags += name
		} else {
			flags += "-"
		}
	}
	state := "RUN"
	if b.Machine.CPU.Halted() {
		state = "HALT"
	}
	ins := dasm.Decode(func(a uint16) byte {
		return b.Machine.RAM.ReadByte(memory.Pointer(a))
	}, r.PC)
	print(s, 0, *row, styleDefault, fmt.Sprintf("F=%s  %-4s  %04X: %s", flags, state, ins.Addr, ins.Text))
	*row++
}

// segChar folds a segment pattern back to a displayable character.
func segChar(pattern byte) string {
	for i, p := range sevenseg.Digits {
		if p == pattern&0x7F {
			return fmt.Sprintf("%X", i)
		}
	}
	if pattern&0x7F == 0 {
		return " "
	}
	return "?"
}

func print(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
