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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/andreas-jonsson/virtualz80/asm"
	"github.com/andreas-jonsson/virtualz80/dasm"
	"github.com/andreas-jonsson/virtualz80/emulator"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/buttons"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/buzzer"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/keypad"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/lcd"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/led"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/matrix"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/rtc"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/sevenseg"
	"github.com/andreas-jonsson/virtualz80/emulator/peripheral/switches"
	"github.com/andreas-jonsson/virtualz80/platform"
	"github.com/andreas-jonsson/virtualz80/version"
)

var (
	limitMIPS float64
	listing,
	dump,
	headless,
	ver bool
)

func init() {
	flag.BoolVar(&ver, "v", false, "Print version information")
	flag.BoolVar(&listing, "listing", false, "Print the assembler listing and exit")
	flag.BoolVar(&dump, "dump", false, "Print a disassembly of the assembled image and exit")
	flag.BoolVar(&headless, "headless", false, "Run without the front panel until HALT, then dump registers")
	flag.Float64Var(&limitMIPS, "mips", 1, "Limit CPU speed, 0 runs flat out")
}

func main() {
	flag.Parse()

	if ver {
		fmt.Printf("virtualz80 v%s\n", version.Current.FullString())
		fmt.Println(version.Copyright)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: virtualz80 [flags] program.asm")
		flag.PrintDefaults()
		os.Exit(2)
	}

	res, err := asm.AssembleFile(afero.NewOsFs(), flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if listing {
		fmt.Print(res.Listing)
		return
	}
	if dump {
		fmt.Print(dasm.Image(res.Image, 0))
		return
	}

	var (
		leds = &led.Device{}
		segs = &sevenseg.Device{}
		disp = &lcd.Device{}
		bzr  = &buzzer.Device{}
		keys = &keypad.Device{}
		dip  = &switches.Device{}
		btns = &buttons.Device{}
		dots = &matrix.Device{}
	)
	m := emulator.New([]peripheral.Peripheral{
		leds, segs, disp, bzr, keys, dip, btns, dots, &rtc.Device{},
	}...)
	defer m.Close()
	m.LoadProgram(res)

	if headless {
		if err := m.Run(limitMIPS, nil); err != nil {
			log.Fatal(err)
		}
		r := m.CPU.Registers
		fmt.Printf("A=%02X F=%02X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X\n",
			r.A, r.F, r.BC(), r.DE(), r.HL(), r.IX, r.IY, r.SP, r.PC)
		return
	}

	board := &platform.Board{
		Machine:   m,
		LEDs:      leds,
		Display:   segs,
		LCD:       disp,
		Matrix:    dots,
		Keypad:    keys,
		Switches:  dip,
		Buttons:   btns,
		Buzzer:    bzr,
		LimitMIPS: limitMIPS,
	}
	if err := platform.Start(board); err != nil {
		log.Fatal(err)
	}
}
