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

package asm

import "fmt"

// UndefinedLabelError is reported when pass 2 cannot resolve a symbol.
type UndefinedLabelError struct {
	Name string
	Line int
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("line %d: undefined label %q", e.Line, e.Name)
}

// InvalidOperandsError is reported when no encoding matches a
// mnemonic with the given operands.
type InvalidOperandsError struct {
	Mnemonic string
	Operands string
	Line     int
}

func (e *InvalidOperandsError) Error() string {
	if e.Operands == "" {
		return fmt.Sprintf("line %d: invalid operands for %s", e.Line, e.Mnemonic)
	}
	return fmt.Sprintf("line %d: invalid operands for %s: %s", e.Line, e.Mnemonic, e.Operands)
}

// BadNumberError is reported for a malformed numeric literal.
type BadNumberError struct {
	Text string
	Line int
}

func (e *BadNumberError) Error() string {
	return fmt.Sprintf("line %d: bad number %q", e.Line, e.Text)
}

// OutOfRangeRelativeError is reported when a JR or DJNZ target does
// not fit in a signed byte.
type OutOfRangeRelativeError struct {
	Offset int
	Line   int
}

func (e *OutOfRangeRelativeError) Error() string {
	return fmt.Sprintf("line %d: relative jump offset %d out of range [-128, 127]", e.Line, e.Offset)
}
