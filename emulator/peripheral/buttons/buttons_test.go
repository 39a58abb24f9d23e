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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreas-jonsson/virtualz80/emulator/bus"
)

type irqCounter struct {
	count int
}

func (l *irqCounter) Interrupt() {
	l.count++
}

func TestPressReleaseMask(t *testing.T) {
	d := &Device{}
	b := &bus.Bus{}
	irq := &irqCounter{}
	b.Connect(irq)
	require.NoError(t, d.Install(b))

	d.Press(0)
	d.Press(3)
	assert.Equal(t, byte(0x09), b.In(Port))
	assert.Equal(t, 2, irq.count)

	d.Release(0)
	assert.Equal(t, byte(0x08), b.In(Port))
	assert.Equal(t, 2, irq.count, "release does not interrupt")
}
