// +build sdl

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
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 48000
	numSamples = 512
)

// installAudio opens an SDL queue device and feeds it a square wave
// at the latched tone frequency from a small pump goroutine.
func (m *Device) installAudio() error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return err
	}

	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  numSamples,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}
	sdl.PauseAudioDevice(dev, false)

	go func() {
		var phase float64
		buf := make([]byte, numSamples)
		ticker := time.NewTicker(time.Second * numSamples / sampleRate / 2)
		defer ticker.Stop()

		for range ticker.C {
			if sdl.GetQueuedAudioSize(dev) > numSamples*4 {
				continue
			}
			freq := m.Frequency()
			for i := range buf {
				buf[i] = 128
				if freq > 0 {
					phase += freq / sampleRate
					if phase >= 1 {
						phase -= 1
					}
					if phase < 0.5 {
						buf[i] = 160
					} else {
						buf[i] = 96
					}
				}
			}
			sdl.QueueAudio(dev, buf)
		}
	}()
	return nil
}
