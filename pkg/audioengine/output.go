/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// Output is the audio device. Open starts pulling from bus on the device's
// own goroutine; Lock and Unlock exclude that goroutine so a batch of units
// can be added between two processing blocks.
type Output interface {
	Open(sr beep.SampleRate, bus beep.Streamer) error
	Lock()
	Unlock()
	Close() error
}

// SpeakerOutput plays through the system sound card via beep/speaker.
type SpeakerOutput struct {
	Buffer time.Duration
}

func (o *SpeakerOutput) Open(sr beep.SampleRate, bus beep.Streamer) error {
	buf := o.Buffer
	if buf <= 0 {
		buf = 20 * time.Millisecond
	}
	if err := speaker.Init(sr, sr.N(buf)); err != nil {
		return err
	}
	speaker.Play(bus)
	return nil
}

func (o *SpeakerOutput) Lock()   { speaker.Lock() }
func (o *SpeakerOutput) Unlock() { speaker.Unlock() }

func (o *SpeakerOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// ManualOutput renders only when asked. Tests use it as a sample-exact
// stand-in for a sound card.
type ManualOutput struct {
	BlockSize int

	mu      sync.Mutex
	bus     beep.Streamer
	openErr error
	opens   int
	closes  int
}

func NewManualOutput(blockSize int) *ManualOutput {
	if blockSize <= 0 {
		blockSize = 512
	}
	return &ManualOutput{BlockSize: blockSize}
}

// FailOpen makes the next Open calls fail with err until cleared with nil.
func (o *ManualOutput) FailOpen(err error) {
	o.mu.Lock()
	o.openErr = err
	o.mu.Unlock()
}

func (o *ManualOutput) Open(sr beep.SampleRate, bus beep.Streamer) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.openErr != nil {
		return o.openErr
	}
	o.bus = bus
	o.opens++
	return nil
}

func (o *ManualOutput) Lock()   { o.mu.Lock() }
func (o *ManualOutput) Unlock() { o.mu.Unlock() }

func (o *ManualOutput) Close() error {
	o.mu.Lock()
	o.bus = nil
	o.closes++
	o.mu.Unlock()
	return nil
}

// Render pulls frames from the bus in BlockSize blocks. Without an open bus
// it returns silence.
func (o *ManualOutput) Render(frames int) [][2]float64 {
	out := make([][2]float64, frames)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.bus == nil {
		return out
	}
	for pos := 0; pos < frames; pos += o.BlockSize {
		end := pos + o.BlockSize
		if end > frames {
			end = frames
		}
		o.bus.Stream(out[pos:end])
	}
	return out
}

func (o *ManualOutput) Opens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens
}

func (o *ManualOutput) Closes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closes
}

// masterBus sums every live unit and applies the master gain. rendered is
// the engine clock in output frames; it is touched only under the output lock.
type masterBus struct {
	mixer    beep.Mixer
	gain     effects.Gain
	master   *liveValue
	rendered int
}

func newMasterBus(master *liveValue) *masterBus {
	b := &masterBus{master: master}
	b.gain.Streamer = &b.mixer
	return b
}

func (b *masterBus) Stream(samples [][2]float64) (int, bool) {
	b.gain.Gain = b.master.Load() - 1
	b.gain.Stream(samples)
	b.rendered += len(samples)
	return len(samples), true
}

func (b *masterBus) Err() error { return nil }
