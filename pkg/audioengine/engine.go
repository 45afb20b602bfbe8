/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"fmt"
	"sort"
	"sync"

	"hdxstems/internal/codec"
	"hdxstems/internal/logger"

	"github.com/faiface/beep"
	"golang.org/x/sync/singleflight"
)

// Engine plays a set of stems on one shared timeline.
//
// Lock order is e.mu then the output lock. The output goroutine only ever
// holds the output lock, so unit callbacks hand work back through goroutines.
type Engine struct {
	opts   Options
	log    *logger.Logger
	out    Output
	rate   beep.SampleRate
	master *liveValue
	bus    *masterBus

	mu          sync.RWMutex
	paths       map[string]*stemPath
	units       map[string]*unit
	initialized bool
	closed      bool
	playing     bool
	startFrame  int     // output frame where the current units begin
	startOffset float64 // song position at startFrame
	pausedAt    float64
	duration    float64
	gen         uint64 // bumped on every spawn and stop

	analysis singleflight.Group
	cacheMu  sync.Mutex
	kicks    map[string][]codec.Transient
}

// StemInfo describes a loaded stem.
type StemInfo struct {
	ID          string  `json:"id"`
	Duration    float64 `json:"duration"`
	SampleRate  int     `json:"sample_rate"`
	Channels    int     `json:"channels"`
	Gain        float64 `json:"gain"`
	Pan         float64 `json:"pan"`
	Muted       bool    `json:"muted"`
	Fingerprint string  `json:"fingerprint"`
}

func New(out Output, opts Options) *Engine {
	opts = opts.withDefaults()
	master := newLiveValue(1)
	return &Engine{
		opts:   opts,
		log:    opts.Logger,
		out:    out,
		rate:   beep.SampleRate(opts.SampleRate),
		master: master,
		bus:    newMasterBus(master),
		paths:  make(map[string]*stemPath),
		units:  make(map[string]*unit),
		kicks:  make(map[string][]codec.Transient),
	}
}

// Init opens the output device. It is safe to call again after a failure.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked()
}

func (e *Engine) initLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.initialized {
		return nil
	}
	if err := e.out.Open(e.rate, e.bus); err != nil {
		e.log.Errorf("open output: %v", err)
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	e.initialized = true
	e.log.Infof("output open at %d Hz", e.rate)
	return nil
}

// Close stops all playback, drops every stem and closes the device.
// Calling it more than once is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.stopUnitsLocked()
	e.playing = false
	e.dropStemsLocked()

	var err error
	if e.initialized {
		err = e.out.Close()
		e.initialized = false
	}
	e.log.Infof("engine closed")
	return err
}

// ResetStems drops every stem and rewinds. The device stays open.
func (e *Engine) ResetStems() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopUnitsLocked()
	e.playing = false
	e.dropStemsLocked()
	e.pausedAt = 0
	e.duration = 0
}

func (e *Engine) dropStemsLocked() {
	e.paths = make(map[string]*stemPath)
	e.cacheMu.Lock()
	e.kicks = make(map[string][]codec.Transient)
	e.cacheMu.Unlock()
}

func (e *Engine) IsPlaying() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playing
}

// Duration is the length of the longest loaded stem in seconds.
func (e *Engine) Duration() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.duration
}

// CurrentTime is the song position in seconds.
func (e *Engine) CurrentTime() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.positionLocked()
}

func (e *Engine) positionLocked() float64 {
	if !e.playing {
		return e.pausedAt
	}
	e.out.Lock()
	now := e.bus.rendered
	e.out.Unlock()

	pos := e.startOffset + float64(now-e.startFrame)/float64(e.rate)
	if pos < e.startOffset {
		pos = e.startOffset
	}
	return clamp(pos, 0, e.duration)
}

func (e *Engine) Stems() []StemInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]StemInfo, 0, len(e.paths))
	for _, id := range e.sortedIDsLocked() {
		p := e.paths[id]
		s := p.settings()
		out = append(out, StemInfo{
			ID:          id,
			Duration:    p.store.Duration(),
			SampleRate:  p.store.SampleRate(),
			Channels:    p.store.NumChannels(),
			Gain:        s.Gain,
			Pan:         s.Pan,
			Muted:       s.Muted,
			Fingerprint: p.fingerprint,
		})
	}
	return out
}

func (e *Engine) sortedIDsLocked() []string {
	ids := make([]string, 0, len(e.paths))
	for id := range e.paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (e *Engine) path(id string) *stemPath {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.paths[id]
}
