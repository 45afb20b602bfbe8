package audioengine

// Play starts every stem that still has audio at the resume position. All
// units are added in one output-locked batch and begin on the same frame,
// ScheduleMargin after the current clock.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.playing {
		e.log.Warnf("play ignored: already playing")
		return nil
	}
	if err := e.initLocked(); err != nil {
		return err
	}
	return e.playLocked()
}

func (e *Engine) playLocked() error {
	offset := e.pausedAt
	delay := e.rate.N(e.opts.ScheduleMargin)

	e.gen++
	gen := e.gen

	e.out.Lock()
	start := e.bus.rendered + delay
	for _, id := range e.sortedIDsLocked() {
		p := e.paths[id]
		// finished for this cycle
		if offset >= p.store.Duration() {
			continue
		}
		u := newUnit(p, offset, delay, e.rate, e.opts.ResampleQuality)
		stemID := id
		e.bus.mixer.Add(u.streamer(func() {
			go e.unitEnded(gen, stemID)
		}))
		e.units[id] = u
	}
	e.out.Unlock()

	if len(e.units) == 0 {
		e.log.Warnf("play aborted at %.3fs: no stem has audio left", offset)
		return ErrNothingToPlay
	}
	e.startFrame = start
	e.startOffset = offset
	e.playing = true
	e.log.Debugf("spawned %d units at %.3fs", len(e.units), offset)
	return nil
}

// Pause keeps the current position and stops every unit.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.playing {
		e.log.Warnf("pause ignored: not playing")
		return
	}
	e.pauseLocked()
}

func (e *Engine) pauseLocked() {
	// read the position while the playing branch is still live
	pos := e.positionLocked()
	e.stopUnitsLocked()
	e.pausedAt = pos
	e.playing = false
}

// Seek moves to t seconds, clamped to the song. A playing transport keeps
// playing from the new position.
func (e *Engine) Seek(t float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	t = clamp(t, 0, e.duration)
	if !e.playing {
		e.pausedAt = t
		return nil
	}
	e.stopUnitsLocked()
	e.playing = false
	e.pausedAt = t
	return e.playLocked()
}

// stopUnitsLocked removes every live unit before the next block renders.
func (e *Engine) stopUnitsLocked() {
	e.gen++
	if len(e.units) == 0 {
		return
	}
	e.out.Lock()
	for _, u := range e.units {
		u.stopped = true
	}
	e.bus.mixer.Clear()
	e.out.Unlock()
	e.log.Debugf("stopped %d units", len(e.units))
	e.units = make(map[string]*unit)
}

// unitEnded runs after a unit drained by itself. Reaching the end of the
// longest stem rewinds the song.
func (e *Engine) unitEnded(gen uint64, id string) {
	e.mu.Lock()
	if gen != e.gen || !e.playing {
		e.mu.Unlock()
		return
	}
	delete(e.units, id)
	tolerance := e.opts.ScheduleMargin.Seconds()
	if e.positionLocked() < e.duration-tolerance {
		e.mu.Unlock()
		return
	}
	e.stopUnitsLocked()
	e.playing = false
	e.pausedAt = 0
	e.log.Infof("end of track at %.3fs", e.duration)
	hook := e.opts.OnTrackEnd
	e.mu.Unlock()

	if hook != nil {
		go hook()
	}
}
