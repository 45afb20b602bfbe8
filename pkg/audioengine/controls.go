package audioengine

// SetGain sets the remembered gain of a stem, clamped to [0,1]. A muted
// stem stays silent until unmuted.
func (e *Engine) SetGain(id string, v float64) error {
	p := e.path(id)
	if p == nil {
		return ErrUnknownStem
	}
	p.setGain(v)
	return nil
}

// SetPan sets the stereo position of a stem, clamped to [-1,1].
func (e *Engine) SetPan(id string, v float64) error {
	p := e.path(id)
	if p == nil {
		return ErrUnknownStem
	}
	p.setPan(v)
	return nil
}

// SetMute silences a stem or restores its remembered gain.
func (e *Engine) SetMute(id string, muted bool) error {
	p := e.path(id)
	if p == nil {
		return ErrUnknownStem
	}
	p.setMute(muted)
	return nil
}

func (e *Engine) Settings(id string) (StemSettings, error) {
	p := e.path(id)
	if p == nil {
		return StemSettings{}, ErrUnknownStem
	}
	return p.settings(), nil
}

// SetMasterGain scales the whole mix, clamped to [0,1].
func (e *Engine) SetMasterGain(v float64) {
	e.master.Store(clamp(v, 0, 1))
}

func (e *Engine) MasterGain() float64 {
	return e.master.Load()
}
