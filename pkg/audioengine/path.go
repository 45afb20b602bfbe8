package audioengine

import "sync"

// StemSettings are the user-facing controls of one stem. They are applied
// to a freshly decoded stem before it can play.
type StemSettings struct {
	Gain  float64 `json:"gain"`
	Pan   float64 `json:"pan"`
	Muted bool    `json:"muted"`
}

func DefaultStemSettings() StemSettings {
	return StemSettings{Gain: 1}
}

// stemPath owns a stem's samples and controls. gain is what the user asked
// for; liveGain is what the render thread hears (0 while muted).
type stemPath struct {
	id          string
	store       *SampleStore
	fingerprint string

	liveGain *liveValue
	livePan  *liveValue

	mu    sync.Mutex
	gain  float64
	muted bool
}

func newStemPath(id string, store *SampleStore, fingerprint string, s StemSettings) *stemPath {
	p := &stemPath{
		id:          id,
		store:       store,
		fingerprint: fingerprint,
		liveGain:    newLiveValue(0),
		livePan:     newLiveValue(0),
	}
	p.setGain(s.Gain)
	p.setPan(s.Pan)
	p.setMute(s.Muted)
	return p
}

func (p *stemPath) setGain(v float64) {
	v = clamp(v, 0, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain = v
	if !p.muted {
		p.liveGain.Store(v)
	}
}

func (p *stemPath) setPan(v float64) {
	p.livePan.Store(clamp(v, -1, 1))
}

func (p *stemPath) setMute(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if muted {
		p.liveGain.Store(0)
	} else {
		p.liveGain.Store(p.gain)
	}
}

func (p *stemPath) settings() StemSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return StemSettings{Gain: p.gain, Pan: p.livePan.Load(), Muted: p.muted}
}
