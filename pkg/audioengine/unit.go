package audioengine

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// unit is a one-shot playback of a single stem. It outputs delay frames of
// silence, then the stem from its read offset through live gain and pan.
// A stopped unit never plays again; the next play spawns a fresh one.
type unit struct {
	path  *stemPath
	gain  effects.Gain
	pan   effects.Pan
	delay int

	// guarded by the output lock
	stopped bool
}

func newUnit(p *stemPath, offset float64, delay int, rate beep.SampleRate, quality int) *unit {
	var src beep.Streamer = &storeReader{store: p.store, pos: p.store.frameAt(offset)}
	if p.store.rate != rate {
		src = beep.Resample(quality, p.store.rate, rate, src)
	}
	u := &unit{path: p, delay: delay}
	u.gain.Streamer = src
	u.pan.Streamer = &u.gain
	return u
}

func (u *unit) Stream(samples [][2]float64) (int, bool) {
	if u.stopped {
		return 0, false
	}
	n := 0
	if u.delay > 0 {
		d := u.delay
		if d > len(samples) {
			d = len(samples)
		}
		for i := range samples[:d] {
			samples[i] = [2]float64{}
		}
		u.delay -= d
		n = d
		samples = samples[d:]
		if len(samples) == 0 {
			return n, true
		}
	}

	u.gain.Gain = u.path.liveGain.Load() - 1
	u.pan.Pan = u.path.livePan.Load()
	sn, ok := u.pan.Stream(samples)
	n += sn
	return n, ok || n > 0
}

func (u *unit) Err() error { return nil }

// streamer wraps the unit so onEnd runs when it drains on its own. A unit
// stopped by the transport does not report.
func (u *unit) streamer(onEnd func()) beep.Streamer {
	return beep.Seq(u, beep.Callback(func() {
		if !u.stopped {
			onEnd()
		}
	}))
}
