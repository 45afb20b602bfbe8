package audioengine

import (
	"strconv"
	"strings"

	"hdxstems/internal/codec"
)

// MonoSummary returns n normalized RMS buckets of the stem's first channel.
// Unknown stems give n zeros.
func (e *Engine) MonoSummary(id string, n int) []float64 {
	p := e.path(id)
	if p == nil {
		return codec.Summary(nil, n)
	}
	return codec.Summary(p.store.left(), n)
}

// StereoSummary is MonoSummary per side. Mono stems repeat channel 0.
func (e *Engine) StereoSummary(id string, n int) (left, right []float64) {
	p := e.path(id)
	if p == nil {
		return codec.StereoSummary(nil, nil, n)
	}
	var r []float64
	if p.store.NumChannels() > 1 {
		r = p.store.right()
	}
	return codec.StereoSummary(p.store.left(), r, n)
}

// TransientEvents finds kick-like peaks in the stem. A threshold <= 0 uses
// the configured one. Results are cached per stem content and threshold;
// concurrent callers for the same key share one analysis.
func (e *Engine) TransientEvents(id string, threshold float64) []codec.Transient {
	p := e.path(id)
	if p == nil {
		return []codec.Transient{}
	}
	cfg := e.opts.Transient
	if threshold > 0 {
		cfg.Threshold = threshold
	}
	key := p.fingerprint + "@" + strconv.FormatFloat(cfg.Threshold, 'g', -1, 64)

	e.cacheMu.Lock()
	cached, ok := e.kicks[key]
	e.cacheMu.Unlock()
	if ok {
		return append([]codec.Transient(nil), cached...)
	}

	v, _, _ := e.analysis.Do(key, func() (interface{}, error) {
		mono := codec.MonoMix(p.store.channels)
		events := codec.DetectTransients(mono, p.store.SampleRate(), cfg)
		e.log.Debugf("%s: %d transients at threshold %g", id, len(events), cfg.Threshold)

		// a stem unloaded or replaced meanwhile must not refill the cache
		e.mu.RLock()
		current := e.paths[id] == p
		if current {
			e.cacheMu.Lock()
			e.kicks[key] = events
			e.cacheMu.Unlock()
		}
		e.mu.RUnlock()
		return events, nil
	})
	return append([]codec.Transient(nil), v.([]codec.Transient)...)
}

// Spectrogram renders the stem's mono mix as a PNG.
func (e *Engine) Spectrogram(id string, width, height int) ([]byte, error) {
	p := e.path(id)
	var mono []float64
	if p != nil {
		mono = codec.MonoMix(p.store.channels)
	}
	return codec.Spectrogram(mono, width, height)
}

// Fingerprint is the content hash of the bytes the stem was loaded from,
// or "" for an unknown stem.
func (e *Engine) Fingerprint(id string) string {
	p := e.path(id)
	if p == nil {
		return ""
	}
	return p.fingerprint
}

func (e *Engine) forgetAnalysis(fingerprint string) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	for key := range e.kicks {
		if strings.HasPrefix(key, fingerprint+"@") {
			delete(e.kicks, key)
		}
	}
}
