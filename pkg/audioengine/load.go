package audioengine

import (
	"context"
	"sync"

	"hdxstems/internal/codec"
)

// LoadResult is the outcome for one stem: Info on success, Err otherwise.
type LoadResult struct {
	Info StemInfo
	Err  error
}

type decoded struct {
	id    string
	store *SampleStore
	print string
	err   error
}

// Load decodes sources in parallel and installs the stems that succeed.
// A stem that fails to decode reports a *DecodeError and leaves the others
// alone. settings are applied before any unit can hear the new stem; stems
// without an entry get DefaultStemSettings. Loading while playing restarts
// the transport at the current position.
func (e *Engine) Load(ctx context.Context, sources map[string][]byte, settings map[string]StemSettings) map[string]LoadResult {
	results := make(map[string]LoadResult, len(sources))
	if len(sources) == 0 {
		return results
	}

	jobs := make(chan string, len(sources))
	for id := range sources {
		jobs <- id
	}
	close(jobs)

	out := make(chan decoded, len(sources))
	var wg sync.WaitGroup
	for w := 0; w < e.opts.DecodeWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				out <- e.decodeStem(ctx, id, sources[id])
			}
		}()
	}
	wg.Wait()
	close(out)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		for id := range sources {
			results[id] = LoadResult{Err: &DecodeError{StemID: id, Err: ErrClosed}}
		}
		return results
	}

	wasPlaying := e.playing
	if wasPlaying {
		e.pauseLocked()
	}

	for d := range out {
		if d.err != nil {
			e.log.Errorf("load %s: %v", d.id, d.err)
			results[d.id] = LoadResult{Err: &DecodeError{StemID: d.id, Err: d.err}}
			continue
		}
		s, ok := settings[d.id]
		if !ok {
			s = DefaultStemSettings()
		}
		p := newStemPath(d.id, d.store, d.print, s)
		if old, ok := e.paths[d.id]; ok && old.fingerprint != d.print {
			e.forgetAnalysis(old.fingerprint)
		}
		e.paths[d.id] = p
		if dur := d.store.Duration(); dur > e.duration {
			e.duration = dur
		}
		set := p.settings()
		results[d.id] = LoadResult{Info: StemInfo{
			ID:          d.id,
			Duration:    d.store.Duration(),
			SampleRate:  d.store.SampleRate(),
			Channels:    d.store.NumChannels(),
			Gain:        set.Gain,
			Pan:         set.Pan,
			Muted:       set.Muted,
			Fingerprint: d.print,
		}}
		e.log.Infof("loaded %s: %.2fs %d Hz %dch", d.id, d.store.Duration(), d.store.SampleRate(), d.store.NumChannels())
	}

	if wasPlaying {
		if err := e.playLocked(); err != nil {
			e.log.Warnf("resume after load: %v", err)
		}
	}
	return results
}

func (e *Engine) decodeStem(ctx context.Context, id string, data []byte) decoded {
	if err := ctx.Err(); err != nil {
		return decoded{id: id, err: err}
	}
	pcm, err := codec.Decode(data)
	if err != nil {
		return decoded{id: id, err: err}
	}
	store, err := NewSampleStore(pcm)
	if err != nil {
		return decoded{id: id, err: err}
	}
	return decoded{id: id, store: store, print: codec.Fingerprint(data)}
}

// Unload stops and drops one stem. The song duration shrinks to the longest
// stem left.
func (e *Engine) Unload(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.paths[id]
	if !ok {
		return ErrUnknownStem
	}

	wasPlaying := e.playing
	if wasPlaying {
		e.pauseLocked()
	}
	delete(e.paths, id)
	e.forgetAnalysis(p.fingerprint)

	e.duration = 0
	for _, q := range e.paths {
		if d := q.store.Duration(); d > e.duration {
			e.duration = d
		}
	}
	e.pausedAt = clamp(e.pausedAt, 0, e.duration)
	e.log.Infof("unloaded %s", id)

	if wasPlaying && len(e.paths) > 0 {
		if err := e.playLocked(); err != nil {
			e.log.Warnf("resume after unload: %v", err)
		}
	}
	return nil
}
