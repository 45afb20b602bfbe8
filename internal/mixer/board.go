// Package mixer keeps the mute and solo buttons of a stem board in step
// with the engine. Solo mutes every other stem; releasing it restores each
// stem's own mute button.
package mixer

import (
	"errors"
	"sort"
	"sync"
)

var ErrUnknownStem = errors.New("mixer: unknown stem")

// Muter applies the effective mute of one stem. audioengine.Engine
// satisfies it.
type Muter interface {
	SetMute(id string, muted bool) error
}

type Board struct {
	mu     sync.Mutex
	target Muter
	muted  map[string]bool // the stem's own mute button
	solo   string
}

func NewBoard(target Muter) *Board {
	return &Board{target: target, muted: make(map[string]bool)}
}

// Track registers a stem with its own mute state and applies the effective
// mute, so a stem loaded during a solo is silenced too.
func (b *Board) Track(id string, muted bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted[id] = muted
	return b.target.SetMute(id, b.effective(id))
}

func (b *Board) Forget(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.muted, id)
	if b.solo == id {
		b.solo = ""
		b.applyAll()
	}
}

func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = make(map[string]bool)
	b.solo = ""
}

// SetMute changes the stem's own mute button.
func (b *Board) SetMute(id string, muted bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.muted[id]; !ok {
		return ErrUnknownStem
	}
	b.muted[id] = muted
	return b.target.SetMute(id, b.effective(id))
}

// Solo silences every stem except id. The soloed stem keeps its own mute.
func (b *Board) Solo(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.muted[id]; !ok {
		return ErrUnknownStem
	}
	b.solo = id
	return b.applyAll()
}

// Unsolo restores every stem's own mute button.
func (b *Board) Unsolo() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.solo == "" {
		return nil
	}
	b.solo = ""
	return b.applyAll()
}

func (b *Board) Soloed() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.solo
}

// Muted reports the stem's own mute button, not the effective state.
func (b *Board) Muted(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted[id]
}

// Effective reports whether the stem ends up silent, counting its own
// button and any solo held by another stem. Untracked ids count as unmuted
// stems, which is what a stem about to be loaded gets.
func (b *Board) Effective(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.effective(id)
}

func (b *Board) effective(id string) bool {
	return b.muted[id] || (b.solo != "" && id != b.solo)
}

func (b *Board) applyAll() error {
	ids := make([]string, 0, len(b.muted))
	for id := range b.muted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		if err := b.target.SetMute(id, b.effective(id)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
