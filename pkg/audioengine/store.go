package audioengine

import (
	"errors"
	"math"

	"hdxstems/internal/codec"

	"github.com/faiface/beep"
)

// SampleStore holds the decoded PCM of one stem. It never changes after
// construction; samples never leave the package.
type SampleStore struct {
	rate     beep.SampleRate
	channels [][]float64
	frames   int
}

func NewSampleStore(pcm *codec.PCM) (*SampleStore, error) {
	if pcm == nil || pcm.SampleRate <= 0 || len(pcm.Channels) == 0 {
		return nil, errors.New("sample store needs a rate and at least one channel")
	}
	frames := pcm.Frames()
	channels := make([][]float64, len(pcm.Channels))
	for c, ch := range pcm.Channels {
		channels[c] = ch[:frames:frames]
	}
	return &SampleStore{
		rate:     beep.SampleRate(pcm.SampleRate),
		channels: channels,
		frames:   frames,
	}, nil
}

func (s *SampleStore) SampleRate() int  { return int(s.rate) }
func (s *SampleStore) NumChannels() int { return len(s.channels) }
func (s *SampleStore) Frames() int      { return s.frames }

// Duration in seconds.
func (s *SampleStore) Duration() float64 {
	return float64(s.frames) / float64(s.rate)
}

// left and right share the backing arrays; read only.
func (s *SampleStore) left() []float64 { return s.channels[0] }

func (s *SampleStore) right() []float64 {
	if len(s.channels) > 1 {
		return s.channels[1]
	}
	return s.channels[0]
}

func (s *SampleStore) frameAt(seconds float64) int {
	f := int(math.Round(seconds * float64(s.rate)))
	if f < 0 {
		return 0
	}
	if f > s.frames {
		return s.frames
	}
	return f
}

// storeReader streams a SampleStore from a frame offset at its native rate.
type storeReader struct {
	store *SampleStore
	pos   int
}

func (r *storeReader) Stream(samples [][2]float64) (int, bool) {
	remain := r.store.frames - r.pos
	if remain <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > remain {
		n = remain
	}
	l, rt := r.store.left(), r.store.right()
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{l[r.pos+i], rt[r.pos+i]}
	}
	r.pos += n
	return n, true
}

func (r *storeReader) Err() error { return nil }
