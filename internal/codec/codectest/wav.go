// Package codectest builds in-memory audio fixtures for tests.
package codectest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV encodes a 16-bit PCM file. fill returns the sample in [-1,1] for
// channel ch at frame i.
func WAV(t testing.TB, rate, channels, frames int, fill func(ch, i int) float64) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			v := math.Max(-1, math.Min(1, fill(c, i)))
			// rounds 0.5 and 0.25 to exact powers of two after decoding
			data[i*channels+c] = int(math.Round(v * 32767))
		}
	}

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return out
}

// FloatWAV writes interleaved samples as a 32-bit IEEE float file. With
// extensible set the fmt chunk uses WAVE_FORMAT_EXTENSIBLE with a float
// subformat.
func FloatWAV(t testing.TB, rate, channels int, samples []float32, extensible bool) []byte {
	t.Helper()

	le := binary.LittleEndian
	var fmtChunk bytes.Buffer
	tag := uint16(3)
	if extensible {
		tag = 0xFFFE
	}
	binary.Write(&fmtChunk, le, tag)
	binary.Write(&fmtChunk, le, uint16(channels))
	binary.Write(&fmtChunk, le, uint32(rate))
	binary.Write(&fmtChunk, le, uint32(rate*channels*4))
	binary.Write(&fmtChunk, le, uint16(channels*4))
	binary.Write(&fmtChunk, le, uint16(32))
	if extensible {
		binary.Write(&fmtChunk, le, uint16(22))
		binary.Write(&fmtChunk, le, uint16(32))
		binary.Write(&fmtChunk, le, uint32(0))
		// KSDATAFORMAT_SUBTYPE_IEEE_FLOAT
		fmtChunk.Write([]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}

	var pcm bytes.Buffer
	for _, v := range samples {
		binary.Write(&pcm, le, math.Float32bits(v))
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, le, uint32(4+8+fmtChunk.Len()+8+pcm.Len()))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(&out, le, uint32(fmtChunk.Len()))
	out.Write(fmtChunk.Bytes())
	out.WriteString("data")
	binary.Write(&out, le, uint32(pcm.Len()))
	out.Write(pcm.Bytes())
	return out.Bytes()
}

// Constant is a WAV holding the same level on every channel.
func Constant(t testing.TB, rate, channels int, seconds, level float64) []byte {
	t.Helper()
	return WAV(t, rate, channels, int(seconds*float64(rate)), func(int, int) float64 { return level })
}

// Kicks places decaying 60Hz bursts at the given times (seconds).
func Kicks(t testing.TB, rate int, seconds float64, at []float64) []byte {
	t.Helper()
	return WAV(t, rate, 1, int(seconds*float64(rate)), func(_ int, i int) float64 {
		return KickSample(rate, at, i)
	})
}

// KickSample is the raw value Kicks writes at frame i.
func KickSample(rate int, at []float64, i int) float64 {
	tm := float64(i) / float64(rate)
	v := 0.0
	for _, a := range at {
		d := tm - a
		if d < 0 || d > 0.15 {
			continue
		}
		v += 0.9 * math.Exp(-d*30) * math.Sin(2*math.Pi*60*d)
	}
	return v
}
