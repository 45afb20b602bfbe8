/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package codec

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyAudio        = errors.New("audio contains no samples")
)

// Format is the container/codec detected from the leading bytes of a stem.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
	FormatFLAC
	FormatVorbis
	FormatOpus
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	case FormatVorbis:
		return "vorbis"
	case FormatOpus:
		return "opus"
	}
	return "unknown"
}

// PCM is decoded audio split per channel, normalized to [-1, 1].
type PCM struct {
	SampleRate int
	Channels   [][]float64
}

// Frames is the length of the shortest channel.
func (p *PCM) Frames() int {
	if p == nil || len(p.Channels) == 0 {
		return 0
	}
	n := len(p.Channels[0])
	for _, ch := range p.Channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// Detect sniffs magic bytes. Ogg files are told apart by the first
// codec header packet (OpusHead vs \x01vorbis).
func Detect(data []byte) Format {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("OggS")):
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		if bytes.Contains(head, []byte("OpusHead")) {
			return FormatOpus
		}
		if bytes.Contains(head, []byte("\x01vorbis")) {
			return FormatVorbis
		}
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	}
	return FormatUnknown
}

// Decode turns a complete stem file into PCM.
func Decode(data []byte) (*PCM, error) {
	var (
		pcm *PCM
		err error
	)
	format := Detect(data)
	switch format {
	case FormatWAV:
		pcm, err = decodeWAV(data)
	case FormatMP3:
		pcm, err = decodeMP3(data)
	case FormatFLAC:
		pcm, err = decodeFLAC(data)
	case FormatVorbis:
		pcm, err = decodeVorbis(data)
	case FormatOpus:
		pcm, err = decodeOpus(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	if pcm.SampleRate <= 0 || len(pcm.Channels) == 0 || pcm.Frames() == 0 {
		return nil, fmt.Errorf("decode %s: %w", format, ErrEmptyAudio)
	}
	return pcm, nil
}

func deinterleave(data []float64, channels int) [][]float64 {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			out[c][i] = data[i*channels+c]
		}
	}
	return out
}
