/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package codec

import (
	"bytes"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
)

func decodeMP3(data []byte) (*PCM, error) {
	s, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	return drainStreamer(s, format)
}

func decodeFLAC(data []byte) (*PCM, error) {
	s, format, err := flac.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return drainStreamer(s, format)
}

func decodeVorbis(data []byte) (*PCM, error) {
	s, format, err := vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	return drainStreamer(s, format)
}

// drainStreamer reads a beep decoder to the end. beep always yields stereo
// pairs, so mono sources keep only the left side.
func drainStreamer(s beep.StreamSeekCloser, format beep.Format) (*PCM, error) {
	defer s.Close()

	channels := format.NumChannels
	if channels < 1 || channels > 2 {
		channels = 2
	}

	total := s.Len()
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, 0, total)
	}

	var block [4096][2]float64
	for {
		n, ok := s.Stream(block[:])
		for i := 0; i < n; i++ {
			for c := 0; c < channels; c++ {
				out[c] = append(out[c], block[i][c])
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return &PCM{SampleRate: int(format.SampleRate), Channels: out}, nil
}
