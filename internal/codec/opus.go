/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package codec

import (
	"bytes"
	"io"

	"github.com/hraban/opus"
)

// opusfile always decodes at 48kHz regardless of the input rate in the header.
const opusRate = 48000

func decodeOpus(data []byte) (*PCM, error) {
	s, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	channels := opusChannels(data)
	frame := make([]float32, 5760*channels) // 120ms, the largest opus frame
	var interleaved []float64

	for {
		n, err := s.ReadFloat32(frame)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		for i := 0; i < n*channels; i++ {
			interleaved = append(interleaved, float64(frame[i]))
		}
	}

	return &PCM{
		SampleRate: opusRate,
		Channels:   deinterleave(interleaved, channels),
	}, nil
}

// opusChannels reads the channel count from the OpusHead packet:
// "OpusHead" | version (1 byte) | channel count (1 byte) | ...
func opusChannels(data []byte) int {
	idx := bytes.Index(data, []byte("OpusHead"))
	if idx < 0 || idx+9 >= len(data) {
		return 2
	}
	ch := int(data[idx+9])
	if ch < 1 || ch > 2 {
		return 2
	}
	return ch
}
