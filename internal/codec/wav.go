/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

// wavFormatTag reads the format tag of the fmt chunk, resolving an
// EXTENSIBLE header to its subformat. The wav decoder skips the extension.
func wavFormatTag(data []byte) uint16 {
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if id == "fmt " {
			if body+2 > len(data) {
				return 0
			}
			tag := binary.LittleEndian.Uint16(data[body : body+2])
			if tag == wavFormatExtensible && size >= 26 && body+26 <= len(data) {
				tag = binary.LittleEndian.Uint16(data[body+24 : body+26])
			}
			return tag
		}
		if size < 0 || size > len(data) {
			return 0
		}
		off = body + size + size%2
	}
	return 0
}

func decodeWAV(data []byte) (*PCM, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid wav header", ErrUnsupportedFormat)
	}

	tag := wavFormatTag(data)
	isFloat := tag == wavFormatFloat
	switch {
	case isFloat && dec.BitDepth != 32:
		return nil, fmt.Errorf("%w: %d-bit float wav", ErrUnsupportedFormat, dec.BitDepth)
	case !isFloat && tag != wavFormatPCM:
		return nil, fmt.Errorf("%w: wav format tag %#x", ErrUnsupportedFormat, tag)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrEmptyAudio
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth == 0 {
		return nil, fmt.Errorf("unknown bit depth")
	}

	// 8-bit WAV is unsigned, everything wider is signed.
	factor := math.Pow(2, float64(bitDepth-1))
	offset := 0.0
	if bitDepth == 8 {
		offset = factor
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		if isFloat {
			// the decoder hands back the raw IEEE bits as int32
			samples[i] = float64(math.Float32frombits(uint32(v)))
			continue
		}
		samples[i] = (float64(v) - offset) / factor
	}
	// Free the int buffer early; stems can be several minutes long.
	buf.Data = nil

	return &PCM{
		SampleRate: buf.Format.SampleRate,
		Channels:   deinterleave(samples, buf.Format.NumChannels),
	}, nil
}
