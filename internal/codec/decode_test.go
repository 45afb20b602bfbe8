package codec

import (
	"errors"
	"testing"

	"hdxstems/internal/codec/codectest"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatWAV},
		{"riff not wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), FormatUnknown},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		{"mp3 id3", []byte("ID3\x04\x00\x00"), FormatMP3},
		{"mp3 sync", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"opus", append([]byte("OggS\x00\x02"), []byte("....OpusHead\x01\x02")...), FormatOpus},
		{"vorbis", append([]byte("OggS\x00\x02"), []byte("....\x01vorbis")...), FormatVorbis},
		{"ogg unknown", []byte("OggS\x00\x02....Speex"), FormatUnknown},
		{"empty", nil, FormatUnknown},
		{"text", []byte("hello world"), FormatUnknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.data); got != tt.want {
			t.Errorf("Detect(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeWAVStereo(t *testing.T) {
	data := codectest.WAV(t, 8000, 2, 400, func(ch, i int) float64 {
		if ch == 0 {
			return 0.5
		}
		return -0.25
	})

	pcm, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if pcm.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", pcm.SampleRate)
	}
	if len(pcm.Channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(pcm.Channels))
	}
	if pcm.Frames() != 400 {
		t.Errorf("Frames = %d, want 400", pcm.Frames())
	}
	for i := 0; i < pcm.Frames(); i++ {
		if pcm.Channels[0][i] != 0.5 || pcm.Channels[1][i] != -0.25 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, -0.25)", i, pcm.Channels[0][i], pcm.Channels[1][i])
		}
	}
}

func TestDecodeWAVMono(t *testing.T) {
	data := codectest.Constant(t, 4000, 1, 0.5, 0.25)
	pcm, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(pcm.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(pcm.Channels))
	}
	if pcm.Frames() != 2000 {
		t.Errorf("Frames = %d, want 2000", pcm.Frames())
	}
}

func TestDecodeFloatWAV(t *testing.T) {
	want := []float32{0.5, -0.5, 0.25, 0, -1, 0.125, 0.75, -0.0625}
	for _, extensible := range []bool{false, true} {
		data := codectest.FloatWAV(t, 8000, 2, want, extensible)
		if tag := wavFormatTag(data); tag != wavFormatFloat {
			t.Fatalf("wavFormatTag(extensible=%v) = %#x, want float", extensible, tag)
		}
		pcm, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(extensible=%v): %v", extensible, err)
		}
		if len(pcm.Channels) != 2 || pcm.Frames() != 4 {
			t.Fatalf("extensible=%v: %d channels, %d frames, want 2 and 4", extensible, len(pcm.Channels), pcm.Frames())
		}
		for i, w := range want {
			if got := pcm.Channels[i%2][i/2]; got != float64(w) {
				t.Errorf("extensible=%v sample %d = %v, want %v", extensible, i, got, w)
			}
		}
	}
}

func TestWAVFormatTagPCM(t *testing.T) {
	data := codectest.Constant(t, 8000, 1, 0.01, 0.5)
	if tag := wavFormatTag(data); tag != wavFormatPCM {
		t.Errorf("wavFormatTag(pcm) = %#x, want %#x", tag, wavFormatPCM)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("definitely not audio"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(garbage) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeTruncatedWAV(t *testing.T) {
	data := codectest.Constant(t, 8000, 2, 0.1, 0.5)
	if _, err := Decode(data[:20]); err == nil {
		t.Error("Decode(truncated) returned nil error")
	}
}

func TestPCMFramesShortestChannel(t *testing.T) {
	p := &PCM{SampleRate: 1, Channels: [][]float64{{1, 2, 3}, {1, 2}}}
	if p.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", p.Frames())
	}
	var nilPCM *PCM
	if nilPCM.Frames() != 0 {
		t.Errorf("nil Frames = %d, want 0", nilPCM.Frames())
	}
}

func TestOpusChannels(t *testing.T) {
	head := append([]byte("OggS....OpusHead"), 1, 1)
	if got := opusChannels(head); got != 1 {
		t.Errorf("opusChannels(mono) = %d, want 1", got)
	}
	if got := opusChannels([]byte("OggS")); got != 2 {
		t.Errorf("opusChannels(no head) = %d, want 2", got)
	}
}
