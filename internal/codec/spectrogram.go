package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const spectrumFFTSize = 1024

// Spectrogram renders a mono signal as a width x height PNG, time on the
// X axis and linear frequency on Y (low at the bottom).
func Spectrogram(mono []float64, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid spectrogram size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}

	// Columns beyond the signal stay black.
	step := len(mono) / width
	if step < spectrumFFTSize {
		step = spectrumFFTSize
	}
	hann := window.Hann(spectrumFFTSize)
	frame := make([]float64, spectrumFFTSize)

	for x := 0; x < width; x++ {
		start := x * step
		if start+spectrumFFTSize > len(mono) {
			break
		}
		for i := range frame {
			frame[i] = mono[start+i] * hann[i]
		}
		coeffs := fft.FFTReal(frame)

		for y := 0; y < height; y++ {
			idx := (height - 1 - y) * (spectrumFFTSize / 2) / height
			mag := cmplx.Abs(coeffs[idx])
			// -60 dB .. 0 dB relative to a full-scale sine in this window
			db := 20 * math.Log10(mag/(spectrumFFTSize/4)+1e-12)
			level := math.Min(math.Max((db+60)/60, 0), 1)
			intensity := uint8(level * 255)
			img.Set(x, y, color.RGBA{R: intensity / 2, G: intensity, B: intensity / 2, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
