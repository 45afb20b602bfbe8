package codec

import "math"

// biquad is an RBJ cookbook low-pass section (direct form I).
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newLowPass(cutoff float64, sampleRate int, q float64) *biquad {
	nyquist := float64(sampleRate) / 2
	if cutoff >= nyquist {
		cutoff = nyquist * 0.99
	}
	w0 := 2 * math.Pi * cutoff / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * q)
	cos := math.Cos(w0)
	a0 := 1 + alpha

	return &biquad{
		b0: (1 - cos) / 2 / a0,
		b1: (1 - cos) / a0,
		b2: (1 - cos) / 2 / a0,
		a1: -2 * cos / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// LowPass renders samples through a 2nd order Butterworth low-pass into a new slice.
func LowPass(samples []float64, sampleRate int, cutoff float64) []float64 {
	out := make([]float64, len(samples))
	if sampleRate <= 0 || cutoff <= 0 {
		copy(out, samples)
		return out
	}
	f := newLowPass(cutoff, sampleRate, math.Sqrt2/2)
	for i, v := range samples {
		out[i] = f.process(v)
	}
	return out
}

// MonoMix averages all channels into one.
func MonoMix(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	if len(channels) == 1 {
		out := make([]float64, len(channels[0]))
		copy(out, channels[0])
		return out
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < frames {
			frames = len(ch)
		}
	}
	out := make([]float64, frames)
	scale := 1 / float64(len(channels))
	for _, ch := range channels {
		for i := 0; i < frames; i++ {
			out[i] += ch[i] * scale
		}
	}
	return out
}
