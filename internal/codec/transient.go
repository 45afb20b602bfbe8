package codec

import (
	"math"
	"time"
)

// ChannelCenter is the only spatial tag the detector emits today.
const ChannelCenter = "center"

// Transient is one percussive onset inside a stem.
type Transient struct {
	Time      float64 `json:"time"`
	Intensity float64 `json:"intensity"`
	Channel   string  `json:"channel"`
}

type TransientConfig struct {
	Threshold  float64       // absolute amplitude of the filtered signal
	CutoffHz   float64       // low-pass cutoff isolating the kick fundamental
	Window     int           // ± samples a peak must dominate
	MinSpacing time.Duration // between accepted peaks
}

func DefaultTransientConfig() TransientConfig {
	return TransientConfig{
		Threshold:  0.3,
		CutoffHz:   150,
		Window:     500,
		MinSpacing: 200 * time.Millisecond,
	}
}

func (c TransientConfig) withDefaults() TransientConfig {
	d := DefaultTransientConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.CutoffHz <= 0 {
		c.CutoffHz = d.CutoffHz
	}
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.MinSpacing <= 0 {
		c.MinSpacing = d.MinSpacing
	}
	return c
}

// DetectTransients low-passes a mono signal and picks peaks above the
// threshold. Consecutive results are always at least MinSpacing apart.
func DetectTransients(mono []float64, sampleRate int, cfg TransientConfig) []Transient {
	events := []Transient{}
	if len(mono) == 0 || sampleRate <= 0 {
		return events
	}
	cfg = cfg.withDefaults()

	filtered := LowPass(mono, sampleRate, cfg.CutoffHz)
	spacing := int(math.Ceil(cfg.MinSpacing.Seconds() * float64(sampleRate)))
	lastPeak := -1

	for i := 0; i < len(filtered); i++ {
		v := math.Abs(filtered[i])
		if v <= cfg.Threshold {
			continue
		}
		// cheap ±1 rejection before the full window scan
		if i > 0 && math.Abs(filtered[i-1]) > v {
			continue
		}
		if i+1 < len(filtered) && math.Abs(filtered[i+1]) > v {
			continue
		}
		if !dominates(filtered, i, v, cfg.Window) {
			continue
		}
		if lastPeak >= 0 && i-lastPeak < spacing {
			continue
		}

		events = append(events, Transient{
			Time:      float64(i) / float64(sampleRate),
			Intensity: math.Min(math.Max(v, 0), 1),
			Channel:   ChannelCenter,
		})
		lastPeak = i
		// nothing inside the spacing can be accepted anyway
		i += spacing - 1
	}
	return events
}

// dominates reports whether v is the window maximum. Equal values earlier in
// the window belong to a plateau that was already considered, so only the
// first sample of a plateau counts as the peak.
func dominates(x []float64, i int, v float64, window int) bool {
	lo := i - window
	if lo < 0 {
		lo = 0
	}
	hi := i + window
	if hi >= len(x) {
		hi = len(x) - 1
	}
	for j := lo; j <= hi; j++ {
		if j == i {
			continue
		}
		a := math.Abs(x[j])
		if a > v || (j < i && a == v) {
			return false
		}
	}
	return true
}
