package codec

import (
	"math"
	"testing"
	"time"

	"hdxstems/internal/codec/codectest"
)

const testRate = 8000

func kickSignal(seconds float64, at []float64) []float64 {
	out := make([]float64, int(seconds*testRate))
	for i := range out {
		out[i] = codectest.KickSample(testRate, at, i)
	}
	return out
}

func TestDetectTransientsFindsKicks(t *testing.T) {
	at := []float64{0.5, 1.0, 1.5, 2.0}
	events := DetectTransients(kickSignal(3, at), testRate, DefaultTransientConfig())

	if len(events) != len(at) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(at), events)
	}
	for i, ev := range events {
		if math.Abs(ev.Time-at[i]) > 0.03 {
			t.Errorf("event %d at %.4fs, want near %.2fs", i, ev.Time, at[i])
		}
		if ev.Intensity <= 0.3 || ev.Intensity > 1 {
			t.Errorf("event %d intensity = %v, want in (0.3, 1]", i, ev.Intensity)
		}
		if ev.Channel != ChannelCenter {
			t.Errorf("event %d channel = %q, want %q", i, ev.Channel, ChannelCenter)
		}
	}
}

func TestDetectTransientsSpacing(t *testing.T) {
	cfg := DefaultTransientConfig()
	// 0.6 falls inside the 200ms hold-off of the 0.5 hit
	events := DetectTransients(kickSignal(2, []float64{0.5, 0.6, 1.0, 1.25}), testRate, cfg)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	for i := 1; i < len(events); i++ {
		if gap := events[i].Time - events[i-1].Time; gap < cfg.MinSpacing.Seconds() {
			t.Errorf("events %d and %d are %.4fs apart, want >= %v", i-1, i, gap, cfg.MinSpacing)
		}
	}
}

func TestDetectTransientsCustomSpacing(t *testing.T) {
	cfg := DefaultTransientConfig()
	cfg.MinSpacing = 600 * time.Millisecond
	events := DetectTransients(kickSignal(3, []float64{0.5, 1.0, 1.5, 2.0}), testRate, cfg)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
}

func TestDetectTransientsBelowThreshold(t *testing.T) {
	quiet := kickSignal(2, []float64{0.5, 1.0})
	for i := range quiet {
		quiet[i] *= 0.2
	}
	if events := DetectTransients(quiet, testRate, DefaultTransientConfig()); len(events) != 0 {
		t.Errorf("quiet signal produced %d events", len(events))
	}
}

func TestDetectTransientsHighFrequencyRejected(t *testing.T) {
	// hi-hat like 2kHz bursts are removed by the low-pass
	hats := make([]float64, 2*testRate)
	for i := range hats {
		hats[i] = 0.9 * math.Sin(2*math.Pi*2000*float64(i)/testRate)
	}
	if events := DetectTransients(hats, testRate, DefaultTransientConfig()); len(events) != 0 {
		t.Errorf("2kHz tone produced %d events", len(events))
	}
}

func TestDetectTransientsEmpty(t *testing.T) {
	if events := DetectTransients(nil, testRate, DefaultTransientConfig()); events == nil || len(events) != 0 {
		t.Errorf("DetectTransients(nil) = %v, want empty non-nil slice", events)
	}
	if events := DetectTransients([]float64{1, 1}, 0, DefaultTransientConfig()); len(events) != 0 {
		t.Errorf("DetectTransients(rate 0) = %v, want empty", events)
	}
}

func TestDominatesPlateau(t *testing.T) {
	x := []float64{0, 0.5, 0.5, 0.5, 0}
	if !dominates(x, 1, 0.5, 3) {
		t.Error("first plateau sample should count as the peak")
	}
	if dominates(x, 2, 0.5, 3) {
		t.Error("later plateau samples should not count as peaks")
	}
}

func TestLowPass(t *testing.T) {
	tone := func(freq float64) []float64 {
		out := make([]float64, 2*testRate)
		for i := range out {
			out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testRate)
		}
		return out
	}
	peak := func(x []float64) float64 {
		m := 0.0
		for _, v := range x[testRate:] { // skip filter settling
			m = math.Max(m, math.Abs(v))
		}
		return m
	}

	if p := peak(LowPass(tone(40), testRate, 150)); p < 0.9 {
		t.Errorf("40Hz peak after low-pass = %v, want >= 0.9", p)
	}
	if p := peak(LowPass(tone(1000), testRate, 150)); p > 0.1 {
		t.Errorf("1kHz peak after low-pass = %v, want <= 0.1", p)
	}
}

func TestMonoMix(t *testing.T) {
	got := MonoMix([][]float64{{1, 0.5}, {0, 0.5, 9}})
	want := []float64{0.5, 0.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mono[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if MonoMix(nil) != nil {
		t.Error("MonoMix(nil) should be nil")
	}
}
