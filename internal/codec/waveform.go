package codec

import (
	"math"
)

// Loudest bucket is drawn at the ceiling, then boosted for visibility.
const summaryBoost = 1.5

// Summary reduces samples to buckets RMS values normalized to [0,1].
// Bucket boundaries are fractional; when there are fewer samples than
// buckets every sample gets its own bucket and the tail stays zero.
func Summary(samples []float64, buckets int) []float64 {
	if buckets <= 0 {
		return []float64{}
	}
	out := make([]float64, buckets)
	if len(samples) == 0 {
		return out
	}

	step := float64(len(samples)) / float64(buckets)
	if step < 1 {
		step = 1
	}

	peak := 0.0
	for b := range out {
		start := int(math.Floor(float64(b) * step))
		end := int(math.Floor(float64(b+1) * step))
		if end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			continue
		}

		var sum float64
		for _, v := range samples[start:end] {
			sum += v * v
		}
		rms := math.Sqrt(sum / float64(end-start))
		out[b] = rms
		if rms > peak {
			peak = rms
		}
	}

	if peak == 0 {
		peak = 1
	}
	for b, v := range out {
		out[b] = math.Min(v/peak*summaryBoost, 1.0)
	}
	return out
}

// StereoSummary summarizes left and right independently. A mono stem
// (nil right) is mirrored onto both sides.
func StereoSummary(left, right []float64, buckets int) ([]float64, []float64) {
	if right == nil {
		right = left
	}
	return Summary(left, buckets), Summary(right, buckets)
}
