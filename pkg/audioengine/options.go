package audioengine

import (
	"time"

	"hdxstems/internal/codec"
	"hdxstems/internal/logger"
)

const (
	SampleRate      = 48000
	ScheduleMargin  = 10 * time.Millisecond
	ResampleQuality = 4
	DecodeWorkers   = 2
)

type Options struct {
	SampleRate      int
	ScheduleMargin  time.Duration // lead time shared by every unit of one play
	ResampleQuality int           // beep.Resample quality, 1..6
	DecodeWorkers   int
	Transient       codec.TransientConfig
	Logger          *logger.Logger

	// OnTrackEnd runs on its own goroutine after the transport rewinds at the
	// end of the song.
	OnTrackEnd func()
}

func DefaultOptions() Options {
	return Options{
		SampleRate:      SampleRate,
		ScheduleMargin:  ScheduleMargin,
		ResampleQuality: ResampleQuality,
		DecodeWorkers:   DecodeWorkers,
		Transient:       codec.DefaultTransientConfig(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SampleRate <= 0 {
		o.SampleRate = d.SampleRate
	}
	if o.ScheduleMargin <= 0 {
		o.ScheduleMargin = d.ScheduleMargin
	}
	if o.ResampleQuality < 1 || o.ResampleQuality > 6 {
		o.ResampleQuality = d.ResampleQuality
	}
	if o.DecodeWorkers <= 0 {
		o.DecodeWorkers = d.DecodeWorkers
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}
