/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hdxstems/internal/mixer"
	"hdxstems/pkg/audioengine"
)

// Upper bounds for analysis sizes requested over the socket.
const (
	maxBuckets   = 100000
	maxSpectroPx = 4096
)

// Commands that observers may send without taking control.
var readOnly = map[string]bool{
	"ABOUT":  true,
	"PING":   true,
	"STATUS": true,
	"WAVE":   true,
	"KICKS":  true,
}

func argFloat(parts []string, idx int) (float64, bool) {
	if len(parts) <= idx {
		return 0, false
	}
	v, err := strconv.ParseFloat(parts[idx], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func argInt(parts []string, idx int) (int, bool) {
	if len(parts) <= idx {
		return 0, false
	}
	v, err := strconv.Atoi(parts[idx])
	if err != nil {
		return 0, false
	}
	return v, true
}

func jsonLine(v interface{}) string {
	j, err := json.Marshal(v)
	if err != nil {
		return "ERR INTERNAL"
	}
	return string(j)
}

func errReply(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, audioengine.ErrUnknownStem), errors.Is(err, mixer.ErrUnknownStem):
		return "ERR UNKNOWN_STEM"
	case errors.Is(err, audioengine.ErrDeviceUnavailable):
		return "ERR DEVICE_UNAVAILABLE"
	case errors.Is(err, audioengine.ErrNothingToPlay):
		return "ERR NOTHING_TO_PLAY"
	case errors.Is(err, audioengine.ErrClosed):
		return "ERR CLOSED"
	}
	return "ERR INTERNAL"
}

// exec runs one protocol line and returns the reply without newline.
func (s *server) exec(line string) string {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "ERR ARG"
	}
	cmd := strings.ToUpper(parts[0])

	switch cmd {
	case "ABOUT":
		return fmt.Sprintf("%s V.%d.%d", server_name, version_major, version_minor)

	case "PING":
		return "Pong"

	case "STATUS":
		return jsonLine(s.status())

	case "WAVE":
		// WAVE <id> [buckets] [STEREO]
		if len(parts) < 2 {
			return "ERR ARG"
		}
		n := s.cfg.SummaryBuckets
		if v, ok := argInt(parts, 2); ok && v > 0 {
			n = v
		}
		if n > maxBuckets {
			return "ERR ARG"
		}
		resp := map[string]interface{}{"id": parts[1], "buckets": n}
		if len(parts) > 3 && strings.EqualFold(parts[3], "STEREO") {
			resp["left"], resp["right"] = s.eng.StereoSummary(parts[1], n)
		} else {
			resp["mono"] = s.eng.MonoSummary(parts[1], n)
		}
		return jsonLine(resp)

	case "KICKS":
		// KICKS <id> [threshold]
		if len(parts) < 2 {
			return "ERR ARG"
		}
		th, _ := argFloat(parts, 2)
		return jsonLine(s.eng.TransientEvents(parts[1], th))

	case "LOAD":
		// LOAD <id> <path>
		if len(parts) != 3 {
			return "ERR ARG"
		}
		return s.loadFiles(map[string]string{parts[1]: parts[2]})

	case "LOAD-DIR":
		if len(parts) != 2 {
			return "ERR ARG"
		}
		files, err := stemFiles(parts[1])
		if err != nil {
			return "ERR DIR_NOT_FOUND"
		}
		if len(files) == 0 {
			return "ERR NO_STEMS"
		}
		return s.loadFiles(files)

	case "UNLOAD":
		if len(parts) != 2 {
			return "ERR ARG"
		}
		err := s.eng.Unload(parts[1])
		if err == nil {
			s.board.Forget(parts[1])
			s.emitEvent("STATUS")
		}
		return errReply(err)

	case "RESET":
		s.eng.ResetStems()
		s.board.Reset()
		s.emitEvent("STOPPED")
		return "OK"

	case "PLAY":
		err := s.eng.Play()
		if err != nil {
			s.log.Warnf("play: %v", err)
		} else {
			s.emitEvent("STATUS")
		}
		return errReply(err)

	case "PAUSE":
		s.eng.Pause()
		s.emitEvent("STATUS")
		return "OK"

	case "SEEK":
		t, ok := argFloat(parts, 1)
		if !ok {
			return "ERR ARG"
		}
		err := s.eng.Seek(t)
		s.emitEvent("STATUS")
		return errReply(err)

	case "GAIN", "PAN":
		if len(parts) != 3 {
			return "ERR ARG"
		}
		v, ok := argFloat(parts, 2)
		if !ok {
			return "ERR ARG"
		}
		if cmd == "GAIN" {
			return errReply(s.eng.SetGain(parts[1], v))
		}
		return errReply(s.eng.SetPan(parts[1], v))

	case "MUTE":
		// MUTE <id> ON|OFF
		if len(parts) != 3 {
			return "ERR ARG"
		}
		var muted bool
		switch strings.ToUpper(parts[2]) {
		case "ON", "1", "TRUE":
			muted = true
		case "OFF", "0", "FALSE":
		default:
			return "ERR ARG"
		}
		return errReply(s.board.SetMute(parts[1], muted))

	case "SOLO":
		if len(parts) != 2 {
			return "ERR ARG"
		}
		return errReply(s.board.Solo(parts[1]))

	case "UNSOLO":
		return errReply(s.board.Unsolo())

	case "MASTER":
		v, ok := argFloat(parts, 1)
		if !ok {
			return "ERR ARG"
		}
		s.eng.SetMasterGain(v)
		return "OK"

	case "SPECTRO":
		// SPECTRO <id> <out.png> [width] [height]
		if len(parts) < 3 {
			return "ERR ARG"
		}
		w, h := 512, 128
		if v, ok := argInt(parts, 3); ok {
			w = v
		}
		if v, ok := argInt(parts, 4); ok {
			h = v
		}
		if w > maxSpectroPx || h > maxSpectroPx {
			return "ERR ARG"
		}
		png, err := s.eng.Spectrogram(parts[1], w, h)
		if err != nil {
			return "ERR ARG"
		}
		if err := os.WriteFile(parts[2], png, 0644); err != nil {
			return "ERR WRITE"
		}
		return "OK"
	}
	return "ERR UNKNOWN"
}

type statusReply struct {
	Playing  bool                   `json:"playing"`
	Time     float64                `json:"time"`
	Duration float64                `json:"duration"`
	Master   float64                `json:"master"`
	Soloed   string                 `json:"soloed,omitempty"`
	Stems    []audioengine.StemInfo `json:"stems"`
}

func (s *server) status() statusReply {
	stems := s.eng.Stems()
	// report the stem's own mute button, not the solo override
	for i := range stems {
		stems[i].Muted = s.board.Muted(stems[i].ID)
	}
	return statusReply{
		Playing:  s.eng.IsPlaying(),
		Time:     s.eng.CurrentTime(),
		Duration: s.eng.Duration(),
		Master:   s.eng.MasterGain(),
		Soloed:   s.board.Soloed(),
		Stems:    stems,
	}
}

func (s *server) emitEvent(t string) {
	s.controlMu.Lock()
	sink := s.eventSink
	s.controlMu.Unlock()
	if sink == nil {
		return
	}
	ev := map[string]interface{}{
		"type":     t,
		"playing":  s.eng.IsPlaying(),
		"time":     s.eng.CurrentTime(),
		"duration": s.eng.Duration(),
	}
	sink("EVENT " + jsonLine(ev))
}
