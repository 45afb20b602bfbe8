/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hdxstems/pkg/audioengine"
)

var stemExt = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// stemFiles maps stem id (file name without extension) to path for every
// audio file directly inside dir.
func stemFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !stemExt[ext] {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		files[id] = filepath.Join(dir, e.Name())
	}
	return files, nil
}

type loadReply struct {
	ID    string                `json:"id"`
	OK    bool                  `json:"ok"`
	Error string                `json:"error,omitempty"`
	Info  *audioengine.StemInfo `json:"info,omitempty"`
}

// stemSettings is what a stem is installed with: its previous gain and pan
// when reloaded, muted when another stem holds solo. own is the stem's own
// mute button.
func (s *server) stemSettings(id string) (set audioengine.StemSettings, own bool) {
	set, err := s.eng.Settings(id)
	if err != nil {
		set = audioengine.DefaultStemSettings()
	}
	set.Muted = s.board.Effective(id)
	return set, s.board.Muted(id)
}

// loadFiles reads and decodes stems. A reloaded stem keeps the settings it
// had, and the board re-applies any active solo.
func (s *server) loadFiles(files map[string]string) string {
	sources := make(map[string][]byte, len(files))
	settings := make(map[string]audioengine.StemSettings, len(files))
	var replies []loadReply

	own := make(map[string]bool, len(files))
	for id, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Errorf("read %s: %v", path, err)
			replies = append(replies, loadReply{ID: id, Error: "file not found"})
			continue
		}
		sources[id] = data
		settings[id], own[id] = s.stemSettings(id)
	}

	results := s.eng.Load(context.Background(), sources, settings)
	for id, res := range results {
		if res.Err != nil {
			replies = append(replies, loadReply{ID: id, Error: res.Err.Error()})
			continue
		}
		if err := s.board.Track(id, own[id]); err != nil {
			s.log.Warnf("track %s: %v", id, err)
		}
		info := res.Info
		info.Muted = own[id]
		replies = append(replies, loadReply{ID: id, OK: true, Info: &info})
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ID < replies[j].ID })

	s.emitEvent("STATUS")
	return jsonLine(replies)
}
