/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */
package main

import (
	"net"
	"sync"

	"hdxstems/internal/config"
	"hdxstems/internal/logger"
	"hdxstems/internal/mixer"
	"hdxstems/pkg/audioengine"
)

type server struct {
	eng   *audioengine.Engine
	board *mixer.Board
	cfg   config.Config
	log   *logger.Logger

	// one connection controls playback, the rest observe
	controlMu    sync.Mutex
	controlOwner net.Conn
	eventSink    func(string)

	lnMu sync.Mutex
	ln   net.Listener
}

func newServer(eng *audioengine.Engine, cfg config.Config, log *logger.Logger) *server {
	return &server{
		eng:   eng,
		board: mixer.NewBoard(eng),
		cfg:   cfg,
		log:   log,
	}
}

func (s *server) close() {
	s.lnMu.Lock()
	if s.ln != nil {
		s.ln.Close()
	}
	s.lnMu.Unlock()
	s.eng.Close()
}
