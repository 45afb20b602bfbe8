/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"bufio"
	"errors"
	"net"
	"os"
	"strings"
)

// ===============================
// Control owner
// ===============================

func (s *server) isOwner(c net.Conn) bool {
	s.controlMu.Lock()
	defer s.controlMu.Unlock()
	return s.controlOwner == c
}

func (s *server) claimOwner(c net.Conn) bool {
	s.controlMu.Lock()
	defer s.controlMu.Unlock()
	if s.controlOwner == nil {
		s.controlOwner = c
		s.eventSink = func(msg string) {
			if _, err := c.Write([]byte(msg + "\n")); err != nil {
				s.releaseOwner(c)
			}
		}
		return true
	}
	return s.controlOwner == c
}

// releaseOwner pauses playback when the controlling client goes away.
func (s *server) releaseOwner(c net.Conn) {
	s.controlMu.Lock()
	if s.controlOwner != c {
		s.controlMu.Unlock()
		return
	}
	s.controlOwner = nil
	s.eventSink = nil
	s.controlMu.Unlock()

	if s.eng.IsPlaying() {
		s.eng.Pause()
	}
	s.log.Infof("control released")
}

// ===============================
// IPC Server
// ===============================

func (s *server) listen(path string) error {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	s.lnMu.Lock()
	s.ln = ln
	s.lnMu.Unlock()

	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warnf("accept: %v", err)
			continue
		}
		go s.handleConn(c)
	}
}

func (s *server) handleConn(c net.Conn) {
	defer func() {
		s.releaseOwner(c)
		c.Close()
	}()

	sc := bufio.NewScanner(c)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		verb := strings.ToUpper(strings.Fields(line)[0])

		if verb == "WHOAMI" {
			if s.isOwner(c) {
				c.Write([]byte("OWNER\n"))
			} else {
				c.Write([]byte("OBSERVER\n"))
			}
			continue
		}

		if !readOnly[verb] && !s.claimOwner(c) {
			c.Write([]byte("ERR CONTROL_LOCKED\n"))
			continue
		}

		if _, err := c.Write([]byte(s.exec(line) + "\n")); err != nil {
			return
		}
	}
}
