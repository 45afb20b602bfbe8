/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"hdxstems/internal/config"
	"hdxstems/internal/logger"
	"hdxstems/pkg/audioengine"
)

const (
	version_major = 1
	version_minor = 0
	server_name   = "HDX-Stems-Server"
)

func main() {
	cfg := config.Load()
	socket := flag.String("socket", cfg.Socket, "Path unix socket kontrol")
	level := flag.String("level", cfg.LogLevel.String(), "Log level: debug, info, warn, error")
	flag.Parse()

	log := logger.New(os.Stderr, cfg.LogLevel)
	if lv, err := logger.ParseLevel(*level); err == nil {
		log.SetLevel(lv)
	} else {
		log.Warnf("%v, keeping %s", err, cfg.LogLevel)
	}

	var srv *server
	opts := cfg.EngineOptions(log)
	opts.OnTrackEnd = func() { srv.emitEvent("TRACK_END") }
	eng := audioengine.New(&audioengine.SpeakerOutput{Buffer: cfg.Buffer}, opts)
	srv = newServer(eng, cfg, log)

	// The device is opened lazily by PLAY when it is not ready here.
	if err := srv.eng.Init(); err != nil {
		log.Warnf("%v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Infof("shutting down")
		srv.close()
		os.Exit(0)
	}()

	log.Infof("%s V.%d.%d listening on %s", server_name, version_major, version_minor, *socket)
	if err := srv.listen(*socket); err != nil {
		log.Errorf("listen: %v", err)
		srv.eng.Close()
		os.Exit(1)
	}
}
