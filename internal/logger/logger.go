/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int32(l))
}

// ParseLevel accepts debug, info, warn/warning and error (any case).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes "[Tag] message" lines at or above its level.
// A nil *Logger discards everything.
type Logger struct {
	level atomic.Int32
	out   *log.Logger
}

func New(w io.Writer, level Level) *Logger {
	l := &Logger{out: log.New(w, "", log.LstdFlags)}
	l.level.Store(int32(level))
	return l
}

func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.level.Store(int32(level))
}

func (l *Logger) Level() Level {
	if l == nil {
		return LevelError + 1
	}
	return Level(l.level.Load())
}

func (l *Logger) Debugf(format string, a ...interface{}) { l.logf(LevelDebug, "[Debug] ", format, a) }
func (l *Logger) Infof(format string, a ...interface{})  { l.logf(LevelInfo, "[Info] ", format, a) }
func (l *Logger) Warnf(format string, a ...interface{})  { l.logf(LevelWarn, "[Warn] ", format, a) }
func (l *Logger) Errorf(format string, a ...interface{}) { l.logf(LevelError, "[Error] ", format, a) }

func (l *Logger) logf(level Level, tag, format string, a []interface{}) {
	if l == nil || level < l.Level() {
		return
	}
	l.out.Print(tag + fmt.Sprintf(format, a...))
}
