/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceUnavailable means the output could not be opened or resumed.
	// The transport stays paused; retrying after user action is safe.
	ErrDeviceUnavailable = errors.New("audio output unavailable, check the output device and retry")
	ErrNothingToPlay     = errors.New("no stem can start at the current position")
	ErrUnknownStem       = errors.New("unknown stem")
	ErrClosed            = errors.New("engine closed")
)

// DecodeError is the per-stem failure returned by Load.
type DecodeError struct {
	StemID string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("stem %q: %v", e.StemID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
