package core

import "errors"

var (
	ErrBadArguments   = errors.New("arguments are not acceptable")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyRunning = errors.New("dedup is already running")
)
