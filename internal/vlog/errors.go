package vlog

import "errors"

var (
	ErrUnknownName    = errors.New("vlog: name missing from mapping")
	ErrDeltaOverflow  = errors.New("vlog: delta time does not fit the 3-digit field")
	ErrTooManyEntries = errors.New("vlog: entry count does not fit the 1-digit field")
)
