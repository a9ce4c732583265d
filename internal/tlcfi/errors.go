package tlcfi

import "errors"

var (
	ErrMissingTick      = errors.New("tlcfi: missing or malformed tick")
	ErrLengthMismatch   = errors.New("tlcfi: id and state array lengths differ")
	ErrMalformedState   = errors.New("tlcfi: state value is neither integer nor null")
	ErrUnknownStateCode = errors.New("tlcfi: unknown state code")
)
