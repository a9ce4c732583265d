package vlog

import "github.com/trafficlab/tlcfi2vlog/internal/tlcfi"

// Wire state codes, applied at emission time. The VLog state space is
// coarser than the TLC-FI one: unavailable and dark collapse onto the
// same code.
var signalCodes = map[tlcfi.SignalState]uint8{
	tlcfi.SignalUnavailable:   4,
	tlcfi.SignalDark:          4,
	tlcfi.SignalRed:           0,
	tlcfi.SignalGreen:         1,
	tlcfi.SignalAmber:         2,
	tlcfi.SignalAmberFlashing: 5,
}

var detectorCodes = map[tlcfi.DetectorState]uint8{
	tlcfi.DetectorFree:     0,
	tlcfi.DetectorOccupied: 1,
}
