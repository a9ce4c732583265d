package tlcfi

import "fmt"

// SignalStateFromCode maps a raw TLC-FI signal state code onto the closed
// SignalState enum. The code universe is fixed by the interface contract;
// anything outside it signals a configuration or protocol version mismatch.
func SignalStateFromCode(code uint64) (SignalState, error) {
	switch code {
	case 0:
		return SignalUnavailable, nil
	case 1:
		return SignalDark, nil
	case 2, 3:
		return SignalRed, nil
	case 5, 6:
		return SignalGreen, nil
	case 7, 8:
		return SignalAmber, nil
	case 9:
		return SignalAmberFlashing, nil
	default:
		return 0, fmt.Errorf("%w: signal state %d", ErrUnknownStateCode, code)
	}
}

// DetectorStateFromCode maps a raw TLC-FI detector state code onto the
// closed DetectorState enum.
func DetectorStateFromCode(code uint64) (DetectorState, error) {
	switch code {
	case 0:
		return DetectorFree, nil
	case 1:
		return DetectorOccupied, nil
	default:
		return 0, fmt.Errorf("%w: detector state %d", ErrUnknownStateCode, code)
	}
}

// Accumulate maps the surviving entries of an update onto domain states
// and groups them into one TimestampedChanges batch stamped with ms, the
// normalized elapsed time of the update. Updates without entries produce
// no batch and return nil.
func Accumulate(u Update, ms uint64) (*TimestampedChanges, error) {
	if len(u.Entries) == 0 {
		return nil, nil
	}

	tc := &TimestampedChanges{
		MsFromBeginning: ms,
		Kind:            u.Kind,
		Names:           make([]string, 0, len(u.Entries)),
	}

	switch u.Kind {
	case KindSignal:
		tc.SignalStates = make([]SignalState, 0, len(u.Entries))
		for _, e := range u.Entries {
			state, err := SignalStateFromCode(e.Code)
			if err != nil {
				return nil, fmt.Errorf("%w (id %q)", err, e.Name)
			}
			tc.Names = append(tc.Names, e.Name)
			tc.SignalStates = append(tc.SignalStates, state)
		}
	case KindDetector:
		tc.DetectorStates = make([]DetectorState, 0, len(u.Entries))
		for _, e := range u.Entries {
			state, err := DetectorStateFromCode(e.Code)
			if err != nil {
				return nil, fmt.Errorf("%w (id %q)", err, e.Name)
			}
			tc.Names = append(tc.Names, e.Name)
			tc.DetectorStates = append(tc.DetectorStates, state)
		}
	default:
		return nil, nil
	}

	return tc, nil
}
