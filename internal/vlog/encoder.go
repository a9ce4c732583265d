package vlog

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/trafficlab/tlcfi2vlog/internal/tlcfi"
)

// timeReferenceIntervalMS is how much elapsed time may pass before a
// fresh time reference record is inserted (five minutes).
const timeReferenceIntervalMS = 300_000

// maxDeltaDS is the largest delta time representable in the 3-digit
// field of a change record.
const maxDeltaDS = 0xFFF

// maxSignalEntries caps one signal change record. The count digit itself
// allows 15, but the 40-digit payload budget of the record allows only
// 10 four-digit entries.
const maxSignalEntries = 10

// maxRecordEntries is the hard limit of the 1-digit count field.
const maxRecordEntries = 15

// Encoder turns an ordered sequence of timestamped changes into the
// ordered list of VLog3 messages. It is a one-shot batch component: the
// caller hands over the full sequence at once.
type Encoder struct {
	start       time.Time
	name        string
	signalIDs   map[string]uint8
	detectorIDs map[string]uint8
}

// NewEncoder builds an encoder for one conversion run. start is the
// absolute wall-clock moment corresponding to elapsed time 0, name the
// controller display name, and the two maps resolve entity names to
// wire IDs.
func NewEncoder(start time.Time, name string, signalIDs, detectorIDs map[string]uint8) *Encoder {
	return &Encoder{
		start:       start,
		name:        name,
		signalIDs:   signalIDs,
		detectorIDs: detectorIDs,
	}
}

// Encode produces the full message list: a header block (time reference
// anchored at elapsed time 0 plus identification), then one or more
// change records per batch, with fresh time references inserted whenever
// five minutes of elapsed time have passed since the last one.
func (e *Encoder) Encode(changes []tlcfi.TimestampedChanges) ([]string, error) {
	msgs := make([]string, 0, len(changes)+2)
	msgs = append(msgs, timeReference(e.start, 0), identification(e.name))

	var lastReferenceMS uint64
	for _, tc := range changes {
		// Elapsed times are non-decreasing except right after a
		// controller reset, where the timeline restarts near zero.
		// The unsigned difference then wraps past the interval and
		// re-anchors the reference immediately instead of producing
		// a negative delta.
		if tc.MsFromBeginning-lastReferenceMS >= timeReferenceIntervalMS {
			msgs = append(msgs, timeReference(e.start, tc.MsFromBeginning))
			lastReferenceMS = tc.MsFromBeginning
		}
		records, err := e.encodeChanges(tc, lastReferenceMS)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, records...)
	}
	return msgs, nil
}

func (e *Encoder) encodeChanges(tc tlcfi.TimestampedChanges, lastReferenceMS uint64) ([]string, error) {
	deltaDS := (tc.MsFromBeginning - lastReferenceMS) / 100
	if deltaDS > maxDeltaDS {
		return nil, fmt.Errorf("%w: %d ds at %d ms", ErrDeltaOverflow, deltaDS, tc.MsFromBeginning)
	}

	switch tc.Kind {
	case tlcfi.KindSignal:
		entries, err := e.resolveSignals(tc)
		if err != nil {
			return nil, err
		}
		// One record fits at most maxSignalEntries entries; larger
		// batches are spread evenly over consecutive records that
		// share the same delta time.
		chunks := splitEntries(entries, maxSignalEntries)
		records := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			records = append(records, changeRecord(typeSignalChange, deltaDS, chunk))
		}
		return records, nil
	case tlcfi.KindDetector:
		entries, err := e.resolveDetectors(tc)
		if err != nil {
			return nil, err
		}
		// Detector records are not split the way signal records are;
		// the count digit is still a hard limit.
		// TODO: give detector records the same split treatment once
		// the behavior is confirmed against reference captures.
		if len(entries) > maxRecordEntries {
			return nil, fmt.Errorf("%w: %d detector entries at %d ms",
				ErrTooManyEntries, len(entries), tc.MsFromBeginning)
		}
		return []string{changeRecord(typeDetectorChange, deltaDS, entries)}, nil
	default:
		return nil, fmt.Errorf("vlog: cannot encode %s changes", tc.Kind)
	}
}

func (e *Encoder) resolveSignals(tc tlcfi.TimestampedChanges) ([]wireEntry, error) {
	entries := make([]wireEntry, 0, len(tc.Names))
	for i, name := range tc.Names {
		id, ok := e.signalIDs[name]
		if !ok {
			return nil, fmt.Errorf("%w: signal %q", ErrUnknownName, name)
		}
		code, ok := signalCodes[tc.SignalStates[i]]
		if !ok {
			return nil, fmt.Errorf("vlog: no wire code for signal state %d", tc.SignalStates[i])
		}
		entries = append(entries, wireEntry{ID: id, Code: code})
	}
	sortEntries(entries)
	return entries, nil
}

func (e *Encoder) resolveDetectors(tc tlcfi.TimestampedChanges) ([]wireEntry, error) {
	entries := make([]wireEntry, 0, len(tc.Names))
	for i, name := range tc.Names {
		id, ok := e.detectorIDs[name]
		if !ok {
			return nil, fmt.Errorf("%w: detector %q", ErrUnknownName, name)
		}
		code, ok := detectorCodes[tc.DetectorStates[i]]
		if !ok {
			return nil, fmt.Errorf("vlog: no wire code for detector state %d", tc.DetectorStates[i])
		}
		entries = append(entries, wireEntry{ID: id, Code: code})
	}
	sortEntries(entries)
	return entries, nil
}

// sortEntries orders a record's entries by ascending wire ID. The sort is
// stable so equal IDs keep their input order, though IDs are expected to
// be unique within a batch.
func sortEntries(entries []wireEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
}

// splitEntries chunks entries so no chunk exceeds limit, spreading them
// as evenly as possible: 18 entries with limit 10 become 9+9, not 10+8.
func splitEntries(entries []wireEntry, limit int) [][]wireEntry {
	if len(entries) <= limit {
		return [][]wireEntry{entries}
	}
	records := (len(entries) + limit - 1) / limit
	size := (len(entries) + records - 1) / records
	return lo.Chunk(entries, size)
}
