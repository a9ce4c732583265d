package vlog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficlab/tlcfi2vlog/internal/testutil/testlog"
	"github.com/trafficlab/tlcfi2vlog/internal/tlcfi"
)

func testEncoder() *Encoder {
	signals := map[string]uint8{"02": 2, "71": 5, "72": 16}
	detectors := map[string]uint8{"D713": 1, "D681": 3}
	for i := 1; i <= 18; i++ {
		signals[fmt.Sprintf("S%02d", i)] = uint8(i + 100)
	}
	return NewEncoder(testStartTime(), "test", signals, detectors)
}

func signalChanges(ms uint64, names ...string) tlcfi.TimestampedChanges {
	tc := tlcfi.TimestampedChanges{
		MsFromBeginning: ms,
		Kind:            tlcfi.KindSignal,
		Names:           names,
	}
	for range names {
		tc.SignalStates = append(tc.SignalStates, tlcfi.SignalGreen)
	}
	return tc
}

func TestEncodeHeaderBlock(t *testing.T) {
	testlog.Start(t)
	msgs, err := testEncoder().Encode(nil)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "012021121511000000", msgs[0])
	assert.Equal(t, "040300007465737420202020202020202020202020202020", msgs[1])
}

func TestEncodeSignalAndDetectorRecords(t *testing.T) {
	testlog.Start(t)
	changes := []tlcfi.TimestampedChanges{
		signalChanges(5000, "71"),
		{
			MsFromBeginning: 5200,
			Kind:            tlcfi.KindDetector,
			Names:           []string{"D713"},
			DetectorStates:  []tlcfi.DetectorState{tlcfi.DetectorOccupied},
		},
	}
	msgs, err := testEncoder().Encode(changes)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "0E03210501", msgs[2], "signal 71 green at 50 ds")
	assert.Equal(t, "0603410101", msgs[3], "detector D713 occupied at 52 ds")
}

func TestEncodeSortsEntriesByWireID(t *testing.T) {
	testlog.Start(t)
	// Input order 72, 02, 71; wire IDs 16, 2, 5.
	msgs, err := testEncoder().Encode([]tlcfi.TimestampedChanges{
		signalChanges(0, "72", "02", "71"),
	})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "0E0003020105011001", msgs[2])
}

func TestEncodeSplitsLargeSignalBatches(t *testing.T) {
	testlog.Start(t)
	names := make([]string, 0, 18)
	for i := 1; i <= 18; i++ {
		names = append(names, fmt.Sprintf("S%02d", i))
	}
	msgs, err := testEncoder().Encode([]tlcfi.TimestampedChanges{
		signalChanges(1000, names...),
	})
	require.NoError(t, err)
	require.Len(t, msgs, 4, "header block plus two split records")

	first, second := msgs[2], msgs[3]
	assert.Equal(t, "0E00A9", first[:6], "nine entries at 10 ds")
	assert.Equal(t, "0E00A9", second[:6], "same delta time on both records")

	// All 18 entries in ascending wire ID order across the split.
	var ids []string
	for _, rec := range []string{first, second} {
		for i := 6; i < len(rec); i += 4 {
			ids = append(ids, rec[i:i+2])
		}
	}
	require.Len(t, ids, 18)
	for i := 0; i < 18; i++ {
		assert.Equal(t, fmt.Sprintf("%02X", i+101), ids[i])
	}
}

func TestEncodeInsertsTimeReferenceAfterFiveMinutes(t *testing.T) {
	testlog.Start(t)
	msgs, err := testEncoder().Encode([]tlcfi.TimestampedChanges{
		signalChanges(299_900, "71"),
		signalChanges(300_000, "71"),
	})
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "0EBB710501", msgs[2], "2999 ds, still against the original reference")
	assert.Equal(t, "012021121511050000", msgs[3], "fresh reference anchored at 11:05:00")
	assert.Equal(t, "0E00010501", msgs[4], "delta restarts at zero")
}

func TestEncodeUnknownNameFails(t *testing.T) {
	testlog.Start(t)
	_, err := testEncoder().Encode([]tlcfi.TimestampedChanges{
		signalChanges(0, "nope"),
	})
	require.ErrorIs(t, err, ErrUnknownName)

	_, err = testEncoder().Encode([]tlcfi.TimestampedChanges{{
		MsFromBeginning: 0,
		Kind:            tlcfi.KindDetector,
		Names:           []string{"nope"},
		DetectorStates:  []tlcfi.DetectorState{tlcfi.DetectorFree},
	}})
	require.ErrorIs(t, err, ErrUnknownName)
}

func TestEncodeOversizedDetectorBatchFails(t *testing.T) {
	testlog.Start(t)
	detectors := make(map[string]uint8)
	tc := tlcfi.TimestampedChanges{Kind: tlcfi.KindDetector}
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("D%02d", i)
		detectors[name] = uint8(i)
		tc.Names = append(tc.Names, name)
		tc.DetectorStates = append(tc.DetectorStates, tlcfi.DetectorFree)
	}
	enc := NewEncoder(testStartTime(), "test", nil, detectors)
	_, err := enc.Encode([]tlcfi.TimestampedChanges{tc})
	require.ErrorIs(t, err, ErrTooManyEntries)
}

func TestEncodeIsRepeatable(t *testing.T) {
	testlog.Start(t)
	changes := []tlcfi.TimestampedChanges{
		signalChanges(0, "71", "02"),
		signalChanges(150_000, "72"),
		signalChanges(310_000, "71"),
	}
	first, err := testEncoder().Encode(changes)
	require.NoError(t, err)
	second, err := testEncoder().Encode(changes)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
