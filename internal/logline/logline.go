// Package logline adapts raw TLC-FI capture lines for the converter:
// splitting a line into its timestamp, direction and JSON payload,
// restoring chronological order, and probing the capture for its start
// time.
//
// A capture line looks like:
//
//	2021-12-15 11:00:00,074 INFO tlcFiMessages:41 - IN - {"jsonrpc":...}
package logline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the ISO 8601 layout used for start times, both on the
// command line and (after normalization) in capture line prefixes.
const TimeLayout = "2006-01-02T15:04:05.000"

// timestampWidth is the width of the `2021-12-15 11:00:00,074` prefix.
const timestampWidth = 23

var (
	ErrNotLogLine  = errors.New("logline: line does not split into timestamp, direction and payload")
	ErrNoStartTime = errors.New("logline: no parseable line to take the start time from")
)

// Line is one parsed capture line.
type Line struct {
	Timestamp string
	Direction string
	Payload   string
}

// Inbound reports whether the line is a message from the controller.
// Only inbound messages carry state updates worth converting.
func (l Line) Inbound() bool {
	return strings.Contains(l.Direction, "IN")
}

// Parse splits one raw capture line. Doubled quotes, an artifact of the
// capture tooling, are collapsed first.
func Parse(raw string) (Line, error) {
	cleaned := strings.ReplaceAll(raw, `""`, `"`)
	parts := strings.Split(cleaned, "- ")
	if len(parts) != 3 {
		return Line{}, ErrNotLogLine
	}
	return Line{Timestamp: parts[0], Direction: parts[1], Payload: parts[2]}, nil
}

// Ordered returns the capture lines in chronological order. Captures are
// either already chronological or newest-first, in which case they are
// reversed.
func Ordered(lines []string, chronological bool) []string {
	out := make([]string, len(lines))
	if chronological {
		copy(out, lines)
		return out
	}
	for i, line := range lines {
		out[len(lines)-1-i] = line
	}
	return out
}

// StartTime derives the capture start time from the timestamp prefix of
// the first well-formed line.
func StartTime(lines []string) (time.Time, error) {
	for _, raw := range lines {
		if len(raw) < timestampWidth {
			continue
		}
		if _, err := Parse(raw); err != nil {
			continue
		}
		stamp := raw[:timestampWidth]
		stamp = strings.ReplaceAll(stamp, ",", ".")
		stamp = strings.ReplaceAll(stamp, " ", "T")
		t, err := time.Parse(TimeLayout, stamp)
		if err != nil {
			return time.Time{}, fmt.Errorf("logline: parse start time %q: %w", stamp, err)
		}
		return t, nil
	}
	return time.Time{}, ErrNoStartTime
}
