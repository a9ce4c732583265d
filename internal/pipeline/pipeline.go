// Package pipeline drives one conversion run: capture lines in, VLog3
// messages out.
//
// The run is a fully sequential batch: the complete change-set list is
// materialized first and handed to the encoder once. Per-update shape
// problems are logged and skipped; contract violations (length mismatch,
// unknown state codes, unknown names, field overflow) abort the run.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trafficlab/tlcfi2vlog/internal/logline"
	"github.com/trafficlab/tlcfi2vlog/internal/mapping"
	"github.com/trafficlab/tlcfi2vlog/internal/tickclock"
	"github.com/trafficlab/tlcfi2vlog/internal/tlcfi"
	"github.com/trafficlab/tlcfi2vlog/internal/vlog"
)

// Options configures one conversion run.
type Options struct {
	// Lines are the capture lines in chronological order.
	Lines []string
	// StartTime is the absolute wall-clock moment of elapsed time 0.
	StartTime time.Time
	// Mapping resolves entity names and carries the controller name.
	Mapping mapping.Config
}

// Run converts the capture into the ordered VLog3 message list.
func Run(opts Options) ([]string, error) {
	changes, err := collectChanges(opts.Lines)
	if err != nil {
		return nil, err
	}
	enc := vlog.NewEncoder(opts.StartTime, opts.Mapping.ControllerName,
		opts.Mapping.Signals, opts.Mapping.Detectors)
	return enc.Encode(changes)
}

func collectChanges(lines []string) ([]tlcfi.TimestampedChanges, error) {
	var (
		clock   tickclock.Clock
		changes []tlcfi.TimestampedChanges
	)
	for _, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line, err := logline.Parse(raw)
		if err != nil {
			log.Warn().Str("line", truncate(raw)).Msg("skipping line that does not split as expected")
			continue
		}
		if !line.Inbound() {
			continue
		}

		update, err := tlcfi.DecodeUpdate([]byte(line.Payload))
		if err != nil {
			if errors.Is(err, tlcfi.ErrLengthMismatch) {
				return nil, fmt.Errorf("line %q: %w", truncate(raw), err)
			}
			log.Warn().Err(err).Str("line", truncate(raw)).Msg("skipping undecodable update")
			continue
		}

		if !clock.Started() {
			clock.Start(update.Tick)
		}
		ms, err := clock.Normalize(update.Tick)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", truncate(raw), err)
		}

		tc, err := tlcfi.Accumulate(update, ms)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", truncate(raw), err)
		}
		if tc != nil {
			changes = append(changes, *tc)
		}
	}
	log.Debug().Int("change_sets", len(changes)).Msg("capture collected")
	return changes, nil
}

const truncateAt = 120

func truncate(line string) string {
	if len(line) <= truncateAt {
		return line
	}
	return line[:truncateAt] + "..."
}
