// Command tlcfi2vlog converts a TLC-FI capture file into a VLog3 message
// file for roadside monitoring equipment.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trafficlab/tlcfi2vlog/internal/logging"
	"github.com/trafficlab/tlcfi2vlog/internal/logline"
	"github.com/trafficlab/tlcfi2vlog/internal/mapping"
	"github.com/trafficlab/tlcfi2vlog/internal/pipeline"
)

var (
	logFile       = flag.String("log-file", "tlcfi.txt", "path to the TLC-FI capture file")
	mappingFile   = flag.String("mapping", "", "path to the VLog mapping file (legacy text or .toml)")
	startDateTime = flag.String("start-date-time", "", "capture start moment, e.g. 2021-12-15T11:00:00.000 (default: probed from the capture)")
	chronological = flag.Bool("chronological", false, "capture lines are already in chronological order (newest last)")
	outDir        = flag.String("out-dir", ".", "directory for the .vlg output file")
	logLevel      = flag.String("log-level", "info", "log level (trace debug info warn error off)")
)

func main() {
	flag.Parse()
	logging.ConfigureRuntime()
	if lvl, ok := logging.ParseLevel(*logLevel); ok {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tlcfi2vlog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *mappingFile == "" {
		return errors.New("-mapping is required")
	}
	cfg, err := mapping.Load(*mappingFile)
	if err != nil {
		return err
	}
	log.Debug().Str("controller", cfg.ControllerName).
		Int("signals", len(cfg.Signals)).
		Int("detectors", len(cfg.Detectors)).
		Msg("mapping loaded")

	lines, err := readLines(*logFile)
	if err != nil {
		return err
	}
	lines = logline.Ordered(lines, *chronological)

	start, err := resolveStartTime(lines)
	if err != nil {
		return err
	}

	msgs, err := pipeline.Run(pipeline.Options{
		Lines:     lines,
		StartTime: start,
		Mapping:   cfg,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, outputFileName(cfg.ControllerName, start))
	if err := writeMessages(path, msgs); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("messages", len(msgs)).Msg("wrote vlog output")
	return nil
}

func resolveStartTime(lines []string) (time.Time, error) {
	if *startDateTime == "" {
		return logline.StartTime(lines)
	}
	start, err := time.Parse(logline.TimeLayout, *startDateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse -start-date-time: %w", err)
	}
	return start, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	return lines, nil
}

func outputFileName(controllerName string, start time.Time) string {
	return fmt.Sprintf("%s_%s.vlg", controllerName, start.Format("20060102_150405"))
}

// writeMessages serializes the messages one per line, CRLF terminated,
// as the downstream VLog viewers expect.
func writeMessages(path string, msgs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, msg := range msgs {
		if _, err := w.WriteString(msg + "\r\n"); err != nil {
			f.Close()
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
