// Package mapping loads the VLog/TLC-FI mapping artifact: the controller
// display name plus the signal and detector name->wire-ID tables.
//
// Two formats are supported, chosen by file extension: the legacy
// comment-sectioned text format produced by the commissioning tooling,
// and TOML for hand-written configs.
package mapping

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxID is the largest assignable wire ID.
const MaxID = 254

var (
	ErrNoControllerName = errors.New("mapping: no controller name found")
	ErrNoEntries        = errors.New("mapping: empty mapping table")
	ErrIDOutOfRange     = errors.New("mapping: wire ID out of range")
)

// Table maps entity names to VLog wire IDs.
type Table map[string]uint8

// Config is one loaded mapping artifact.
type Config struct {
	ControllerName string
	Signals        Table
	Detectors      Table
}

// Load reads the mapping artifact at path. Files ending in .toml use the
// TOML format; everything else is parsed as the legacy text format.
func Load(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = loadTOML(path)
	} else {
		cfg, err = loadLegacy(path)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ControllerName) == "" {
		return ErrNoControllerName
	}
	if len(c.Signals) == 0 {
		return fmt.Errorf("%w: signals", ErrNoEntries)
	}
	if len(c.Detectors) == 0 {
		return fmt.Errorf("%w: detectors", ErrNoEntries)
	}
	return nil
}
