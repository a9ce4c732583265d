package mapping

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type tomlConfig struct {
	ControllerName string         `toml:"controller_name"`
	Signals        map[string]int `toml:"signals"`
	Detectors      map[string]int `toml:"detectors"`
}

func loadTOML(path string) (Config, error) {
	var raw tomlConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("mapping: parse %s: %w", path, err)
	}

	signals, err := tableFromTOML(raw.Signals, "signals")
	if err != nil {
		return Config{}, err
	}
	detectors, err := tableFromTOML(raw.Detectors, "detectors")
	if err != nil {
		return Config{}, err
	}

	return Config{
		ControllerName: raw.ControllerName,
		Signals:        signals,
		Detectors:      detectors,
	}, nil
}

func tableFromTOML(raw map[string]int, section string) (Table, error) {
	table := make(Table, len(raw))
	for name, id := range raw {
		if id < 0 || id > MaxID {
			return nil, fmt.Errorf("%w: [%s] %s = %d", ErrIDOutOfRange, section, name, id)
		}
		table[name] = uint8(id)
	}
	return table, nil
}
