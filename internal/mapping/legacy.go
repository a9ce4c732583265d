package mapping

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Legacy format: `//`-comment lines naming a section ("TLC", "Signals",
// "Detectors"), followed by the section's content lines. The TLC section
// holds the controller name on a single line; mapping sections hold
// `id, name` rows and end at the first blank or comment line.
func loadLegacy(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("mapping: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("mapping: read %s: %w", path, err)
	}

	name, err := legacyControllerName(lines)
	if err != nil {
		return Config{}, err
	}
	signals, err := legacyTable(lines, "Signals")
	if err != nil {
		return Config{}, err
	}
	detectors, err := legacyTable(lines, "Detectors")
	if err != nil {
		return Config{}, err
	}

	return Config{ControllerName: name, Signals: signals, Detectors: detectors}, nil
}

func legacyControllerName(lines []string) (string, error) {
	inSection := false
	for _, line := range lines {
		if !inSection {
			inSection = strings.Contains(line, "//") && strings.Contains(line, "TLC")
			continue
		}
		if line == "" || strings.Contains(line, "//") {
			continue
		}
		return line, nil
	}
	return "", ErrNoControllerName
}

func legacyTable(lines []string, section string) (Table, error) {
	table := make(Table)
	inSection := false
	for _, line := range lines {
		if !inSection {
			inSection = strings.Contains(line, "//") && strings.Contains(line, section)
			continue
		}
		if line == "" || strings.Contains(line, "//") {
			// End of section.
			break
		}
		id, name, err := parseLegacyRow(line, section)
		if err != nil {
			return nil, err
		}
		table[name] = id
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntries, section)
	}
	return table, nil
}

func parseLegacyRow(line, section string) (uint8, string, error) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("mapping: malformed %s row %q", section, line)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 16)
	if err != nil || id > MaxID {
		return 0, "", fmt.Errorf("%w: %s row %q", ErrIDOutOfRange, section, line)
	}
	name := strings.TrimSpace(parts[1])
	if name == "" {
		return 0, "", fmt.Errorf("mapping: malformed %s row %q", section, line)
	}
	return uint8(id), name, nil
}
