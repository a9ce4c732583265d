package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/trafficlab/tlcfi2vlog/internal/testutil/testlog"
)

const legacyFixture = `// VLog TLC name
3031

// Signals
0, 02
1, 03
5, 71

// Detectors
1, D713
3, D681
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadLegacyFormat(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load(writeFixture(t, "mapping.txt", legacyFixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ControllerName != "3031" {
		t.Fatalf("unexpected controller name: %q", cfg.ControllerName)
	}
	if len(cfg.Signals) != 3 || cfg.Signals["71"] != 5 {
		t.Fatalf("unexpected signals: %+v", cfg.Signals)
	}
	if len(cfg.Detectors) != 2 || cfg.Detectors["D681"] != 3 {
		t.Fatalf("unexpected detectors: %+v", cfg.Detectors)
	}
}

func TestLoadLegacySectionEndsAtBlankLine(t *testing.T) {
	testlog.Start(t)
	fixture := `// TLC
3031

// Signals
0, 02

4, 99

// Detectors
1, D713
`
	cfg, err := Load(writeFixture(t, "mapping.txt", fixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cfg.Signals["99"]; ok {
		t.Fatalf("row after blank line must not be part of the section")
	}
}

func TestLoadLegacyMissingName(t *testing.T) {
	testlog.Start(t)
	fixture := `// Signals
0, 02

// Detectors
1, D713
`
	if _, err := Load(writeFixture(t, "mapping.txt", fixture)); !errors.Is(err, ErrNoControllerName) {
		t.Fatalf("expected ErrNoControllerName, got %v", err)
	}
}

func TestLoadLegacyIDOutOfRange(t *testing.T) {
	testlog.Start(t)
	fixture := `// TLC
3031

// Signals
255, 02

// Detectors
1, D713
`
	if _, err := Load(writeFixture(t, "mapping.txt", fixture)); !errors.Is(err, ErrIDOutOfRange) {
		t.Fatalf("expected ErrIDOutOfRange, got %v", err)
	}
}

func TestLoadTOMLFormat(t *testing.T) {
	testlog.Start(t)
	fixture := `controller_name = "3031"

[signals]
"02" = 0
"71" = 5

[detectors]
D713 = 1
`
	cfg, err := Load(writeFixture(t, "mapping.toml", fixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ControllerName != "3031" || cfg.Signals["71"] != 5 || cfg.Detectors["D713"] != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadTOMLValidation(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name    string
		fixture string
		want    error
	}{
		{
			"id out of range",
			"controller_name = \"x\"\n[signals]\n\"02\" = 300\n[detectors]\nD1 = 1\n",
			ErrIDOutOfRange,
		},
		{
			"missing name",
			"[signals]\n\"02\" = 1\n[detectors]\nD1 = 1\n",
			ErrNoControllerName,
		},
		{
			"empty detectors",
			"controller_name = \"x\"\n[signals]\n\"02\" = 1\n",
			ErrNoEntries,
		},
	}
	for _, tc := range cases {
		_, err := Load(writeFixture(t, "mapping.toml", tc.fixture))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
