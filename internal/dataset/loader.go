package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// DataFile is the file name looked up in the user and local config directories.
const DataFile = "canada.yaml"

//go:embed defaults/canada.yaml
var defaultDataYAML []byte

// Load loads and validates a data set.
// Search order: customPath -> ~/.ocanada/canada.yaml -> ./configs/canada.yaml -> embedded default
func Load(customPath string) (*Dataset, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to read %s: %w", customPath, err)
		}
		ds, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to parse %s: %w", customPath, err)
		}
		return ds, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".ocanada", DataFile)); err == nil {
			if ds, err := Parse(data); err == nil {
				return ds, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", DataFile)); err == nil {
		if ds, err := Parse(data); err == nil {
			return ds, nil
		}
	}

	return Default()
}

// Parse decodes and validates a data set.
func Parse(data []byte) (*Dataset, error) {
	ds, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Default returns the embedded Canadian data set.
func Default() (*Dataset, error) {
	ds, err := Parse(defaultDataYAML)
	if err != nil {
		return nil, fmt.Errorf("dataset: embedded data invalid: %w", err)
	}
	return ds, nil
}

// MustDefault is Default for callers that cannot recover, such as tests.
func MustDefault() *Dataset {
	ds, err := Default()
	if err != nil {
		panic(err)
	}
	return ds
}

// DefaultYAML returns the embedded data file.
func DefaultYAML() []byte {
	return defaultDataYAML
}
