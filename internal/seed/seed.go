// Package seed provides the initial unit set of the complex.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"condo/internal/core"
)

//go:embed units.json
var defaultUnits []byte

// Default returns the nine houses the complex starts with.
func Default() []core.UnitInput {
	units, err := Parse(defaultUnits)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded units.json: %v", err))
	}
	return units
}

// Load reads a unit seed file in the same JSON format as the embedded one.
// An empty path returns the default set.
func Load(path string) ([]core.UnitInput, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	units, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return units, nil
}

// Parse decodes and validates a JSON array of units.
func Parse(data []byte) ([]core.UnitInput, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var units []core.UnitInput
	if err := dec.Decode(&units); err != nil {
		return nil, fmt.Errorf("decode units: %w", err)
	}
	for i, u := range units {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("unit %d (%q): %w", i+1, u.Name, err)
		}
	}
	return units, nil
}
