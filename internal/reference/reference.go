// Package reference serves the bundled, read-only theory reference content
// shown on the landing and theories pages. It is shipped with the binary and
// independent of the database.
package reference

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/theories.json
var data []byte

// Theory is one entry of the bundled reference content.
type Theory struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Load parses the bundled reference data. Called once at startup.
func Load() ([]Theory, error) {
	var out []Theory
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	return out, nil
}
