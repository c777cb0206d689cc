// Package catalog holds the registry of candidate models and their metadata.
package catalog

import "fmt"

// Level is a coarse low/medium/high rating used for model complexity, cost, and latency.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Model describes a candidate model: its capability description is what the
// embedding index is built from, the levels are metadata surfaced in
// routing decisions.
type Model struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Complexity  Level  `yaml:"complexity" json:"complexity"`
	Cost        Level  `yaml:"cost" json:"cost"`
	Latency     Level  `yaml:"latency" json:"latency"`
}

// Validate checks that the model has a name, a description, and valid levels.
func (m *Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model has no name")
	}
	if m.Description == "" {
		return fmt.Errorf("model %s has no description", m.Name)
	}
	for _, l := range []Level{m.Complexity, m.Cost, m.Latency} {
		if !l.Valid() {
			return fmt.Errorf("model %s has invalid level %q", m.Name, l)
		}
	}
	return nil
}
