package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownModel is returned when a lookup names a model absent from the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Catalog is an ordered, read-only collection of models. Order matters: the
// embedding index is built from Descriptions() and Names() in the same order,
// so the two views must stay aligned.
type Catalog struct {
	models []*Model
	byName map[string]*Model
}

// New creates a catalog from models. Names must be unique.
func New(models []*Model) (*Catalog, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("catalog has no models")
	}
	byName := make(map[string]*Model, len(models))
	for _, m := range models {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[m.Name]; exists {
			return nil, fmt.Errorf("duplicate model name: %s", m.Name)
		}
		byName[m.Name] = m
	}
	return &Catalog{models: models, byName: byName}, nil
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var file struct {
		Models []*Model `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(file.Models)
}

// Models returns all models in catalog order.
func (c *Catalog) Models() []*Model {
	return c.models
}

// Descriptions returns all capability descriptions in catalog order.
func (c *Catalog) Descriptions() []string {
	out := make([]string, len(c.models))
	for i, m := range c.models {
		out[i] = m.Description
	}
	return out
}

// Names returns all model names in catalog order (aligned with Descriptions).
func (c *Catalog) Names() []string {
	out := make([]string, len(c.models))
	for i, m := range c.models {
		out[i] = m.Name
	}
	return out
}

// ByName returns the model with the given name, or ErrUnknownModel.
func (c *Catalog) ByName(name string) (*Model, error) {
	m, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return m, nil
}

// Size returns the number of models.
func (c *Catalog) Size() int {
	return len(c.models)
}
