package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStart = 0.0
	DefaultEnd   = 100.0
	DefaultStep  = 1.0
)

// ErrInvalidDefinition is returned when a model definition fails validation.
var ErrInvalidDefinition = errors.New("config: invalid model definition")

// Definition describes a model and how to run it.
type Definition struct {
	Name   string        `yaml:"name" json:"name"`
	Run    RunConfig     `yaml:"run" json:"run"`
	Stocks []StockConfig `yaml:"stocks" json:"stocks"`
	Flows  []FlowConfig  `yaml:"flows" json:"flows"`
}

type RunConfig struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Step  float64 `yaml:"step" json:"step"`
}

type StockConfig struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
}

// FlowConfig names its endpoints by stock name. An empty endpoint leaves the
// flow disconnected on that side.
type FlowConfig struct {
	Name        string             `yaml:"name" json:"name"`
	Kind        string             `yaml:"kind" json:"kind"`
	Source      string             `yaml:"source,omitempty" json:"source,omitempty"`
	Destination string             `yaml:"destination,omitempty" json:"destination,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

func DefaultRun() RunConfig {
	return RunConfig{Start: DefaultStart, End: DefaultEnd, Step: DefaultStep}
}

// Load reads a definition from a .yaml, .yml or .hcl file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(data, path)
	case ".yaml", ".yml", "":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML definition. A missing run section keeps the defaults.
func ParseYAML(data []byte) (*Definition, error) {
	def := &Definition{Run: DefaultRun()}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("config: decoding yaml: %w", err)
	}
	return def, nil
}

func Save(path string, def *Definition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy of d.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Stocks = append([]StockConfig(nil), d.Stocks...)
	c.Flows = make([]FlowConfig, len(d.Flows))
	for i, f := range d.Flows {
		c.Flows[i] = f
		if f.Params != nil {
			c.Flows[i].Params = make(map[string]float64, len(f.Params))
			for k, v := range f.Params {
				c.Flows[i].Params[k] = v
			}
		}
	}
	return &c
}

// FlowIndex returns the position of the named flow, or -1.
func (d *Definition) FlowIndex(name string) int {
	for i, f := range d.Flows {
		if f.Name == name {
			return i
		}
	}
	return -1
}
