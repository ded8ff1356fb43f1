package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyPluginName indicates a plugin entry without a name.
var ErrEmptyPluginName = errors.New("plugin name is empty")

// File is the on-disk calculator configuration.
type File struct {
	InitialValue float64      `json:"initial_value" yaml:"initial_value" toml:"initial_value"`
	Plugins      []PluginSpec `json:"plugins" yaml:"plugins" toml:"plugins"`
}

// PluginSpec names a plugin and carries its options.
type PluginSpec struct {
	Name    string         `json:"name" yaml:"name" toml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// Config returns typed access to the plugin's options.
func (s PluginSpec) Config() Options {
	return NewOptions(s.Options)
}

// Default returns the configuration of the classic demo: log, limit (2000),
// operators and squared plugins starting from 0.
func Default() File {
	return File{
		Plugins: []PluginSpec{
			{Name: "log"},
			{Name: "limit", Options: map[string]any{"max": 2000.0}},
			{Name: "operators"},
			{Name: "squared"},
		},
	}
}

// Validate checks that every plugin entry has a name.
func (f File) Validate() error {
	for i, p := range f.Plugins {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("plugins[%d]: %w", i, ErrEmptyPluginName)
		}
	}
	return nil
}

// Load reads a configuration file, choosing the format by extension.
// Supported extensions: .yaml, .yml, .json, .toml
func Load(path string) (File, error) {
	if path == "" {
		return File{}, errors.New("empty config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".toml":
		return FromTOML(data)
	default:
		return File{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data.
func FromYAML(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, f.Validate()
}

// FromJSON parses JSON data.
func FromJSON(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return f, f.Validate()
}

// FromTOML parses TOML data.
func FromTOML(data []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse toml: %w", err)
	}
	return f, f.Validate()
}
