// Package config reads the yaml dataset catalog: named delimited-text files
// with optional per-dataset parsing overrides.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("dataset not found")

type DatasetConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	// Delimiter and Quote are single-character overrides; empty means the
	// comma and double-quote defaults.
	Delimiter string `yaml:"delimiter"`
	Quote     string `yaml:"quote"`
	// SkipMalformedRows logs and drops rows whose field count doesn't match
	// the header instead of failing the whole load.
	SkipMalformedRows bool `yaml:"skipMalformedRows"`
}

type Config struct {
	Datasets []DatasetConfig `yaml:"datasets"`
}

func (config *Config) GetDatasetConfig(name string) (DatasetConfig, error) {
	for i := range config.Datasets {
		if config.Datasets[i].Name == name {
			return config.Datasets[i], nil
		}
	}

	return DatasetConfig{}, ErrNotFound
}

func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	for i := range config.Datasets {
		if err := config.Datasets[i].validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid dataset %q", config.Datasets[i].Name)
		}
	}

	return &config, nil
}

func (dataset DatasetConfig) validate() error {
	if dataset.Name == "" {
		return errors.New("dataset name is required")
	}
	if dataset.Path == "" {
		return errors.New("dataset path is required")
	}
	if len(dataset.Delimiter) > 1 {
		return errors.Errorf("delimiter must be a single character, got %q", dataset.Delimiter)
	}
	if len(dataset.Quote) > 1 {
		return errors.Errorf("quote must be a single character, got %q", dataset.Quote)
	}
	return nil
}
