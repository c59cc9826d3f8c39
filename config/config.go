// Package config loads and saves ripplegen configuration files. A file is
// YAML whose keys are the long flag names of the render command; values set
// on the command line take precedence over the file.
package config

import (
	"bytes"
	"fmt"
	"io"

	"ripplegen/field"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Config mirrors the render flags that make sense to keep in a file.
type Config struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Supersample int     `yaml:"supersample"`
	XMin        float64 `yaml:"x-min"`
	XMax        float64 `yaml:"x-max"`
	YMin        float64 `yaml:"y-min"`
	YMax        float64 `yaml:"y-max"`
	K           float64 `yaml:"k"`
	Radius      float64 `yaml:"radius"`
	Out         string  `yaml:"out"`
	Format      string  `yaml:"format"`
	Progress    bool    `yaml:"progress"`
	Workers     int     `yaml:"workers"`
}

// Default returns the configuration of the reference rendering.
func Default() *Config {
	ref := field.Reference()
	return &Config{
		Width:       ref.Width,
		Height:      ref.Height,
		Supersample: 1,
		XMin:        ref.Bounds.XMin,
		XMax:        ref.Bounds.XMax,
		YMin:        ref.Bounds.YMin,
		YMax:        ref.Bounds.YMax,
		K:           ref.K,
		Radius:      field.ReferenceRadius,
		Out:         "-",
		Format:      "auto",
		Progress:    true,
		Workers:     0,
	}
}

// Load decodes a configuration file. Keys that are not in Config are
// rejected.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

func Save(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

// Loader is a kong.ConfigurationLoader resolving flags from a YAML file.
func Loader(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	// validates keys and types up front
	if _, err := Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var resolver kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok || v == nil {
			return nil, nil
		}
		// kong mappers all accept the string form
		return fmt.Sprint(v), nil
	}
	return resolver, nil
}
