package framework

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedOptionValue is returned when a config file gives an option a value that is not a
// string, integer or boolean.
var ErrUnsupportedOptionValue = errors.New("option values must be strings, integers or booleans")

// FileConfig is the content of a YAML configuration file. Options are keyed by flag name, and
// each value is applied as if it had been given on the command line.
//
//	strict-markers: true
//	options:
//	  tier: [1, 2]
//	  skip: ["slow"]
type FileConfig struct {
	StrictMarkers bool                     `yaml:"strict-markers"`
	Options       map[string][]interface{} `yaml:"options"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return FileConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// Apply sets the configured options on fs, skipping any flag that was already set on the
// command line so that the command line takes precedence.
func (c FileConfig) Apply(fs *flag.FlagSet) error {
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { alreadySet[f.Name] = true })

	for name, values := range c.Options {
		if fs.Lookup(name) == nil {
			return fmt.Errorf("config file sets unknown option %q", name)
		}
		if alreadySet[name] {
			continue
		}
		for _, v := range values {
			value, err := optionValue(v)
			if err != nil {
				return fmt.Errorf("invalid value for option %q in config file: %w", name, err)
			}
			if err := fs.Set(name, value); err != nil {
				return fmt.Errorf("invalid value %q for option %q in config file: %w", value, name, err)
			}
		}
	}
	return nil
}

// optionValue turns a decoded YAML scalar into command-line text. Floats are rejected rather
// than formatted, since "1.0" would otherwise reach the flag as "1".
func optionValue(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: %v (%T)", ErrUnsupportedOptionValue, v, v)
	}
}
