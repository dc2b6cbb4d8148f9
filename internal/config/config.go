package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samcharles93/voxel/pkg/nrrd"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "VOXEL_CONFIG"

// Config represents the voxel configuration file
// (~/.config/voxel/config.yaml). Pointer fields distinguish "not set" from
// zero values.
type Config struct {
	// CustomFields maps header fields the format does not define to kind
	// names such as "int list" or "double matrix".
	CustomFields map[string]string `yaml:"custom_fields"`

	// Codec defaults
	IndexOrder           string `yaml:"index_order"`
	AllowDuplicateFields *bool  `yaml:"allow_duplicate_fields"`
	CompressionLevel     *int   `yaml:"compression_level"`
	Encoding             string `yaml:"encoding"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	VolumesDir    string `yaml:"volumes_dir"`
}

// Path returns the config file location, or "" when none can be determined.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "voxel", "config.yaml")
}

// Load reads the config file at path. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed vocabulary.
func (c Config) Validate() error {
	if _, err := c.FieldMap(); err != nil {
		return err
	}
	if c.IndexOrder != "" {
		if _, err := nrrd.ParseOrder(c.IndexOrder); err != nil {
			return err
		}
	}
	if c.Encoding != "" {
		if _, err := nrrd.ParseEncoding(c.Encoding); err != nil {
			return err
		}
	}
	if c.CompressionLevel != nil && (*c.CompressionLevel < 1 || *c.CompressionLevel > 9) {
		return fmt.Errorf("compression_level must be 1-9, got %d", *c.CompressionLevel)
	}
	return nil
}

// FieldMap converts CustomFields into the codec's kinds.
func (c Config) FieldMap() (nrrd.FieldMap, error) {
	if len(c.CustomFields) == 0 {
		return nil, nil
	}
	m := make(nrrd.FieldMap, len(c.CustomFields))
	for field, name := range c.CustomFields {
		k, err := nrrd.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("custom field %q: %w", field, err)
		}
		m[field] = k
	}
	return m, nil
}

// Options returns the codec options the config sets.
func (c Config) Options() ([]nrrd.Option, error) {
	var opts []nrrd.Option
	fields, err := c.FieldMap()
	if err != nil {
		return nil, err
	}
	if fields != nil {
		opts = append(opts, nrrd.WithCustomFieldMap(fields))
	}
	if c.IndexOrder != "" {
		order, err := nrrd.ParseOrder(c.IndexOrder)
		if err != nil {
			return nil, err
		}
		opts = append(opts, nrrd.WithIndexOrder(order))
	}
	if c.AllowDuplicateFields != nil {
		opts = append(opts, nrrd.WithAllowDuplicateFields(*c.AllowDuplicateFields))
	}
	if c.CompressionLevel != nil {
		opts = append(opts, nrrd.WithCompressionLevel(*c.CompressionLevel))
	}
	return opts, nil
}

// CustomFieldNames returns the configured custom field names, sorted.
func (c Config) CustomFieldNames() []string {
	names := make([]string, 0, len(c.CustomFields))
	for name := range c.CustomFields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
