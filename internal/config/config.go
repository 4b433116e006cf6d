package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInputPath is the admissions data file the annotator reads.
	DefaultInputPath = "elmir/2025_bakalavr_az.json"
	// DefaultOutputPath is where the annotated document is written (same file).
	DefaultOutputPath = DefaultInputPath

	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "annotate.yaml"
)

// Config holds all annotator configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Fields  FieldsConfig  `yaml:"fields"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig locates the document. An empty Output means "overwrite Input".
type PathsConfig struct {
	Input  string `yaml:"input" env:"ANNOTATE_INPUT"`
	Output string `yaml:"output,omitempty" env:"ANNOTATE_OUTPUT"`
}

// FieldsConfig names the record fields the annotator reads and writes.
type FieldsConfig struct {
	Note      string `yaml:"note"`
	Name      string `yaml:"name"`
	Separator string `yaml:"separator"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Input: DefaultInputPath,
		},
		Fields: FieldsConfig{
			Note:      "qeyd",
			Name:      "Fakulte adi",
			Separator: ", ",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults, then
// applies environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides reads the env-tagged fields (ANNOTATE_*). Unset
// variables leave the current value alone.
func (c *Config) applyEnvOverrides() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// SetPath points both input and output at path.
func (c *Config) SetPath(path string) {
	c.Paths.Input = path
	c.Paths.Output = ""
}

// OutputPath resolves the write target.
func (c *Config) OutputPath() string {
	if c.Paths.Output == "" {
		return c.Paths.Input
	}
	return c.Paths.Output
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Paths.Input) == "" {
		problems = append(problems, "paths.input is empty")
	}
	if c.Fields.Note == "" {
		problems = append(problems, "fields.note is empty")
	}
	if c.Fields.Name == "" {
		problems = append(problems, "fields.name is empty")
	}
	if c.Fields.Note != "" && c.Fields.Note == c.Fields.Name {
		problems = append(problems, "fields.note and fields.name must differ")
	}
	if c.Fields.Separator == "" {
		problems = append(problems, "fields.separator is empty")
	}
	if err := c.Logging.validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
