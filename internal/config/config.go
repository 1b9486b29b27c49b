package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSize      = 20
	DefaultSpeed     = 1
	DefaultShape     = "random"
	DefaultTheme     = "default"
	DefaultDataDir   = ".sortviz"
	DefaultLogLevel  = "info"
	DefaultExport    = "sorting-log.txt"

	MinSize = 2
	MaxSize = 200
)

type Config struct {
	Algorithm  string `yaml:"algorithm"`
	Size       int    `yaml:"size"`
	Speed      int    `yaml:"speed"`
	Seed       int64  `yaml:"seed"`
	Shape      string `yaml:"shape"`
	Theme      string `yaml:"theme"`
	DataDir    string `yaml:"data_dir"`
	ExportFile string `yaml:"export_file"`
	LogLevel   string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  DefaultAlgorithm,
		Size:       DefaultSize,
		Speed:      DefaultSpeed,
		Shape:      DefaultShape,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
		ExportFile: DefaultExport,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads a yaml file over the defaults; keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Size < MinSize || c.Size > MaxSize {
		return fmt.Errorf("size %d out of range [%d, %d]", c.Size, MinSize, MaxSize)
	}
	if c.Algorithm == "" {
		return fmt.Errorf("algorithm must be set")
	}
	return nil
}

// Apply copies the non-zero fields of a preset onto c.
func (c *Config) Apply(p *Config) {
	if p == nil {
		return
	}
	if p.Algorithm != "" {
		c.Algorithm = p.Algorithm
	}
	if p.Size != 0 {
		c.Size = p.Size
	}
	if p.Speed != 0 {
		c.Speed = p.Speed
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
	if p.Shape != "" {
		c.Shape = p.Shape
	}
	if p.Theme != "" {
		c.Theme = p.Theme
	}
}
