package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Pipeline struct {
	Name   string `yaml:"name"`
	LogLvl string `yaml:"log_level"`
}

type Paths struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Report string `yaml:"report"`
}

type Convert struct {
	ByMora bool `yaml:"by_mora"`
}

type Tiers struct {
	Name     string   `yaml:"name"`
	Source   string   `yaml:"source"`
	Keywords []string `yaml:"keywords"`
}

type Root struct {
	Pipeline Pipeline `yaml:"pipeline"`
	Paths    Paths    `yaml:"paths"`
	Convert  Convert  `yaml:"convert"`
	Tiers    Tiers    `yaml:"tiers"`
}

// Keys shared by the viper bindings and the YAML layout.
const (
	KeyLogLevel = "pipeline.log_level"
	KeyInput    = "paths.input"
	KeyOutput   = "paths.output"
	KeyReport   = "paths.report"
	KeyByMora   = "convert.by_mora"
	KeyTierName = "tiers.name"
	KeySource   = "tiers.source"
	KeyKeywords = "tiers.keywords"
)

func Default() *Root {
	return &Root{
		Pipeline: Pipeline{Name: "labgrid", LogLvl: "info"},
		Tiers:    Tiers{Name: "TargetWord", Source: "words"},
	}
}

// Load decodes path, or the first config found among the usual locations
// when path is empty. Finding no file at all yields the defaults.
func Load(path string) (*Root, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	env := os.Getenv("LABGRID_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"labgrid.yaml",
	}
	for _, p := range guess {
		err := decodeFile(p, cfg)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Root) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	// an empty file holds no settings
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Override applies every key that was set on v through a flag or the
// environment on top of the file values.
func (c *Root) Override(v *viper.Viper) {
	if v.IsSet(KeyLogLevel) {
		c.Pipeline.LogLvl = v.GetString(KeyLogLevel)
	}
	if v.IsSet(KeyInput) {
		c.Paths.Input = v.GetString(KeyInput)
	}
	if v.IsSet(KeyOutput) {
		c.Paths.Output = v.GetString(KeyOutput)
	}
	if v.IsSet(KeyReport) {
		c.Paths.Report = v.GetString(KeyReport)
	}
	if v.IsSet(KeyByMora) {
		c.Convert.ByMora = v.GetBool(KeyByMora)
	}
	if v.IsSet(KeyTierName) {
		c.Tiers.Name = v.GetString(KeyTierName)
	}
	if v.IsSet(KeySource) {
		c.Tiers.Source = v.GetString(KeySource)
	}
	if v.IsSet(KeyKeywords) {
		c.Tiers.Keywords = splitList(v.GetStringSlice(KeyKeywords))
	}
}

// splitList flattens comma separated entries, as list values read from
// the environment arrive as one string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the fields every command needs.
func (c *Root) Validate() error {
	var missing []string
	if c.Paths.Input == "" {
		missing = append(missing, KeyInput)
	}
	if c.Paths.Output == "" {
		missing = append(missing, KeyOutput)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if _, err := logrus.ParseLevel(c.Pipeline.LogLvl); err != nil {
		return err
	}
	return nil
}
