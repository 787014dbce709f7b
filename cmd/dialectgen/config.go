package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ProjectConfig is the optional dialectgen.yaml project file: schema file
// globs, the output directory, and per-table mapped-class-name overrides
// that take priority over a schema file's own AS "ClassName" clause or the
// derived default.
type ProjectConfig struct {
	SchemaGlobs       []string          `yaml:"schema_globs"`
	OutDir            string            `yaml:"out_dir"`
	ClassNameOverride map[string]string `yaml:"class_name_overrides"`
}

// LoadProjectConfig reads and parses a dialectgen.yaml file. A missing file
// is not an error: callers proceed with a zero-value ProjectConfig and the
// CLI flags alone.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	return &cfg, nil
}

func (c *ProjectConfig) classNameFor(table string) (string, bool) {
	name, ok := c.ClassNameOverride[table]
	return name, ok
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
