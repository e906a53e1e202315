package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger Logger `yaml:"logger"`
}

type LocalReport struct {
	Path string `yaml:"path"`
}

type S3Report struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

// Report configures where check reports are written. An empty type means
// the report is printed to stdout.
type Report struct {
	Type  string      `yaml:"type"`
	Local LocalReport `yaml:"local"`
	S3    S3Report    `yaml:"s3"`
}

type Curator struct {
	Global      Global      `yaml:"global"`
	Report      Report      `yaml:"report"`
	Datasources Datasources `yaml:"fluent_datasources"`
}

// NewCuratorFromFile reads and validates a datasource catalog. Validation
// happens during unmarshaling: a document with an unknown type, an
// unsupported option, or a duplicate name is rejected and never partially
// loaded.
func NewCuratorFromFile(fpath string) (*Curator, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	return NewCurator(bs)
}

func NewCurator(bs []byte) (*Curator, error) {
	var curator Curator
	if err := yaml.Unmarshal(bs, &curator); err != nil {
		return nil, err
	}

	switch curator.Report.Type {
	case "", "local", "s3":
	default:
		return nil, fmt.Errorf("unknown report type: %q", curator.Report.Type)
	}

	return &curator, nil
}
