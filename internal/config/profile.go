package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Profile is a saved set of report options for the command line.
type Profile struct {
	File           string   `json:"file" yaml:"file" toml:"file"`
	Period         string   `json:"period" yaml:"period" toml:"period"`
	Start          string   `json:"start" yaml:"start" toml:"start"`
	End            string   `json:"end" yaml:"end" toml:"end"`
	Affiliates     []string `json:"affiliates" yaml:"affiliates" toml:"affiliates"`
	Cities         []string `json:"cities" yaml:"cities" toml:"cities"`
	Statuses       []string `json:"statuses" yaml:"statuses" toml:"statuses"`
	PaymentMethods []string `json:"payment_methods" yaml:"payment_methods" toml:"payment_methods"`
	Ask            string   `json:"ask" yaml:"ask" toml:"ask"`
	Intent         string   `json:"intent" yaml:"intent" toml:"intent"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
}

// LoadProfile reads a TOML, YAML or JSON profile, picked by file extension.
func LoadProfile(path string) (*Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var p Profile

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return &p, nil
}
