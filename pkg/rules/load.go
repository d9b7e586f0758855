package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load returns the builtin tables extended by the file at path.
// An empty path yields the builtin tables alone.
func Load(path string) (*Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r.Extend(extra)
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	log.Debugf("Extended builtin rules from %s", path)
	return r, nil
}

// LoadFile decodes a single rules file. The format follows the extension:
// .yaml/.yml for YAML, anything else for TOML.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var r Rules
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse rules file %s: %w", path, err)
		}
		return &r, nil
	default:
		r, err := Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse rules file %s: %w", path, err)
		}
		return r, nil
	}
}
