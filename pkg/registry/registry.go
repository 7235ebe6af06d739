// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadRegistry reads a seed file. Files ending in .yaml or .yml are parsed
// as YAML, anything else as JSON.
func LoadRegistry(path string) (*SeedRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg SeedRegistry
	if isYAML(path) {
		err = yaml.Unmarshal(data, &reg)
	} else {
		err = json.Unmarshal(data, &reg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &reg, nil
}

// SaveRegistry writes reg in the format implied by path.
func SaveRegistry(reg *SeedRegistry, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(reg)
	} else {
		data, err = json.MarshalIndent(reg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the seed for key.
func (r *SeedRegistry) Find(key string) (SectionSeed, bool) {
	for _, s := range r.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return SectionSeed{}, false
}

// Duplicates lists keys that appear more than once, in first-seen order.
func (r *SeedRegistry) Duplicates() []string {
	seen := make(map[string]int, len(r.Sections))
	var dups []string
	for _, s := range r.Sections {
		seen[s.Key]++
		if seen[s.Key] == 2 {
			dups = append(dups, s.Key)
		}
	}
	return dups
}

// Raw returns the section content as JSON.
func (s SectionSeed) Raw() (json.RawMessage, error) {
	if s.Content == nil {
		return nil, fmt.Errorf("section %s has no content", s.Key)
	}
	raw, err := json.Marshal(s.Content)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", s.Key, err)
	}
	return raw, nil
}

// NewSectionSeed converts a JSON document into its seed form.
func NewSectionSeed(key string, raw []byte) (SectionSeed, error) {
	var content map[string]interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return SectionSeed{}, fmt.Errorf("section %s: %w", key, err)
	}
	return SectionSeed{Key: key, Content: content}, nil
}
