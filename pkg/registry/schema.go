// pkg/registry/schema.go
package registry

// SeedRegistry is the deploy-time file listing the initial document of
// each content section.
type SeedRegistry struct {
	Version     string        `json:"version" yaml:"version"`
	LastUpdated string        `json:"lastUpdated" yaml:"lastUpdated"`
	Sections    []SectionSeed `json:"sections" yaml:"sections"`
}

// SectionSeed holds one section document in its JSON shape.
type SectionSeed struct {
	Key     string                 `json:"key" yaml:"key"`
	Content map[string]interface{} `json:"content" yaml:"content"`
}
