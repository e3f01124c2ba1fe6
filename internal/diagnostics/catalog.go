package diagnostics

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nerdalytics/tinywhale/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry is one catalog record: the severity a code is always raised at, its
// message template, and an optional help-text template.
type Entry struct {
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
	Help     string `yaml:"help"`
}

// Catalog maps a code to its catalog entry.
type Catalog map[ErrorCode]Entry

var (
	defaultCatalog     Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog embedded in this binary, parsed once
// via the teacher's own YAML library (gopkg.in/yaml.v3).
func DefaultCatalog() Catalog {
	defaultCatalogOnce.Do(func() {
		var raw map[ErrorCode]Entry
		if err := yaml.Unmarshal(catalogYAML, &raw); err != nil {
			store.Bugf("diagnostics: embedded catalog.yaml is invalid: %v", err)
		}
		defaultCatalog = raw
	})
	return defaultCatalog
}

func (c Catalog) severityOf(code ErrorCode) Severity {
	entry, ok := c[code]
	if !ok {
		return Error
	}
	switch entry.Severity {
	case "warning":
		return Warning
	case "note":
		return Note
	default:
		return Error
	}
}
