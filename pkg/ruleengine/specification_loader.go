package ruleengine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/geofffranks/yaml"
)

// LoadSpecification reads a specification from disk (§C.2). The format is
// sniffed from the file extension: ".json" decodes via encoding/json,
// ".yml"/".yaml" via the geofffranks/yaml fork graft itself uses to parse
// its own YAML documents. This is connective tissue for the CLI and
// tests, not part of the core engine: it returns data and never touches
// a RuleContext.
func LoadSpecification(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading specification %s: %w", path, err)
	}
	return ParseSpecification(data, filepath.Ext(path))
}

// ParseSpecification decodes raw specification bytes; ext selects the
// format (".json", ".yml", ".yaml", case-insensitive, defaulting to YAML
// for anything else, since that is graft's own default document format).
func ParseSpecification(data []byte, ext string) (*Specification, error) {
	var spec Specification

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("decoding JSON specification: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("decoding YAML specification: %w", err)
		}
	}

	return &spec, nil
}
