// Package providers offers concrete, swappable ServiceProvider (§6)
// implementations. Which one an evaluation uses is entirely a caller
// decision; the core engine only depends on the ruleengine.ServiceProvider
// interface.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmespath/go-jmespath"

	"github.com/open-regels/ruleengine/internal/rlog"
	"github.com/open-regels/ruleengine/pkg/ruleengine"
)

// FileProvider resolves cross-service lookups against a single JSON
// document loaded up front, keyed "<service>.<law>" -> field map. It is
// meant for fixture-driven and offline evaluation: tests and CLI dry-runs
// that want deterministic answers without talking to a live law service.
type FileProvider struct {
	referenceDate string
	laws          map[string]map[string]interface{}
}

var _ ruleengine.ServiceProvider = (*FileProvider)(nil)
var _ ruleengine.ReferenceDated = (*FileProvider)(nil)

// NewFileProvider loads path as a JSON document shaped
// {"<service>.<law>": {"<field>": value, ...}, ...}.
func NewFileProvider(referenceDate, path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading service fixture %s: %w", path, err)
	}

	var laws map[string]map[string]interface{}
	if err := json.Unmarshal(data, &laws); err != nil {
		return nil, fmt.Errorf("decoding service fixture %s: %w", path, err)
	}

	return &FileProvider{referenceDate: referenceDate, laws: laws}, nil
}

// ReferenceDate returns the date this provider's fixture is anchored to.
func (p *FileProvider) ReferenceDate() string {
	return p.referenceDate
}

// GetValue implements ruleengine.ServiceProvider by looking up the law's
// field map under the "<service>.<law>" key and then evaluating field as a
// JMESPath expression against that map, so nested field paths (e.g.
// "thresholds.lower") work the same way a live service's structured
// response would.
func (p *FileProvider) GetValue(
	_ context.Context,
	service, law, field string,
	_ interface{},
	_ map[string]interface{},
	_ map[string]interface{},
) (interface{}, error) {
	key := service + "." + law
	lawOutputs, ok := p.laws[key]
	if !ok {
		rlog.WARN("file provider: no fixture for law %q", key)
		return nil, nil
	}

	result, err := jmespath.Search(field, lawOutputs)
	if err != nil {
		return nil, fmt.Errorf("file provider: evaluating jmespath %q for %s: %w", field, key, err)
	}
	return result, nil
}
