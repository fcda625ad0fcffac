package ruleengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-regels/ruleengine/internal/rlog"
)

// RuleContext is the per-evaluation mutable state described in §3.
// One RuleContext is constructed per Evaluate call and discarded on return
// (§3 lifecycle; §5 "RuleContext is owned by a single evaluation").
type RuleContext struct {
	ctx context.Context

	definitions     map[string]interface{}
	serviceProvider ServiceProvider
	serviceContext  map[string]interface{}
	propertySpecs   map[string]PropertySpec
	outputSpecs     map[string]OutputSpec
	sources         map[string]map[string]interface{}
	overwriteInput  map[string]interface{}
	calculationDate string
	service         string
	law             string

	accessedPaths map[string]struct{}
	valuesCache   map[string]interface{}

	cursor *traceCursor
}

// newRuleContext constructs a fresh RuleContext rooted at root.
func newRuleContext(
	goCtx context.Context,
	service, law string,
	definitions map[string]interface{},
	propertySpecs map[string]PropertySpec,
	outputSpecs map[string]OutputSpec,
	serviceProvider ServiceProvider,
	serviceContext map[string]interface{},
	sources map[string]map[string]interface{},
	overwriteInput map[string]interface{},
	calculationDate string,
	root *PathNode,
) *RuleContext {
	return &RuleContext{
		ctx:             goCtx,
		service:         service,
		law:             law,
		definitions:     definitions,
		serviceProvider: serviceProvider,
		serviceContext:  serviceContext,
		propertySpecs:   propertySpecs,
		outputSpecs:     outputSpecs,
		sources:         sources,
		overwriteInput:  overwriteInput,
		calculationDate: calculationDate,
		accessedPaths:   make(map[string]struct{}),
		valuesCache:     make(map[string]interface{}),
		cursor:          newTraceCursor(root),
	}
}

// isReference reports whether v is a "$"-prefixed reference string (§6).
func isReference(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "$") {
		return "", false
	}
	return strings.TrimPrefix(s, "$"), true
}

// ResolveValue implements §4.3: given an arbitrary value, returns either
// the value itself (not a reference) or the resolved referent. Non-string
// and non-"$"-prefixed values pass through unchanged.
func (rc *RuleContext) ResolveValue(value interface{}) (interface{}, error) {
	path, ok := isReference(value)
	if !ok {
		return value, nil
	}
	return rc.resolvePath(path)
}

// resolvePath resolves a bare path (without the "$" prefix) following the
// priority order in §4.3: calculation_date, definitions, cache, overrides,
// sources, live service lookup, then null.
func (rc *RuleContext) resolvePath(path string) (interface{}, error) {
	rc.accessedPaths[path] = struct{}{}

	if path == "calculation_date" {
		return rc.calculationDate, nil
	}

	if v, ok := rc.definitions[path]; ok {
		rlog.TRACE("resolve %q: definition hit", path)
		return v, nil
	}

	if v, ok := rc.valuesCache[path]; ok {
		rlog.TRACE("resolve %q: cache hit", path)
		return v, nil
	}

	spec, hasSpec := rc.propertySpecs[path]

	if hasSpec && spec.ServiceReference != nil {
		key := overrideKey(spec.ServiceReference.Service, spec.ServiceReference.Field)
		if v, ok := rc.overwriteInput[key]; ok {
			rlog.DEBUG("resolve %q: override hit at %s", path, key)
			rc.valuesCache[path] = v
			return v, nil
		}
	}

	if hasSpec && spec.SourceReference != nil {
		if table, ok := rc.sources[spec.SourceReference.Table]; ok {
			if v, ok := table[spec.SourceReference.Field]; ok {
				rlog.DEBUG("resolve %q: source hit at %s.%s", path, spec.SourceReference.Table, spec.SourceReference.Field)
				rc.valuesCache[path] = v
				return v, nil
			}
		}
	}

	if hasSpec && spec.ServiceReference != nil && rc.serviceProvider != nil {
		if err := rc.ctx.Err(); err != nil {
			return nil, err
		}
		ref := spec.ServiceReference
		rlog.DEBUG("resolve %q: calling service %s/%s.%s", path, ref.Service, ref.Law, ref.Field)
		v, err := rc.serviceProvider.GetValue(rc.ctx, ref.Service, ref.Law, ref.Field, spec.Temporal, rc.serviceContext, rc.overwriteInput)
		if err != nil {
			return nil, NewServiceProviderError(err, "resolving %q via %s/%s.%s", path, ref.Service, ref.Law, ref.Field)
		}
		rc.valuesCache[path] = v
		return v, nil
	}

	rlog.WARN("unresolved reference %q", path)
	return nil, nil
}

// overrideKey builds the "@{service}.{field}" override key syntax (§6).
func overrideKey(service, field string) string {
	return fmt.Sprintf("@%s.%s", service, field)
}

// snapshotInputValues copies the current values_cache, used by the engine
// façade (§4.7 step 3) to capture exactly the values resolved while
// evaluating requirements, before any action runs.
func (rc *RuleContext) snapshotInputValues() map[string]interface{} {
	snap := make(map[string]interface{}, len(rc.valuesCache))
	for k, v := range rc.valuesCache {
		snap[k] = v
	}
	return snap
}

// AccessedPaths returns a copy of the set of bare paths consulted so far.
func (rc *RuleContext) AccessedPaths() map[string]struct{} {
	out := make(map[string]struct{}, len(rc.accessedPaths))
	for k := range rc.accessedPaths {
		out[k] = struct{}{}
	}
	return out
}
