package ruleengine

import (
	"context"

	"github.com/open-regels/ruleengine/internal/rlog"
)

// Engine is the façade described in §4.7 (C7): it owns the
// property/output spec maps built from a Specification and orchestrates
// one evaluation at a time. It holds no per-evaluation state of its own;
// every Evaluate call gets a fresh RuleContext (§3, §5).
type Engine struct {
	spec            *Specification
	propertySpecs   map[string]PropertySpec
	outputSpecs     map[string]OutputSpec
	serviceProvider ServiceProvider
}

// NewEngine builds the property/output spec maps from spec (§2) and
// validates spec's own invariants (§C.1) before any evaluation is
// attempted, returning every problem found rather than only the first.
func NewEngine(spec *Specification, serviceProvider ServiceProvider) (*Engine, error) {
	propertySpecs := make(map[string]PropertySpec)
	var problems error

	addProperty := func(p PropertySpec) {
		if _, dup := propertySpecs[p.Name]; dup {
			problems = appendBatchError(problems, NewValidationError("duplicate property %q", p.Name))
			return
		}
		propertySpecs[p.Name] = p
	}
	for _, p := range spec.Properties.Input {
		addProperty(p)
	}
	for _, p := range spec.Properties.Sources {
		addProperty(p)
	}

	outputSpecs := make(map[string]OutputSpec)
	for _, o := range spec.Properties.Output {
		if err := o.TypeSpec.Validate(); err != nil {
			problems = appendBatchError(problems, err)
		}
		outputSpecs[o.Name] = o
	}

	for _, action := range spec.Actions {
		name := action.OutputName()
		if name == "" {
			problems = appendBatchError(problems, NewValidationError("action is missing an \"output\" name"))
			continue
		}
		if _, ok := outputSpecs[name]; !ok {
			problems = appendBatchError(problems, NewValidationError("action references unknown output %q", name))
		}
	}

	if problems != nil {
		return nil, problems
	}

	return &Engine{
		spec:            spec,
		propertySpecs:   propertySpecs,
		outputSpecs:     outputSpecs,
		serviceProvider: serviceProvider,
	}, nil
}

// EvaluationRequest carries the per-call parameters of §4.7's evaluate
// signature.
type EvaluationRequest struct {
	ServiceContext  map[string]interface{}
	OverwriteInput  map[string]interface{}
	Sources         map[string]map[string]interface{}
	CalculationDate string
	RequestedOutput string
}

// EvaluationResult is §6's evaluation result object.
type EvaluationResult struct {
	Input           map[string]interface{} `json:"input"`
	Output          map[string]OutputValue `json:"output"`
	RequirementsMet bool                    `json:"requirements_met"`
	Path            *PathNode               `json:"path"`
}

// Evaluate implements the engine façade of §4.7:
//  1. build a root PathNode and a fresh RuleContext;
//  2. evaluate requirements, capturing requirements_met as the root's result;
//  3. snapshot values_cache as input_values at this point;
//  4. if requirements were met, run actions in order (honoring RequestedOutput);
//  5. return input/output/requirements_met/trace root.
func (e *Engine) Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResult, error) {
	root := newPathNode(NodeRoot, "root")
	rc := newRuleContext(
		ctx,
		e.spec.Service, e.spec.Law,
		e.spec.Properties.Definitions,
		e.propertySpecs,
		e.outputSpecs,
		e.serviceProvider,
		req.ServiceContext,
		req.Sources,
		req.OverwriteInput,
		req.CalculationDate,
		root,
	)

	met, err := rc.EvaluateRequirements(e.spec.Requirements)
	if err != nil {
		return EvaluationResult{}, err
	}
	root.Result = met

	inputValues := rc.snapshotInputValues()
	outputValues := make(map[string]OutputValue)

	if met {
		for _, action := range e.spec.Actions {
			name := action.OutputName()
			if req.RequestedOutput != "" && name != req.RequestedOutput {
				continue
			}
			spec, ok := e.outputSpecs[name]
			if !ok {
				rlog.WARN("action references unknown output %q, skipping", name)
				continue
			}
			ov, err := rc.EvaluateAction(action, spec)
			if err != nil {
				return EvaluationResult{}, err
			}
			outputValues[name] = ov
		}
	}

	return EvaluationResult{
		Input:           inputValues,
		Output:          outputValues,
		RequirementsMet: met,
		Path:            root,
	}, nil
}

// EvaluateMany runs each request independently (§C.3): a fresh RuleContext
// per request, per §3's lifecycle. Per-request ServiceProvider failures are
// aggregated into a single returned error via go-multierror rather than
// aborting the whole batch; every request that didn't itself error still
// gets a result in the returned slice, at the same index.
func (e *Engine) EvaluateMany(ctx context.Context, requests []EvaluationRequest) ([]EvaluationResult, error) {
	results := make([]EvaluationResult, len(requests))
	var problems error

	for i, req := range requests {
		result, err := e.Evaluate(ctx, req)
		if err != nil {
			problems = appendBatchError(problems, err)
			continue
		}
		results[i] = result
	}

	return results, problems
}
